package backdrop

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels; a release farther than this from the press is not a click
)

// PointerContext carries pointer event data in screen coordinates.
type PointerContext struct {
	X, Y      float64
	Button    MouseButton
	PointerID int
}

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	seen     bool // lastX/lastY hold a real sample
	dragging bool
	button   MouseButton
}

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type handlerRegistry struct {
	pointerDown []pointerHandler
	pointerUp   []pointerHandler
	pointerMove []pointerHandler
	click       []pointerHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removeHandler(h.reg.pointerDown, h.id)
	case EventPointerUp:
		h.reg.pointerUp = removeHandler(h.reg.pointerUp, h.id)
	case EventPointerMove:
		h.reg.pointerMove = removeHandler(h.reg.pointerMove, h.id)
	case EventClick:
		h.reg.click = removeHandler(h.reg.click, h.id)
	}
}

func removeHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (s *Scene) register(list *[]pointerHandler, event EventType, fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	*list = append(*list, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: event}
}

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.register(&s.handlers.pointerDown, EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.register(&s.handlers.pointerUp, EventPointerUp, fn)
}

// OnPointerMove registers a scene-level callback fired whenever a pointer's
// position changes, with or without a button held.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.register(&s.handlers.pointerMove, EventPointerMove, fn)
}

// OnClick registers a scene-level callback for a press followed by a release
// within the drag dead zone.
func (s *Scene) OnClick(fn func(PointerContext)) CallbackHandle {
	return s.register(&s.handlers.click, EventClick, fn)
}

// SetDragDeadZone sets the maximum press-to-release travel for a click.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// processInput handles injected events first; hardware input is read only
// when no injected event was consumed this frame.
func (s *Scene) processInput(hardware bool) {
	if s.processInjectedInput() || !hardware {
		return
	}
	s.processMousePointer()
	s.processTouchPointers()
}

func (s *Scene) processMousePointer() {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}

	s.processPointer(0, float64(mx), float64(my), pressed, button)
}

func (s *Scene) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var active [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft)
	}

	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !active[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft)
			}
			s.pointers[i] = pointerState{}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9), or -1 when full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scene) processPointer(pointerID int, x, y float64, pressed bool, button MouseButton) {
	ps := &s.pointers[pointerID]

	moved := !ps.seen || x != ps.lastX || y != ps.lastY
	ps.seen = true
	if moved {
		if ps.down {
			button = ps.button
		}
		s.fire(s.handlers.pointerMove, PointerContext{X: x, Y: y, Button: button, PointerID: pointerID})
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = x, y
		ps.dragging = false
		s.fire(s.handlers.pointerDown, PointerContext{X: x, Y: y, Button: button, PointerID: pointerID})
	case !pressed && ps.down:
		ctx := PointerContext{X: x, Y: y, Button: ps.button, PointerID: pointerID}
		if !ps.dragging && math.Hypot(x-ps.startX, y-ps.startY) <= s.dragDeadZone {
			s.fire(s.handlers.click, ctx)
		}
		s.fire(s.handlers.pointerUp, ctx)
		ps.down = false
		ps.dragging = false
	case pressed && ps.down && moved && !ps.dragging:
		if math.Hypot(x-ps.startX, y-ps.startY) > s.dragDeadZone {
			ps.dragging = true
		}
	}

	ps.lastX, ps.lastY = x, y
}

func (s *Scene) fire(handlers []pointerHandler, ctx PointerContext) {
	for _, h := range handlers {
		h.fn(ctx)
	}
}
