package backdrop

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

type trackedTween struct {
	group *TweenGroup
	done  *Future[struct{}]
}

// Scene is the top-level object that owns the node tree, the virtual clock,
// running tweens, pending futures, frame callbacks, and input state.
//
// All methods must be called from the goroutine that runs the game loop.
type Scene struct {
	root *Node

	// ClearColor fills the screen before the tree is drawn. A zero alpha
	// leaves the screen untouched.
	ClearColor Color

	// ScreenshotDir receives Screenshot captures. Empty means "screenshots".
	ScreenshotDir string

	debug bool
	now   float64

	updateFunc func(dt float64)
	nodeBuf    []*Node

	tweens  []trackedTween
	pending []poller

	frameQueue []func()
	frameBuf   []func()

	script          *Script
	screenshotQueue []string

	// Input state
	handlers     handlerRegistry
	pointers     [maxPointers]pointerState
	dragDeadZone float64
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	injectQueue  []syntheticPointerEvent
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:         root,
		dragDeadZone: defaultDragDeadZone,
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Now returns the scene's virtual clock in seconds.
func (s *Scene) Now() float64 {
	return s.now
}

// SetUpdateFunc registers a callback that runs once per update, after input
// and before tweens advance.
func (s *Scene) SetUpdateFunc(fn func(dt float64)) {
	s.updateFunc = fn
}

// SetDebugMode enables per-frame timing logs.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Update advances the scene by one tick (1/TPS seconds) and reads hardware
// pointer input. Call it from ebiten.Game.Update.
func (s *Scene) Update() {
	s.step(1.0/float64(ebiten.TPS()), true)
}

// Advance moves the virtual clock forward by dt seconds without reading
// hardware input. Injected pointer events are still processed.
func (s *Scene) Advance(dt float64) {
	s.step(dt, false)
}

func (s *Scene) step(dt float64, hardware bool) {
	s.now += dt

	updateWorldTransform(s.root, identityTransform, 1.0, false)
	if s.script != nil {
		s.script.step(s)
	}
	s.processInput(hardware)

	if s.updateFunc != nil {
		s.updateFunc(dt)
	}
	s.nodeBuf = updateNodes(s.root, dt, s.nodeBuf[:0])

	s.advanceTweens(float32(dt))
	s.pollPending()
}

// Track runs g on every update until it is done. The returned future fires
// once, on the update in which the group finishes.
func (s *Scene) Track(g *TweenGroup) *Future[struct{}] {
	f := NewFuture[struct{}]()
	s.tweens = append(s.tweens, trackedTween{group: g, done: f})
	s.Watch(f)
	return f
}

// Watch registers a future to be polled on every update until it fires.
func (s *Scene) Watch(p poller) {
	s.pending = append(s.pending, p)
}

// TweenCount returns the number of tracked tween groups still running.
func (s *Scene) TweenCount() int {
	return len(s.tweens)
}

// PendingCount returns the number of watched futures that have not fired.
func (s *Scene) PendingCount() int {
	return len(s.pending)
}

func (s *Scene) advanceTweens(dt float32) {
	live := s.tweens[:0]
	for _, tt := range s.tweens {
		tt.group.Update(dt)
		if tt.group.Done {
			tt.done.Resolve(struct{}{})
			continue
		}
		live = append(live, tt)
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = trackedTween{}
	}
	s.tweens = live
}

// pollPending fires every delivered future. Continuations may watch new
// futures; those are polled in the same pass.
func (s *Scene) pollPending() {
	for i := 0; i < len(s.pending); i++ {
		s.pending[i].Poll()
	}
	live := s.pending[:0]
	for _, p := range s.pending {
		if !p.Done() {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(s.pending); i++ {
		s.pending[i] = nil
	}
	s.pending = live
}

// RequestFrame queues fn to run once before the next frame is drawn.
// Callbacks queued while the queue is being flushed run on the frame after.
func (s *Scene) RequestFrame(fn func()) {
	s.frameQueue = append(s.frameQueue, fn)
}

// FlushFrame runs the queued frame callbacks. Draw calls it; tests call it
// directly to simulate a display refresh.
func (s *Scene) FlushFrame() int {
	if len(s.frameQueue) == 0 {
		return 0
	}
	s.frameBuf, s.frameQueue = s.frameQueue, s.frameBuf[:0]
	for _, fn := range s.frameBuf {
		fn()
	}
	n := len(s.frameBuf)
	clear(s.frameBuf)
	return n
}

// Draw flushes frame callbacks, then renders the tree to screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	callbacks := s.FlushFrame()
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	var stats drawStats
	drawNode(screen, s.root, &stats)

	if s.debug {
		stats.frameCallbacks = callbacks
		stats.tweens = len(s.tweens)
		stats.pending = len(s.pending)
		stats.elapsed = time.Since(t0)
		s.debugLog(stats)
	}
	s.flushScreenshots(screen)
}
