package backdrop

import (
	"testing"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside right", 115, 40, false},
		{"outside top", 50, 15, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Rect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestSceneLevelCallback_PointerDown(t *testing.T) {
	s := NewScene()
	var got PointerContext
	fired := false
	s.OnPointerDown(func(ctx PointerContext) {
		fired = true
		got = ctx
	})

	s.processPointer(0, 30, 40, true, MouseButtonRight)

	if !fired {
		t.Fatal("pointer down should fire")
	}
	if got.X != 30 || got.Y != 40 || got.Button != MouseButtonRight || got.PointerID != 0 {
		t.Errorf("ctx = %+v, want (30, 40) right button pointer 0", got)
	}
}

func TestCallbackHandle_Remove(t *testing.T) {
	s := NewScene()
	calls := 0
	h := s.OnPointerMove(func(PointerContext) { calls++ })

	s.processPointer(0, 1, 1, false, MouseButtonLeft)
	h.Remove()
	s.processPointer(0, 2, 2, false, MouseButtonLeft)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	// Removing twice and removing a zero handle are both safe.
	h.Remove()
	CallbackHandle{}.Remove()
}

func TestHoverMove(t *testing.T) {
	s := NewScene()
	moves := 0
	s.OnPointerMove(func(PointerContext) { moves++ })

	s.processPointer(0, 10, 10, false, MouseButtonLeft)
	s.processPointer(0, 10, 10, false, MouseButtonLeft) // unchanged
	s.processPointer(0, 12, 10, false, MouseButtonLeft)

	if moves != 2 {
		t.Errorf("moves = %d, want 2", moves)
	}
}

func TestFirstSampleAtOriginCountsAsMove(t *testing.T) {
	s := NewScene()
	moves := 0
	s.OnPointerMove(func(PointerContext) { moves++ })

	s.processPointer(0, 0, 0, false, MouseButtonLeft)

	if moves != 1 {
		t.Errorf("moves = %d, want 1", moves)
	}
}

func TestClickDetection(t *testing.T) {
	s := NewScene()
	clicks, ups := 0, 0
	s.OnClick(func(PointerContext) { clicks++ })
	s.OnPointerUp(func(PointerContext) { ups++ })

	s.processPointer(0, 50, 50, true, MouseButtonLeft)
	s.processPointer(0, 52, 51, true, MouseButtonLeft) // within dead zone
	s.processPointer(0, 52, 51, false, MouseButtonLeft)

	if clicks != 1 || ups != 1 {
		t.Errorf("clicks = %d, ups = %d, want 1 and 1", clicks, ups)
	}
}

func TestClickNotFiredOnDrag(t *testing.T) {
	s := NewScene()
	clicks := 0
	s.OnClick(func(PointerContext) { clicks++ })

	s.processPointer(0, 50, 50, true, MouseButtonLeft)
	s.processPointer(0, 80, 50, true, MouseButtonLeft)
	s.processPointer(0, 80, 50, false, MouseButtonLeft)

	if clicks != 0 {
		t.Errorf("clicks = %d, want 0 after a drag", clicks)
	}
}

func TestClickNotFiredOnFarRelease(t *testing.T) {
	s := NewScene()
	clicks, ups := 0, 0
	s.OnClick(func(PointerContext) { clicks++ })
	s.OnPointerUp(func(PointerContext) { ups++ })

	// Press and release with no pressed move in between.
	s.processPointer(0, 0, 0, true, MouseButtonLeft)
	s.processPointer(0, 300, 300, false, MouseButtonLeft)

	if clicks != 0 || ups != 1 {
		t.Errorf("clicks = %d, ups = %d, want 0 and 1", clicks, ups)
	}
}

func TestSetDragDeadZone(t *testing.T) {
	s := NewScene()
	s.SetDragDeadZone(50)
	clicks := 0
	s.OnClick(func(PointerContext) { clicks++ })

	s.processPointer(0, 50, 50, true, MouseButtonLeft)
	s.processPointer(0, 80, 50, true, MouseButtonLeft)
	s.processPointer(0, 80, 50, false, MouseButtonLeft)

	if clicks != 1 {
		t.Errorf("clicks = %d, want 1 with a wide dead zone", clicks)
	}
}

func TestMoveWhilePressedKeepsButton(t *testing.T) {
	s := NewScene()
	var buttons []MouseButton
	s.OnPointerMove(func(ctx PointerContext) { buttons = append(buttons, ctx.Button) })

	s.processPointer(0, 0, 0, true, MouseButtonMiddle)
	s.processPointer(0, 10, 0, true, MouseButtonLeft)

	if len(buttons) != 2 || buttons[1] != MouseButtonMiddle {
		t.Errorf("buttons = %v, want second move on the pressed button", buttons)
	}
}

func TestMultipleSceneHandlers(t *testing.T) {
	s := NewScene()
	var order []int
	s.OnPointerMove(func(PointerContext) { order = append(order, 1) })
	s.OnPointerMove(func(PointerContext) { order = append(order, 2) })

	s.processPointer(0, 5, 5, false, MouseButtonLeft)

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
}

func TestIndependentScenes(t *testing.T) {
	a, b := NewScene(), NewScene()
	aMoves, bMoves := 0, 0
	a.OnPointerMove(func(PointerContext) { aMoves++ })
	b.OnPointerMove(func(PointerContext) { bMoves++ })

	a.InjectMoves(Vec2{1, 1})

	if aMoves != 1 || bMoves != 0 {
		t.Errorf("aMoves = %d, bMoves = %d, want 1 and 0", aMoves, bMoves)
	}
}
