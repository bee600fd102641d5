package backdrop

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	node := NewContainer("pos")
	node.X = 10
	node.Y = 20

	g := TweenPosition(node, 100, 200, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.X-100) > 0.5 {
		t.Errorf("X = %f, want ~100", node.X)
	}
	if math.Abs(node.Y-200) > 0.5 {
		t.Errorf("Y = %f, want ~200", node.Y)
	}
}

func TestTweenScaleReachesTarget(t *testing.T) {
	node := NewContainer("scale")

	g := TweenScale(node, 2.0, 3.0, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.ScaleX-2.0) > 0.01 || math.Abs(node.ScaleY-3.0) > 0.01 {
		t.Errorf("Scale = (%f, %f), want ~(2, 3)", node.ScaleX, node.ScaleY)
	}
}

func TestTweenAlphaInterpolates(t *testing.T) {
	node := NewContainer("alpha")
	g := TweenAlpha(node, 0, 1.0, ease.Linear)

	g.Update(0.5)
	if g.Done {
		t.Fatal("should not be Done at half duration")
	}
	if math.Abs(node.Alpha-0.5) > 0.01 {
		t.Errorf("Alpha = %f, want ~0.5", node.Alpha)
	}
}

func TestTweenRotationReachesTarget(t *testing.T) {
	node := NewContainer("rot")
	g := TweenRotation(node, math.Pi, 1.0, ease.Linear)
	g.Update(1.0)
	if math.Abs(node.Rotation-math.Pi) > 0.001 {
		t.Errorf("Rotation = %f, want ~π", node.Rotation)
	}
}

func TestTweenColorAllComponents(t *testing.T) {
	node := NewContainer("color")
	node.Color = Color{R: 1, G: 0, B: 0, A: 1}
	target := Color{R: 0, G: 1, B: 0.5, A: 0.5}

	g := TweenColor(node, target, 1.0, ease.Linear)
	g.Update(0.5)
	g.Update(0.5)

	if math.Abs(node.Color.R-target.R) > 0.01 ||
		math.Abs(node.Color.G-target.G) > 0.01 ||
		math.Abs(node.Color.B-target.B) > 0.01 ||
		math.Abs(node.Color.A-target.A) > 0.01 {
		t.Errorf("Color = %v, want %v", node.Color, target)
	}
}

func TestTweenRippleExpandsAndFades(t *testing.T) {
	node := NewCircle("ripple", 10, ColorRipple)
	g := TweenRipple(node, 4, 0.6)

	if node.ScaleX != 0 || node.ScaleY != 0 {
		t.Fatalf("initial scale = (%v, %v), want 0", node.ScaleX, node.ScaleY)
	}
	g.Update(0.3)
	if node.ScaleX <= 0 || node.ScaleX >= 4 {
		t.Errorf("mid ScaleX = %v, want in (0, 4)", node.ScaleX)
	}
	if node.Alpha <= 0 || node.Alpha >= 1 {
		t.Errorf("mid Alpha = %v, want in (0, 1)", node.Alpha)
	}
	g.Update(0.3)
	if !g.Done {
		t.Fatal("expected Done")
	}
	if math.Abs(node.ScaleX-4) > 0.01 || node.Alpha > 0.01 {
		t.Errorf("end = scale %v alpha %v, want 4 and 0", node.ScaleX, node.Alpha)
	}
}

func TestTweenGroupFinishJumpsToEnd(t *testing.T) {
	node := NewContainer("finish")
	g := TweenPosition(node, 50, 60, 10, ease.InOutQuad)
	g.Update(1)
	g.Finish()

	if !g.Done {
		t.Error("Done should be true after Finish")
	}
	if node.X != 50 || node.Y != 60 {
		t.Errorf("position = (%v, %v), want (50, 60)", node.X, node.Y)
	}
}

func TestTweenGroupMarksDirty(t *testing.T) {
	node := NewContainer("dirty")
	node.transformDirty = false

	g := TweenPosition(node, 10, 10, 1, ease.Linear)
	g.Update(0.1)

	if !node.transformDirty {
		t.Error("Update should mark the node dirty")
	}
}

func TestTweenGroupDisposedNode(t *testing.T) {
	node := NewContainer("gone")
	g := TweenPosition(node, 100, 100, 1, ease.Linear)
	node.Dispose()

	g.Update(0.5)

	if !g.Done {
		t.Error("group should stop when its node is disposed")
	}
	if node.X != 0 {
		t.Errorf("X = %v, want 0 (untouched)", node.X)
	}
}

func TestTweenGroupUpdateAfterDoneIsNoop(t *testing.T) {
	node := NewContainer("noop")
	g := TweenAlpha(node, 0, 0.5, ease.Linear)
	g.Update(0.5)
	node.Alpha = 0.7
	g.Update(0.5)
	if node.Alpha != 0.7 {
		t.Errorf("Alpha = %v, want 0.7", node.Alpha)
	}
}
