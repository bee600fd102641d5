package backdrop

import (
	"fmt"
	"math/rand/v2"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultBackgroundCount is the number of floating shapes on the page.
const DefaultBackgroundCount = 12

// ColorClass is the tint family of a background shape.
type ColorClass uint8

const (
	ColorBlack ColorClass = iota
	ColorOrange
)

func (c ColorClass) String() string {
	if c == ColorOrange {
		return "orange"
	}
	return "black"
}

// SizeClass is the size bucket of a background shape. It also sets the
// shape's parallax depth (see DepthFor).
type SizeClass uint8

const (
	SizeSmall SizeClass = iota
	SizeMedium
	SizeLarge
)

func (s SizeClass) String() string {
	switch s {
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	default:
		return "small"
	}
}

// Radius returns the shape radius in pixels.
func (s SizeClass) Radius() float64 {
	switch s {
	case SizeMedium:
		return 9
	case SizeLarge:
		return 16
	default:
		return 4
	}
}

// AnimationKind selects the looping motion of a background shape.
type AnimationKind uint8

const (
	AnimSlowFloat AnimationKind = iota
	AnimPulse
	AnimDrift
)

func (k AnimationKind) String() string {
	switch k {
	case AnimPulse:
		return "pulse"
	case AnimDrift:
		return "drift"
	default:
		return "slowFloat"
	}
}

// Generation ranges.
var (
	DurationRange = Range{Min: 15, Max: 35} // seconds per loop
	DelayRange    = Range{Min: 0, Max: 10}  // seconds before the loop starts
	PositionRange = Range{Min: 0, Max: 100} // percent of the viewport
)

// orangeChance is the probability a shape is orange; black dominates.
const orangeChance = 0.4

// BackgroundElement is one decorative shape. It is immutable after generation.
type BackgroundElement struct {
	Color     ColorClass
	Size      SizeClass
	Animation AnimationKind
	Duration  float64 // seconds, [15, 35)
	Delay     float64 // seconds, [0, 10)
	X, Y      float64 // percent of viewport, [0, 100)
}

func (e BackgroundElement) String() string {
	return fmt.Sprintf("%s/%s %s %.1fs+%.1fs @(%.1f%%,%.1f%%)",
		e.Color, e.Size, e.Animation, e.Duration, e.Delay, e.X, e.Y)
}

// GenerateBackground returns exactly count independently randomized shapes.
// A non-positive count yields none.
func GenerateBackground(rng *rand.Rand, count int) []BackgroundElement {
	if count <= 0 {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	out := make([]BackgroundElement, count)
	for i := range out {
		el := BackgroundElement{
			Size:      SizeClass(rng.IntN(3)),
			Animation: AnimationKind(rng.IntN(3)),
			Duration:  DurationRange.Random(rng),
			Delay:     DelayRange.Random(rng),
			X:         PositionRange.Random(rng),
			Y:         PositionRange.Random(rng),
		}
		if rng.Float64() < orangeChance {
			el.Color = ColorOrange
		}
		out[i] = el
	}
	return out
}

// Pose is the animated offset of a shape relative to its resting place.
type Pose struct {
	DX, DY float64
	Scale  float64
	Alpha  float64
}

// Tint returns the shape color at rest.
func (e BackgroundElement) Tint() Color {
	if e.Color == ColorOrange {
		return ColorEmber.WithAlpha(0.16)
	}
	return ColorInk.WithAlpha(0.08)
}

// Pose evaluates the animation at progress p in [0,1], where 0 is the start
// of the ease-in-out swing and 1 its far end. Only pulse departs from the
// resting transform at p=0: it starts dimmed.
func (e BackgroundElement) Pose(p float64) Pose {
	p = clamp01(p)
	pose := Pose{Scale: 1, Alpha: 1}
	switch e.Animation {
	case AnimSlowFloat:
		pose.DY = -18 * p
	case AnimPulse:
		pose.Scale = 1 + 0.25*p
		pose.Alpha = 0.6 + 0.4*p
	case AnimDrift:
		pose.DX = 24 * p
		pose.DY = -12 * p
	}
	return pose
}

// Position returns the resting center of the shape within viewport.
func (e BackgroundElement) Position(viewport Rect) Vec2 {
	return Vec2{
		X: viewport.X + viewport.Width*e.X/100,
		Y: viewport.Y + viewport.Height*e.Y/100,
	}
}

// shapeAnimator loops a shape through its pose after the initial delay.
type shapeAnimator struct {
	el      BackgroundElement
	shape   *Node
	seq     *gween.Sequence
	waited  float64
	restA   float64
	restScl float64
}

func newShapeAnimator(el BackgroundElement, shape *Node) *shapeAnimator {
	// Half a loop out, half a loop back.
	seq := gween.NewSequence(gween.New(0, 1, float32(el.Duration/2), ease.InOutSine))
	seq.SetYoyo(true)
	seq.SetLoop(-1)
	a := &shapeAnimator{el: el, shape: shape, seq: seq, restA: shape.Alpha, restScl: shape.ScaleX}
	// Hold the start pose through the delay so the first frame does not jump.
	a.pose(el.Pose(0))
	return a
}

func (a *shapeAnimator) update(dt float64) {
	if a.waited < a.el.Delay {
		a.waited += dt
		if a.waited < a.el.Delay {
			return
		}
		dt = a.waited - a.el.Delay
	}
	p, _, _ := a.seq.Update(float32(dt))
	a.pose(a.el.Pose(float64(p)))
}

func (a *shapeAnimator) pose(pose Pose) {
	a.shape.X, a.shape.Y = pose.DX, pose.DY
	a.shape.ScaleX = a.restScl * pose.Scale
	a.shape.ScaleY = a.restScl * pose.Scale
	a.shape.Alpha = a.restA * pose.Alpha
	a.shape.MarkDirty()
}

// NewBackgroundNode builds the node pair for el: an outer container placed
// at the resting position (parallax moves this one) and an inner circle that
// carries the looping animation. With animate false the shape stays at rest.
func NewBackgroundNode(el BackgroundElement, viewport Rect, animate bool) *Node {
	pos := el.Position(viewport)
	holder := NewContainer("bg-" + el.Size.String())
	holder.X, holder.Y = pos.X, pos.Y
	holder.UserData = el

	shape := NewCircle("shape", el.Size.Radius(), el.Tint())
	holder.AddChild(shape)

	if animate && el.Duration > 0 {
		a := newShapeAnimator(el, shape)
		shape.OnUpdate = a.update
	}
	return holder
}
