package backdrop

import (
	"image/color"
	"math/rand/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Palette used by the decorative layers.
var (
	ColorInk    = Color{R: 0.08, G: 0.08, B: 0.09, A: 1}
	ColorEmber  = Color{R: 1.0, G: 0.55, B: 0.1, A: 1}
	ColorPaper  = Color{R: 0.96, G: 0.95, B: 0.92, A: 1}
	ColorGlow   = Color{R: 1.0, G: 0.78, B: 0.45, A: 0.35}
	ColorRipple = Color{R: 1.0, G: 0.6, B: 0.2, A: 0.6}
)

// toRGBA converts c to a premultiplied color.RGBA, clamping each channel.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Vec2 is a 2D vector used for positions, offsets, and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Range is a half-open [Min, Max) interval.
type Range struct {
	Min, Max float64
}

// Random returns a value in [Min, Max) drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies in [Min, Max).
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v < r.Max
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // renders an image (or a solid quad when nil)
	NodeTypeCircle                    // filled circle of Radius, drawn with vector
	NodeTypeText                      // renders a TextBlock with a TTF face
)

// EventType identifies a kind of pointer event.
type EventType uint8

const (
	EventPointerDown EventType = iota // fires when a pointer button is pressed
	EventPointerUp                    // fires when a pointer button is released
	EventPointerMove                  // fires when the pointer moves (hover, no button)
	EventClick                        // fires on press then release inside the same region
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// TextAlign controls horizontal text alignment within a TextBlock.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // align text to the left edge (default)
	TextAlignCenter                  // center text horizontally
	TextAlignRight                   // align text to the right edge
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
