package backdrop

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors and either call Update(dt)
// yourself or hand it to Scene.Track. If the target node is disposed, the
// group stops immediately.
type TweenGroup struct {
	tweens    [4]*gween.Tween
	durations [4]float32
	count     int
	fields    [4]*float64
	target    *Node
	Done      bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// Finish jumps every field to its end value.
func (g *TweenGroup) Finish() {
	for i := 0; i < g.count; i++ {
		val, _ := g.tweens[i].Set(g.durations[i])
		*g.fields[i] = float64(val)
	}
	g.Done = true
	if g.target != nil {
		g.target.MarkDirty()
	}
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.durations[g.count] = duration
	g.fields[g.count] = field
	g.count++
}

// TweenPosition animates node.X and node.Y.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.X, toX, duration, fn)
	g.add(&node.Y, toY, duration, fn)
	return g
}

// TweenScale animates node.ScaleX and node.ScaleY.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.ScaleX, toSX, duration, fn)
	g.add(&node.ScaleY, toSY, duration, fn)
	return g
}

// TweenAlpha animates node.Alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Alpha, to, duration, fn)
	return g
}

// TweenRotation animates node.Rotation (radians).
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Rotation, to, duration, fn)
	return g
}

// TweenColor animates all four components of node.Color.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Color.R, to.R, duration, fn)
	g.add(&node.Color.G, to.G, duration, fn)
	g.add(&node.Color.B, to.B, duration, fn)
	g.add(&node.Color.A, to.A, duration, fn)
	return g
}

// TweenRipple expands node from zero scale to scale while fading it out.
func TweenRipple(node *Node, scale float64, duration float32) *TweenGroup {
	node.ScaleX, node.ScaleY = 0, 0
	g := &TweenGroup{target: node}
	g.add(&node.ScaleX, scale, duration, ease.OutQuad)
	g.add(&node.ScaleY, scale, duration, ease.OutQuad)
	g.add(&node.Alpha, 0, duration, ease.OutQuad)
	return g
}
