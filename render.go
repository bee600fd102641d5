package backdrop

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// WhitePixel is a 1x1 white image used for solid-color sprites.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m affine) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// worldScale returns the average axis scale of m, used to size circles.
func worldScale(m affine) float64 {
	sx := math.Hypot(m[0], m[1])
	sy := math.Hypot(m[2], m[3])
	return (sx + sy) / 2
}

// drawNode draws n and its subtree in painter order. World transforms must
// already be current.
func drawNode(dst *ebiten.Image, n *Node, stats *drawStats) {
	if !n.Visible {
		return
	}
	stats.nodes++

	if n.Renderable && n.worldAlpha > 0 {
		switch n.Type {
		case NodeTypeSprite:
			img := n.Image
			if img == nil {
				img = WhitePixel
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM = geoM(n.worldTransform)
			a := n.Color.A * n.worldAlpha
			op.ColorScale.Scale(float32(n.Color.R*a), float32(n.Color.G*a), float32(n.Color.B*a), float32(a))
			op.Filter = ebiten.FilterLinear
			dst.DrawImage(img, op)
			stats.drawCalls++
		case NodeTypeCircle:
			r := n.Radius * worldScale(n.worldTransform)
			if r > 0 {
				cx, cy := n.worldTransform[4], n.worldTransform[5]
				c := n.Color.WithAlpha(n.Color.A * n.worldAlpha)
				vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(r), c.toRGBA(), true)
				stats.drawCalls++
			}
		case NodeTypeText:
			if n.TextBlock != nil {
				n.TextBlock.draw(dst, n.worldTransform, n.worldAlpha, n.Color)
				stats.drawCalls++
			}
		}
	}

	if len(n.children) == 0 {
		return
	}
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	children := n.children
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		drawNode(dst, child, stats)
	}
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order.
// Insertion sort: stable and linear when already sorted.
func rebuildSortedChildren(n *Node) {
	n.childrenSorted = true
	needsSort := false
	for i := 1; i < len(n.children); i++ {
		if n.children[i].ZIndex < n.children[i-1].ZIndex {
			needsSort = true
			break
		}
	}
	if !needsSort {
		n.sortedChildren = nil
		return
	}
	n.sortedChildren = append(n.sortedChildren[:0], n.children...)
	s := n.sortedChildren
	for i := 1; i < len(s); i++ {
		key := s[i]
		j := i - 1
		for j >= 0 && s[j].ZIndex > key.ZIndex {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = key
	}
}
