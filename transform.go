package backdrop

import "math"

// affine is a 2D affine matrix laid out as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type affine = [6]float64

var identityTransform = affine{1, 0, 0, 1, 0, 0}

// computeLocalTransform builds the node's local matrix.
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Skew -> Rotate -> Translate(X, Y)
func computeLocalTransform(n *Node) affine {
	sin, cos := math.Sincos(n.Rotation)

	var kx, ky float64
	if n.SkewX != 0 {
		kx = math.Tan(n.SkewX)
	}
	if n.SkewY != 0 {
		ky = math.Tan(n.SkewY)
	}

	// Scale then skew.
	a, b := n.ScaleX, ky*n.ScaleX
	c, d := kx*n.ScaleY, n.ScaleY
	tx := -n.PivotX*n.ScaleX - kx*n.PivotY*n.ScaleY
	ty := -ky*n.PivotX*n.ScaleX - n.PivotY*n.ScaleY

	return affine{
		cos*a - sin*b,
		sin*a + cos*b,
		cos*c - sin*d,
		sin*c + cos*d,
		cos*tx - sin*ty + n.X,
		sin*tx + cos*ty + n.Y,
	}
}

// multiplyAffine returns p * c (c applied first).
func multiplyAffine(p, c affine) affine {
	return affine{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine returns the inverse of m, or identity when m is singular.
func invertAffine(m affine) affine {
	det := m[0]*m[3] - m[2]*m[1]
	if math.Abs(det) < 1e-12 {
		return identityTransform
	}
	inv := 1 / det
	a, b := m[3]*inv, -m[1]*inv
	c, d := -m[2]*inv, m[0]*inv
	return affine{a, b, c, d, -(a*m[4] + c*m[5]), -(b*m[4] + d*m[5])}
}

func transformPoint(m affine, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform refreshes worldTransform and worldAlpha for the
// subtree. A recomputed parent forces its children to recompute.
func updateWorldTransform(n *Node, parent affine, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parent, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X, n.Y = x, y
	n.transformDirty = true
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX, n.ScaleY = sx, sy
	n.transformDirty = true
}

// SetSkew sets the node's SkewX and SkewY (radians) and marks it dirty.
func (n *Node) SetSkew(sx, sy float64) {
	n.SkewX, n.SkewY = sx, sy
	n.transformDirty = true
}

// SetAlpha sets the node's alpha and marks it dirty.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// MarkDirty forces the world transform to be recomputed on the next frame.
// Call it after writing transform fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldToLocal converts a world-space point to this node's local space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return transformPoint(invertAffine(n.worldTransform), wx, wy)
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform, lx, ly)
}

// WorldBounds returns the axis-aligned world rectangle covering the node's
// content as of the last transform refresh.
func (n *Node) WorldBounds() Rect {
	w, h := n.Size()
	ox, oy := 0.0, 0.0
	if n.Type == NodeTypeCircle {
		ox, oy = -n.Radius, -n.Radius
	}
	corners := [4]Vec2{{ox, oy}, {ox + w, oy}, {ox, oy + h}, {ox + w, oy + h}}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range corners {
		x, y := n.LocalToWorld(p.X, p.Y)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
