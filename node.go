package backdrop

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// nodeIDCounter is a plain counter; scenes are single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. A single flat struct is used for all node
// types to avoid interface dispatch on the draw path.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y         float64
	ScaleX       float64
	ScaleY       float64
	Rotation     float64
	SkewX, SkewY float64
	PivotX       float64
	PivotY       float64

	// Computed during traversal
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Renderable   bool
	Interactable bool

	// Ordering
	ZIndex int

	// Metadata
	UserData any

	// Sprite fields (NodeTypeSprite). A nil Image draws a 1x1 white quad
	// scaled by ScaleX/ScaleY and tinted by Color.
	Image *ebiten.Image
	Color Color

	// Circle fields (NodeTypeCircle)
	Radius float64

	// Text fields (NodeTypeText)
	TextBlock *TextBlock

	// OnUpdate, if set, runs once per Scene update with the frame delta in seconds.
	OnUpdate func(dt float64)

	disposed       bool
	childrenSorted bool
	sortedChildren []*Node
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.Renderable = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node that draws img. Pass nil for a solid quad.
func NewSprite(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Image: img}
	nodeDefaults(n)
	return n
}

// NewCircle creates a filled circle centred on the node origin.
func NewCircle(name string, radius float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeCircle, Radius: radius}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewText creates a text node with the given content and font.
func NewText(name string, content string, font *Font) *Node {
	n := &Node{
		Name: name,
		Type: NodeTypeText,
		TextBlock: &TextBlock{
			Content: content,
			Font:    font,
			Color:   ColorWhite,
		},
	}
	nodeDefaults(n)
	return n
}

// Size returns the node's unscaled content size: image bounds for sprites,
// the diameter for circles, the measured block for text.
func (n *Node) Size() (w, h float64) {
	switch n.Type {
	case NodeTypeSprite:
		if n.Image == nil {
			return 1, 1
		}
		b := n.Image.Bounds()
		return float64(b.Dx()), float64(b.Dy())
	case NodeTypeCircle:
		return n.Radius * 2, n.Radius * 2
	case NodeTypeText:
		if n.TextBlock != nil {
			return n.TextBlock.Measure()
		}
	}
	return 0, 0
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("backdrop: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("backdrop: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("backdrop: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// FindChild returns the first direct child with the given name, or nil.
func (n *Node) FindChild(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.Image = nil
	n.TextBlock = nil
	n.UserData = nil
	n.OnUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

// updateNodes runs OnUpdate hooks depth-first. Hooks may dispose their own
// node, so the child list is snapshotted per level.
func updateNodes(n *Node, dt float64, buf []*Node) []*Node {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	if n.disposed || len(n.children) == 0 {
		return buf
	}
	start := len(buf)
	buf = append(buf, n.children...)
	for i := start; i < len(buf); i++ {
		buf = updateNodes(buf[i], dt, buf)
	}
	return buf[:start]
}
