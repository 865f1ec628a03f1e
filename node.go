package folio

import "strings"

// PointerContext carries pointer event data.
type PointerContext struct {
	Node    *Node
	GlobalX float64 // screen-space X
	GlobalY float64 // screen-space Y
	LocalX  float64
	LocalY  float64
	WheelY  float64 // scroll delta in pixels (EventWheel only)
}

// --- ID counter ---

// nodeIDCounter is a plain counter; folio runs on the game loop goroutine only.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path.
//
// Every animatable field (X, Y, ScaleX, ScaleY, Rotation, Alpha, Color) is a
// plain float64 so tweens and timelines can write into it directly.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Size in local units. Panels fill it; text nodes measure into it.
	Width, Height float64

	// Computed (unexported, updated during traversal)
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Interactable bool

	// Ordering
	ZIndex int

	// Metadata
	UserData any

	// Panel tint / text color multiplier
	Color Color

	// Text fields (NodeTypeText)
	TextBlock *TextBlock

	// Per-node callbacks (nil by default; zero cost when unused)
	OnClick        func(PointerContext)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewPanel creates a solid color rectangle of the given size.
func NewPanel(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypePanel, Width: w, Height: h}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewText creates a text node with the given content and font. The node's
// Width and Height follow the measured text.
func NewText(name string, content string, font Font) *Node {
	n := &Node{
		Name: name,
		Type: NodeTypeText,
		TextBlock: &TextBlock{
			Content:     content,
			Font:        font,
			Color:       ColorWhite,
			layoutDirty: true,
		},
	}
	nodeDefaults(n)
	n.syncTextSize()
	return n
}

// SetText replaces the node's text content and re-measures it.
func (n *Node) SetText(content string) {
	if n.TextBlock == nil || n.TextBlock.Content == content {
		return
	}
	n.TextBlock.Content = content
	n.TextBlock.layoutDirty = true
	n.syncTextSize()
}

// SetWrapWidth sets the text wrap width and re-measures it.
func (n *Node) SetWrapWidth(w float64) {
	if n.TextBlock == nil {
		return
	}
	n.TextBlock.WrapWidth = w
	n.TextBlock.layoutDirty = true
	n.syncTextSize()
}

func (n *Node) syncTextSize() {
	if n.TextBlock == nil {
		return
	}
	n.TextBlock.layout()
	n.Width = n.TextBlock.measuredW
	n.Height = n.TextBlock.measuredH
	if n.TextBlock.WrapWidth > 0 {
		n.Width = n.TextBlock.WrapWidth
	}
}

// CenterPivot places the pivot at the middle of the node's size so scale and
// rotation happen around its center.
func (n *Node) CenterPivot() {
	n.PivotX = n.Width / 2
	n.PivotY = n.Height / 2
	n.transformDirty = true
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("folio: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("folio: adding child would create a cycle")
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
		panic("folio: child's parent is not this node")
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

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
	n.childrenSorted = true
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
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

// Find returns the first descendant (depth-first, excluding n) whose Name
// matches. A slash-separated path such as "hero/title" descends one name per
// segment. Returns nil when nothing matches.
func (n *Node) Find(path string) *Node {
	if n == nil || path == "" {
		return nil
	}
	cur := n
	for _, name := range strings.Split(path, "/") {
		cur = cur.findDescendant(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

func (n *Node) findDescendant(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	for _, c := range n.children {
		if found := c.findDescendant(name); found != nil {
			return found
		}
	}
	return nil
}

// FindAll appends every descendant whose Name matches to buf.
func (n *Node) FindAll(name string, buf []*Node) []*Node {
	for _, c := range n.children {
		if c.Name == name {
			buf = append(buf, c)
		}
		buf = c.FindAll(name, buf)
	}
	return buf
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
	n.TextBlock = nil
	n.UserData = nil
	n.OnClick = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
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

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
