package stillframe

import "github.com/hajimehoshi/ebiten/v2"

// Node is an element of the layout tree. A single flat struct is used for
// all kinds; Kind decides which of the child storages is in use:
//
//	KindPlain  children, added with AddChild
//	KindSplit  items, added with AddItem
//	KindPanel  one optional content node, set with SetContent
//	KindGroup  panes (KindPanel nodes only), added with AddPane
//	KindOther  nothing
type Node struct {
	// Identity. An empty ID means the node has no identifier.
	ID   string
	Kind NodeKind

	// Hierarchy
	Parent   *Node
	children []*Node
	items    []*Node
	content  *Node
	panes    []*Node

	// Presentation. Offsets and scale are relative to the parent; Alpha
	// multiplies down the tree.
	X, Y           float64
	ScaleX, ScaleY float64
	Alpha          float64
	Visible        bool

	// Collapsed hides a panel's content when rendering. The locator ignores it.
	Collapsed bool

	// Image view fields (nil slot for every other node)
	image        *Slot[*DisplayImage]
	texture      *ebiten.Image
	textureDirty bool

	// owner is the dispatcher of the scene this node is attached to; it is
	// handed to image slots so deliveries reach the right presentation context.
	owner *Dispatcher

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Visible = true
}

// NewPlain creates a container that holds an ordered list of children.
func NewPlain(id string) *Node {
	n := &Node{ID: id, Kind: KindPlain}
	nodeDefaults(n)
	return n
}

// NewSplit creates a split container that holds an ordered list of items.
func NewSplit(id string) *Node {
	n := &Node{ID: id, Kind: KindSplit}
	nodeDefaults(n)
	return n
}

// NewPanel creates a collapsible panel. content may be nil.
func NewPanel(id string, content *Node) *Node {
	n := &Node{ID: id, Kind: KindPanel}
	nodeDefaults(n)
	if content != nil {
		n.SetContent(content)
	}
	return n
}

// NewGroup creates a collapsible group that holds an ordered list of panels.
func NewGroup(id string) *Node {
	n := &Node{ID: id, Kind: KindGroup}
	nodeDefaults(n)
	return n
}

// NewLeaf creates a node that holds no children and displays nothing.
func NewLeaf(id string) *Node {
	n := &Node{ID: id, Kind: KindOther}
	nodeDefaults(n)
	return n
}

// NewImageView creates a leaf node that displays the DisplayImage held in
// its image slot. The slot is owned by the dispatcher of the scene the node
// is attached to; deliveries to a detached view are dropped.
func NewImageView(id string) *Node {
	n := NewLeaf(id)
	n.image = NewSlot[*DisplayImage](nil, nil)
	n.image.Watch(func(*DisplayImage) {
		n.textureDirty = true
	})
	return n
}

// Image returns the image slot of an image view, or nil for other nodes.
func (n *Node) Image() *Slot[*DisplayImage] {
	return n.image
}

// --- Tree manipulation ---

// AddChild appends child to a plain node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if n is not a plain node, child is nil, or child is an ancestor of n.
func (n *Node) AddChild(child *Node) {
	n.mustBe(KindPlain, "AddChild")
	n.adopt(child, "AddChild")
	n.children = append(n.children, child)
}

// AddItem appends item to a split node's items. Same reparenting and cycle
// rules as AddChild.
func (n *Node) AddItem(item *Node) {
	n.mustBe(KindSplit, "AddItem")
	n.adopt(item, "AddItem")
	n.items = append(n.items, item)
}

// AddPane appends pane to a group node's panes. pane must be a panel.
func (n *Node) AddPane(pane *Node) {
	n.mustBe(KindGroup, "AddPane")
	if pane != nil && pane.Kind != KindPanel {
		panic("stillframe: AddPane requires a panel node, got " + pane.Kind.String())
	}
	n.adopt(pane, "AddPane")
	n.panes = append(n.panes, pane)
}

// SetContent replaces a panel's content. nil clears it.
func (n *Node) SetContent(content *Node) {
	n.mustBe(KindPanel, "SetContent")
	if n.content != nil {
		old := n.content
		n.content = nil
		old.Parent = nil
		bindSubtree(old, nil)
	}
	if content == nil {
		return
	}
	n.adopt(content, "SetContent")
	n.content = content
}

// RemoveChild detaches child from whichever storage of n holds it.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug.Load() {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child == nil || child.Parent != n {
		panic("stillframe: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	bindSubtree(child, nil)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the node's direct children in traversal order: children
// for plain nodes, items for split nodes, panes for group nodes, and the
// content (if any) for panels. The returned slice MUST NOT be mutated.
func (n *Node) Children() []*Node {
	switch n.Kind {
	case KindPlain:
		return n.children
	case KindSplit:
		return n.items
	case KindGroup:
		return n.panes
	case KindPanel:
		if n.content != nil {
			return []*Node{n.content}
		}
	}
	return nil
}

// Content returns a panel's content node, or nil.
func (n *Node) Content() *Node {
	return n.content
}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int {
	switch n.Kind {
	case KindPlain:
		return len(n.children)
	case KindSplit:
		return len(n.items)
	case KindGroup:
		return len(n.panes)
	case KindPanel:
		if n.content != nil {
			return 1
		}
	}
	return 0
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Image textures are released.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.Children() {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.items = nil
	n.content = nil
	n.panes = nil
	n.Parent = nil
	n.owner = nil
	if n.image != nil {
		n.image.bind(nil)
	}
	if n.texture != nil {
		n.texture.Deallocate()
		n.texture = nil
	}
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

func (n *Node) mustBe(kind NodeKind, op string) {
	if n.Kind != kind {
		panic("stillframe: " + op + " on " + n.Kind.String() + " node")
	}
}

// adopt runs the shared checks for attaching child below n, detaches child
// from its old parent and binds it to n's dispatcher.
func (n *Node) adopt(child *Node, op string) {
	if child == nil {
		panic("stillframe: cannot add nil child")
	}
	if globalDebug.Load() {
		debugCheckDisposed(n, op+" (parent)")
		debugCheckDisposed(child, op+" (child)")
	}
	if isAncestor(child, n) {
		panic("stillframe: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	bindSubtree(child, n.owner)
	if globalDebug.Load() {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n's storage without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	if n.content == child {
		n.content = nil
		return
	}
	n.children = removePtr(n.children, child)
	n.items = removePtr(n.items, child)
	n.panes = removePtr(n.panes, child)
}

// removePtr removes target from list, using copy+nil to avoid retaining a
// dangling pointer in the backing array.
func removePtr(list []*Node, target *Node) []*Node {
	for i, c := range list {
		if c == target {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			return list[:len(list)-1]
		}
	}
	return list
}

// bindSubtree sets the owning dispatcher on node, its descendants and their
// image slots.
func bindSubtree(node *Node, owner *Dispatcher) {
	node.owner = owner
	if node.image != nil {
		node.image.bind(owner)
	}
	for _, child := range node.Children() {
		bindSubtree(child, owner)
	}
}
