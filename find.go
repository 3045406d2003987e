package stillframe

// FindByID returns the first node below root whose ID equals id, searching
// depth-first in pre-order:
//
//   - a panel's content is checked (and searched) before anything else;
//   - direct children are visited in order (children of plain nodes, items
//     of split nodes, panes of group nodes); each is checked, then searched;
//   - a split child's items are each checked and searched before the next
//     sibling of the split;
//   - a group child's panes are each checked and then searched (content
//     first) before the next pane.
//
// Matching is exact and case-sensitive. root itself is not a candidate and
// an empty id never matches. The second result is false when nothing
// matches; that is an ordinary outcome, not an error.
//
// The tree must be acyclic. Node's mutators panic on cycles, so trees built
// through them always are.
func FindByID(root *Node, id string) (*Node, bool) {
	if root == nil || id == "" {
		return nil, false
	}
	found := findByID(root, id, nil)
	return found, found != nil
}

// Find is shorthand for FindByID(n, id).
func (n *Node) Find(id string) (*Node, bool) {
	return FindByID(n, id)
}

// findByID implements FindByID. visit, when non-nil, is called once for
// every node whose ID is compared.
func findByID(parent *Node, id string, visit func(*Node)) *Node {
	if parent.Kind == KindPanel && parent.content != nil {
		if found := matchThenSearch(parent.content, id, visit); found != nil {
			return found
		}
	}

	var direct []*Node
	switch parent.Kind {
	case KindPlain:
		direct = parent.children
	case KindSplit:
		direct = parent.items
	case KindGroup:
		direct = parent.panes
	}

	for _, child := range direct {
		if visit != nil {
			visit(child)
		}
		if child.ID == id {
			return child
		}
		switch child.Kind {
		case KindSplit:
			for _, item := range child.items {
				if found := matchThenSearch(item, id, visit); found != nil {
					return found
				}
			}
		case KindGroup:
			for _, pane := range child.panes {
				if found := matchThenSearch(pane, id, visit); found != nil {
					return found
				}
			}
		case KindPlain, KindPanel:
			if found := findByID(child, id, visit); found != nil {
				return found
			}
		case KindOther:
		}
	}
	return nil
}

// matchThenSearch checks n's own ID and then searches below it.
func matchThenSearch(n *Node, id string, visit func(*Node)) *Node {
	if visit != nil {
		visit(n)
	}
	if n.ID == id {
		return n
	}
	if !n.Kind.isContainer() {
		return nil
	}
	return findByID(n, id, visit)
}

// Walk calls fn for every node below n in the order FindByID examines them.
// Returning false from fn stops the walk. Walk reports whether it ran to
// completion.
func (n *Node) Walk(fn func(*Node) bool) bool {
	for _, child := range n.Children() {
		if !fn(child) {
			return false
		}
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}
