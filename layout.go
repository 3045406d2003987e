package stillframe

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Layout is a node tree built from a YAML layout document, plus the window
// settings the document asks for.
//
//	title: Still frame
//	width: 800
//	height: 600
//	root:
//	  kind: plain
//	  children:
//	    - kind: split
//	      items:
//	        - kind: group
//	          panes:
//	            - kind: panel
//	              id: framePanel
//	              content:
//	                kind: image
//	                id: currentFrame
type Layout struct {
	Title  string
	Width  int
	Height int
	Root   *Node
}

// RunConfig returns base with the window settings from the layout applied
// on top of it.
func (l *Layout) RunConfig(base RunConfig) RunConfig {
	if l.Title != "" {
		base.Title = l.Title
	}
	if l.Width > 0 {
		base.Width = l.Width
	}
	if l.Height > 0 {
		base.Height = l.Height
	}
	return base
}

type layoutDoc struct {
	Title  string      `yaml:"title"`
	Width  int         `yaml:"width"`
	Height int         `yaml:"height"`
	Root   *layoutNode `yaml:"root"`
}

type layoutNode struct {
	Kind      string        `yaml:"kind"`
	ID        string        `yaml:"id"`
	X         float64       `yaml:"x"`
	Y         float64       `yaml:"y"`
	Scale     *float64      `yaml:"scale"`
	Alpha     *float64      `yaml:"alpha"`
	Hidden    bool          `yaml:"hidden"`
	Collapsed bool          `yaml:"collapsed"`
	Children  []*layoutNode `yaml:"children"`
	Items     []*layoutNode `yaml:"items"`
	Content   *layoutNode   `yaml:"content"`
	Panes     []*layoutNode `yaml:"panes"`
}

// LoadLayout parses a YAML layout document. Unknown fields, unknown kinds
// and child lists that do not match the node's kind are reported as
// *LayoutError (which matches ErrLayout).
func LoadLayout(data []byte) (*Layout, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc layoutDoc
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LayoutError{Msg: "empty document"}
		}
		return nil, &LayoutError{Msg: fmt.Sprintf("failed to parse: %v", err)}
	}
	if doc.Root == nil {
		return nil, &LayoutError{Msg: "missing root"}
	}
	if doc.Width < 0 || doc.Height < 0 {
		return nil, &LayoutError{Msg: fmt.Sprintf("negative window size %dx%d", doc.Width, doc.Height)}
	}

	root, err := buildNode("root", doc.Root)
	if err != nil {
		return nil, err
	}
	return &Layout{Title: doc.Title, Width: doc.Width, Height: doc.Height, Root: root}, nil
}

// buildNode converts one layout node (and its subtree) into a Node.
func buildNode(path string, ln *layoutNode) (*Node, error) {
	if ln == nil {
		return nil, &LayoutError{Path: path, Msg: "empty node"}
	}

	var n *Node
	switch ln.Kind {
	case "plain", "":
		n = NewPlain(ln.ID)
	case "split":
		n = NewSplit(ln.ID)
	case "panel":
		n = NewPanel(ln.ID, nil)
	case "group":
		n = NewGroup(ln.ID)
	case "image":
		n = NewImageView(ln.ID)
	case "other":
		n = NewLeaf(ln.ID)
	default:
		return nil, &LayoutError{Path: path, Msg: fmt.Sprintf("unknown kind %q", ln.Kind)}
	}

	if err := checkStorage(path, n.Kind, ln); err != nil {
		return nil, err
	}

	n.X, n.Y = ln.X, ln.Y
	if ln.Scale != nil {
		n.ScaleX, n.ScaleY = *ln.Scale, *ln.Scale
	}
	if ln.Alpha != nil {
		if *ln.Alpha < 0 || *ln.Alpha > 1 {
			return nil, &LayoutError{Path: path, Msg: fmt.Sprintf("alpha %v outside [0, 1]", *ln.Alpha)}
		}
		n.Alpha = *ln.Alpha
	}
	n.Visible = !ln.Hidden
	n.Collapsed = ln.Collapsed

	switch n.Kind {
	case KindPlain:
		for i, c := range ln.Children {
			child, err := buildNode(fmt.Sprintf("%s.children[%d]", path, i), c)
			if err != nil {
				return nil, err
			}
			n.AddChild(child)
		}
	case KindSplit:
		for i, c := range ln.Items {
			item, err := buildNode(fmt.Sprintf("%s.items[%d]", path, i), c)
			if err != nil {
				return nil, err
			}
			n.AddItem(item)
		}
	case KindPanel:
		if ln.Content != nil {
			content, err := buildNode(path+".content", ln.Content)
			if err != nil {
				return nil, err
			}
			n.SetContent(content)
		}
	case KindGroup:
		for i, c := range ln.Panes {
			p := fmt.Sprintf("%s.panes[%d]", path, i)
			pane, err := buildNode(p, c)
			if err != nil {
				return nil, err
			}
			if pane.Kind != KindPanel {
				return nil, &LayoutError{Path: p, Msg: fmt.Sprintf("group panes must be panels, got %s", pane.Kind)}
			}
			n.AddPane(pane)
		}
	case KindOther:
	}
	return n, nil
}

// checkStorage rejects child lists that the node's kind does not use.
func checkStorage(path string, kind NodeKind, ln *layoutNode) error {
	used := map[string]bool{
		"children": len(ln.Children) > 0,
		"items":    len(ln.Items) > 0,
		"content":  ln.Content != nil,
		"panes":    len(ln.Panes) > 0,
	}
	var allowed string
	switch kind {
	case KindPlain:
		allowed = "children"
	case KindSplit:
		allowed = "items"
	case KindPanel:
		allowed = "content"
	case KindGroup:
		allowed = "panes"
	}
	for _, field := range []string{"children", "items", "content", "panes"} {
		if used[field] && field != allowed {
			return &LayoutError{Path: path, Msg: fmt.Sprintf("%s node cannot have %s", kind, field)}
		}
	}
	return nil
}
