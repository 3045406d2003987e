package stillframe

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to ebiten.
type Color struct {
	R, G, B, A float64
}

// ColorBlack is the default clear color.
var ColorBlack = Color{0, 0, 0, 1}

// toRGBA converts to a premultiplied 8-bit color suitable for ebiten.Image.Fill.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NodeKind selects how a Node stores its children. The set is closed: the
// locator and the renderer switch over every kind explicitly.
type NodeKind uint8

const (
	KindPlain NodeKind = iota // ordered children list
	KindSplit                 // ordered items list of a split container
	KindPanel                 // collapsible panel with a single optional content node
	KindGroup                 // collapsible group holding an ordered list of panels
	KindOther                 // leaf (image views, labels); holds no children
)

func (k NodeKind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindSplit:
		return "split"
	case KindPanel:
		return "panel"
	case KindGroup:
		return "group"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// isContainer reports whether nodes of this kind can hold other nodes.
func (k NodeKind) isContainer() bool {
	return k != KindOther
}
