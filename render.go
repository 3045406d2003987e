package stillframe

import "github.com/hajimehoshi/ebiten/v2"

// drawState is the accumulated parent transform during traversal.
// Only translation and scale are supported; there is no rotation or skew.
type drawState struct {
	x, y           float64
	scaleX, scaleY float64
	alpha          float64
}

// child combines the parent state with n's local offset, scale and alpha.
func (p drawState) child(n *Node) drawState {
	return drawState{
		x:      p.x + n.X*p.scaleX,
		y:      p.y + n.Y*p.scaleY,
		scaleX: p.scaleX * n.ScaleX,
		scaleY: p.scaleY * n.ScaleY,
		alpha:  p.alpha * n.Alpha,
	}
}

// drawNode draws n and its visible descendants and returns the number of
// image views drawn. Collapsed panels skip their content.
func (s *Scene) drawNode(screen *ebiten.Image, n *Node, parent drawState) int {
	if !n.Visible {
		return 0
	}
	st := parent.child(n)
	if st.alpha <= 0 {
		return 0
	}

	switch n.Kind {
	case KindOther:
		if n.image == nil {
			return 0
		}
		if n.textureDirty {
			n.refreshTexture()
		}
		if n.texture == nil {
			return 0
		}
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(st.scaleX, st.scaleY)
		op.GeoM.Translate(st.x, st.y)
		op.ColorScale.ScaleAlpha(float32(st.alpha))
		screen.DrawImage(n.texture, &op)
		return 1
	case KindPanel:
		if n.Collapsed {
			return 0
		}
	}

	drawn := 0
	for _, child := range n.Children() {
		drawn += s.drawNode(screen, child, st)
	}
	return drawn
}
