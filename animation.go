package stillframe

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// property is the presentation field of a node an Animation drives.
type property uint8

const (
	propAlpha  property = iota // Alpha
	propOffset                 // X, Y
	propZoom                   // ScaleX, ScaleY
)

// Animation eases one presentation property of a node toward a target
// value. Build one with FadeTo, MoveTo or ZoomTo and hand it to
// Scene.Animate, which advances it once per Update. An animation whose node
// is disposed stops without writing.
type Animation struct {
	node *Node
	prop property
	a, b *gween.Tween // b is nil for single-valued properties
	Done bool
}

// FadeTo animates node.Alpha to alpha (clamped to [0, 1]).
func FadeTo(node *Node, alpha float64, seconds float32, fn ease.TweenFunc) *Animation {
	return &Animation{
		node: node,
		prop: propAlpha,
		a:    gween.New(float32(node.Alpha), float32(clamp01(alpha)), seconds, fn),
	}
}

// MoveTo animates the node's offset within its parent to (x, y).
func MoveTo(node *Node, x, y float64, seconds float32, fn ease.TweenFunc) *Animation {
	return &Animation{
		node: node,
		prop: propOffset,
		a:    gween.New(float32(node.X), float32(x), seconds, fn),
		b:    gween.New(float32(node.Y), float32(y), seconds, fn),
	}
}

// ZoomTo animates both scale factors of node to scale. Image views are
// zoomed uniformly, so the layout has a single scale per node.
func ZoomTo(node *Node, scale float64, seconds float32, fn ease.TweenFunc) *Animation {
	return &Animation{
		node: node,
		prop: propZoom,
		a:    gween.New(float32(node.ScaleX), float32(scale), seconds, fn),
		b:    gween.New(float32(node.ScaleY), float32(scale), seconds, fn),
	}
}

// Update advances the animation by dt seconds and writes the node field.
func (an *Animation) Update(dt float32) {
	if an.Done {
		return
	}
	if an.node.IsDisposed() {
		an.Done = true
		return
	}

	va, done := an.a.Update(dt)
	var vb float32
	if an.b != nil {
		var doneB bool
		vb, doneB = an.b.Update(dt)
		done = done && doneB
	}

	n := an.node
	switch an.prop {
	case propAlpha:
		n.Alpha = float64(va)
	case propOffset:
		n.X, n.Y = float64(va), float64(vb)
	case propZoom:
		n.ScaleX, n.ScaleY = float64(va), float64(vb)
	}
	an.Done = done
}

// Animate starts an on the scene. A running animation of the same property
// on the same node is stopped, so the newest request wins.
func (s *Scene) Animate(an *Animation) {
	if an == nil || an.Done {
		return
	}
	for _, other := range s.animations {
		if other.node == an.node && other.prop == an.prop {
			other.Done = true
		}
	}
	s.animations = append(s.animations, an)
}

// Animating returns the number of animations still running.
func (s *Scene) Animating() int {
	n := 0
	for _, an := range s.animations {
		if !an.Done {
			n++
		}
	}
	return n
}

// advanceAnimations steps every running animation by dt and forgets the
// finished ones.
func (s *Scene) advanceAnimations(dt float32) {
	live := s.animations[:0]
	for _, an := range s.animations {
		an.Update(dt)
		if !an.Done {
			live = append(live, an)
		}
	}
	for i := len(live); i < len(s.animations); i++ {
		s.animations[i] = nil
	}
	s.animations = live
}
