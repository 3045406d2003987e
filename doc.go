// Package stillframe displays still images inside a node tree drawn with
// [Ebitengine].
//
// It provides three pieces that are independent of each other, plus the
// runtime that ties them together.
//
// # Pixel buffers
//
// A [MatrixImage] is the decoder-side pixel buffer and a [DisplayImage] is
// the presentation-side one. Both are dense, row-major and channel
// interleaved with 1 (gray) or 3 (B, G, R) channels, and both implement
// [image.Image]. [ToDisplayImage] and [ToMatrixImage] convert between them
// losslessly:
//
//	m, _, err := stillframe.DecodeMatrix(f)
//	// ...
//	img, err := stillframe.ToDisplayImage(m)
//
// # Node tree
//
// Every element of a layout is a [Node] of one of five kinds: plain
// containers, split containers, collapsible panels, collapsible groups and
// leaves. Trees are built with [NewPlain], [NewSplit], [NewPanel],
// [NewGroup], [NewLeaf] and [NewImageView], or loaded from YAML with
// [LoadLayout]. [FindByID] locates a node by identifier:
//
//	view, ok := scene.Find("currentFrame")
//
// # Delivery
//
// A [Scene] owns its tree on a single goroutine (ebiten's game loop). Other
// goroutines hand results over with [Deliver], which schedules a write to a
// [Slot] on the scene's [Dispatcher] and returns immediately:
//
//	go func() {
//		img, err := stillframe.ToDisplayImage(m)
//		if err != nil { ... }
//		stillframe.Deliver(view.Image(), img)
//	}()
//
// The write is applied during the next [Scene.Update]. Delivery is best
// effort: once the scene is closed, values are dropped.
//
// # Running
//
//	stillframe.Run(scene, stillframe.RunConfig{Title: "Viewer", Width: 800, Height: 600})
//
// Set STILLFRAME_DEBUG=1 (or call [Scene.SetDebugMode]) for diagnostics on
// stderr.
//
// [Ebitengine]: https://ebitengine.org
package stillframe
