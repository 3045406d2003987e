package stillframe

import "github.com/hajimehoshi/ebiten/v2"

// refreshTexture uploads the image view's current DisplayImage to the GPU,
// releasing the previous texture. Called on the presentation context the
// first time the view is drawn after its slot changed.
func (n *Node) refreshTexture() {
	n.textureDirty = false
	if n.texture != nil {
		n.texture.Deallocate()
		n.texture = nil
	}
	img := n.image.Get()
	if img == nil || img.Width == 0 || img.Height == 0 {
		return
	}
	if err := img.validate(); err != nil {
		logf("image view %q: %v", n.ID, err)
		return
	}
	n.texture = newTexture(img)
}

// newTexture creates an ebiten image holding d's pixels.
func newTexture(d *DisplayImage) *ebiten.Image {
	tex := ebiten.NewImage(d.Width, d.Height)
	tex.WritePixels(d.RGBA())
	return tex
}

// Size returns the size in pixels of the image an image view is displaying,
// or zeros when it has none.
func (n *Node) Size() (w, h int) {
	if n.image == nil {
		return 0, 0
	}
	img := n.image.Get()
	if img == nil {
		return 0, 0
	}
	return img.Width, img.Height
}
