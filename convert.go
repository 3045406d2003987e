package stillframe

// allocBytes allocates conversion destinations. Replaced in tests to
// simulate allocation failure.
var allocBytes = func(n int) []byte {
	return make([]byte, n)
}

// ToDisplayImage converts a matrix image into a display image of the same
// width, height and channel count.
//
// Both layouts store 3-channel pixels as B, G, R, so the bytes are copied
// verbatim for gray and color images alike: no reordering, resampling,
// color transform or alpha synthesis. A zero-sized source yields an empty
// buffer.
//
// Errors wrap ErrUnsupportedChannelLayout, ErrMalformedBuffer or
// ErrOutOfMemory in a *ConvertError. src is never modified.
func ToDisplayImage(src *MatrixImage) (*DisplayImage, error) {
	if src == nil {
		return nil, &ConvertError{Op: "ToDisplayImage", Err: ErrMalformedBuffer}
	}
	pix, err := copyPix(&src.Buffer)
	if err != nil {
		return nil, &ConvertError{Op: "ToDisplayImage", Width: src.Width, Height: src.Height, Channels: src.Channels, Err: err}
	}
	return &DisplayImage{Buffer{Width: src.Width, Height: src.Height, Channels: src.Channels, Pix: pix}}, nil
}

// ToMatrixImage is the inverse of ToDisplayImage with the same contract.
// ToMatrixImage(ToDisplayImage(m)) reproduces m byte for byte.
func ToMatrixImage(src *DisplayImage) (*MatrixImage, error) {
	if src == nil {
		return nil, &ConvertError{Op: "ToMatrixImage", Err: ErrMalformedBuffer}
	}
	pix, err := copyPix(&src.Buffer)
	if err != nil {
		return nil, &ConvertError{Op: "ToMatrixImage", Width: src.Width, Height: src.Height, Channels: src.Channels, Err: err}
	}
	return &MatrixImage{Buffer{Width: src.Width, Height: src.Height, Channels: src.Channels, Pix: pix}}, nil
}

// copyPix validates b and returns a fresh copy of its pixels.
func copyPix(b *Buffer) ([]byte, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	pix, err := allocPix(len(b.Pix))
	if err != nil {
		return nil, err
	}
	copy(pix, b.Pix)
	return pix, nil
}

// allocPix allocates n bytes, turning an allocation panic into ErrOutOfMemory.
func allocPix(n int) (pix []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			pix, err = nil, ErrOutOfMemory
		}
	}()
	return allocBytes(n), nil
}

// displayFromFrame packs premultiplied RGBA frame pixels (as returned by
// ebiten.Image.ReadPixels) into a 3-channel display image. Alpha is
// un-premultiplied into the color channels and then dropped.
func displayFromFrame(w, h int, rgba []byte) (*DisplayImage, error) {
	n, ok := bufferLen(w, h, 4)
	if !ok || len(rgba) != n {
		return nil, &ConvertError{Op: "displayFromFrame", Width: w, Height: h, Channels: 4, Err: ErrMalformedBuffer}
	}
	pix, err := allocPix(w * h * 3)
	if err != nil {
		return nil, &ConvertError{Op: "displayFromFrame", Width: w, Height: h, Channels: 3, Err: err}
	}
	d := &DisplayImage{Buffer{Width: w, Height: h, Channels: 3, Pix: pix}}
	for i, j := 0, 0; i < len(rgba); i, j = i+4, j+3 {
		r, g, b, a := rgba[i], rgba[i+1], rgba[i+2], rgba[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		d.Pix[j] = b
		d.Pix[j+1] = g
		d.Pix[j+2] = r
	}
	return d, nil
}
