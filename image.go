package stillframe

import (
	"image"
	"image/color"
	"math"
)

// Buffer holds a dense pixel buffer and is shared by MatrixImage and
// DisplayImage. Pixels are stored row-major with channels interleaved:
// len(Pix) == Width * Height * Channels. A 1-channel buffer is gray, a
// 3-channel buffer stores each pixel as B, G, R.
type Buffer struct {
	Width    int
	Height   int
	Channels uint8
	Pix      []byte
}

// Bounds returns the buffer rectangle with its origin at (0, 0).
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// ColorModel returns color.GrayModel for gray buffers and color.RGBAModel otherwise.
func (b *Buffer) ColorModel() color.Model {
	if b.Channels == 1 {
		return color.GrayModel
	}
	return color.RGBAModel
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (b *Buffer) PixOffset(x, y int) int {
	return (y*b.Width + x) * int(b.Channels)
}

// At returns the color of the pixel at (x, y). Out of bounds pixels,
// pixels past the end of a short Pix and buffers with an unsupported
// channel count report color.Transparent.
func (b *Buffer) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(b.Bounds()) {
		return color.Transparent
	}
	i := b.PixOffset(x, y)
	if i+int(b.Channels) > len(b.Pix) {
		return color.Transparent
	}
	switch b.Channels {
	case 1:
		return color.Gray{Y: b.Pix[i]}
	case 3:
		return color.RGBA{R: b.Pix[i+2], G: b.Pix[i+1], B: b.Pix[i], A: 0xff}
	default:
		return color.Transparent
	}
}

// validate checks the channel layout and the buffer length against the dimensions.
func (b *Buffer) validate() error {
	if b.Channels != 1 && b.Channels != 3 {
		return ErrUnsupportedChannelLayout
	}
	n, ok := bufferLen(b.Width, b.Height, b.Channels)
	if !ok || len(b.Pix) != n {
		return ErrMalformedBuffer
	}
	return nil
}

// bufferLen returns Width*Height*Channels, or false if a dimension is
// negative or the product overflows int.
func bufferLen(w, h int, channels uint8) (int, bool) {
	if w < 0 || h < 0 {
		return 0, false
	}
	if w == 0 || h == 0 {
		return 0, true
	}
	c := int(channels)
	if w > math.MaxInt/h || w*h > math.MaxInt/c {
		return 0, false
	}
	return w * h * c, true
}

// MatrixImage is a pixel buffer in decoder-native layout. It is produced by
// DecodeMatrix (or by callers that already hold matrix data) and consumed by
// ToDisplayImage.
type MatrixImage struct {
	Buffer
}

// NewMatrixImage wraps pix as a MatrixImage after checking it against the
// dimensions. pix is not copied.
func NewMatrixImage(w, h int, channels uint8, pix []byte) (*MatrixImage, error) {
	m := &MatrixImage{Buffer{Width: w, Height: h, Channels: channels, Pix: pix}}
	if err := m.validate(); err != nil {
		return nil, &ConvertError{Op: "NewMatrixImage", Width: w, Height: h, Channels: channels, Err: err}
	}
	return m, nil
}

// DisplayImage is a pixel buffer in the presentation layer's packed layout.
// Only the converter creates DisplayImages; once delivered to an image view
// the presentation context owns it.
type DisplayImage struct {
	Buffer
}

// RGBA expands the image into 4-byte RGBA pixels, the layout
// ebiten.Image.WritePixels expects. Gray pixels are replicated into the three
// color channels. Alpha is always opaque, so the result is also valid
// premultiplied data. An image whose Pix does not match its dimensions or
// channel count yields an empty slice.
func (d *DisplayImage) RGBA() []byte {
	if d.validate() != nil {
		return []byte{}
	}
	n := d.Width * d.Height
	out := make([]byte, 4*n)
	switch d.Channels {
	case 1:
		for i := 0; i < n; i++ {
			y := d.Pix[i]
			out[4*i] = y
			out[4*i+1] = y
			out[4*i+2] = y
			out[4*i+3] = 0xff
		}
	case 3:
		for i := 0; i < n; i++ {
			out[4*i] = d.Pix[3*i+2]
			out[4*i+1] = d.Pix[3*i+1]
			out[4*i+2] = d.Pix[3*i]
			out[4*i+3] = 0xff
		}
	}
	return out
}
