package stillframe

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// DecodeMatrix decodes an encoded image (PNG, JPEG, GIF, BMP, TIFF or WebP)
// into a MatrixImage and returns the format name. Gray images decode to one
// channel; everything else decodes to three channels in B, G, R order with
// alpha dropped. Decode failures wrap ErrDecode.
func DecodeMatrix(r io.Reader) (*MatrixImage, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	m, err := MatrixFromImage(img)
	if err != nil {
		return nil, format, err
	}
	return m, format, nil
}

// MatrixFromImage copies any image.Image into a MatrixImage. *image.Gray and
// *image.Gray16 produce one channel, everything else three (B, G, R).
// Semi-transparent colors are un-premultiplied before alpha is dropped.
func MatrixFromImage(img image.Image) (*MatrixImage, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	var channels uint8 = 3
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		channels = 1
	}
	n, ok := bufferLen(w, h, channels)
	if !ok {
		return nil, &ConvertError{Op: "MatrixFromImage", Width: w, Height: h, Channels: channels, Err: ErrMalformedBuffer}
	}
	pix, err := allocPix(n)
	if err != nil {
		return nil, &ConvertError{Op: "MatrixFromImage", Width: w, Height: h, Channels: channels, Err: err}
	}
	m := &MatrixImage{Buffer{Width: w, Height: h, Channels: channels, Pix: pix}}

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			copy(m.Pix[y*w:(y+1)*w], row[:w])
		}
	case *image.Gray16:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				m.Pix[y*w+x] = byte(src.Gray16At(b.Min.X+x, b.Min.Y+y).Y >> 8)
			}
		}
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < w; x++ {
				i, o := 4*x, 3*(y*w+x)
				m.Pix[o] = row[i+2]
				m.Pix[o+1] = row[i+1]
				m.Pix[o+2] = row[i]
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				o := 3 * (y*w + x)
				m.Pix[o] = c.B
				m.Pix[o+1] = c.G
				m.Pix[o+2] = c.R
			}
		}
	}
	return m, nil
}

// EncodePNG writes m to w as a PNG. Gray images are written as 8-bit gray,
// color images as opaque RGB.
func EncodePNG(w io.Writer, m *MatrixImage) error {
	if m == nil {
		return &ConvertError{Op: "EncodePNG", Err: ErrMalformedBuffer}
	}
	if err := m.validate(); err != nil {
		return &ConvertError{Op: "EncodePNG", Width: m.Width, Height: m.Height, Channels: m.Channels, Err: err}
	}
	if m.Channels == 1 {
		return png.Encode(w, &image.Gray{Pix: m.Pix, Stride: m.Width, Rect: m.Bounds()})
	}
	return png.Encode(w, m)
}
