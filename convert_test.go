package stillframe

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"testing"
)

func randomMatrix(t *testing.T, w, h int, channels uint8) *MatrixImage {
	t.Helper()
	pix := make([]byte, w*h*int(channels))
	rand.New(rand.NewSource(int64(w*31 + h*7 + int(channels)))).Read(pix)
	m, err := NewMatrixImage(w, h, channels, pix)
	if err != nil {
		t.Fatalf("NewMatrixImage(%d, %d, %d): %v", w, h, channels, err)
	}
	return m
}

func TestConvertRoundTrip(t *testing.T) {
	sizes := []struct{ w, h int }{{0, 0}, {0, 5}, {5, 0}, {1, 1}, {3, 2}, {64, 48}, {257, 3}}
	for _, channels := range []uint8{1, 3} {
		for _, sz := range sizes {
			m := randomMatrix(t, sz.w, sz.h, channels)

			d, err := ToDisplayImage(m)
			if err != nil {
				t.Fatalf("ToDisplayImage(%dx%dx%d): %v", sz.w, sz.h, channels, err)
			}
			back, err := ToMatrixImage(d)
			if err != nil {
				t.Fatalf("ToMatrixImage(%dx%dx%d): %v", sz.w, sz.h, channels, err)
			}

			if back.Width != m.Width || back.Height != m.Height || back.Channels != m.Channels {
				t.Errorf("round trip dims = %dx%dx%d, want %dx%dx%d",
					back.Width, back.Height, back.Channels, m.Width, m.Height, m.Channels)
			}
			if !bytes.Equal(back.Pix, m.Pix) {
				t.Errorf("round trip %dx%dx%d changed pixel bytes", sz.w, sz.h, channels)
			}
		}
	}
}

func TestConvertLengthInvariant(t *testing.T) {
	for _, channels := range []uint8{1, 3} {
		m := randomMatrix(t, 7, 5, channels)
		d, err := ToDisplayImage(m)
		if err != nil {
			t.Fatal(err)
		}
		if len(d.Pix) != len(m.Pix) {
			t.Errorf("len(Pix) = %d, want %d", len(d.Pix), len(m.Pix))
		}
		if got := d.Width * d.Height * int(d.Channels); got != len(d.Pix) {
			t.Errorf("Width*Height*Channels = %d, len(Pix) = %d", got, len(d.Pix))
		}
	}
}

func TestConvertCopiesVerbatim(t *testing.T) {
	// 3-channel bytes are not reordered: both layouts store B, G, R.
	m, err := NewMatrixImage(2, 1, 3, []byte{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}
	d, err := ToDisplayImage(m)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(d.Pix, []byte{1, 2, 3, 4, 5, 6}) {
		t.Errorf("Pix = %v, want [1 2 3 4 5 6]", d.Pix)
	}
}

func TestConvertDoesNotAlias(t *testing.T) {
	m := randomMatrix(t, 4, 4, 3)
	orig := append([]byte(nil), m.Pix...)

	d, err := ToDisplayImage(m)
	if err != nil {
		t.Fatal(err)
	}
	d.Pix[0] ^= 0xff

	if !bytes.Equal(m.Pix, orig) {
		t.Error("mutating the display image changed the source matrix")
	}
}

func TestConvertUnsupportedChannelLayout(t *testing.T) {
	for _, channels := range []uint8{0, 2, 4} {
		m := &MatrixImage{Buffer{Width: 2, Height: 2, Channels: channels, Pix: make([]byte, 4*int(channels))}}
		_, err := ToDisplayImage(m)
		if !errors.Is(err, ErrUnsupportedChannelLayout) {
			t.Errorf("channels=%d: err = %v, want ErrUnsupportedChannelLayout", channels, err)
		}
		var ce *ConvertError
		if !errors.As(err, &ce) || ce.Op != "ToDisplayImage" {
			t.Errorf("channels=%d: err = %#v, want *ConvertError with Op ToDisplayImage", channels, err)
		}

		d := &DisplayImage{Buffer{Width: 2, Height: 2, Channels: channels, Pix: make([]byte, 4*int(channels))}}
		if _, err := ToMatrixImage(d); !errors.Is(err, ErrUnsupportedChannelLayout) {
			t.Errorf("ToMatrixImage channels=%d: err = %v, want ErrUnsupportedChannelLayout", channels, err)
		}
	}
}

func TestConvertMalformedBuffer(t *testing.T) {
	tests := []struct {
		name string
		buf  Buffer
	}{
		{"short", Buffer{Width: 2, Height: 2, Channels: 3, Pix: make([]byte, 11)}},
		{"long", Buffer{Width: 2, Height: 2, Channels: 1, Pix: make([]byte, 5)}},
		{"negative width", Buffer{Width: -1, Height: 2, Channels: 1, Pix: nil}},
		{"zero size with bytes", Buffer{Width: 0, Height: 3, Channels: 3, Pix: make([]byte, 3)}},
		{"overflow", Buffer{Width: math.MaxInt / 2, Height: 3, Channels: 3, Pix: nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToDisplayImage(&MatrixImage{tt.buf}); !errors.Is(err, ErrMalformedBuffer) {
				t.Errorf("ToDisplayImage err = %v, want ErrMalformedBuffer", err)
			}
			if _, err := ToMatrixImage(&DisplayImage{tt.buf}); !errors.Is(err, ErrMalformedBuffer) {
				t.Errorf("ToMatrixImage err = %v, want ErrMalformedBuffer", err)
			}
		})
	}
}

func TestConvertNilSource(t *testing.T) {
	if _, err := ToDisplayImage(nil); !errors.Is(err, ErrMalformedBuffer) {
		t.Errorf("ToDisplayImage(nil) err = %v, want ErrMalformedBuffer", err)
	}
	if _, err := ToMatrixImage(nil); !errors.Is(err, ErrMalformedBuffer) {
		t.Errorf("ToMatrixImage(nil) err = %v, want ErrMalformedBuffer", err)
	}
}

func TestConvertOutOfMemory(t *testing.T) {
	saved := allocBytes
	defer func() { allocBytes = saved }()
	allocBytes = func(int) []byte { panic("runtime: out of memory") }

	m := randomMatrix(t, 4, 4, 1)
	d, err := ToDisplayImage(m)
	if !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("err = %v, want ErrOutOfMemory", err)
	}
	if d != nil {
		t.Error("expected nil image on allocation failure")
	}

	// The process keeps going: the next conversion succeeds.
	allocBytes = saved
	if _, err := ToDisplayImage(m); err != nil {
		t.Errorf("conversion after failure: %v", err)
	}
}

func TestDisplayFromFrame(t *testing.T) {
	// Two pixels: opaque red, half-transparent premultiplied blue.
	rgba := []byte{
		255, 0, 0, 255,
		0, 0, 64, 128,
	}
	d, err := displayFromFrame(2, 1, rgba)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0, 0, 255,
		127, 0, 0,
	}
	if !bytes.Equal(d.Pix, want) {
		t.Errorf("Pix = %v, want %v", d.Pix, want)
	}

	if _, err := displayFromFrame(2, 2, rgba); !errors.Is(err, ErrMalformedBuffer) {
		t.Errorf("short frame err = %v, want ErrMalformedBuffer", err)
	}
}
