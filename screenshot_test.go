package stillframe

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-load", "after-load"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	s := NewScene()
	s.Screenshot("a")
	s.Screenshot("b")
	s.Screenshot("c")
	if len(s.screenshotQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(s.screenshotQueue))
	}
	if s.screenshotQueue[0] != "a" || s.screenshotQueue[1] != "b" || s.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", s.screenshotQueue)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	s := NewScene()
	if s.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", s.ScreenshotDir, "screenshots")
	}
}

func TestCaptureMatrixWritesPNG(t *testing.T) {
	// 2x1 frame: opaque green, opaque white.
	frame := []byte{0, 255, 0, 255, 255, 255, 255, 255}
	m, err := captureMatrix(2, 1, frame)
	if err != nil {
		t.Fatalf("captureMatrix: %v", err)
	}
	if want := []byte{0, 255, 0, 255, 255, 255}; !bytes.Equal(m.Pix, want) {
		t.Fatalf("Pix = %v, want %v", m.Pix, want)
	}

	path := filepath.Join(t.TempDir(), "shot.png")
	if err := writePNG(path, m); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	back, format, err := DecodeMatrix(f)
	if err != nil {
		t.Fatalf("DecodeMatrix: %v", err)
	}
	if format != "png" || !bytes.Equal(back.Pix, m.Pix) {
		t.Errorf("read back %s %v, want png %v", format, back.Pix, m.Pix)
	}
}

func TestWritePNGBadPath(t *testing.T) {
	m, _ := NewMatrixImage(1, 1, 1, []byte{0})
	if err := writePNG(filepath.Join(t.TempDir(), "missing", "x.png"), m); err == nil {
		t.Error("expected error for a missing directory")
	}
}
