package stillframe

import (
	"errors"
	"fmt"
)

// Errors
var (
	// ErrUnsupportedChannelLayout is returned when a pixel buffer declares a
	// channel count other than 1 (gray) or 3 (B,G,R).
	ErrUnsupportedChannelLayout = errors.New("stillframe: unsupported channel layout")

	// ErrMalformedBuffer is returned when the pixel buffer length does not
	// equal Width*Height*Channels, or a dimension is negative.
	ErrMalformedBuffer = errors.New("stillframe: pixel buffer does not match dimensions")

	// ErrOutOfMemory is returned when the destination buffer cannot be allocated.
	ErrOutOfMemory = errors.New("stillframe: out of memory")

	// ErrLayout is returned for layout documents that cannot be turned into a node tree.
	ErrLayout = errors.New("stillframe: invalid layout")

	// ErrDecode is returned when an encoded image cannot be decoded.
	ErrDecode = errors.New("stillframe: cannot decode image")
)

// ConvertError describes a failed pixel buffer conversion.
type ConvertError struct {
	// Op is the conversion that failed (e.g. "ToDisplayImage").
	Op string
	// Width, Height and Channels are the dimensions of the source buffer.
	Width, Height int
	Channels      uint8
	// Err is one of ErrUnsupportedChannelLayout, ErrMalformedBuffer or ErrOutOfMemory.
	Err error
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("%s %dx%dx%d: %v", e.Op, e.Width, e.Height, e.Channels, e.Err)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

// LayoutError describes a problem at a specific position in a layout document.
type LayoutError struct {
	// Path locates the offending node, e.g. "root.children[1].panes[0]".
	Path string
	// Msg describes the problem.
	Msg string
}

func (e *LayoutError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %s", ErrLayout, e.Msg)
	}
	return fmt.Sprintf("%v: %s: %s", ErrLayout, e.Path, e.Msg)
}

func (e *LayoutError) Unwrap() error {
	return ErrLayout
}
