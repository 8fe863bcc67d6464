package dng

import (
	"errors"
	"fmt"
)

// Validation and encoding errors. I/O failures are returned as
// wrapped *os.PathError / io errors rather than one of these.
var (
	// ErrInvalidShape reports an image buffer whose geometry is not
	// a plain 2D grid: non-positive dimensions or a backing store
	// shorter than height x width samples.
	ErrInvalidShape = errors.New("dng: invalid image shape")

	// ErrNonContiguous reports an image buffer with gaps between
	// rows; the writer only accepts densely packed row-major data.
	ErrNonContiguous = errors.New("dng: image buffer is not contiguous")

	// ErrUnsupportedType reports a sample width other than 8-bit or
	// 16-bit unsigned integers.
	ErrUnsupportedType = errors.New("dng: unsupported sample type")

	// ErrTypeMismatch reports a color matrix that is not a numeric
	// sequence, or an undefined CFA pattern value.
	ErrTypeMismatch = errors.New("dng: type mismatch")

	// ErrFormat reports a file that is not a CFA DNG readable by
	// this package.
	ErrFormat = errors.New("dng: not a CFA DNG file")
)

func newTypeMismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrTypeMismatch, fmt.Sprintf(format, args...))
}
