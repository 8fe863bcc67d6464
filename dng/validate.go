package dng

import "fmt"

// validateBuffer checks the geometry and element type of an image
// buffer before any file is touched. It has no side effects.
//
// The checks run in a fixed order: shape first, then row layout,
// then sample type, then backing store length.
func validateBuffer(b Buffer) (width, height, sampleSize int, err error) {
	if b == nil {
		return 0, 0, 0, fmt.Errorf("%w: no image", ErrInvalidShape)
	}
	height, width = b.Dims()
	if width <= 0 || height <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidShape, width, height)
	}
	if !b.Contiguous() {
		return 0, 0, 0, ErrNonContiguous
	}
	sampleSize = b.SampleSize()
	if sampleSize != 1 && sampleSize != 2 {
		return 0, 0, 0, fmt.Errorf("%w: %d bytes per sample", ErrUnsupportedType, sampleSize)
	}
	if need := width * height * sampleSize; len(b.Bytes()) < need {
		return 0, 0, 0, fmt.Errorf("%w: backing store holds %d bytes, need %d",
			ErrInvalidShape, len(b.Bytes()), need)
	}
	return width, height, sampleSize, nil
}
