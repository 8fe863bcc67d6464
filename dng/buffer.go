package dng

import (
	"encoding/binary"
	"image"
)

// Buffer is a two-dimensional, single-channel pixel buffer. Save
// borrows it read-only for the duration of the call.
//
// Bytes must expose the samples row by row. For 16-bit samples the
// bytes must be in little-endian order, matching the byte order of
// the files this package writes; see FromGray16 for the conversion
// from the standard library layout.
type Buffer interface {
	// Dims returns the height (first dimension) and width (second
	// dimension) in samples.
	Dims() (height, width int)
	// SampleSize returns the width of one sample in bytes.
	SampleSize() int
	// Contiguous reports whether rows are densely packed, with no
	// stride gaps between them.
	Contiguous() bool
	// Bytes returns the backing store, starting at the first sample
	// of the first row.
	Bytes() []byte
}

// Raw is a row-major view of Bayer mosaic samples. It implements
// Buffer. Pix holds Height rows of Width samples each, rows Stride
// bytes apart; Depth is the sample width in bytes (1 or 2, 16-bit
// samples little-endian).
type Raw struct {
	Pix    []byte
	Stride int
	Width  int
	Height int
	Depth  int
}

// NewRaw8 allocates a contiguous 8-bit raw image.
func NewRaw8(width, height int) *Raw {
	return &Raw{
		Pix:    make([]byte, width*height),
		Stride: width,
		Width:  width,
		Height: height,
		Depth:  1,
	}
}

// NewRaw16 allocates a contiguous 16-bit raw image.
func NewRaw16(width, height int) *Raw {
	return &Raw{
		Pix:    make([]byte, 2*width*height),
		Stride: 2 * width,
		Width:  width,
		Height: height,
		Depth:  2,
	}
}

// Dims returns the height and width in samples.
func (r *Raw) Dims() (height, width int) {
	return r.Height, r.Width
}

// SampleSize returns the sample width in bytes.
func (r *Raw) SampleSize() int {
	return r.Depth
}

// Contiguous reports whether rows are densely packed.
func (r *Raw) Contiguous() bool {
	return r.Stride == r.Width*r.Depth
}

// Bytes returns the backing store.
func (r *Raw) Bytes() []byte {
	return r.Pix
}

func (r *Raw) pixOffset(x, y int) int {
	return y*r.Stride + x*r.Depth
}

// Sample returns the sample at (x, y).
func (r *Raw) Sample(x, y int) uint16 {
	i := r.pixOffset(x, y)
	if r.Depth == 2 {
		return binary.LittleEndian.Uint16(r.Pix[i:])
	}
	return uint16(r.Pix[i])
}

// SetSample stores v at (x, y), truncated to the sample width.
func (r *Raw) SetSample(x, y int, v uint16) {
	i := r.pixOffset(x, y)
	if r.Depth == 2 {
		binary.LittleEndian.PutUint16(r.Pix[i:], v)
		return
	}
	r.Pix[i] = byte(v)
}

// SubRaw returns a view of the rectangle with top-left corner (x, y)
// and the given size, sharing pixels with r. The view keeps the
// stride of r, so a view narrower than r is not contiguous.
func (r *Raw) SubRaw(x, y, width, height int) *Raw {
	return &Raw{
		Pix:    r.Pix[r.pixOffset(x, y):],
		Stride: r.Stride,
		Width:  width,
		Height: height,
		Depth:  r.Depth,
	}
}

// FromGray wraps an 8-bit grayscale image without copying. The view
// shares pixels with img, so a SubImage yields a non-contiguous Raw.
func FromGray(img *image.Gray) *Raw {
	b := img.Bounds()
	return &Raw{
		Pix:    img.Pix[img.PixOffset(b.Min.X, b.Min.Y):],
		Stride: img.Stride,
		Width:  b.Dx(),
		Height: b.Dy(),
		Depth:  1,
	}
}

// FromGray16 copies a 16-bit grayscale image into a contiguous Raw,
// converting from the big-endian layout of image.Gray16 to the
// little-endian sample order expected by Save.
func FromGray16(img *image.Gray16) *Raw {
	b := img.Bounds()
	r := NewRaw16(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			v := uint16(img.Pix[i])<<8 | uint16(img.Pix[i+1])
			r.SetSample(x-b.Min.X, y-b.Min.Y, v)
		}
	}
	return r
}
