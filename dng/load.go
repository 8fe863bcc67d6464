package dng

import (
	"encoding/binary"
	"fmt"

	"github.com/mrjoshuak/go-dng/internal/tiff"
)

// Image is a DNG file read back into memory.
type Image struct {
	// Raw holds the mosaic samples, contiguous and little-endian.
	Raw *Raw

	// Pattern is the sensor's Bayer layout.
	Pattern CFAPattern

	// Camera is the UniqueCameraModel tag, if present.
	Camera string

	// ColorMatrix1 is the embedded transform, if present.
	ColorMatrix1 []float32
}

// Load reads a CFA DNG file, such as one written by Save. Only
// single-image uncompressed files with photometric interpretation
// CFA are accepted; anything else fails with ErrFormat.
func Load(path string) (*Image, error) {
	f, err := tiff.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dng: %w", err)
	}
	d := f.Dir(0)

	if pi, ok := d.Uint(tiff.TagPhotometric); !ok || pi != tiff.PhotometricCFA {
		return nil, fmt.Errorf("%w: photometric interpretation is not CFA", ErrFormat)
	}
	if c, ok := d.Uint(tiff.TagCompression); ok && c != tiff.CompressionNone {
		return nil, fmt.Errorf("%w: compressed data", ErrFormat)
	}
	if spp, ok := d.Uint(tiff.TagSamplesPerPixel); ok && spp != 1 {
		return nil, fmt.Errorf("%w: %d samples per pixel", ErrFormat, spp)
	}

	width, okW := d.Uint(tiff.TagImageWidth)
	height, okH := d.Uint(tiff.TagImageLength)
	if !okW || !okH || width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: missing image dimensions", ErrFormat)
	}
	bits, ok := d.Uint(tiff.TagBitsPerSample)
	if !ok || (bits != 8 && bits != 16) {
		return nil, fmt.Errorf("%w: %d bits per sample", ErrFormat, bits)
	}
	depth := int(bits) / 8

	cfa := d.Bytes(tiff.TagCFAPattern)
	if len(cfa) != 4 {
		return nil, fmt.Errorf("%w: missing CFA pattern", ErrFormat)
	}
	pattern, ok := PatternFromColors([4]CFAColor{
		CFAColor(cfa[0]), CFAColor(cfa[1]), CFAColor(cfa[2]), CFAColor(cfa[3]),
	})
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized CFA tile %v", ErrFormat, cfa)
	}

	offsets := d.Uints(tiff.TagStripOffsets)
	counts := d.Uints(tiff.TagStripByteCounts)
	if len(offsets) == 0 || len(offsets) != len(counts) {
		return nil, fmt.Errorf("%w: missing strip layout", ErrFormat)
	}
	total := int(width) * int(height) * depth
	pix := make([]byte, 0, total)
	for i, off := range offsets {
		strip, err := f.Bytes(off, counts[i])
		if err != nil {
			return nil, fmt.Errorf("dng: strip %d: %w", i, err)
		}
		pix = append(pix, strip...)
	}
	if len(pix) != total {
		return nil, fmt.Errorf("%w: strips hold %d bytes, want %d", ErrFormat, len(pix), total)
	}

	// Raw keeps samples little-endian regardless of the file order.
	if depth == 2 && f.Order() == binary.BigEndian {
		for i := 0; i < len(pix); i += 2 {
			pix[i], pix[i+1] = pix[i+1], pix[i]
		}
	}

	img := &Image{
		Raw: &Raw{
			Pix:    pix,
			Stride: int(width) * depth,
			Width:  int(width),
			Height: int(height),
			Depth:  depth,
		},
		Pattern:      pattern,
		ColorMatrix1: d.Floats(tiff.TagColorMatrix1),
	}
	img.Camera, _ = d.String(tiff.TagUniqueCameraModel)
	return img, nil
}
