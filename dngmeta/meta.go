// Package dngmeta reports the metadata of a DNG file without
// decoding its pixel data.
//
// It reads the camera identity, geometry, CFA layout and color
// transform tags in one pass, for tools that inspect files rather
// than load them.
package dngmeta

import (
	"fmt"

	"github.com/mrjoshuak/go-dng/dng"
	"github.com/mrjoshuak/go-dng/internal/tiff"
)

// Meta summarizes the tags of a DNG file's primary image.
type Meta struct {
	Width         int
	Height        int
	BitsPerSample int
	Camera        string

	// Pattern is the Bayer layout; PatternKnown reports whether the
	// file's CFA tile matched one of the defined patterns.
	Pattern      dng.CFAPattern
	PatternKnown bool

	ColorMatrix1 []float32
	ColorMatrix2 []float32

	// Illuminant1 and Illuminant2 are zero when the corresponding
	// CalibrationIlluminant tag is absent.
	Illuminant1 dng.Illuminant
	Illuminant2 dng.Illuminant

	// Version is the DNGVersion tag, zero when absent.
	Version [4]byte
}

// ReadFile reads the metadata of the DNG file at path.
func ReadFile(path string) (*Meta, error) {
	f, err := tiff.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dngmeta: %w", err)
	}
	d := f.Dir(0)

	if pi, ok := d.Uint(tiff.TagPhotometric); !ok || pi != tiff.PhotometricCFA {
		return nil, fmt.Errorf("dngmeta: %s: photometric interpretation is not CFA", path)
	}

	m := &Meta{
		ColorMatrix1: d.Floats(tiff.TagColorMatrix1),
		ColorMatrix2: d.Floats(tiff.TagColorMatrix2),
	}
	if w, ok := d.Uint(tiff.TagImageWidth); ok {
		m.Width = int(w)
	}
	if h, ok := d.Uint(tiff.TagImageLength); ok {
		m.Height = int(h)
	}
	if bits, ok := d.Uint(tiff.TagBitsPerSample); ok {
		m.BitsPerSample = int(bits)
	}
	m.Camera, _ = d.String(tiff.TagUniqueCameraModel)

	if cfa := d.Bytes(tiff.TagCFAPattern); len(cfa) == 4 {
		m.Pattern, m.PatternKnown = dng.PatternFromColors([4]dng.CFAColor{
			dng.CFAColor(cfa[0]), dng.CFAColor(cfa[1]),
			dng.CFAColor(cfa[2]), dng.CFAColor(cfa[3]),
		})
	}
	if v, ok := d.Uint(tiff.TagCalibrationIlluminant1); ok {
		m.Illuminant1 = dng.Illuminant(v)
	}
	if v, ok := d.Uint(tiff.TagCalibrationIlluminant2); ok {
		m.Illuminant2 = dng.Illuminant(v)
	}
	if v := d.Bytes(tiff.TagDNGVersion); len(v) == 4 {
		copy(m.Version[:], v)
	}
	return m, nil
}
