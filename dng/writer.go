package dng

import (
	"fmt"
	"io"

	"github.com/mrjoshuak/go-dng/internal/tiff"
)

// dngVersion and dngBackwardVersion are the DNGVersion and
// DNGBackwardVersion tag values written to every file.
var (
	dngVersion         = [4]byte{1, 1, 0, 0}
	dngBackwardVersion = [4]byte{1, 0, 0, 0}
)

// Options controls the metadata written by Save. The zero value
// matches the defaults of the original libtiff-based tool: camera
// "Unknown", pattern RGGB, the built-in ColorMatrix1, and no
// optional tags.
type Options struct {
	// Camera is the UniqueCameraModel tag. Empty means "Unknown".
	Camera string

	// Pattern is the Bayer layout of the sensor.
	Pattern CFAPattern

	// ColorMatrix1 is an optional sensor-to-reference transform:
	// any slice or array of numeric values, written as consecutive
	// 32-bit floats. Nil selects the built-in default. A row-major
	// 3x3 matrix has 9 elements, but the length is not enforced.
	ColorMatrix1 any

	// ColorMatrix2 is an optional second transform. Nil omits the
	// tag entirely.
	ColorMatrix2 any

	// CalibrationIlluminant1 and CalibrationIlluminant2 describe
	// the light sources the matrices were calibrated under. Zero
	// omits the corresponding tag.
	CalibrationIlluminant1 Illuminant
	CalibrationIlluminant2 Illuminant
}

// encoder holds the validated and resolved inputs of one save call.
type encoder struct {
	buf        Buffer
	width      int
	height     int
	sampleSize int

	camera  string
	pattern CFAPattern
	matrix1 []float32
	matrix2 []float32
	illum1  Illuminant
	illum2  Illuminant
}

// newEncoder validates the buffer and resolves the options. It does
// no I/O, so a failure here leaves no file behind.
func newEncoder(b Buffer, opts *Options) (*encoder, error) {
	width, height, sampleSize, err := validateBuffer(b)
	if err != nil {
		return nil, err
	}

	e := &encoder{
		buf:        b,
		width:      width,
		height:     height,
		sampleSize: sampleSize,
		camera:     "Unknown",
		pattern:    PatternRGGB,
	}
	var m1, m2 any
	if opts != nil {
		if opts.Camera != "" {
			e.camera = opts.Camera
		}
		e.pattern = opts.Pattern
		m1, m2 = opts.ColorMatrix1, opts.ColorMatrix2
		e.illum1 = opts.CalibrationIlluminant1
		e.illum2 = opts.CalibrationIlluminant2
	}
	if !e.pattern.Valid() {
		return nil, newTypeMismatch("CFA pattern %d is not defined", e.pattern)
	}
	if e.matrix1, err = resolveColorMatrix(m1); err != nil {
		return nil, err
	}
	if m2 != nil {
		if e.matrix2, err = resolveColorMatrix(m2); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// writeTo emits the tag set, every scanline and finally the
// directory. On error the directory has not been written and the
// caller must close w without finalizing.
func (e *encoder) writeTo(w *tiff.Writer) error {
	w.SetLong(tiff.TagImageWidth, uint32(e.width))
	w.SetLong(tiff.TagImageLength, uint32(e.height))
	w.SetASCII(tiff.TagUniqueCameraModel, e.camera)

	w.SetShort(tiff.TagOrientation, tiff.OrientationTopLeft)
	w.SetShort(tiff.TagPlanarConfig, tiff.PlanarConfigContig)
	w.SetLong(tiff.TagNewSubfileType, 0)

	w.SetShort(tiff.TagBitsPerSample, uint16(8*e.sampleSize))
	w.SetShort(tiff.TagSamplesPerPixel, 1)
	w.SetShort(tiff.TagPhotometric, tiff.PhotometricCFA)

	w.SetShort(tiff.TagCFARepeatPatternDim, 2, 2)
	tile := e.pattern.Colors()
	w.SetByte(tiff.TagCFAPattern, byte(tile[0]), byte(tile[1]), byte(tile[2]), byte(tile[3]))
	w.SetFloat(tiff.TagColorMatrix1, e.matrix1...)
	if e.matrix2 != nil {
		w.SetFloat(tiff.TagColorMatrix2, e.matrix2...)
	}
	if e.illum1 != 0 {
		w.SetShort(tiff.TagCalibrationIlluminant1, uint16(e.illum1))
	}
	if e.illum2 != 0 {
		w.SetShort(tiff.TagCalibrationIlluminant2, uint16(e.illum2))
	}
	w.SetByte(tiff.TagDNGVersion, dngVersion[0], dngVersion[1], dngVersion[2], dngVersion[3])
	w.SetByte(tiff.TagDNGBackwardVersion,
		dngBackwardVersion[0], dngBackwardVersion[1], dngBackwardVersion[2], dngBackwardVersion[3])

	// Emit one row view per scanline; each is an offset/length slice
	// of the borrowed buffer and never reads past its end.
	rowBytes := e.width * e.sampleSize
	pix := e.buf.Bytes()
	for row := 0; row < e.height; row++ {
		line := pix[row*rowBytes : (row+1)*rowBytes]
		if err := w.WriteScanline(row, line); err != nil {
			return fmt.Errorf("dng: write row %d: %w", row, err)
		}
	}

	if err := w.WriteDirectory(); err != nil {
		return fmt.Errorf("dng: write directory: %w", err)
	}
	return nil
}

// Save writes b as a DNG file at path. A nil opts selects the
// defaults described on Options.
//
// The buffer is validated and the color matrices resolved before the
// file is created, so no file appears on disk for validation errors.
// If a scanline write fails the handle is closed with the directory
// unwritten, leaving a file that no reader takes for a complete
// image. 16-bit samples are copied verbatim and must be in
// little-endian order, matching the file's declared byte order.
func Save(b Buffer, path string, opts *Options) error {
	e, err := newEncoder(b, opts)
	if err != nil {
		return err
	}
	w, err := tiff.Create(path)
	if err != nil {
		return fmt.Errorf("dng: %w", err)
	}
	if err := e.writeTo(w); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("dng: close %s: %w", path, err)
	}
	return nil
}

// Write writes b as a DNG to ws, which must be positioned at offset
// zero. It is Save without the file handling; closing ws stays with
// the caller.
func Write(ws io.WriteSeeker, b Buffer, opts *Options) error {
	e, err := newEncoder(b, opts)
	if err != nil {
		return err
	}
	w, err := tiff.NewWriter(ws)
	if err != nil {
		return fmt.Errorf("dng: %w", err)
	}
	return e.writeTo(w)
}
