package dngmeta

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mrjoshuak/go-dng/dng"
)

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.dng")
	err := dng.Save(dng.NewRaw16(6, 4), path, &dng.Options{
		Camera:                 "Meta Cam",
		Pattern:                dng.PatternBGGR,
		ColorMatrix1:           []float64{1, 0, 0, 0, 1, 0, 0, 0, 1},
		ColorMatrix2:           []float64{0.5, 0, 0, 0, 0.5, 0, 0, 0, 0.5},
		CalibrationIlluminant1: dng.IlluminantStandardA,
		CalibrationIlluminant2: dng.IlluminantD65,
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := &Meta{
		Width:         6,
		Height:        4,
		BitsPerSample: 16,
		Camera:        "Meta Cam",
		Pattern:       dng.PatternBGGR,
		PatternKnown:  true,
		ColorMatrix1:  []float32{1, 0, 0, 0, 1, 0, 0, 0, 1},
		ColorMatrix2:  []float32{0.5, 0, 0, 0, 0.5, 0, 0, 0, 0.5},
		Illuminant1:   dng.IlluminantStandardA,
		Illuminant2:   dng.IlluminantD65,
		Version:       [4]byte{1, 1, 0, 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFileDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.dng")
	if err := dng.Save(dng.NewRaw8(2, 2), path, nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got.Camera != "Unknown" || got.Pattern != dng.PatternRGGB || !got.PatternKnown {
		t.Errorf("ReadFile() = %+v, want Unknown/RGGB", got)
	}
	if got.ColorMatrix2 != nil || got.Illuminant1 != 0 || got.Illuminant2 != 0 {
		t.Errorf("optional metadata reported for a minimal file: %+v", got)
	}
}

func TestReadFileRejectsNonDNG(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.dng")); err == nil {
		t.Error("ReadFile() of a missing file succeeded")
	}
}
