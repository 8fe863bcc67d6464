package dng

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mrjoshuak/go-dng/internal/tiff"
)

func TestLoadRoundTrip(t *testing.T) {
	const (
		width  = 10
		height = 6
	)
	raw := NewRaw8(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			raw.SetSample(x, y, uint16(37*y+x))
		}
	}
	path := filepath.Join(t.TempDir(), "out.dng")
	err := Save(raw, path, &Options{
		Camera:       "mt9v032",
		Pattern:      PatternGBRG,
		ColorMatrix1: []float32{1, 0, 0, 0, 1, 0, 0, 0, 1},
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := &Image{
		Raw:          raw,
		Pattern:      PatternGBRG,
		Camera:       "mt9v032",
		ColorMatrix1: []float32{1, 0, 0, 0, 1, 0, 0, 0, 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRoundTrip16Bit(t *testing.T) {
	raw := NewRaw16(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			raw.SetSample(x, y, uint16(0xf000+y*16+x))
		}
	}
	path := filepath.Join(t.TempDir(), "out.dng")
	if err := Save(raw, path, nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(raw, got.Raw); diff != "" {
		t.Errorf("pixel mismatch (-want +got):\n%s", diff)
	}
	if got.Pattern != PatternRGGB {
		t.Errorf("Pattern = %v, want RGGB", got.Pattern)
	}
}

func TestLoadRejectsNonCFA(t *testing.T) {
	// A structurally fine TIFF whose photometric interpretation is
	// not CFA must be rejected.
	path := filepath.Join(t.TempDir(), "gray.tif")
	w, err := tiff.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w.SetLong(tiff.TagImageWidth, 2)
	w.SetLong(tiff.TagImageLength, 1)
	w.SetShort(tiff.TagBitsPerSample, 8)
	w.SetShort(tiff.TagPhotometric, 1) // BlackIsZero
	if err := w.WriteScanline(0, []byte{1, 2}); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteDirectory(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, ErrFormat) {
		t.Errorf("Load() error = %v, want ErrFormat", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.dng"))
	if err == nil {
		t.Fatal("Load() of a missing file succeeded")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestLoadGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.dng")
	if err := os.WriteFile(path, []byte("not a tiff at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, tiff.ErrFormat) {
		t.Errorf("Load() error = %v, want tiff.ErrFormat", err)
	}
}
