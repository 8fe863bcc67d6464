package dng

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveColorMatrixDefault(t *testing.T) {
	got, err := resolveColorMatrix(nil)
	if err != nil {
		t.Fatalf("resolveColorMatrix(nil) error = %v", err)
	}
	want := []float32{
		2.005, -0.771, -0.269,
		-0.752, 1.688, 0.064,
		-0.149, 0.283, 0.745,
	}
	if len(got) != 9 {
		t.Fatalf("resolveColorMatrix(nil) has %d elements, want 9", len(got))
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("element %d = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestResolveColorMatrixCopiesDefault(t *testing.T) {
	a, _ := resolveColorMatrix(nil)
	a[0] = 99
	b, _ := resolveColorMatrix(nil)
	if b[0] == 99 {
		t.Error("resolveColorMatrix(nil) shares the default backing array")
	}
}

func TestResolveColorMatrix(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []float32
	}{
		{"ints", []int{1, 2, 3}, []float32{1, 2, 3}},
		{"float64s", []float64{0.5, -0.25}, []float32{0.5, -0.25}},
		{"float32s", []float32{1, 0, 0, 0, 1, 0, 0, 0, 1}, []float32{1, 0, 0, 0, 1, 0, 0, 0, 1}},
		{"array", [3]float64{1, 2, 3}, []float32{1, 2, 3}},
		{"mixed", []any{1, 2.5, uint8(3), int64(-4)}, []float32{1, 2.5, 3, -4}},
		{"uint16s", []uint16{7, 8}, []float32{7, 8}},
		{"empty", []float64{}, []float32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveColorMatrix(tt.in)
			if err != nil {
				t.Fatalf("resolveColorMatrix(%v) error = %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("resolveColorMatrix(%v) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestResolveColorMatrixDoesNotAliasInput(t *testing.T) {
	in := []float32{1, 2, 3}
	got, err := resolveColorMatrix(in)
	if err != nil {
		t.Fatal(err)
	}
	in[0] = 42
	if got[0] != 1 {
		t.Error("resolved matrix aliases the caller's slice")
	}
}

func TestResolveColorMatrixErrors(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"scalar", 5},
		{"string", "1 2 3"},
		{"strings", []string{"x", "2", "3"}},
		{"bools", []bool{true, false, true}},
		{"mixed_bad", []any{1, "x", 3}},
		{"nil_element", []any{1, nil, 3}},
		{"map", map[string]float64{"a": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveColorMatrix(tt.in)
			if !errors.Is(err, ErrTypeMismatch) {
				t.Errorf("resolveColorMatrix(%v) error = %v, want ErrTypeMismatch", tt.in, err)
			}
			if got != nil {
				t.Errorf("resolveColorMatrix(%v) returned %v with error", tt.in, got)
			}
		})
	}
}
