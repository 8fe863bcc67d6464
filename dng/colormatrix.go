package dng

import "reflect"

// defaultColorMatrix1 is the sensor-to-reference transform written
// when the caller does not supply one.
var defaultColorMatrix1 = [9]float32{
	2.005, -0.771, -0.269,
	-0.752, 1.688, 0.064,
	-0.149, 0.283, 0.745,
}

// DefaultColorMatrix1 returns a copy of the built-in ColorMatrix1.
func DefaultColorMatrix1() []float32 {
	m := defaultColorMatrix1
	return m[:]
}

// resolveColorMatrix turns a caller-supplied matrix into an owned
// []float32. A nil input yields a copy of the built-in default.
// Anything else must be a slice or array of numeric values; the
// result keeps the input's length. Boolean, string and other
// non-numeric elements are rejected with ErrTypeMismatch.
func resolveColorMatrix(v any) ([]float32, error) {
	if v == nil {
		return DefaultColorMatrix1(), nil
	}
	switch m := v.(type) {
	case []float32:
		return append([]float32(nil), m...), nil
	case []float64:
		out := make([]float32, len(m))
		for i, x := range m {
			out[i] = float32(x)
		}
		return out, nil
	case []int:
		out := make([]float32, len(m))
		for i, x := range m {
			out[i] = float32(x)
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, newTypeMismatch("color matrix is %T, want a numeric sequence", v)
	}
	out := make([]float32, rv.Len())
	for i := range out {
		ev := rv.Index(i)
		if ev.Kind() == reflect.Interface {
			ev = ev.Elem()
			if !ev.IsValid() {
				return nil, newTypeMismatch("color matrix element %d is nil", i)
			}
		}
		switch ev.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			out[i] = float32(ev.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			out[i] = float32(ev.Uint())
		case reflect.Float32, reflect.Float64:
			out[i] = float32(ev.Float())
		default:
			return nil, newTypeMismatch("color matrix element %d is %s, want a number", i, ev.Kind())
		}
	}
	return out, nil
}
