package ndarray

import (
	"log/slog"
	"slices"
)

// FlattenedLabel is the axis label applied when dimensions are collapsed
// without an explicit replacement label.
const FlattenedLabel = "Flattened"

// logger is the diagnostic channel for recoverable metadata mismatches.
// Normalization failures are warnings, never errors: the array remains
// numerically usable with defaulted metadata.
var logger = slog.Default()

// SetLogger replaces the package diagnostic logger. Passing nil restores
// slog.Default().
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	logger = l
}

// axisMeta holds the per-dimension metadata of one array instance: label,
// unit and optional coordinate range for every dimension. The maps are owned
// exclusively by their array; every operation that produces a new array
// builds fresh maps.
//
// Invariant: all three maps have exactly the keys 0..ndim-1. A nil range
// value means the coordinate range is absent for that dimension.
type axisMeta struct {
	labels map[int]string
	units  map[int]string
	ranges map[int][]float64
}

// indexRange returns the default ascending coordinate range 0..size-1.
func indexRange(size int) []float64 {
	r := make([]float64, size)
	for i := range r {
		r[i] = float64(i)
	}

	return r
}

// defaultAxes builds the default metadata for a shape: empty labels and
// units, index ranges.
func defaultAxes(shape []int) axisMeta {
	m := axisMeta{
		labels: make(map[int]string, len(shape)),
		units:  make(map[int]string, len(shape)),
		ranges: make(map[int][]float64, len(shape)),
	}
	for d, s := range shape {
		m.labels[d] = ""
		m.units[d] = ""
		m.ranges[d] = indexRange(s)
	}

	return m
}

// clone deep-copies the metadata store, including range slices.
func (m axisMeta) clone() axisMeta {
	c := axisMeta{
		labels: make(map[int]string, len(m.labels)),
		units:  make(map[int]string, len(m.units)),
		ranges: make(map[int][]float64, len(m.ranges)),
	}
	for d, v := range m.labels {
		c.labels[d] = v
	}
	for d, v := range m.units {
		c.units[d] = v
	}
	for d, v := range m.ranges {
		c.ranges[d] = slices.Clone(v)
	}

	return c
}

// flattenedAxes returns the single-axis metadata used when an array collapses
// to one dimension with no per-axis correspondence left to preserve.
func flattenedAxes(size int) axisMeta {
	return axisMeta{
		labels: map[int]string{0: FlattenedLabel},
		units:  map[int]string{0: ""},
		ranges: map[int][]float64{0: indexRange(size)},
	}
}

// keysMatch reports whether the key set of a keyed spec is exactly
// {0..ndim-1}.
func keysMatch[T any](m map[int]T, ndim int) bool {
	if len(m) != ndim {
		return false
	}
	for d := range m {
		if d < 0 || d >= ndim {
			return false
		}
	}

	return true
}

// normalizeStrings converts an ordered per-axis string spec into the
// canonical keyed map. A length mismatch resets the whole kind to defaults
// with a warning.
func normalizeStrings(vals []string, ndim int, kind string) map[int]string {
	out := make(map[int]string, ndim)
	if len(vals) != ndim {
		logger.Warn("axis spec length mismatch, resetting to defaults",
			"kind", kind, "expected", ndim, "actual", len(vals))
		for d := 0; d < ndim; d++ {
			out[d] = ""
		}

		return out
	}
	for d, v := range vals {
		out[d] = v
	}

	return out
}

// normalizeStringMap converts a keyed per-axis string spec into the canonical
// map. A key-set mismatch resets the whole kind to defaults with a warning.
func normalizeStringMap(m map[int]string, ndim int, kind string) map[int]string {
	out := make(map[int]string, ndim)
	if !keysMatch(m, ndim) {
		logger.Warn("axis spec keys do not cover dimensions, resetting to defaults",
			"kind", kind, "expected_dims", ndim, "actual_keys", len(m))
		for d := 0; d < ndim; d++ {
			out[d] = ""
		}

		return out
	}
	for d, v := range m {
		out[d] = v
	}

	return out
}

// normalizeRanges converts an ordered per-axis range spec into the canonical
// keyed map. A length mismatch resets the whole kind to defaults. A nil entry
// is kept as "absent". A non-nil entry whose length does not match the
// dimension size is individually reset to the index range.
func normalizeRanges(vals [][]float64, shape []int, kind string) map[int][]float64 {
	ndim := len(shape)
	out := make(map[int][]float64, ndim)
	if len(vals) != ndim {
		logger.Warn("axis spec length mismatch, resetting to defaults",
			"kind", kind, "expected", ndim, "actual", len(vals))
		for d, s := range shape {
			out[d] = indexRange(s)
		}

		return out
	}
	for d, v := range vals {
		out[d] = normalizeRangeEntry(v, d, shape[d], kind)
	}

	return out
}

// normalizeRangeMap converts a keyed per-axis range spec into the canonical
// map, with the same fallback rules as normalizeRanges.
func normalizeRangeMap(m map[int][]float64, shape []int, kind string) map[int][]float64 {
	ndim := len(shape)
	out := make(map[int][]float64, ndim)
	if !keysMatch(m, ndim) {
		logger.Warn("axis spec keys do not cover dimensions, resetting to defaults",
			"kind", kind, "expected_dims", ndim, "actual_keys", len(m))
		for d, s := range shape {
			out[d] = indexRange(s)
		}

		return out
	}
	for d, v := range m {
		out[d] = normalizeRangeEntry(v, d, shape[d], kind)
	}

	return out
}

func normalizeRangeEntry(v []float64, dim, size int, kind string) []float64 {
	if v == nil {
		return nil
	}
	if len(v) != size {
		logger.Warn("axis range length does not match dimension size, resetting entry",
			"kind", kind, "dim", dim, "expected", size, "actual", len(v))

		return indexRange(size)
	}

	return slices.Clone(v)
}
