package ndarray

import (
	"fmt"
	"slices"

	"github.com/arloliu/larray/errs"
	"github.com/arloliu/larray/internal/options"
)

// Array is a labeled dense numeric array: a row-major float64 buffer of
// arbitrary rank with per-dimension metadata, a scalar data unit/label, and
// a free-form metadata map.
//
// An Array exclusively owns its metadata; the numeric buffer may be shared
// with an array the instance was derived from (see the package documentation
// for which operations alias and which copy).
type Array struct {
	data  []float64
	shape []int
	axes  axisMeta

	dataUnit  string
	dataLabel string
	meta      map[string]any
}

// Option configures an Array during construction.
type Option = options.Option[*Array]

// New creates a labeled array wrapping the given buffer with the given shape.
//
// The shape must be non-empty with positive dimensions whose product equals
// len(data); anything else is a programming error and fails with
// errs.ErrInvalidShape or errs.ErrShapeMismatch. The buffer is used directly,
// not copied.
//
// Axis metadata defaults to empty labels/units and ascending index ranges.
// Malformed axis specs passed through options never fail construction: they
// log a warning and fall back to those defaults.
func New(data []float64, shape []int, opts ...Option) (*Array, error) {
	if err := validateShape(shape, len(data)); err != nil {
		return nil, err
	}

	a := &Array{
		data:  data,
		shape: slices.Clone(shape),
		axes:  defaultAxes(shape),
		meta:  map[string]any{},
	}
	if err := options.Apply(a, opts...); err != nil {
		return nil, err
	}

	return a, nil
}

// WithAxisLabels sets axis labels from an ordered spec, one per dimension.
func WithAxisLabels(labels ...string) Option {
	return options.NoError(func(a *Array) {
		a.axes.labels = normalizeStrings(labels, a.NDim(), "axis_labels")
	})
}

// WithAxisLabelMap sets axis labels from a keyed spec mapping dimension
// index to label.
func WithAxisLabelMap(labels map[int]string) Option {
	return options.NoError(func(a *Array) {
		a.axes.labels = normalizeStringMap(labels, a.NDim(), "axis_labels")
	})
}

// WithAxisUnits sets axis units from an ordered spec, one per dimension.
func WithAxisUnits(units ...string) Option {
	return options.NoError(func(a *Array) {
		a.axes.units = normalizeStrings(units, a.NDim(), "axis_units")
	})
}

// WithAxisUnitMap sets axis units from a keyed spec.
func WithAxisUnitMap(units map[int]string) Option {
	return options.NoError(func(a *Array) {
		a.axes.units = normalizeStringMap(units, a.NDim(), "axis_units")
	})
}

// WithAxisRanges sets axis coordinate ranges from an ordered spec. A nil
// entry marks that dimension's range as absent.
func WithAxisRanges(ranges ...[]float64) Option {
	return options.NoError(func(a *Array) {
		a.axes.ranges = normalizeRanges(ranges, a.shape, "axis_ranges")
	})
}

// WithAxisRangeMap sets axis coordinate ranges from a keyed spec. A nil
// value marks that dimension's range as absent.
func WithAxisRangeMap(ranges map[int][]float64) Option {
	return options.NoError(func(a *Array) {
		a.axes.ranges = normalizeRangeMap(ranges, a.shape, "axis_ranges")
	})
}

// WithDataUnit sets the scalar data unit.
func WithDataUnit(unit string) Option {
	return options.NoError(func(a *Array) { a.dataUnit = unit })
}

// WithDataLabel sets the scalar data label.
func WithDataLabel(label string) Option {
	return options.NoError(func(a *Array) { a.dataLabel = label })
}

// WithMetadata sets the free-form metadata map. The map is deep-copied; the
// array never shares it with the caller.
func WithMetadata(meta map[string]any) Option {
	return options.NoError(func(a *Array) { a.meta = cloneMetadata(meta) })
}

// NDim returns the number of dimensions.
func (a *Array) NDim() int { return len(a.shape) }

// Len returns the total number of elements.
func (a *Array) Len() int { return len(a.data) }

// Shape returns a copy of the dimension sizes.
func (a *Array) Shape() []int { return slices.Clone(a.shape) }

// DimSize returns the size of the given dimension.
func (a *Array) DimSize(dim int) (int, error) {
	if dim < 0 || dim >= len(a.shape) {
		return 0, fmt.Errorf("%w: dimension %d of %d", errs.ErrInvalidAxis, dim, len(a.shape))
	}

	return a.shape[dim], nil
}

// AxisLabels returns a snapshot of the per-dimension labels.
func (a *Array) AxisLabels() map[int]string {
	out := make(map[int]string, len(a.axes.labels))
	for d, v := range a.axes.labels {
		out[d] = v
	}

	return out
}

// AxisUnits returns a snapshot of the per-dimension units.
func (a *Array) AxisUnits() map[int]string {
	out := make(map[int]string, len(a.axes.units))
	for d, v := range a.axes.units {
		out[d] = v
	}

	return out
}

// AxisRanges returns a snapshot of the per-dimension coordinate ranges.
// A nil value means the range is absent for that dimension.
func (a *Array) AxisRanges() map[int][]float64 {
	out := make(map[int][]float64, len(a.axes.ranges))
	for d, v := range a.axes.ranges {
		out[d] = slices.Clone(v)
	}

	return out
}

// AxisLabel returns the label of the given dimension.
func (a *Array) AxisLabel(dim int) (string, error) {
	if dim < 0 || dim >= len(a.shape) {
		return "", fmt.Errorf("%w: dimension %d of %d", errs.ErrInvalidAxis, dim, len(a.shape))
	}

	return a.axes.labels[dim], nil
}

// AxisUnit returns the unit of the given dimension.
func (a *Array) AxisUnit(dim int) (string, error) {
	if dim < 0 || dim >= len(a.shape) {
		return "", fmt.Errorf("%w: dimension %d of %d", errs.ErrInvalidAxis, dim, len(a.shape))
	}

	return a.axes.units[dim], nil
}

// AxisRange returns a copy of the coordinate range of the given dimension,
// or nil if the range is absent.
func (a *Array) AxisRange(dim int) ([]float64, error) {
	if dim < 0 || dim >= len(a.shape) {
		return nil, fmt.Errorf("%w: dimension %d of %d", errs.ErrInvalidAxis, dim, len(a.shape))
	}

	return slices.Clone(a.axes.ranges[dim]), nil
}

// DataUnit returns the scalar data unit.
func (a *Array) DataUnit() string { return a.dataUnit }

// DataLabel returns the scalar data label.
func (a *Array) DataLabel() string { return a.dataLabel }

// Metadata returns a deep copy of the free-form metadata map.
func (a *Array) Metadata() map[string]any { return cloneMetadata(a.meta) }

// SetAxisLabels replaces all axis labels from an ordered spec. A malformed
// spec resets labels to defaults with a warning.
func (a *Array) SetAxisLabels(labels ...string) {
	a.axes.labels = normalizeStrings(labels, a.NDim(), "axis_labels")
}

// SetAxisLabelMap replaces all axis labels from a keyed spec.
func (a *Array) SetAxisLabelMap(labels map[int]string) {
	a.axes.labels = normalizeStringMap(labels, a.NDim(), "axis_labels")
}

// SetAxisUnits replaces all axis units from an ordered spec.
func (a *Array) SetAxisUnits(units ...string) {
	a.axes.units = normalizeStrings(units, a.NDim(), "axis_units")
}

// SetAxisUnitMap replaces all axis units from a keyed spec.
func (a *Array) SetAxisUnitMap(units map[int]string) {
	a.axes.units = normalizeStringMap(units, a.NDim(), "axis_units")
}

// SetAxisRanges replaces all axis coordinate ranges from an ordered spec.
func (a *Array) SetAxisRanges(ranges ...[]float64) {
	a.axes.ranges = normalizeRanges(ranges, a.shape, "axis_ranges")
}

// SetAxisRangeMap replaces all axis coordinate ranges from a keyed spec.
func (a *Array) SetAxisRangeMap(ranges map[int][]float64) {
	a.axes.ranges = normalizeRangeMap(ranges, a.shape, "axis_ranges")
}

// SetDataUnit sets the scalar data unit.
func (a *Array) SetDataUnit(unit string) { a.dataUnit = unit }

// SetDataLabel sets the scalar data label.
func (a *Array) SetDataLabel(label string) { a.dataLabel = label }

// SetMetadata replaces the free-form metadata map with a deep copy of m.
func (a *Array) SetMetadata(meta map[string]any) { a.meta = cloneMetadata(meta) }

// At returns the element at the given multi-dimensional index.
// An index of the wrong rank or out of bounds panics, like indexing a Go
// slice out of range.
func (a *Array) At(idx ...int) float64 {
	return a.data[a.offset(idx)]
}

// Set stores val at the given multi-dimensional index, with the same panic
// behavior as At.
func (a *Array) Set(val float64, idx ...int) {
	a.data[a.offset(idx)] = val
}

// Value1D returns the element at the given linear (row-major) offset.
func (a *Array) Value1D(i int) float64 { return a.data[i] }

// Set1D stores val at the given linear (row-major) offset.
func (a *Array) Set1D(val float64, i int) { a.data[i] = val }

func (a *Array) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("ndarray: index rank %d does not match array rank %d", len(idx), len(a.shape)))
	}
	st := elemStrides(a.shape)
	off := 0
	for d, i := range idx {
		if i < 0 || i >= a.shape[d] {
			panic(fmt.Sprintf("ndarray: index %d out of range for dimension %d (size %d)", i, d, a.shape[d]))
		}
		off += i * st[d]
	}

	return off
}

// Values returns a copy of the underlying buffer in row-major order.
func (a *Array) Values() []float64 { return slices.Clone(a.data) }

// RawValues returns the underlying buffer without copying. Mutations through
// the returned slice are visible to this array and to any array sharing the
// buffer.
func (a *Array) RawValues() []float64 { return a.data }

// Fill sets every element to v.
func (a *Array) Fill(v float64) {
	for i := range a.data {
		a.data[i] = v
	}
}

// Clone returns a deep copy: buffer, shape and all metadata are independent
// of the receiver.
func (a *Array) Clone() *Array {
	return &Array{
		data:      slices.Clone(a.data),
		shape:     slices.Clone(a.shape),
		axes:      a.axes.clone(),
		dataUnit:  a.dataUnit,
		dataLabel: a.dataLabel,
		meta:      cloneMetadata(a.meta),
	}
}

// derive builds a new array around the given buffer and shape, carrying the
// given axis metadata and a deep copy of the receiver's scalar metadata.
func (a *Array) derive(data []float64, shape []int, axes axisMeta) *Array {
	return &Array{
		data:      data,
		shape:     shape,
		axes:      axes,
		dataUnit:  a.dataUnit,
		dataLabel: a.dataLabel,
		meta:      cloneMetadata(a.meta),
	}
}

// Add returns a new array with the elementwise sum of a and other.
// Shapes must match exactly; there is no broadcasting. The result carries
// the receiver's metadata.
func (a *Array) Add(other *Array) (*Array, error) {
	return a.zip(other, func(x, y float64) float64 { return x + y })
}

// Sub returns a new array with the elementwise difference a - other.
func (a *Array) Sub(other *Array) (*Array, error) {
	return a.zip(other, func(x, y float64) float64 { return x - y })
}

// Mul returns a new array with the elementwise product of a and other.
func (a *Array) Mul(other *Array) (*Array, error) {
	return a.zip(other, func(x, y float64) float64 { return x * y })
}

// Div returns a new array with the elementwise quotient a / other.
// Division by zero follows IEEE 754 (Inf/NaN), as with plain float64.
func (a *Array) Div(other *Array) (*Array, error) {
	return a.zip(other, func(x, y float64) float64 { return x / y })
}

func (a *Array) zip(other *Array, fn func(x, y float64) float64) (*Array, error) {
	if !slices.Equal(a.shape, other.shape) {
		return nil, fmt.Errorf("%w: %v vs %v", errs.ErrShapeMismatch, a.shape, other.shape)
	}
	out := make([]float64, len(a.data))
	for i := range out {
		out[i] = fn(a.data[i], other.data[i])
	}

	return a.derive(out, slices.Clone(a.shape), a.axes.clone()), nil
}

// AddScalar returns a new array with v added to every element.
func (a *Array) AddScalar(v float64) *Array {
	return a.mapValues(func(x float64) float64 { return x + v })
}

// MulScalar returns a new array with every element multiplied by v.
func (a *Array) MulScalar(v float64) *Array {
	return a.mapValues(func(x float64) float64 { return x * v })
}

func (a *Array) mapValues(fn func(x float64) float64) *Array {
	out := make([]float64, len(a.data))
	for i, x := range a.data {
		out[i] = fn(x)
	}

	return a.derive(out, slices.Clone(a.shape), a.axes.clone())
}

// cloneMetadata deep-copies a free-form metadata map. Nested map[string]any
// and []any values are copied recursively; everything else is copied by
// assignment.
func cloneMetadata(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneMetaValue(v)
	}

	return out
}

func cloneMetaValue(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		return cloneMetadata(vv)
	case []any:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = cloneMetaValue(e)
		}

		return out
	default:
		return v
	}
}
