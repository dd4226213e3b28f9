package ndarray

import (
	"io"
	"log/slog"
	"testing"

	"github.com/arloliu/larray/errs"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Normalization fallbacks are exercised on purpose; keep the warnings
	// out of the test output.
	SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.Run()
}

// arange returns [0, 1, ..., n-1] as float64 values.
func arange(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}

	return out
}

// scaledRange returns [off+0*f, off+1*f, ...] with n entries.
func scaledRange(n int, f, off float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = off + float64(i)*f
	}

	return out
}

// requireConsistent asserts the metadata invariants: every axis map covers
// exactly the dimensions 0..NDim()-1 and non-nil ranges match their
// dimension size.
func requireConsistent(t *testing.T, a *Array) {
	t.Helper()

	ndim := a.NDim()
	require.Len(t, a.axes.labels, ndim)
	require.Len(t, a.axes.units, ndim)
	require.Len(t, a.axes.ranges, ndim)
	for d := 0; d < ndim; d++ {
		require.Contains(t, a.axes.labels, d)
		require.Contains(t, a.axes.units, d)
		require.Contains(t, a.axes.ranges, d)
		if r := a.axes.ranges[d]; r != nil {
			require.Len(t, r, a.shape[d], "range length for dim %d", d)
		}
	}
	require.Equal(t, numElements(a.shape), a.Len())
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		data    []float64
		shape   []int
		wantErr error
	}{
		{name: "nil shape", data: arange(4), shape: nil, wantErr: errs.ErrInvalidShape},
		{name: "zero dimension", data: arange(0), shape: []int{0, 3}, wantErr: errs.ErrInvalidShape},
		{name: "negative dimension", data: arange(6), shape: []int{-2, 3}, wantErr: errs.ErrInvalidShape},
		{name: "buffer too short", data: arange(5), shape: []int{2, 3}, wantErr: errs.ErrShapeMismatch},
		{name: "buffer too long", data: arange(7), shape: []int{2, 3}, wantErr: errs.ErrShapeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.data, tt.shape)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewDefaults(t *testing.T) {
	arr, err := New(arange(12), []int{3, 4})
	require.NoError(t, err)
	requireConsistent(t, arr)

	require.Equal(t, []int{3, 4}, arr.Shape())
	require.Equal(t, 2, arr.NDim())
	require.Equal(t, 12, arr.Len())
	require.Equal(t, map[int]string{0: "", 1: ""}, arr.AxisLabels())
	require.Equal(t, map[int]string{0: "", 1: ""}, arr.AxisUnits())
	require.Equal(t, map[int][]float64{0: {0, 1, 2}, 1: {0, 1, 2, 3}}, arr.AxisRanges())
	require.Empty(t, arr.DataUnit())
	require.Empty(t, arr.DataLabel())
	require.Empty(t, arr.Metadata())
}

func TestNewWithAxisMetadata(t *testing.T) {
	rng0 := []float64{10, 20, 30}
	arr, err := New(arange(6), []int{3, 2},
		WithAxisLabels("energy", "angle"),
		WithAxisUnits("eV", "deg"),
		WithAxisRanges(rng0, nil),
		WithDataUnit("counts"),
		WithDataLabel("intensity"),
		WithMetadata(map[string]any{"scan": "s001"}),
	)
	require.NoError(t, err)
	requireConsistent(t, arr)

	require.Equal(t, map[int]string{0: "energy", 1: "angle"}, arr.AxisLabels())
	require.Equal(t, map[int]string{0: "eV", 1: "deg"}, arr.AxisUnits())

	r0, err := arr.AxisRange(0)
	require.NoError(t, err)
	require.Equal(t, rng0, r0)
	r1, err := arr.AxisRange(1)
	require.NoError(t, err)
	require.Nil(t, r1)

	require.Equal(t, "counts", arr.DataUnit())
	require.Equal(t, "intensity", arr.DataLabel())
	require.Equal(t, map[string]any{"scan": "s001"}, arr.Metadata())

	// Supplied range is copied, not referenced.
	rng0[0] = -1
	r0, _ = arr.AxisRange(0)
	require.Equal(t, 10.0, r0[0])
}

func TestAxisSpecFallbacks(t *testing.T) {
	t.Run("ordered labels wrong length", func(t *testing.T) {
		arr, err := New(arange(6), []int{3, 2}, WithAxisLabels("only-one"))
		require.NoError(t, err)
		requireConsistent(t, arr)
		require.Equal(t, map[int]string{0: "", 1: ""}, arr.AxisLabels())
	})

	t.Run("keyed labels wrong keys", func(t *testing.T) {
		arr, err := New(arange(6), []int{3, 2}, WithAxisLabelMap(map[int]string{0: "a", 2: "c"}))
		require.NoError(t, err)
		requireConsistent(t, arr)
		require.Equal(t, map[int]string{0: "", 1: ""}, arr.AxisLabels())
	})

	t.Run("keyed units valid", func(t *testing.T) {
		arr, err := New(arange(6), []int{3, 2}, WithAxisUnitMap(map[int]string{0: "s", 1: "m"}))
		require.NoError(t, err)
		require.Equal(t, map[int]string{0: "s", 1: "m"}, arr.AxisUnits())
	})

	t.Run("ordered ranges wrong length resets whole kind", func(t *testing.T) {
		arr, err := New(arange(6), []int{3, 2}, WithAxisRanges([]float64{1, 2, 3}))
		require.NoError(t, err)
		requireConsistent(t, arr)
		require.Equal(t, map[int][]float64{0: {0, 1, 2}, 1: {0, 1}}, arr.AxisRanges())
	})

	t.Run("range entry with bad length resets that entry", func(t *testing.T) {
		arr, err := New(arange(6), []int{3, 2},
			WithAxisRanges([]float64{9, 9}, []float64{5, 6}))
		require.NoError(t, err)
		requireConsistent(t, arr)
		require.Equal(t, map[int][]float64{0: {0, 1, 2}, 1: {5, 6}}, arr.AxisRanges())
	})

	t.Run("keyed ranges preserve absent entries", func(t *testing.T) {
		arr, err := New(arange(6), []int{3, 2},
			WithAxisRangeMap(map[int][]float64{0: nil, 1: {7, 8}}))
		require.NoError(t, err)
		requireConsistent(t, arr)
		require.Equal(t, map[int][]float64{0: nil, 1: {7, 8}}, arr.AxisRanges())
	})
}

func TestSettersRenormalize(t *testing.T) {
	arr, err := New(arange(6), []int{3, 2})
	require.NoError(t, err)

	arr.SetAxisLabels("x", "y")
	require.Equal(t, map[int]string{0: "x", 1: "y"}, arr.AxisLabels())

	arr.SetAxisLabels("too", "many", "labels")
	require.Equal(t, map[int]string{0: "", 1: ""}, arr.AxisLabels())

	arr.SetAxisUnitMap(map[int]string{0: "mm", 1: "ns"})
	require.Equal(t, map[int]string{0: "mm", 1: "ns"}, arr.AxisUnits())

	arr.SetAxisRangeMap(map[int][]float64{0: {1, 2, 3}, 1: nil})
	require.Equal(t, map[int][]float64{0: {1, 2, 3}, 1: nil}, arr.AxisRanges())

	arr.SetDataUnit("K")
	arr.SetDataLabel("temperature")
	require.Equal(t, "K", arr.DataUnit())
	require.Equal(t, "temperature", arr.DataLabel())
	requireConsistent(t, arr)
}

func TestMetadataIsolation(t *testing.T) {
	meta := map[string]any{
		"scan":   "s42",
		"nested": map[string]any{"temp": 4.2},
	}
	arr, err := New(arange(4), []int{4}, WithMetadata(meta))
	require.NoError(t, err)

	// Mutating the caller's map does not affect the array.
	meta["scan"] = "clobbered"
	meta["nested"].(map[string]any)["temp"] = -1.0
	got := arr.Metadata()
	require.Equal(t, "s42", got["scan"])
	require.Equal(t, 4.2, got["nested"].(map[string]any)["temp"])

	// Mutating a snapshot does not affect the array either.
	got["scan"] = "still clobbered"
	require.Equal(t, "s42", arr.Metadata()["scan"])
}

func TestAtSetValues(t *testing.T) {
	arr, err := New(arange(6), []int{2, 3})
	require.NoError(t, err)

	require.Equal(t, 0.0, arr.At(0, 0))
	require.Equal(t, 5.0, arr.At(1, 2))
	require.Equal(t, 4.0, arr.Value1D(4))

	arr.Set(99, 1, 0)
	require.Equal(t, 99.0, arr.At(1, 0))
	arr.Set1D(-1, 0)
	require.Equal(t, -1.0, arr.At(0, 0))

	require.Panics(t, func() { arr.At(2, 0) })
	require.Panics(t, func() { arr.At(0) })
}

func TestArithmetic(t *testing.T) {
	a, err := New([]float64{1, 2, 3, 4}, []int{2, 2},
		WithAxisLabels("row", "col"), WithDataLabel("signal"))
	require.NoError(t, err)
	b, err := New([]float64{10, 20, 30, 40}, []int{2, 2})
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, []float64{11, 22, 33, 44}, sum.Values())
	// Result carries the receiver's metadata.
	require.Equal(t, map[int]string{0: "row", 1: "col"}, sum.AxisLabels())
	require.Equal(t, "signal", sum.DataLabel())
	requireConsistent(t, sum)

	diff, err := b.Sub(a)
	require.NoError(t, err)
	require.Equal(t, []float64{9, 18, 27, 36}, diff.Values())

	prod, err := a.Mul(b)
	require.NoError(t, err)
	require.Equal(t, []float64{10, 40, 90, 160}, prod.Values())

	quot, err := b.Div(a)
	require.NoError(t, err)
	require.Equal(t, []float64{10, 10, 10, 10}, quot.Values())

	other, err := New(arange(4), []int{4})
	require.NoError(t, err)
	_, err = a.Add(other)
	require.ErrorIs(t, err, errs.ErrShapeMismatch)

	scaled := a.MulScalar(2).AddScalar(1)
	require.Equal(t, []float64{3, 5, 7, 9}, scaled.Values())
	require.Equal(t, "signal", scaled.DataLabel())

	// Operands are untouched.
	require.Equal(t, []float64{1, 2, 3, 4}, a.Values())
}

func TestCloneIndependence(t *testing.T) {
	arr, err := New(arange(4), []int{2, 2},
		WithAxisLabels("a", "b"), WithMetadata(map[string]any{"k": "v"}))
	require.NoError(t, err)

	cp := arr.Clone()
	cp.Set(99, 0, 0)
	cp.SetAxisLabels("x", "y")
	cp.SetMetadata(map[string]any{"k": "other"})

	require.Equal(t, 0.0, arr.At(0, 0))
	require.Equal(t, map[int]string{0: "a", 1: "b"}, arr.AxisLabels())
	require.Equal(t, map[string]any{"k": "v"}, arr.Metadata())
	requireConsistent(t, cp)
}

func TestFill(t *testing.T) {
	arr, err := New(arange(6), []int{6})
	require.NoError(t, err)
	arr.Fill(3.5)
	require.Equal(t, []float64{3.5, 3.5, 3.5, 3.5, 3.5, 3.5}, arr.Values())
}

func TestAxisAccessorErrors(t *testing.T) {
	arr, err := New(arange(4), []int{4})
	require.NoError(t, err)

	_, err = arr.AxisLabel(-1)
	require.ErrorIs(t, err, errs.ErrInvalidAxis)
	_, err = arr.AxisUnit(1)
	require.ErrorIs(t, err, errs.ErrInvalidAxis)
	_, err = arr.AxisRange(4)
	require.ErrorIs(t, err, errs.ErrInvalidAxis)
	_, err = arr.DimSize(99)
	require.ErrorIs(t, err, errs.ErrInvalidAxis)

	size, err := arr.DimSize(0)
	require.NoError(t, err)
	require.Equal(t, 4, size)
}
