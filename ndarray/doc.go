// Package ndarray implements a labeled dense numeric array: a row-major
// float64 buffer of arbitrary rank whose dimensions carry metadata (a label,
// a physical unit, and an optional coordinate range), plus a scalar data
// unit/label and a free-form metadata map.
//
// The type behaves like an ordinary dense array for element access and
// elementwise arithmetic, while every structural operation (slicing,
// transposition, flattening, dimension merging, squeezing, rebinning)
// re-derives the axis metadata of its result so that the label-to-dimension
// correspondence is never silently corrupted. After every public operation
// the axis maps cover exactly the dimensions 0..NDim()-1, and any non-nil
// coordinate range has the same length as its dimension.
//
// # Construction
//
//	arr, err := ndarray.New(data, []int{6, 7},
//	    ndarray.WithAxisLabels("energy", "angle"),
//	    ndarray.WithAxisUnits("eV", "deg"),
//	    ndarray.WithDataLabel("intensity"),
//	)
//
// Axis specs may be given in ordered form (one entry per dimension) or keyed
// form (a map from dimension index to value). A spec whose length or key set
// does not match the array's rank is rejected as a whole: a warning is logged
// through the package logger and the affected metadata kind falls back to its
// defaults. The array stays numerically usable either way.
//
// # Views and copies
//
// Arrays always own their metadata maps; two instances never share them.
// The numeric buffer is shared only where an operation is a pure reshape or
// a contiguous sub-block: Flatten and Squeeze alias the buffer, and Slice
// aliases it for a leading At/Span prefix followed by full selectors. All
// other operations (gathering slices, Transpose, FlattenDims, Rebin,
// arithmetic) allocate fresh buffers. Each method documents which behavior
// applies. Concurrent writes through aliased buffers are the caller's
// responsibility, exactly as for any shared Go slice.
package ndarray
