package ndarray

import (
	"fmt"
	"slices"

	"github.com/arloliu/larray/errs"
)

// Flatten collapses the array to one dimension, preserving row-major memory
// order. The per-axis metadata is reset to a single "Flattened" axis with an
// index range, since the original axis correspondence cannot survive a full
// collapse.
//
// The result is a view: it shares the receiver's buffer (a flatten of a
// contiguous row-major array is a pure reshape).
func (a *Array) Flatten() *Array {
	return a.derive(a.data, []int{len(a.data)}, flattenedAxes(len(a.data)))
}

// FlattenDims merges the contiguous inclusive dimension span [start, end]
// into a single dimension, with default metadata for the merged axis:
// label "Flattened", empty unit, no coordinate range. Axes outside the span
// keep their content and are renumbered.
//
// The span bounds must satisfy 0 <= start <= end < NDim(); anything else is
// a programming error and fails with errs.ErrInvalidAxis. The result owns a
// copied buffer.
func (a *Array) FlattenDims(start, end int) (*Array, error) {
	return a.FlattenDimsAs(start, end, FlattenedLabel, "", nil)
}

// FlattenDimsAs is FlattenDims with an explicit label, unit and coordinate
// range for the merged axis. A range whose length does not match the merged
// size degrades to absent with a warning; it never fails the operation.
func (a *Array) FlattenDimsAs(start, end int, label, unit string, rng []float64) (*Array, error) {
	ndim := a.NDim()
	if start < 0 || end >= ndim || start > end {
		return nil, fmt.Errorf("%w: cannot merge dimension span [%d,%d] of %d-dimensional array",
			errs.ErrInvalidAxis, start, end, ndim)
	}

	merged := 1
	for d := start; d <= end; d++ {
		merged *= a.shape[d]
	}

	outShape := make([]int, 0, ndim-(end-start))
	outShape = append(outShape, a.shape[:start]...)
	outShape = append(outShape, merged)
	outShape = append(outShape, a.shape[end+1:]...)

	axes := axisMeta{
		labels: make(map[int]string, len(outShape)),
		units:  make(map[int]string, len(outShape)),
		ranges: make(map[int][]float64, len(outShape)),
	}
	for d := 0; d < start; d++ {
		axes.labels[d] = a.axes.labels[d]
		axes.units[d] = a.axes.units[d]
		axes.ranges[d] = slices.Clone(a.axes.ranges[d])
	}
	axes.labels[start] = label
	axes.units[start] = unit
	var mergedRange []float64
	if rng != nil {
		if len(rng) == merged {
			mergedRange = slices.Clone(rng)
		} else {
			logger.Warn("merged axis range length does not match merged size, dropping range",
				"expected", merged, "actual", len(rng))
		}
	}
	axes.ranges[start] = mergedRange
	for d := end + 1; d < ndim; d++ {
		nd := d - (end - start)
		axes.labels[nd] = a.axes.labels[d]
		axes.units[nd] = a.axes.units[d]
		axes.ranges[nd] = slices.Clone(a.axes.ranges[d])
	}

	// Merging a contiguous row-major span is a reshape, but the result is a
	// copy so the two arrays never write through each other.
	return a.derive(slices.Clone(a.data), outShape, axes), nil
}

// Transpose permutes the dimensions. With no arguments the order is fully
// reversed; otherwise axes must be a permutation of 0..NDim()-1, and output
// dimension i takes the data and axis metadata of input dimension axes[i].
//
// The result owns a gathered copy of the buffer (storage stays row-major
// contiguous; strided views are not used).
func (a *Array) Transpose(axes ...int) (*Array, error) {
	ndim := a.NDim()
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		return nil, fmt.Errorf("%w: %d axes for %d dimensions", errs.ErrInvalidPermutation, len(axes), ndim)
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim || seen[ax] {
			return nil, fmt.Errorf("%w: axes %v", errs.ErrInvalidPermutation, axes)
		}
		seen[ax] = true
	}

	outShape := make([]int, ndim)
	meta := axisMeta{
		labels: make(map[int]string, ndim),
		units:  make(map[int]string, ndim),
		ranges: make(map[int][]float64, ndim),
	}
	for i, src := range axes {
		outShape[i] = a.shape[src]
		meta.labels[i] = a.axes.labels[src]
		meta.units[i] = a.axes.units[src]
		meta.ranges[i] = slices.Clone(a.axes.ranges[src])
	}

	srcStrides := elemStrides(a.shape)
	out := make([]float64, len(a.data))
	outIdx := make([]int, ndim)
	srcIdx := make([]int, ndim)
	for o := range out {
		unravel(o, outShape, outIdx)
		for i, src := range axes {
			srcIdx[src] = outIdx[i]
		}
		out[o] = a.data[ravel(srcIdx, srcStrides)]
	}

	return a.derive(out, outShape, meta), nil
}

// Squeeze removes every dimension of size 1, dropping its axis metadata and
// renumbering the rest. If all dimensions have size 1 a single axis is kept,
// since rank-0 arrays are not representable.
//
// The result is a view: squeezing is a pure reshape of contiguous storage.
func (a *Array) Squeeze() *Array {
	kept := make([]int, 0, a.NDim())
	for d, s := range a.shape {
		if s != 1 {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		kept = []int{0}
	}

	return a.derive(a.data, a.keepShape(kept), a.keepAxes(kept))
}

// SqueezeAxis removes only the given dimension, which must have size 1;
// squeezing a larger dimension is a programming error and fails with
// errs.ErrInvalidAxis.
//
// The result is a view sharing the receiver's buffer.
func (a *Array) SqueezeAxis(dim int) (*Array, error) {
	if dim < 0 || dim >= a.NDim() {
		return nil, fmt.Errorf("%w: dimension %d of %d", errs.ErrInvalidAxis, dim, a.NDim())
	}
	if a.shape[dim] != 1 {
		return nil, fmt.Errorf("%w: cannot squeeze dimension %d with size %d", errs.ErrInvalidAxis, dim, a.shape[dim])
	}
	if a.NDim() == 1 {
		// Nothing left to remove; keep the single axis.
		return a.derive(a.data, slices.Clone(a.shape), a.axes.clone()), nil
	}

	kept := make([]int, 0, a.NDim()-1)
	for d := range a.shape {
		if d != dim {
			kept = append(kept, d)
		}
	}

	return a.derive(a.data, a.keepShape(kept), a.keepAxes(kept)), nil
}

func (a *Array) keepShape(kept []int) []int {
	out := make([]int, len(kept))
	for i, d := range kept {
		out[i] = a.shape[d]
	}

	return out
}

func (a *Array) keepAxes(kept []int) axisMeta {
	axes := axisMeta{
		labels: make(map[int]string, len(kept)),
		units:  make(map[int]string, len(kept)),
		ranges: make(map[int][]float64, len(kept)),
	}
	for i, d := range kept {
		axes.labels[i] = a.axes.labels[d]
		axes.units[i] = a.axes.units[d]
		axes.ranges[i] = slices.Clone(a.axes.ranges[d])
	}

	return axes
}

// Rebin block-averages the array with the same factor along every dimension.
// See RebinAxes.
func (a *Array) Rebin(binning int) (*Array, error) {
	factors := make([]int, a.NDim())
	for d := range factors {
		factors[d] = binning
	}

	return a.RebinAxes(factors)
}

// RebinAxes block-averages the array with a per-dimension factor. Each
// dimension is symmetrically center-cropped to the largest multiple of its
// factor (keeping at least one bin), then consecutive groups of factor
// elements are averaged. Labels and units are unchanged; a non-nil
// coordinate range is cropped and block-averaged identically. A factor of 1
// leaves its dimension untouched; all factors 1 yields a plain copy.
//
// A factor below 1 or larger than its dimension would produce an empty
// shape and fails with errs.ErrInvalidBinning. The result always owns its
// buffer.
func (a *Array) RebinAxes(factors []int) (*Array, error) {
	ndim := a.NDim()
	if len(factors) != ndim {
		return nil, fmt.Errorf("%w: %d factors for %d dimensions", errs.ErrInvalidBinning, len(factors), ndim)
	}

	outShape := make([]int, ndim)
	cropStart := make([]int, ndim)
	for d, f := range factors {
		if f < 1 || f > a.shape[d] {
			return nil, fmt.Errorf("%w: factor %d on dimension %d (size %d)", errs.ErrInvalidBinning, f, d, a.shape[d])
		}
		outShape[d] = a.shape[d] / f
		cropStart[d] = (a.shape[d] - outShape[d]*f) / 2
	}

	blockSize := 1
	for _, f := range factors {
		blockSize *= f
	}

	srcStrides := elemStrides(a.shape)
	out := make([]float64, numElements(outShape))
	outIdx := make([]int, ndim)
	blockIdx := make([]int, ndim)
	srcIdx := make([]int, ndim)
	for o := range out {
		unravel(o, outShape, outIdx)
		sum := 0.0
		for b := 0; b < blockSize; b++ {
			unravel(b, factors, blockIdx)
			for d := range srcIdx {
				srcIdx[d] = cropStart[d] + outIdx[d]*factors[d] + blockIdx[d]
			}
			sum += a.data[ravel(srcIdx, srcStrides)]
		}
		out[o] = sum / float64(blockSize)
	}

	axes := axisMeta{
		labels: make(map[int]string, ndim),
		units:  make(map[int]string, ndim),
		ranges: make(map[int][]float64, ndim),
	}
	for d := 0; d < ndim; d++ {
		axes.labels[d] = a.axes.labels[d]
		axes.units[d] = a.axes.units[d]
		axes.ranges[d] = rebinRange(a.axes.ranges[d], cropStart[d], outShape[d], factors[d])
	}

	return a.derive(out, outShape, axes), nil
}

// rebinRange crops and block-averages a coordinate range the same way the
// data along that dimension is reduced. A nil range stays absent.
func rebinRange(r []float64, cropStart, bins, factor int) []float64 {
	if r == nil {
		return nil
	}
	out := make([]float64, bins)
	for i := 0; i < bins; i++ {
		sum := 0.0
		base := cropStart + i*factor
		for j := 0; j < factor; j++ {
			sum += r[base+j]
		}
		out[i] = sum / float64(factor)
	}

	return out
}
