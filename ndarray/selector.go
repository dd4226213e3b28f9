package ndarray

import (
	"fmt"
	"slices"

	"github.com/arloliu/larray/errs"
)

// selectorKind discriminates the selector union. The zero value is invalid so
// that a hand-built Selector{} is rejected instead of silently selecting
// nothing.
type selectorKind uint8

const (
	selAt selectorKind = iota + 1
	selAll
	selSpan
	selPick
	selKeep
	selNewAxis
	selMask
)

// Selector is one per-dimension term of an indexing expression: an integer
// index, a span, an index list, a boolean mask, or a new-axis marker.
// Build selectors with At, All, Span, SpanStep, Pick, Keep, NewAxis and Mask.
type Selector struct {
	kind  selectorKind
	at    int
	start int
	stop  int
	step  int
	pick  []int
	mask  []bool
}

// At selects a single index along a dimension. The dimension is removed from
// the result; its label, unit and the range value at the selected index are
// recorded as a provenance entry in the result's metadata under the key
// "sliced_dim<d>" (d = original dimension index).
func At(i int) Selector {
	return Selector{kind: selAt, at: i}
}

// All keeps a dimension in full.
func All() Selector {
	return Selector{kind: selAll}
}

// Span keeps the half-open index interval [start, stop) of a dimension.
func Span(start, stop int) Selector {
	return Selector{kind: selSpan, start: start, stop: stop, step: 1}
}

// SpanStep keeps every step-th index in the half-open interval [start, stop).
// The step must be positive.
func SpanStep(start, stop, step int) Selector {
	return Selector{kind: selSpan, start: start, stop: stop, step: step}
}

// Pick keeps the listed indices of a dimension, in the given order.
// Duplicates are allowed, as with integer-array indexing.
func Pick(indices ...int) Selector {
	return Selector{kind: selPick, pick: slices.Clone(indices)}
}

// Keep keeps the indices of a dimension where mask is true. The mask length
// must equal the dimension size.
func Keep(mask []bool) Selector {
	return Selector{kind: selKeep, mask: slices.Clone(mask)}
}

// NewAxis inserts a new dimension of size 1 at this position, with empty
// label and unit and no coordinate range. Following dimensions shift up.
func NewAxis() Selector {
	return Selector{kind: selNewAxis}
}

// Mask selects elements of the whole array through a full-rank boolean mask
// in row-major order; len(mask) must equal Len(). It must be the only
// selector of the expression. Because a full mask has no per-dimension
// correspondence, the 1-D result carries the single "Flattened" axis instead
// of any of the original axis metadata.
func Mask(mask []bool) Selector {
	return Selector{kind: selMask, mask: slices.Clone(mask)}
}

// resolvedDim is the per-source-dimension outcome of an indexing expression.
type resolvedDim struct {
	fixed bool
	at    int
	all   bool
	picks []int // selected source indices when !fixed && !all
}

// outDimRef maps an output dimension back to its source.
type outDimRef struct {
	newAxis bool
	srcDim  int // valid when !newAxis
}

// Slice applies an indexing expression and returns the resulting array with
// freshly derived axis metadata.
//
// Selectors are matched to dimensions left to right against the original
// numbering; NewAxis terms do not consume a dimension, and missing trailing
// selectors default to All. Integer selectors remove their dimension and
// record a provenance entry; Span/Pick/Keep selectors re-index the
// dimension's coordinate range; surviving dimensions are renumbered
// 0..NDim()-1 preserving order.
//
// The result aliases the receiver's buffer only when the expression is a
// leading run of At selectors, followed by at most one contiguous Span, with
// every later dimension kept in full: that is a contiguous sub-block in
// row-major order. Any other expression gathers into a newly owned buffer.
//
// If every dimension is removed by an integer selector, the result is a
// single-element one-dimensional array (rank-0 arrays are not supported).
func (a *Array) Slice(sels ...Selector) (*Array, error) {
	if len(sels) == 1 && sels[0].kind == selMask {
		return a.sliceMask(sels[0].mask)
	}

	resolved, outDims, prov, err := a.resolveSelectors(sels)
	if err != nil {
		return nil, err
	}

	outShape := make([]int, 0, len(outDims))
	for _, od := range outDims {
		if od.newAxis {
			outShape = append(outShape, 1)
			continue
		}
		r := resolved[od.srcDim]
		if r.all {
			outShape = append(outShape, a.shape[od.srcDim])
		} else {
			outShape = append(outShape, len(r.picks))
		}
	}

	axes := a.sliceAxes(resolved, outDims)

	// Fully-indexed expression: collapse to a single element.
	if len(outShape) == 0 {
		srcIdx := make([]int, a.NDim())
		for d, r := range resolved {
			srcIdx[d] = r.at
		}
		val := a.data[ravel(srcIdx, elemStrides(a.shape))]
		out := a.derive([]float64{val}, []int{1}, defaultAxes([]int{1}))
		applyProvenance(out, prov)

		return out, nil
	}

	var data []float64
	if off, count, ok := a.contiguousBlock(resolved, outDims); ok {
		// View: shares the receiver's buffer.
		data = a.data[off : off+count]
	} else {
		data = a.gather(resolved, outDims, outShape)
	}

	out := a.derive(data, outShape, axes)
	applyProvenance(out, prov)

	return out, nil
}

// provEntry captures an axis removed by integer indexing.
type provEntry struct {
	srcDim int
	label  string
	unit   string
	value  []float64 // nil or single element: range value at the index
}

func applyProvenance(a *Array, prov []provEntry) {
	for _, p := range prov {
		entry := map[string]any{
			"label": p.label,
			"unit":  p.unit,
		}
		if p.value != nil {
			entry["value"] = p.value[0]
		}
		a.meta[fmt.Sprintf("sliced_dim%d", p.srcDim)] = entry
	}
}

// resolveSelectors validates the expression and maps it onto the source
// dimensions, producing the per-dimension resolution, the ordered output
// dimensions, and the provenance of removed axes.
func (a *Array) resolveSelectors(sels []Selector) ([]resolvedDim, []outDimRef, []provEntry, error) {
	ndim := a.NDim()

	consuming := 0
	for i, s := range sels {
		switch s.kind {
		case 0:
			return nil, nil, nil, fmt.Errorf("%w: selector %d is the zero Selector", errs.ErrInvalidSelector, i)
		case selMask:
			return nil, nil, nil, fmt.Errorf("%w: Mask must be the only selector", errs.ErrInvalidSelector)
		case selNewAxis:
		default:
			consuming++
		}
	}
	if consuming > ndim {
		return nil, nil, nil, fmt.Errorf("%w: %d dimension selectors for %d dimensions", errs.ErrInvalidSelector, consuming, ndim)
	}

	padded := slices.Clone(sels)
	for ; consuming < ndim; consuming++ {
		padded = append(padded, All())
	}

	resolved := make([]resolvedDim, ndim)
	outDims := make([]outDimRef, 0, ndim)
	var prov []provEntry

	srcDim := 0
	for _, s := range padded {
		if s.kind == selNewAxis {
			outDims = append(outDims, outDimRef{newAxis: true})
			continue
		}

		size := a.shape[srcDim]
		switch s.kind {
		case selAt:
			if s.at < 0 || s.at >= size {
				return nil, nil, nil, fmt.Errorf("%w: index %d out of range for dimension %d (size %d)",
					errs.ErrInvalidSelector, s.at, srcDim, size)
			}
			resolved[srcDim] = resolvedDim{fixed: true, at: s.at}
			p := provEntry{srcDim: srcDim, label: a.axes.labels[srcDim], unit: a.axes.units[srcDim]}
			if r := a.axes.ranges[srcDim]; r != nil {
				p.value = []float64{r[s.at]}
			}
			prov = append(prov, p)

		case selAll:
			resolved[srcDim] = resolvedDim{all: true}
			outDims = append(outDims, outDimRef{srcDim: srcDim})

		case selSpan:
			if s.step < 1 {
				return nil, nil, nil, fmt.Errorf("%w: span step %d on dimension %d", errs.ErrInvalidSelector, s.step, srcDim)
			}
			if s.start < 0 || s.stop > size || s.start > s.stop {
				return nil, nil, nil, fmt.Errorf("%w: span [%d,%d) out of range for dimension %d (size %d)",
					errs.ErrInvalidSelector, s.start, s.stop, srcDim, size)
			}
			var picks []int
			for i := s.start; i < s.stop; i += s.step {
				picks = append(picks, i)
			}
			if len(picks) == 0 {
				return nil, nil, nil, fmt.Errorf("%w: span [%d,%d) selects no elements on dimension %d",
					errs.ErrInvalidSelector, s.start, s.stop, srcDim)
			}
			resolved[srcDim] = resolvedDim{picks: picks}
			outDims = append(outDims, outDimRef{srcDim: srcDim})

		case selPick:
			if len(s.pick) == 0 {
				return nil, nil, nil, fmt.Errorf("%w: empty index list on dimension %d", errs.ErrInvalidSelector, srcDim)
			}
			for _, i := range s.pick {
				if i < 0 || i >= size {
					return nil, nil, nil, fmt.Errorf("%w: index %d out of range for dimension %d (size %d)",
						errs.ErrInvalidSelector, i, srcDim, size)
				}
			}
			resolved[srcDim] = resolvedDim{picks: slices.Clone(s.pick)}
			outDims = append(outDims, outDimRef{srcDim: srcDim})

		case selKeep:
			if len(s.mask) != size {
				return nil, nil, nil, fmt.Errorf("%w: mask length %d does not match dimension %d (size %d)",
					errs.ErrInvalidSelector, len(s.mask), srcDim, size)
			}
			var picks []int
			for i, keep := range s.mask {
				if keep {
					picks = append(picks, i)
				}
			}
			if len(picks) == 0 {
				return nil, nil, nil, fmt.Errorf("%w: mask selects no elements on dimension %d", errs.ErrInvalidSelector, srcDim)
			}
			resolved[srcDim] = resolvedDim{picks: picks}
			outDims = append(outDims, outDimRef{srcDim: srcDim})
		}

		srcDim++
	}

	return resolved, outDims, prov, nil
}

// sliceAxes derives the metadata store of the slice result: kept dimensions
// carry their label/unit and a re-indexed range, new axes start unset, and
// keys are renumbered to 0..len(outDims)-1 in order.
func (a *Array) sliceAxes(resolved []resolvedDim, outDims []outDimRef) axisMeta {
	axes := axisMeta{
		labels: make(map[int]string, len(outDims)),
		units:  make(map[int]string, len(outDims)),
		ranges: make(map[int][]float64, len(outDims)),
	}
	for pos, od := range outDims {
		if od.newAxis {
			axes.labels[pos] = ""
			axes.units[pos] = ""
			axes.ranges[pos] = nil
			continue
		}

		d := od.srcDim
		axes.labels[pos] = a.axes.labels[d]
		axes.units[pos] = a.axes.units[d]

		r := a.axes.ranges[d]
		switch {
		case r == nil:
			axes.ranges[pos] = nil
		case resolved[d].all:
			axes.ranges[pos] = slices.Clone(r)
		default:
			sub := make([]float64, len(resolved[d].picks))
			for i, p := range resolved[d].picks {
				sub[i] = r[p]
			}
			axes.ranges[pos] = sub
		}
	}

	return axes
}

// contiguousBlock reports whether the resolved expression addresses one
// contiguous row-major block of the buffer, returning its offset and length.
// That is the case when fixed dimensions form a leading prefix, followed by
// at most one dimension kept as a consecutive ascending run, with all later
// dimensions kept in full, and no new axes inserted.
func (a *Array) contiguousBlock(resolved []resolvedDim, outDims []outDimRef) (offset, count int, ok bool) {
	for _, od := range outDims {
		if od.newAxis {
			return 0, 0, false
		}
	}

	st := elemStrides(a.shape)
	d := 0
	for ; d < len(resolved) && resolved[d].fixed; d++ {
		offset += resolved[d].at * st[d]
	}

	count = 1
	if d < len(resolved) {
		r := resolved[d]
		runStart, runLen, consecutive := 0, a.shape[d], true
		if !r.all {
			runStart, runLen, consecutive = consecutiveRun(r.picks)
		}
		if !consecutive {
			return 0, 0, false
		}
		offset += runStart * st[d]
		count = runLen
		d++
	}
	for ; d < len(resolved); d++ {
		if !resolved[d].all {
			return 0, 0, false
		}
		count *= a.shape[d]
	}

	return offset, count, true
}

func consecutiveRun(picks []int) (start, length int, ok bool) {
	for i := 1; i < len(picks); i++ {
		if picks[i] != picks[i-1]+1 {
			return 0, 0, false
		}
	}

	return picks[0], len(picks), true
}

// gather copies the selected elements into a new buffer in row-major output
// order.
func (a *Array) gather(resolved []resolvedDim, outDims []outDimRef, outShape []int) []float64 {
	srcStrides := elemStrides(a.shape)
	srcIdx := make([]int, a.NDim())
	for d, r := range resolved {
		if r.fixed {
			srcIdx[d] = r.at
		}
	}

	out := make([]float64, numElements(outShape))
	outIdx := make([]int, len(outShape))
	for o := range out {
		unravel(o, outShape, outIdx)
		for pos, od := range outDims {
			if od.newAxis {
				continue
			}
			r := resolved[od.srcDim]
			if r.all {
				srcIdx[od.srcDim] = outIdx[pos]
			} else {
				srcIdx[od.srcDim] = r.picks[outIdx[pos]]
			}
		}
		out[o] = a.data[ravel(srcIdx, srcStrides)]
	}

	return out
}

// sliceMask applies a full-rank boolean mask. The result is one-dimensional;
// since more than one source axis collapses into it, the per-axis metadata is
// reset to the single "Flattened" axis rather than guessing a mapping.
// The result owns its buffer.
func (a *Array) sliceMask(mask []bool) (*Array, error) {
	if len(mask) != a.Len() {
		return nil, fmt.Errorf("%w: mask length %d does not match array size %d",
			errs.ErrInvalidSelector, len(mask), a.Len())
	}

	out := make([]float64, 0, len(mask))
	for i, keep := range mask {
		if keep {
			out = append(out, a.data[i])
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: mask selects no elements", errs.ErrInvalidSelector)
	}

	return a.derive(out, []int{len(out)}, flattenedAxes(len(out))), nil
}
