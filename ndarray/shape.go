package ndarray

import (
	"fmt"

	"github.com/arloliu/larray/errs"
)

// numElements returns the product of the shape dimensions, or 0 for an empty
// shape or any non-positive dimension.
func numElements(shape []int) int {
	if len(shape) == 0 {
		return 0
	}
	n := 1
	for _, s := range shape {
		if s <= 0 {
			return 0
		}
		n *= s
	}

	return n
}

// validateShape checks that shape is non-empty with positive dimensions and
// matches the buffer length.
func validateShape(shape []int, bufLen int) error {
	if len(shape) == 0 {
		return fmt.Errorf("%w: shape must have at least one dimension", errs.ErrInvalidShape)
	}
	for d, s := range shape {
		if s <= 0 {
			return fmt.Errorf("%w: dimension %d has size %d", errs.ErrInvalidShape, d, s)
		}
	}
	if n := numElements(shape); n != bufLen {
		return fmt.Errorf("%w: shape %v holds %d elements, buffer has %d", errs.ErrShapeMismatch, shape, n, bufLen)
	}

	return nil
}

// elemStrides computes row-major element strides for a shape.
func elemStrides(shape []int) []int {
	st := make([]int, len(shape))
	s := 1
	for i := len(shape) - 1; i >= 0; i-- {
		st[i] = s
		s *= shape[i]
	}

	return st
}

// ravel converts a multi-dimensional index to a linear offset.
func ravel(idx, strides []int) int {
	off := 0
	for d := range idx {
		off += idx[d] * strides[d]
	}

	return off
}

// unravel converts a linear offset to a multi-dimensional index, writing into
// idx (which must have len(shape) entries).
func unravel(linear int, shape, idx []int) {
	for d := len(shape) - 1; d >= 0; d-- {
		idx[d] = linear % shape[d]
		linear /= shape[d]
	}
}
