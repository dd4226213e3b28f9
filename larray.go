// Package larray provides labeled dense numeric arrays: multi-dimensional
// float64 buffers whose dimensions carry a label, a physical unit and an
// optional coordinate range, plus a scalar data unit/label and a free-form
// metadata map.
//
// The array behaves like an ordinary dense array for element access and
// arithmetic, while every structural operation (slicing, transposition,
// flattening, dimension merging, squeezing, block-averaging) re-derives the
// axis metadata of its result, so the label-to-dimension correspondence is
// never silently corrupted. Arrays serialize to a compact self-describing
// binary blob with optional compression and an integrity checksum.
//
// # Basic Usage
//
// Creating a labeled array:
//
//	import "github.com/arloliu/larray"
//
//	data := make([]float64, 6*7)
//	arr, err := larray.New(data, []int{6, 7},
//	    larray.WithAxisLabels("energy", "angle"),
//	    larray.WithAxisUnits("eV", "deg"),
//	    larray.WithDataLabel("intensity"),
//	)
//
// Structural operations return new arrays with consistent metadata:
//
//	col, _ := arr.Slice(larray.All(), larray.At(3))
//	flipped, _ := arr.Transpose()
//	binned, _ := arr.Rebin(2)
//
// Persisting and restoring:
//
//	b, _ := larray.Encode(arr)       // zstd-compressed blob
//	restored, _ := larray.Decode(b.Bytes())
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the ndarray and
// blob packages, simplifying the most common use cases. For fine-grained
// control (byte order, compression selection), use those packages directly.
package larray

import (
	"github.com/arloliu/larray/blob"
	"github.com/arloliu/larray/format"
	"github.com/arloliu/larray/ndarray"
)

// Option configures an array during construction. See the With* functions.
type Option = ndarray.Option

// Re-exported construction options, so common call sites need only the root
// package.
var (
	WithAxisLabels   = ndarray.WithAxisLabels
	WithAxisLabelMap = ndarray.WithAxisLabelMap
	WithAxisUnits    = ndarray.WithAxisUnits
	WithAxisUnitMap  = ndarray.WithAxisUnitMap
	WithAxisRanges   = ndarray.WithAxisRanges
	WithAxisRangeMap = ndarray.WithAxisRangeMap
	WithDataUnit     = ndarray.WithDataUnit
	WithDataLabel    = ndarray.WithDataLabel
	WithMetadata     = ndarray.WithMetadata
)

// Re-exported selector constructors for indexing expressions.
var (
	At       = ndarray.At
	All      = ndarray.All
	Span     = ndarray.Span
	SpanStep = ndarray.SpanStep
	Pick     = ndarray.Pick
	Keep     = ndarray.Keep
	NewAxis  = ndarray.NewAxis
	Mask     = ndarray.Mask
)

var defaultEncoderOptions = []blob.EncoderOption{
	blob.WithLittleEndian(),
	blob.WithDataCompression(format.CompressionZstd),
}

// New creates a labeled array wrapping the given buffer with the given
// shape. See ndarray.New for the validation and metadata-defaulting rules.
func New(data []float64, shape []int, opts ...Option) (*ndarray.Array, error) {
	return ndarray.New(data, shape, opts...)
}

// Encode serializes the array with recommended default settings:
// little-endian byte order and Zstd payload compression.
//
// For custom settings use blob.NewEncoder directly.
func Encode(arr *ndarray.Array) (blob.Blob, error) {
	encoder, err := blob.NewEncoder(defaultEncoderOptions...)
	if err != nil {
		return blob.Blob{}, err
	}

	return encoder.Encode(arr)
}

// Decode reconstructs a labeled array from blob bytes. Byte order and
// compression are detected from the blob header, so Decode pairs with any
// encoder configuration.
func Decode(data []byte) (*ndarray.Array, error) {
	return blob.Decode(data)
}
