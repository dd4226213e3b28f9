// Package errs defines the sentinel errors shared across larray packages.
//
// Call sites wrap these with fmt.Errorf("%w: ...") to attach context such as
// the offending dimension index or the expected vs. actual length, so callers
// can both match with errors.Is and diagnose without re-deriving state.
package errs

import "errors"

// Array construction and transform errors.
var (
	// ErrInvalidShape indicates a nil shape or a non-positive dimension size.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrShapeMismatch indicates the buffer length does not match the product
	// of the shape dimensions, or two arrays with incompatible shapes were
	// combined elementwise.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidAxis indicates a dimension index outside [0, ndim), or an
	// axis that does not satisfy an operation's requirement (e.g. squeezing
	// a dimension whose size is not 1).
	ErrInvalidAxis = errors.New("invalid axis")

	// ErrInvalidPermutation indicates transpose axes that are not a
	// permutation of [0, ndim).
	ErrInvalidPermutation = errors.New("invalid permutation")

	// ErrInvalidSelector indicates an indexing selector that cannot be
	// applied: out-of-bounds index or span, non-positive step, mask length
	// mismatch, or more selectors than dimensions.
	ErrInvalidSelector = errors.New("invalid selector")

	// ErrInvalidBinning indicates a rebinning factor below 1 or larger than
	// the size of the dimension it applies to.
	ErrInvalidBinning = errors.New("invalid binning factor")
)

// Blob encoding and decoding errors.
var (
	// ErrInvalidHeaderSize indicates the header bytes are shorter than the
	// fixed header size.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidMagicNumber indicates the flag word does not carry the larray
	// blob magic bits.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrInvalidBlobVersion indicates an unsupported blob format version.
	ErrInvalidBlobVersion = errors.New("invalid blob version")

	// ErrInvalidCompression indicates an unknown compression type.
	ErrInvalidCompression = errors.New("invalid compression type")

	// ErrChecksumMismatch indicates the stored checksum does not match the
	// checksum computed over the blob body.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrBlobCorrupted indicates a section offset or length that falls
	// outside the blob, or a payload that decodes to the wrong element count.
	ErrBlobCorrupted = errors.New("blob corrupted")

	// ErrStringTooLong indicates a label or unit exceeding the maximum
	// encodable string length.
	ErrStringTooLong = errors.New("string too long")
)
