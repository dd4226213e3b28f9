// Package blob serializes labeled arrays to a compact binary blob and back.
//
// The codec guarantees the round-trip contract: decoding an encoded array
// yields an array equal in buffer contents, shape, all three axis metadata
// maps (including which coordinate ranges are absent), data unit/label, and
// the free-form metadata map. It does not promise a stable byte layout
// across versions; persistence collaborators store the blob opaquely.
//
// Encoding:
//
//	encoder, err := blob.NewEncoder(
//	    blob.WithLittleEndian(),
//	    blob.WithDataCompression(format.CompressionZstd),
//	)
//	b, err := encoder.Encode(arr)
//
// Decoding auto-detects byte order and compression from the header:
//
//	arr, err := blob.Decode(b.Bytes())
//
// Free-form metadata travels as JSON, so metadata values round-trip as JSON
// types: numbers decode as float64, and only JSON-representable values
// survive. Axis ranges and buffer values are stored in raw binary and
// round-trip exactly.
package blob
