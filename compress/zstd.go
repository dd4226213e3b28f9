package compress

// ZstdCompressor provides Zstandard compression for array blob payloads.
//
// Zstd gives the best compression ratio of the supported codecs and is the
// default for encoded arrays. Two implementations back this type:
//
//   - cgo builds use valyala/gozstd (libzstd bindings)
//   - pure-Go builds fall back to klauspost/compress/zstd
//
// Both produce standard Zstandard frames, so blobs written by one build mode
// decode in the other.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
