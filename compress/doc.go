// Package compress provides the compression codecs available for larray blob
// payloads.
//
// Four algorithms are supported, selected through format.CompressionType:
//
//   - None: pass-through, for already-compressed or tiny payloads
//   - Zstd: best ratio, preferred for storage and transport
//   - S2: fastest wide-block compression, good for hot paths
//   - LZ4: low-latency block compression
//
// All codecs are stateless values (internal scratch state is pooled) and safe
// for concurrent use.
package compress
