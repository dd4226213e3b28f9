// Package pool provides pooled byte buffers for blob encoding.
package pool

import "sync"

const (
	// BlobBufferDefaultSize is the initial capacity of buffers obtained from
	// the pool. Sized for typical array blobs (metadata plus a few KiB of
	// payload) to avoid early reallocations.
	BlobBufferDefaultSize = 1024 * 16 // 16KiB

	// BlobBufferMaxThreshold is the capacity above which returned buffers are
	// discarded instead of pooled, so one oversized encode does not pin
	// memory for the lifetime of the pool.
	BlobBufferMaxThreshold = 1024 * 128 // 128KiB
)

// ByteBuffer is a growable byte buffer with explicit control over length and
// capacity. The zero value is usable; the pool hands out buffers with
// pre-allocated capacity.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Reset resets the buffer to be empty, retaining allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating. Small buffers grow by BlobBufferDefaultSize; larger ones grow
// by 25% of current capacity to balance memory use against reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := BlobBufferDefaultSize
	if cap(bb.B) > 4*BlobBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

var blobBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(BlobBufferDefaultSize)
	},
}

// GetBlobBuffer obtains a reset ByteBuffer from the pool.
func GetBlobBuffer() *ByteBuffer {
	bb, _ := blobBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutBlobBuffer returns a ByteBuffer to the pool. Buffers that grew beyond
// BlobBufferMaxThreshold are dropped.
func PutBlobBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > BlobBufferMaxThreshold {
		return
	}
	blobBufferPool.Put(bb)
}
