package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBufferWriteAndReset(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("abc"))
	bb.MustWrite([]byte("def"))
	require.Equal(t, []byte("abcdef"), bb.Bytes())
	require.Equal(t, 6, bb.Len())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 8)
}

func TestByteBufferGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWrite([]byte{1, 2, 3, 4})

	bb.Grow(1000)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), 1000)
	require.Equal(t, []byte{1, 2, 3, 4}, bb.Bytes())
}

func TestBlobBufferPoolRoundTrip(t *testing.T) {
	bb := GetBlobBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())

	bb.MustWrite([]byte("payload"))
	PutBlobBuffer(bb)

	bb2 := GetBlobBuffer()
	require.Equal(t, 0, bb2.Len())
}

func TestPutBlobBufferDiscardsOversized(t *testing.T) {
	bb := NewByteBuffer(BlobBufferMaxThreshold + 1)
	// Must not panic; oversized buffers are simply dropped.
	PutBlobBuffer(bb)
	PutBlobBuffer(nil)
}
