package blob

// Blob is an encoded labeled array: a fixed header followed by the axis,
// payload and metadata sections. The bytes are self-describing; Decode needs
// no out-of-band configuration.
type Blob struct {
	data []byte
}

// Bytes returns the raw blob bytes.
func (b Blob) Bytes() []byte {
	return b.data
}

// Len returns the blob size in bytes.
func (b Blob) Len() int {
	return len(b.data)
}
