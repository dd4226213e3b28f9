package section

import (
	"fmt"

	"github.com/arloliu/larray/errs"
)

// Header is the fixed-size section at the start of every array blob.
//
// Byte layout (offsets into the blob):
//
//	0-1   Options word (always little-endian)
//	2     Version
//	3     Compression type
//	4-7   NDim
//	8-11  AxisOffset: start of the axis section (== HeaderSize)
//	12-15 PayloadOffset: start of the compressed value payload
//	16-19 MetaOffset: start of the JSON metadata section
//	20-23 ElementCount: number of float64 values in the payload
//	24-31 Checksum: xxHash64 over every byte after the header
//
// All fields after the options word use the byte order the flag declares.
type Header struct {
	Flag          Flag
	NDim          uint32
	AxisOffset    uint32
	PayloadOffset uint32
	MetaOffset    uint32
	ElementCount  uint32
	Checksum      uint64
}

// NewHeader creates a header with the magic flag set and the axis section
// starting right after the header. Offsets and counts are filled in by the
// encoder when the sections are assembled.
func NewHeader() *Header {
	return &Header{
		Flag:       NewFlag(),
		AxisOffset: HeaderSize,
	}
}

// Bytes serializes the header into a fresh 32-byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	// Options are fixed little-endian so decoders can read the byte-order
	// bit before anything else.
	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.Version
	b[3] = h.Flag.CompressionType

	engine := h.Flag.GetEndianEngine()
	engine.PutUint32(b[4:8], h.NDim)
	engine.PutUint32(b[8:12], h.AxisOffset)
	engine.PutUint32(b[12:16], h.PayloadOffset)
	engine.PutUint32(b[16:20], h.MetaOffset)
	engine.PutUint32(b[20:24], h.ElementCount)
	engine.PutUint64(b[24:32], h.Checksum)

	return b
}

// Parse fills the header from the first 32 bytes of data and validates the
// flag word.
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d bytes, need %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	h.Flag.Options = uint16(data[0]) | uint16(data[1])<<8
	h.Flag.Version = data[2]
	h.Flag.CompressionType = data[3]
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()
	h.NDim = engine.Uint32(data[4:8])
	h.AxisOffset = engine.Uint32(data[8:12])
	h.PayloadOffset = engine.Uint32(data[12:16])
	h.MetaOffset = engine.Uint32(data[16:20])
	h.ElementCount = engine.Uint32(data[20:24])
	h.Checksum = engine.Uint64(data[24:32])

	return nil
}

// ParseHeader parses a Header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
