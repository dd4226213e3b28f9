package section

import (
	"fmt"

	"github.com/arloliu/larray/endian"
	"github.com/arloliu/larray/errs"
	"github.com/arloliu/larray/internal/pool"
)

// AppendString encodes a string into buf with a uint16 length prefix.
//
// Labels and units are unbounded user input, so the length is validated
// against MaxStringLength rather than truncated.
func AppendString(buf *pool.ByteBuffer, engine endian.EndianEngine, s string) error {
	if len(s) > MaxStringLength {
		return fmt.Errorf("%w: %d bytes exceeds maximum %d", errs.ErrStringTooLong, len(s), MaxStringLength)
	}

	buf.Grow(2 + len(s))
	buf.B = engine.AppendUint16(buf.B, uint16(len(s)))
	buf.MustWrite([]byte(s))

	return nil
}

// ReadString decodes a length-prefixed string from data at off, returning the
// string and the offset just past it.
func ReadString(data []byte, off int, engine endian.EndianEngine) (string, int, error) {
	if off+2 > len(data) {
		return "", 0, fmt.Errorf("%w: string length prefix at offset %d overruns section", errs.ErrBlobCorrupted, off)
	}
	n := int(engine.Uint16(data[off : off+2]))
	off += 2
	if off+n > len(data) {
		return "", 0, fmt.Errorf("%w: string of %d bytes at offset %d overruns section", errs.ErrBlobCorrupted, n, off)
	}

	return string(data[off : off+n]), off + n, nil
}
