package section

import (
	"fmt"
	"math"

	"github.com/arloliu/larray/endian"
	"github.com/arloliu/larray/errs"
	"github.com/arloliu/larray/internal/pool"
)

// AxisEntry is the per-dimension record of the axis section: the dimension
// size, its label and unit, and the optional coordinate range. A nil Range
// is encoded explicitly (has-range flag 0) so that "absent" survives the
// round trip distinct from an empty or index range.
type AxisEntry struct {
	Size  uint32
	Label string
	Unit  string
	Range []float64
}

// Append encodes the entry into buf:
//
//	uint32 size | uint8 hasRange | label varstring | unit varstring |
//	size*8 bytes of range values (only when hasRange is 1)
func (e *AxisEntry) Append(buf *pool.ByteBuffer, engine endian.EndianEngine) error {
	buf.Grow(5)
	buf.B = engine.AppendUint32(buf.B, e.Size)
	if e.Range != nil {
		buf.MustWrite([]byte{1})
	} else {
		buf.MustWrite([]byte{0})
	}

	if err := AppendString(buf, engine, e.Label); err != nil {
		return err
	}
	if err := AppendString(buf, engine, e.Unit); err != nil {
		return err
	}

	if e.Range != nil {
		if len(e.Range) != int(e.Size) {
			return fmt.Errorf("%w: axis range has %d values for size %d", errs.ErrBlobCorrupted, len(e.Range), e.Size)
		}
		buf.Grow(8 * len(e.Range))
		for _, v := range e.Range {
			buf.B = engine.AppendUint64(buf.B, math.Float64bits(v))
		}
	}

	return nil
}

// ParseAxisEntry decodes one entry from data at off, returning the entry and
// the offset just past it.
func ParseAxisEntry(data []byte, off int, engine endian.EndianEngine) (AxisEntry, int, error) {
	var e AxisEntry

	if off+5 > len(data) {
		return e, 0, fmt.Errorf("%w: axis entry at offset %d overruns section", errs.ErrBlobCorrupted, off)
	}
	e.Size = engine.Uint32(data[off : off+4])
	hasRange := data[off+4]
	off += 5

	var err error
	if e.Label, off, err = ReadString(data, off, engine); err != nil {
		return e, 0, err
	}
	if e.Unit, off, err = ReadString(data, off, engine); err != nil {
		return e, 0, err
	}

	if hasRange == 1 {
		n := int(e.Size)
		if off+8*n > len(data) {
			return e, 0, fmt.Errorf("%w: axis range of %d values at offset %d overruns section", errs.ErrBlobCorrupted, n, off)
		}
		e.Range = make([]float64, n)
		for i := range e.Range {
			e.Range[i] = math.Float64frombits(engine.Uint64(data[off : off+8]))
			off += 8
		}
	}

	return e, off, nil
}
