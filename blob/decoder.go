package blob

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/arloliu/larray/compress"
	"github.com/arloliu/larray/endian"
	"github.com/arloliu/larray/errs"
	"github.com/arloliu/larray/internal/hash"
	"github.com/arloliu/larray/ndarray"
	"github.com/arloliu/larray/section"
)

// Decoder reads a labeled array blob. NewDecoder validates the header and
// the body checksum up front, so a corrupted blob fails before any section
// is interpreted.
type Decoder struct {
	data   []byte
	header section.Header
}

// NewDecoder creates a decoder over the given blob bytes. The bytes are not
// copied; the caller must not mutate them while the decoder is in use.
func NewDecoder(data []byte) (*Decoder, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	blobLen := uint32(len(data)) //nolint:gosec
	if header.AxisOffset != section.HeaderSize ||
		header.PayloadOffset < header.AxisOffset ||
		header.MetaOffset < header.PayloadOffset ||
		header.MetaOffset > blobLen {
		return nil, fmt.Errorf("%w: section offsets %d/%d/%d exceed blob of %d bytes",
			errs.ErrBlobCorrupted, header.AxisOffset, header.PayloadOffset, header.MetaOffset, len(data))
	}

	if sum := hash.Checksum(data[section.HeaderSize:]); sum != header.Checksum {
		return nil, fmt.Errorf("%w: stored 0x%016x, computed 0x%016x", errs.ErrChecksumMismatch, header.Checksum, sum)
	}

	return &Decoder{data: data, header: header}, nil
}

// Array reconstructs the labeled array from the blob sections.
func (d *Decoder) Array() (*ndarray.Array, error) {
	engine := d.header.Flag.GetEndianEngine()
	axisData := d.data[:d.header.PayloadOffset]

	off := int(d.header.AxisOffset)
	var err error
	var dataLabel, dataUnit string
	if dataLabel, off, err = section.ReadString(axisData, off, engine); err != nil {
		return nil, err
	}
	if dataUnit, off, err = section.ReadString(axisData, off, engine); err != nil {
		return nil, err
	}

	ndim := int(d.header.NDim)
	shape := make([]int, ndim)
	labels := make(map[int]string, ndim)
	units := make(map[int]string, ndim)
	ranges := make(map[int][]float64, ndim)
	for dim := 0; dim < ndim; dim++ {
		var entry section.AxisEntry
		if entry, off, err = section.ParseAxisEntry(axisData, off, engine); err != nil {
			return nil, err
		}
		shape[dim] = int(entry.Size)
		labels[dim] = entry.Label
		units[dim] = entry.Unit
		ranges[dim] = entry.Range
	}

	values, err := d.decodePayload(engine)
	if err != nil {
		return nil, err
	}

	meta, err := d.decodeMetadata()
	if err != nil {
		return nil, err
	}

	arr, err := ndarray.New(values, shape,
		ndarray.WithAxisLabelMap(labels),
		ndarray.WithAxisUnitMap(units),
		ndarray.WithAxisRangeMap(ranges),
		ndarray.WithDataLabel(dataLabel),
		ndarray.WithDataUnit(dataUnit),
		ndarray.WithMetadata(meta),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrBlobCorrupted, err)
	}

	return arr, nil
}

func (d *Decoder) decodePayload(engine endian.EndianEngine) ([]float64, error) {
	codec, err := compress.GetCodec(d.header.Flag.Compression())
	if err != nil {
		return nil, err
	}

	raw, err := codec.Decompress(d.data[d.header.PayloadOffset:d.header.MetaOffset])
	if err != nil {
		return nil, fmt.Errorf("failed to decompress value payload: %w", err)
	}

	count := int(d.header.ElementCount)
	if len(raw) != count*8 {
		return nil, fmt.Errorf("%w: payload decodes to %d bytes, expected %d for %d values",
			errs.ErrBlobCorrupted, len(raw), count*8, count)
	}

	values := make([]float64, count)
	for i := range values {
		values[i] = math.Float64frombits(engine.Uint64(raw[i*8 : i*8+8]))
	}

	return values, nil
}

func (d *Decoder) decodeMetadata() (map[string]any, error) {
	metaBytes := d.data[d.header.MetaOffset:]
	meta := map[string]any{}
	if len(metaBytes) == 0 {
		return meta, nil
	}
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, fmt.Errorf("%w: invalid metadata section: %s", errs.ErrBlobCorrupted, err)
	}

	return meta, nil
}

// Decode reconstructs a labeled array from blob bytes in one call.
func Decode(data []byte) (*ndarray.Array, error) {
	decoder, err := NewDecoder(data)
	if err != nil {
		return nil, err
	}

	return decoder.Array()
}
