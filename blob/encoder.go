package blob

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/arloliu/larray/compress"
	"github.com/arloliu/larray/internal/hash"
	"github.com/arloliu/larray/internal/options"
	"github.com/arloliu/larray/internal/pool"
	"github.com/arloliu/larray/ndarray"
	"github.com/arloliu/larray/section"
)

// Encoder serializes labeled arrays into blobs. An Encoder is configured
// once and may be reused for any number of arrays; it keeps no per-array
// state and is safe for concurrent use.
type Encoder struct {
	flag  section.Flag
	codec compress.Codec
}

// NewEncoder creates an Encoder. Defaults: little-endian body, no
// compression. Returns an error for an invalid option combination.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{flag: section.NewFlag()}
	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(e.flag.Compression())
	if err != nil {
		return nil, err
	}
	e.codec = codec

	return e, nil
}

// Encode serializes the array into a self-describing blob: header, axis
// section (data label/unit plus one entry per dimension), compressed value
// payload, and JSON metadata section, with an xxHash64 checksum over
// everything after the header.
//
// The array is read but never modified; the returned blob owns its bytes.
func (e *Encoder) Encode(arr *ndarray.Array) (Blob, error) {
	engine := e.flag.GetEndianEngine()

	buf := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(buf)

	// Axis section: scalar label/unit first, then the per-dimension entries
	// in dimension order.
	if err := section.AppendString(buf, engine, arr.DataLabel()); err != nil {
		return Blob{}, fmt.Errorf("failed to encode data label: %w", err)
	}
	if err := section.AppendString(buf, engine, arr.DataUnit()); err != nil {
		return Blob{}, fmt.Errorf("failed to encode data unit: %w", err)
	}

	shape := arr.Shape()
	labels := arr.AxisLabels()
	units := arr.AxisUnits()
	ranges := arr.AxisRanges()
	for d := range shape {
		entry := section.AxisEntry{
			Size:  uint32(shape[d]), //nolint:gosec
			Label: labels[d],
			Unit:  units[d],
			Range: ranges[d],
		}
		if err := entry.Append(buf, engine); err != nil {
			return Blob{}, fmt.Errorf("failed to encode axis %d: %w", d, err)
		}
	}
	axisLen := buf.Len()

	// Value payload: raw float64 bits in header byte order, then compressed.
	raw := make([]byte, 0, arr.Len()*8)
	for _, v := range arr.RawValues() {
		raw = engine.AppendUint64(raw, math.Float64bits(v))
	}
	payload, err := e.codec.Compress(raw)
	if err != nil {
		return Blob{}, fmt.Errorf("failed to compress value payload: %w", err)
	}

	// Metadata section: the free-form map as JSON.
	metaJSON, err := json.Marshal(arr.Metadata())
	if err != nil {
		return Blob{}, fmt.Errorf("failed to encode metadata: %w", err)
	}

	header := section.NewHeader()
	header.Flag = e.flag
	header.NDim = uint32(len(shape))                                //nolint:gosec
	header.PayloadOffset = uint32(section.HeaderSize + axisLen)     //nolint:gosec
	header.MetaOffset = header.PayloadOffset + uint32(len(payload)) //nolint:gosec
	header.ElementCount = uint32(arr.Len())                         //nolint:gosec

	body := make([]byte, 0, axisLen+len(payload)+len(metaJSON))
	body = append(body, buf.Bytes()...)
	body = append(body, payload...)
	body = append(body, metaJSON...)
	header.Checksum = hash.Checksum(body)

	out := make([]byte, 0, section.HeaderSize+len(body))
	out = append(out, header.Bytes()...)
	out = append(out, body...)

	return Blob{data: out}, nil
}
