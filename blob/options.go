package blob

import (
	"fmt"

	"github.com/arloliu/larray/errs"
	"github.com/arloliu/larray/format"
	"github.com/arloliu/larray/internal/options"
)

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// WithLittleEndian encodes the blob body in little-endian byte order.
// This is the default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.flag.WithLittleEndian()
	})
}

// WithBigEndian encodes the blob body in big-endian byte order, for
// interoperability with big-endian consumers.
func WithBigEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.flag.WithBigEndian()
	})
}

// WithDataCompression selects the compression applied to the value payload.
// The axis and metadata sections are small and stay uncompressed.
func WithDataCompression(c format.CompressionType) EncoderOption {
	return options.New(func(e *Encoder) error {
		switch c {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			e.flag.SetCompression(c)
			return nil
		default:
			return fmt.Errorf("%w: %s", errs.ErrInvalidCompression, c)
		}
	})
}
