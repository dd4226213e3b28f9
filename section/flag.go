package section

import (
	"fmt"

	"github.com/arloliu/larray/endian"
	"github.com/arloliu/larray/errs"
	"github.com/arloliu/larray/format"
)

// Flag is the packed option field at the start of the blob header: a 16-bit
// options word (magic bits + endianness), the format version and the payload
// compression type.
type Flag struct {
	Options         uint16
	Version         uint8
	CompressionType uint8
}

// NewFlag creates a Flag with the magic bits set, little-endian byte order,
// the current version and no compression.
func NewFlag() Flag {
	return Flag{
		Options:         magicValue,
		Version:         BlobVersion,
		CompressionType: uint8(format.CompressionNone),
	}
}

// WithLittleEndian clears the big-endian bit.
func (f *Flag) WithLittleEndian() {
	f.Options &^= bigEndianBit
}

// WithBigEndian sets the big-endian bit.
func (f *Flag) WithBigEndian() {
	f.Options |= bigEndianBit
}

// IsBigEndian reports whether the blob body uses big-endian byte order.
func (f *Flag) IsBigEndian() bool {
	return f.Options&bigEndianBit != 0
}

// GetEndianEngine returns the engine matching the endianness bit.
func (f *Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// SetCompression records the payload compression type.
func (f *Flag) SetCompression(c format.CompressionType) {
	f.CompressionType = uint8(c)
}

// Compression returns the payload compression type.
func (f *Flag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// Validate checks the magic bits, version and compression type.
func (f *Flag) Validate() error {
	if f.Options&magicMask != magicValue {
		return fmt.Errorf("%w: 0x%04x", errs.ErrInvalidMagicNumber, f.Options)
	}
	if f.Version != BlobVersion {
		return fmt.Errorf("%w: version %d, supported %d", errs.ErrInvalidBlobVersion, f.Version, BlobVersion)
	}
	switch f.Compression() {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		return nil
	default:
		return fmt.Errorf("%w: 0x%02x", errs.ErrInvalidCompression, f.CompressionType)
	}
}
