package section

const (
	// HeaderSize is the fixed size of the blob header in bytes.
	HeaderSize = 32

	// BlobVersion is the current blob format version.
	BlobVersion = 1

	// MaxStringLength is the maximum encodable label/unit length; strings are
	// length-prefixed with a uint16.
	MaxStringLength = 65535
)

const (
	// magicMask selects the fixed identification bits of the flag options word.
	magicMask uint16 = 0xFFF0

	// magicValue identifies a larray blob.
	magicValue uint16 = 0x4AB0

	// bigEndianBit marks the blob body as big-endian when set. The options
	// word itself is always little-endian so the bit can be read before the
	// byte order is known.
	bigEndianBit uint16 = 0x0001
)
