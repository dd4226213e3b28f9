// Package section defines the binary layout of an encoded array blob.
//
// A blob is a fixed 32-byte header followed by three sections:
//
//	header | axis section | value payload | metadata section
//
// The header flag word carries the magic bits, the byte-order bit and the
// compression type, and the header records the byte offset of every section
// plus an xxHash64 checksum over everything after the header. The axis
// section stores the data label/unit and one entry per dimension (size,
// label, unit, optional coordinate range); it is small and never compressed.
// The value payload holds the raw float64 buffer, compressed per the flag.
// The metadata section holds the JSON-encoded free-form metadata map.
package section
