// Package hash wraps the xxHash64 digest used for blob integrity checks.
package hash

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 digest of the given bytes.
//
// The digest is deterministic across processes and platforms, which is what
// the blob round-trip contract relies on.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ChecksumString computes the xxHash64 digest of the given string without
// copying it to a byte slice.
func ChecksumString(data string) uint64 {
	return xxhash.Sum64String(data)
}
