// Package hash groups the hash functions used across the module: xxHash64 structural
// fingerprints, the CRC-32 variants found in T2B name checksums, and BLAKE3 digests of
// source files.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint accumulates an xxHash64 over a sequence of typed parts.
//
// Strings are length-prefixed so that ("ab", "c") and ("a", "bc") never collide by
// construction. A Fingerprint is only a bucket key: equal fingerprints must still be
// confirmed with a structural comparison.
type Fingerprint struct {
	digest *xxhash.Digest
	buf    [8]byte
}

// NewFingerprint creates an empty fingerprint.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{digest: xxhash.New()}
}

// AddString mixes a length-prefixed string into the fingerprint.
func (f *Fingerprint) AddString(s string) *Fingerprint {
	f.AddInt(int64(len(s)))
	_, _ = f.digest.WriteString(s)

	return f
}

// AddInt mixes a 64-bit integer into the fingerprint.
func (f *Fingerprint) AddInt(v int64) *Fingerprint {
	binary.LittleEndian.PutUint64(f.buf[:], uint64(v)) //nolint:gosec
	_, _ = f.digest.Write(f.buf[:])

	return f
}

// Sum returns the current 64-bit fingerprint.
func (f *Fingerprint) Sum() uint64 {
	return f.digest.Sum64()
}
