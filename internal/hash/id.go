package hash

import "github.com/cespare/xxhash/v2"

// Sum computes the xxHash64 of the given bytes.
// Used for payload checksums and basis fingerprints.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest is a streaming xxHash64 writer for fingerprinting content that is
// produced in pieces, such as a fitted basis (dims, mean, component vectors).
type Digest struct {
	d *xxhash.Digest
}

// NewDigest creates an empty streaming digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Write adds bytes to the digest. It never fails.
func (dg *Digest) Write(data []byte) {
	_, _ = dg.d.Write(data)
}

// Sum64 returns the hash of everything written so far.
func (dg *Digest) Sum64() uint64 {
	return dg.d.Sum64()
}
