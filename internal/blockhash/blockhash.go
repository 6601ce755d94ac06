// Package blockhash computes the fixed-length digest used to identify a
// block's contents, per the data model's BlockHash definition: a 64-byte
// SHA-3-512 digest over the block's exact bytes.
package blockhash

import (
	"golang.org/x/crypto/sha3"
)

// Size is the digest length in bytes. The spec requires every
// implementation to assert this on startup.
const Size = 64

// Digest is a fixed-size SHA-3-512 block digest.
type Digest [Size]byte

func init() {
	if sha3.New512().Size() != Size {
		panic("blockhash: sha3-512 digest size is not 64 bytes")
	}
}

// Sum computes the digest of data.
func Sum(data []byte) Digest {
	h := sha3.Sum512(data)
	return h
}

// Equal reports whether two digests match.
func (d Digest) Equal(other Digest) bool {
	return d == other
}
