package joseecdsa

import (
	"hash"

	_ "crypto/sha256"
	_ "crypto/sha512"
)

// Calculate the hash of hasher over buf.
func calcHash(buf []byte, hasher hash.Hash) []byte {
	hasher.Write(buf)
	return hasher.Sum(nil)
}

// digest hashes the signing input with the digest of the algorithm,
// or returns nil if the algorithm is invalid.
func digest(alg Algorithm, buf []byte) []byte {
	if !alg.Valid() {
		return nil
	}
	return calcHash(buf, alg.Hash().New())
}
