package joseecdsa

import (
	"crypto"
	"crypto/elliptic"
	"fmt"

	"github.com/go-jose/go-jose/v3"
)

var ErrUnsupportedAlgorithm = fmt.Errorf("unsupported algorithm")

// Algorithm is a JWS ECDSA signature algorithm.
type Algorithm int

const (
	INVALID_ALGORITHM Algorithm = -1
	ES256             Algorithm = 1
	ES384             Algorithm = 2
	ES512             Algorithm = 3
)

type algorithmParams struct {
	name      jose.SignatureAlgorithm
	fieldSize int
	curve     func() elliptic.Curve
	hash      crypto.Hash
}

// algorithms holds the per-algorithm parameters. Field size is the number of
// bytes needed to hold one coordinate on the curve.
var algorithms = map[Algorithm]algorithmParams{
	ES256: {name: jose.ES256, fieldSize: 32, curve: elliptic.P256, hash: crypto.SHA256},
	ES384: {name: jose.ES384, fieldSize: 48, curve: elliptic.P384, hash: crypto.SHA384},
	ES512: {name: jose.ES512, fieldSize: 66, curve: elliptic.P521, hash: crypto.SHA512},
}

// ParseAlgorithm converts the JOSE algorithm name ("ES256", "ES384", "ES512")
// to Algorithm. Names are case-sensitive. If the name is not recognized,
// INVALID_ALGORITHM is returned.
func ParseAlgorithm(s string) Algorithm {
	for alg, params := range algorithms {
		if string(params.name) == s {
			return alg
		}
	}
	return INVALID_ALGORITHM
}

// ResolveLength returns the length of the concatenated R||S signature for
// the named algorithm: 64, 96 or 132 bytes.
func ResolveLength(name string) (int, error) {
	alg := ParseAlgorithm(name)
	if !alg.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
	return alg.SignatureLength(), nil
}

// Valid returns true if the algorithm is one of the supported algorithms.
func (alg Algorithm) Valid() bool {
	_, ok := algorithms[alg]
	return ok
}

// String returns the JOSE name of the algorithm.
func (alg Algorithm) String() string {
	if params, ok := algorithms[alg]; ok {
		return string(params.name)
	}
	return "Invalid"
}

// JOSE returns the algorithm as go-jose signature algorithm,
// or an empty string for an invalid algorithm.
func (alg Algorithm) JOSE() jose.SignatureAlgorithm {
	return algorithms[alg].name
}

// FieldSize returns the coordinate size in bytes, or -1 if the algorithm
// is invalid.
func (alg Algorithm) FieldSize() int {
	if params, ok := algorithms[alg]; ok {
		return params.fieldSize
	}
	return -1
}

// SignatureLength returns the concatenated signature length in bytes,
// or -1 if the algorithm is invalid.
func (alg Algorithm) SignatureLength() int {
	if params, ok := algorithms[alg]; ok {
		return 2 * params.fieldSize
	}
	return -1
}

// Curve returns the elliptic curve used by the algorithm.
// If the algorithm is invalid, the function returns nil.
func (alg Algorithm) Curve() elliptic.Curve {
	if params, ok := algorithms[alg]; ok {
		return params.curve()
	}
	return nil
}

// Hash returns the digest used to sign with this algorithm, or zero
// for an invalid algorithm.
func (alg Algorithm) Hash() crypto.Hash {
	return algorithms[alg].hash
}

// Transcode converts DER-encoded signature to the concatenated form
// of the length expected for this algorithm.
func (alg Algorithm) Transcode(der []byte) ([]byte, error) {
	if !alg.Valid() {
		return nil, ErrUnsupportedAlgorithm
	}
	return TranscodeToConcat(der, alg.SignatureLength())
}
