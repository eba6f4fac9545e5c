package joseecdsa

import (
	"crypto"
	"crypto/elliptic"
	"crypto/sha256"
	"crypto/sha512"
	"testing"

	"github.com/go-jose/go-jose/v3"
	"github.com/stretchr/testify/assert"
)

var algs = []Algorithm{ES256, ES384, ES512}

func Test_Algorithm_String(t *testing.T) {
	assert := assert.New(t)

	assert.EqualValues("ES256", ES256.String())
	assert.EqualValues("ES384", ES384.String())
	assert.EqualValues("ES512", ES512.String())
	assert.EqualValues("Invalid", INVALID_ALGORITHM.String())
	assert.EqualValues("Invalid", Algorithm(999).String())
}

func Test_Algorithm_Parse(t *testing.T) {
	assert := assert.New(t)

	for _, alg := range algs {
		assert.Equal(alg, ParseAlgorithm(alg.String()))
	}
	for _, name := range []string{"", "ES999", "es256", "ES256K", "RS256", "Invalid"} {
		assert.Equal(INVALID_ALGORITHM, ParseAlgorithm(name), name)
	}
}

func Test_Algorithm_ResolveLength(t *testing.T) {
	assert := assert.New(t)

	expected := map[string]int{"ES256": 64, "ES384": 96, "ES512": 132}
	for name, length := range expected {
		l, err := ResolveLength(name)
		assert.NoError(err)
		assert.Equal(length, l)
	}

	for _, name := range []string{"ES999", "", "es384", " ES384", "EdDSA"} {
		_, err := ResolveLength(name)
		assert.ErrorIs(err, ErrUnsupportedAlgorithm, name)
	}
}

func Test_Algorithm_Params(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(32, ES256.FieldSize())
	assert.Equal(48, ES384.FieldSize())
	assert.Equal(66, ES512.FieldSize())
	assert.Equal(-1, INVALID_ALGORITHM.FieldSize())
	assert.Equal(-1, INVALID_ALGORITHM.SignatureLength())

	assert.Equal(elliptic.P256(), ES256.Curve())
	assert.Equal(elliptic.P384(), ES384.Curve())
	assert.Equal(elliptic.P521(), ES512.Curve())
	assert.Nil(Algorithm(999).Curve())

	assert.Equal(crypto.SHA256, ES256.Hash())
	assert.Equal(crypto.SHA384, ES384.Hash())
	assert.Equal(crypto.SHA512, ES512.Hash())

	assert.Equal(jose.ES512, ES512.JOSE())
	assert.Empty(INVALID_ALGORITHM.JOSE())
	assert.False(INVALID_ALGORITHM.Valid())
}

// Field size must be enough to hold any coordinate on the curve.
func Test_Algorithm_FieldSizeMatchesCurve(t *testing.T) {
	assert := assert.New(t)

	for _, alg := range algs {
		bits := alg.Curve().Params().BitSize
		assert.Equal((bits+7)/8, alg.FieldSize())
		assert.Equal(alg.Hash().Size(), len(digest(alg, []byte("hello"))))
	}
	assert.Nil(digest(INVALID_ALGORITHM, []byte("hello")))

	h256 := sha256.Sum256([]byte("hello"))
	h384 := sha512.Sum384([]byte("hello"))
	h512 := sha512.Sum512([]byte("hello"))
	assert.Equal(h256[:], digest(ES256, []byte("hello")))
	assert.Equal(h384[:], digest(ES384, []byte("hello")))
	assert.Equal(h512[:], digest(ES512, []byte("hello")))
}

func Test_Algorithm_Transcode(t *testing.T) {
	assert := assert.New(t)

	der := []byte{0x30, 0x06, 0x02, 0x01, 0x05, 0x02, 0x01, 0x07}
	for _, alg := range algs {
		concat, err := alg.Transcode(der)
		assert.NoError(err)
		assert.Len(concat, alg.SignatureLength())
	}

	_, err := INVALID_ALGORITHM.Transcode(der)
	assert.ErrorIs(err, ErrUnsupportedAlgorithm)
}
