package joseecdsa

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"

	"github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
)

var ErrAlgorithmMismatch = fmt.Errorf("the signer key does not match the algorithm")

// OpaqueSigner lets go-jose sign with a crypto.Signer that returns
// ASN.1/DER signatures, as crypto/ecdsa and most hardware-backed signers do.
// The signatures are transcoded to the concatenated form JWS requires.
type OpaqueSigner struct {
	alg       Algorithm
	signer    crypto.Signer
	publicKey *ecdsa.PublicKey
}

var _ jose.OpaqueSigner = (*OpaqueSigner)(nil)

// NewOpaqueSigner wraps signer for use with jose.NewSigner. The signer must
// hold an ECDSA key on the algorithm's curve.
func NewOpaqueSigner(alg Algorithm, signer crypto.Signer) (*OpaqueSigner, error) {
	if !alg.Valid() {
		return nil, ErrUnsupportedAlgorithm
	}
	publicKey, ok := signer.Public().(*ecdsa.PublicKey)
	if !ok || publicKey.Curve != alg.Curve() {
		return nil, ErrAlgorithmMismatch
	}
	return &OpaqueSigner{alg: alg, signer: signer, publicKey: publicKey}, nil
}

// Public returns the signer public key as JWK.
func (s *OpaqueSigner) Public() *jose.JSONWebKey {
	return &jose.JSONWebKey{
		Key:       s.publicKey,
		Algorithm: s.alg.String(),
		Use:       "sig",
	}
}

// Algs returns the only algorithm this signer supports.
func (s *OpaqueSigner) Algs() []jose.SignatureAlgorithm {
	return []jose.SignatureAlgorithm{s.alg.JOSE()}
}

// SignPayload signs the JWS signing input and returns R||S.
func (s *OpaqueSigner) SignPayload(payload []byte, alg jose.SignatureAlgorithm) ([]byte, error) {
	if alg != s.alg.JOSE() {
		return nil, fmt.Errorf("%w: %s", ErrAlgorithmMismatch, alg)
	}
	der, err := s.signer.Sign(rand.Reader, digest(s.alg, payload), s.alg.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	return s.alg.Transcode(der)
}

// Token is a JWT to be signed with ECDSA and serialized in JWS compact form,
// see https://www.rfc-editor.org/rfc/rfc7515#section-7.1.
type Token struct {
	alg    Algorithm
	header map[string]interface{}
	claims map[string]interface{}
}

// NewToken creates an empty token signed with the given algorithm.
func NewToken(alg Algorithm) (*Token, error) {
	if !alg.Valid() {
		return nil, ErrUnsupportedAlgorithm
	}
	return &Token{
		alg:    alg,
		header: map[string]interface{}{"typ": "JWT"},
		claims: map[string]interface{}{},
	}, nil
}

// Algorithm returns the token signing algorithm.
func (t *Token) Algorithm() Algorithm {
	return t.alg
}

// AddHeader sets the header parameter. The "alg" parameter cannot be changed.
func (t *Token) AddHeader(key string, value interface{}) {
	if key == "alg" {
		return
	}
	t.header[key] = value
}

// AddClaim sets the claim.
func (t *Token) AddClaim(key string, value interface{}) {
	t.claims[key] = value
}

// Sign signs the token with signer and returns it in JWS compact serialization.
func (t *Token) Sign(signer crypto.Signer) (string, error) {
	opaque, err := NewOpaqueSigner(t.alg, signer)
	if err != nil {
		return "", err
	}
	opts := &jose.SignerOptions{}
	for k, v := range t.header {
		opts.WithHeader(jose.HeaderKey(k), v)
	}
	joseSigner, err := jose.NewSigner(jose.SigningKey{Algorithm: t.alg.JOSE(), Key: opaque}, opts)
	if err != nil {
		return "", fmt.Errorf("failed to create signer: %w", err)
	}
	return jwt.Signed(joseSigner).Claims(t.claims).CompactSerialize()
}
