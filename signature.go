package joseecdsa

import (
	"fmt"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

var ErrMalformedSignature = fmt.Errorf("malformed ECDSA signature")

// minDERLength is the length of the smallest signature we accept,
// SEQUENCE { INTEGER r, INTEGER s } with one-byte r and s.
const minDERLength = 8

// maxOutputLength bounds the requested concatenated length. The widest
// supported curve needs 132 bytes.
const maxOutputLength = 512

// longFormOneByte marks a long-form DER length with one length byte following.
const longFormOneByte = 0x81

// TranscodeToConcat converts ASN.1/DER encoded ECDSA signature
// (SEQUENCE { INTEGER r, INTEGER s }) to the concatenated R||S form used by
// JWS, see https://www.rfc-editor.org/rfc/rfc7518#section-3.4.
//
// R and S are stripped of leading zeros and right-aligned in halves of
// max(len(R), len(S), outputLength/2) bytes each. The result is longer
// than outputLength only if R or S does not fit in outputLength/2 bytes.
// outputLength must be in [0, 512].
func TranscodeToConcat(der []byte, outputLength int) ([]byte, error) {
	if outputLength < 0 || outputLength > maxOutputLength {
		return nil, fmt.Errorf("%w: output length %d out of range", ErrMalformedSignature, outputLength)
	}
	if len(der) < minDERLength || der[0] != byte(asn1.SEQUENCE) {
		return nil, fmt.Errorf("%w: not a DER sequence", ErrMalformedSignature)
	}
	input := cryptobyte.String(der[1:])

	var length uint8
	if !input.ReadUint8(&length) {
		return nil, fmt.Errorf("%w: missing sequence length", ErrMalformedSignature)
	}
	switch {
	case length > 0 && length&0x80 == 0:
	case length == longFormOneByte:
		if !input.ReadUint8(&length) {
			return nil, fmt.Errorf("%w: missing long-form length", ErrMalformedSignature)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported length 0x%02x", ErrMalformedSignature, length)
	}
	if int(length) != len(input) {
		return nil, fmt.Errorf("%w: sequence length %d, have %d bytes",
			ErrMalformedSignature, length, len(input))
	}

	r, ok := readInteger(&input)
	if !ok {
		return nil, fmt.Errorf("%w: invalid R", ErrMalformedSignature)
	}
	s, ok := readInteger(&input)
	if !ok {
		return nil, fmt.Errorf("%w: invalid S", ErrMalformedSignature)
	}
	if !input.Empty() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformedSignature)
	}

	rawLen := max(len(r), len(s), outputLength/2)
	concat := make([]byte, 2*rawLen)
	copy(concat[rawLen-len(r):rawLen], r)
	copy(concat[2*rawLen-len(s):], s)
	return concat, nil
}

// readInteger reads INTEGER with a short-form length from input and returns
// its magnitude without leading zeros.
func readInteger(input *cryptobyte.String) ([]byte, bool) {
	var tag, length uint8
	var content []byte
	if !input.ReadUint8(&tag) || asn1.Tag(tag) != asn1.INTEGER {
		return nil, false
	}
	if !input.ReadUint8(&length) || length&0x80 != 0 {
		return nil, false
	}
	if !input.ReadBytes(&content, int(length)) {
		return nil, false
	}
	return trimLeadingZeros(content), true
}
