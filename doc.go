/*
Package joseecdsa converts ECDSA signatures produced by general-purpose
cryptographic libraries and hardware signers (ASN.1/DER, a SEQUENCE of two
INTEGERs) to the fixed-length R||S form required by JWS (ES256, ES384, ES512).

These operations include:

-- Resolving the concatenated signature length for a JWS algorithm

-- Transcoding DER signatures to the concatenated form

-- Building and signing compact JWS tokens with any crypto.Signer

See the examples for more information.
*/
package joseecdsa
