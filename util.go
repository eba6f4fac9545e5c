package joseecdsa

// trimLeadingZeros returns b without leading zero bytes. The result shares
// memory with b and is empty if all bytes are zero.
func trimLeadingZeros(b []byte) []byte {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	return b
}
