package common

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Used to scrub passwords from memory after the sign-in exchange.
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
