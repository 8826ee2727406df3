package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Used to clear passwords from memory as soon as they have been consumed.
// Safe to call with a nil slice.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
