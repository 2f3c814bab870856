package common

// WipeByteArray overwrites b with zeros. Use it to drop passwords read from a
// terminal once they are no longer needed. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
