package hash

// Hash produces and checks keyed fingerprints of secrets.
type Hash interface {
	// Hash returns the hex encoded fingerprint of str.
	Hash(str string) ([]byte, error)
	// Verify reports whether hashed is the fingerprint of str.
	Verify(hashed, str string) bool
}
