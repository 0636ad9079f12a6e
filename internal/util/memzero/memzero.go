package memzero

import "crypto/subtle"

// Zero overwrites key material with zeros in a constant-time friendly way,
// so raw bytes do not outlive their typed copy.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	zero := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zero)
}
