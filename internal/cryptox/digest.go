// Package cryptox fingerprints captured patterns so they can be compared and
// logged without handling the image itself.
package cryptox

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// shortLen is the number of hex characters kept by Short.
const shortLen = 12

// Digest returns the hex-encoded BLAKE2b-256 of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Short returns a log-friendly prefix of Digest(data). Empty input yields "".
func Short(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return Digest(data)[:shortLen]
}
