package auth

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// SessionKey derives the map key for a bearer token so raw tokens are never
// stored as keys or logged.
func SessionKey(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
