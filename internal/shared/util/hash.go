package util

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// HashUserKey returns a stable, non-reversible identifier for a user ID,
// suitable for log lines.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Fingerprint hashes the JSON encoding of v. Equal inputs give equal
// fingerprints, so repeated recommendations can be correlated in logs.
func Fingerprint(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:16]), nil
}
