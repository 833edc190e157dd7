package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentETag returns a strong ETag for a response body.
func ContentETag(data []byte) string {
	sum := sha256.Sum256(data)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}
