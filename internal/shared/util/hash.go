package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey derives a stable, filesystem- and S3-safe directory name from
// a user id. User ids may carry characters that are unsafe as path segments,
// so archived resumes are namespaced by this hash instead.
func HashUserKey(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}
