package util

import (
	"errors"
	"strings"
)

// SanitizeFileName normalizes an uploaded file name into a single safe path
// segment. Traversal patterns and empty names are rejected; path separators
// are replaced rather than stripped so the original name stays recognizable.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	cleaned := strings.TrimSpace(name)
	cleaned = strings.ReplaceAll(cleaned, "/", "_")
	cleaned = strings.ReplaceAll(cleaned, "\\", "_")
	if cleaned == "" {
		return "", errors.New("invalid file name")
	}
	return cleaned, nil
}
