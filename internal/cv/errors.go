package cv

import "errors"

var (
	// ErrNotFound means the user has no stored resume.
	ErrNotFound = errors.New("cv not found")

	// ErrValidation covers rejected uploads: empty payload, blank user id,
	// wrong content type, oversized file.
	ErrValidation = errors.New("cv validation failed")

	// ErrAINotConfigured means no AI base URL was configured, so extraction
	// cannot run.
	ErrAINotConfigured = errors.New("ai gateway not configured")
)
