package analytics

import "errors"

var (
	// ErrNotFound means no analytics record exists for the user. Callers
	// must treat this as distinct from a record with empty collections.
	ErrNotFound = errors.New("analytics record not found")

	ErrInvalidInput = errors.New("invalid analytics input")
)
