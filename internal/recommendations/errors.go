package recommendations

import "errors"

var (
	// ErrNoData means no analytics record exists for the user, so there is
	// nothing to recommend from. A record with empty skills is not ErrNoData.
	ErrNoData = errors.New("no analytics data for user")

	// ErrAINotConfigured means no AI base URL was configured.
	ErrAINotConfigured = errors.New("ai gateway not configured")

	ErrInvalidInput = errors.New("invalid recommendation input")
)
