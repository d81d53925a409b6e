package jobs

import "time"

// Job is one posting in the catalog used for skill-similarity matching.
type Job struct {
	ID          string
	Title       string
	CompanyName string
	Description string
	PostedAt    time.Time
}
