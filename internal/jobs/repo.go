package jobs

import "context"

// Repo defines read access to the job catalog.
type Repo interface {
	// List returns every posting, newest first. An empty catalog returns an
	// empty slice, not an error.
	List(ctx context.Context) ([]Job, error)
}
