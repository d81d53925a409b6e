package cv

import "context"

// Repo defines persistence for stored resumes. Lives in the analytics store.
type Repo interface {
	// Upsert stores the resume, replacing any existing row for the user.
	Upsert(ctx context.Context, record UserCV) (UserCV, error)

	// GetByUserID returns the stored resume or ErrNotFound.
	GetByUserID(ctx context.Context, userID string) (UserCV, error)
}
