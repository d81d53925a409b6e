package profiles

import "context"

// Repo defines persistence operations for user profiles.
type Repo interface {
	Create(ctx context.Context, profile UserProfile) error
	GetByID(ctx context.Context, id string) (UserProfile, error)
	Update(ctx context.Context, profile UserProfile) error
}
