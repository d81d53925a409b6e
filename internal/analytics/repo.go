package analytics

import "context"

// Repo defines persistence operations for the analytics store. Each mutating
// operation commits a single transaction scoped to this store only; there is
// no shared transaction with the profile store.
type Repo interface {
	// GetCandidate returns the candidate row for a user id.
	GetCandidate(ctx context.Context, userID string) (Candidate, error)

	// GetExtraction returns the personal-information row plus all child
	// collections. Collections are never nil; a missing record is ErrNotFound.
	GetExtraction(ctx context.Context, userID string) (Extraction, error)

	// ApplyProfileSync upserts Candidate and PersonalInformation and
	// replaces the full skill set for the user (delete-all-then-insert) in
	// one transaction.
	ApplyProfileSync(ctx context.Context, sync ProfileSync) error

	// ReplaceExtraction upserts PersonalInformation and replaces every
	// child collection for the user in one transaction.
	ReplaceExtraction(ctx context.Context, userID string, extraction Extraction) error
}
