package cv

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	rows map[string]UserCV // userID -> row
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: make(map[string]UserCV)}
}

// Upsert stores the resume, replacing any existing row for the user.
func (r *MemoryRepo) Upsert(ctx context.Context, record UserCV) (UserCV, error) {
	if err := ctx.Err(); err != nil {
		return UserCV{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.rows[record.UserID]
	if ok {
		record.ID = existing.ID
	} else {
		record.ID = uuid.NewString()
	}
	record.UploadDate = time.Now().UTC()
	record.FileData = append([]byte{}, record.FileData...)
	r.rows[record.UserID] = record
	return cloneCV(record), nil
}

// GetByUserID returns the stored resume or ErrNotFound.
func (r *MemoryRepo) GetByUserID(ctx context.Context, userID string) (UserCV, error) {
	if err := ctx.Err(); err != nil {
		return UserCV{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.rows[userID]
	if !ok {
		return UserCV{}, ErrNotFound
	}
	return cloneCV(record), nil
}

func cloneCV(record UserCV) UserCV {
	record.FileData = append([]byte{}, record.FileData...)
	return record
}

var _ Repo = (*MemoryRepo)(nil)
