package jobs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	rows map[string]Job
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: make(map[string]Job)}
}

// Add inserts or replaces a posting. Used for seeding and tests.
func (r *MemoryRepo) Add(job Job) {
	r.mu.Lock()
	r.rows[job.ID] = job
	r.mu.Unlock()
}

// List returns every posting, newest first.
func (r *MemoryRepo) List(ctx context.Context) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Job, 0, len(r.rows))
	for _, job := range r.rows {
		out = append(out, job)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PostedAt.Equal(out[j].PostedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].PostedAt.After(out[j].PostedAt)
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
