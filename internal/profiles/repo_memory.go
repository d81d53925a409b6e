package profiles

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]UserProfile
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]UserProfile)}
}

// Create stores a new profile, failing if one already exists for the id.
func (r *MemoryRepo) Create(ctx context.Context, profile UserProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[profile.ID]; ok {
		return ErrExists
	}
	r.data[profile.ID] = cloneProfile(profile)
	return nil
}

// GetByID returns the profile for an id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return UserProfile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.data[id]
	if !ok {
		return UserProfile{}, ErrNotFound
	}
	return cloneProfile(profile), nil
}

// Update overwrites an existing profile.
func (r *MemoryRepo) Update(ctx context.Context, profile UserProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[profile.ID]; !ok {
		return ErrNotFound
	}
	r.data[profile.ID] = cloneProfile(profile)
	return nil
}

func cloneProfile(p UserProfile) UserProfile {
	out := p
	out.Skills = append([]string(nil), p.Skills...)
	return out
}

var _ Repo = (*MemoryRepo)(nil)
