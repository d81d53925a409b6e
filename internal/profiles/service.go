package profiles

import (
	"context"
	"fmt"
	"strings"
	"time"

	"careerpath-backend/internal/events"
)

// Service contains business logic for the profile aggregate. Update emits a
// ProfileChanged event after the store commit; the event is published outside
// the commit, so a sync failure never rolls back the profile write.
type Service struct {
	Repo Repo
	Bus  *events.Bus
}

// NewService constructs a Service.
func NewService(repo Repo, bus *events.Bus) *Service {
	return &Service{Repo: repo, Bus: bus}
}

// Create stores a new profile. Creation does not emit a change event; the
// analytics projection follows on the first update.
func (s *Service) Create(ctx context.Context, req CreateProfileRequest) (UserProfile, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return UserProfile{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Email) == "" {
		return UserProfile{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	now := time.Now().UTC()
	profile := UserProfile{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Bio:       req.Bio,
		Country:   req.Country,
		City:      req.City,
		Address:   req.Address,
		AvatarURL: req.AvatarURL,
		CoverURL:  req.CoverURL,
		JobTitle:  req.JobTitle,
		Skills:    normalizeSkills(req.Skills),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, profile); err != nil {
		return UserProfile{}, err
	}
	return profile, nil
}

// GetByID returns the profile for an id.
func (s *Service) GetByID(ctx context.Context, id string) (UserProfile, error) {
	if strings.TrimSpace(id) == "" {
		return UserProfile{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, id)
}

// Update overwrites the mutable fields and publishes ProfileChanged once the
// store write has committed.
func (s *Service) Update(ctx context.Context, id string, req UpdateProfileRequest) (UserProfile, error) {
	if strings.TrimSpace(id) == "" {
		return UserProfile{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	profile, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return UserProfile{}, err
	}

	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.Username = req.Username
	profile.Email = req.Email
	profile.Bio = req.Bio
	profile.Country = req.Country
	profile.City = req.City
	profile.Address = req.Address
	profile.AvatarURL = req.AvatarURL
	profile.CoverURL = req.CoverURL
	profile.JobTitle = req.JobTitle
	profile.Skills = normalizeSkills(req.Skills)
	profile.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, profile); err != nil {
		return UserProfile{}, err
	}

	if s.Bus != nil {
		s.Bus.Publish(ctx, events.ProfileChanged{
			UserID:    profile.ID,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			Skills:    append([]string(nil), profile.Skills...),
			UpdatedAt: profile.UpdatedAt,
		})
	}

	return profile, nil
}

// normalizeSkills trims entries and drops blanks and duplicates, keeping the
// incoming order.
func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
