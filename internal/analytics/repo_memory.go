package analytics

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu           sync.RWMutex
	candidates   map[string]Candidate
	personalInfo map[string]PersonalInformation // userID -> row
	skills       map[string][]Skill             // userID -> rows
	experiences  map[string][]WorkExperience
	educations   map[string][]Education
	projects     map[string][]Project
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		candidates:   make(map[string]Candidate),
		personalInfo: make(map[string]PersonalInformation),
		skills:       make(map[string][]Skill),
		experiences:  make(map[string][]WorkExperience),
		educations:   make(map[string][]Education),
		projects:     make(map[string][]Project),
	}
}

// GetCandidate returns the candidate row for a user id.
func (r *MemoryRepo) GetCandidate(ctx context.Context, userID string) (Candidate, error) {
	if err := ctx.Err(); err != nil {
		return Candidate{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	candidate, ok := r.candidates[userID]
	if !ok {
		return Candidate{}, ErrNotFound
	}
	return candidate, nil
}

// GetExtraction returns the stored graph for a user id.
func (r *MemoryRepo) GetExtraction(ctx context.Context, userID string) (Extraction, error) {
	if err := ctx.Err(); err != nil {
		return Extraction{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.personalInfo[userID]
	if !ok {
		return Extraction{}, ErrNotFound
	}
	return Extraction{
		PersonalInformation: info,
		Skills:              append([]Skill{}, r.skills[userID]...),
		WorkExperiences:     append([]WorkExperience{}, r.experiences[userID]...),
		Educations:          append([]Education{}, r.educations[userID]...),
		Projects:            append([]Project{}, r.projects[userID]...),
	}, nil
}

// ApplyProfileSync mirrors a profile change: get-or-create candidate and
// personal information, then full-replace the skill set.
func (r *MemoryRepo) ApplyProfileSync(ctx context.Context, sync ProfileSync) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(sync.UserID) == "" {
		return ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	fullName := strings.TrimSpace(sync.FirstName + " " + sync.LastName)

	candidate, ok := r.candidates[sync.UserID]
	if !ok {
		candidate = Candidate{ID: sync.UserID, CreatedAt: now}
	}
	candidate.FullName = fullName
	candidate.UpdatedAt = now
	r.candidates[sync.UserID] = candidate

	info, ok := r.personalInfo[sync.UserID]
	if !ok {
		info = PersonalInformation{
			ID:        uuid.NewString(),
			UserID:    sync.UserID,
			CreatedAt: now,
		}
	}
	info.Name = fullName
	info.UpdatedAt = now
	r.personalInfo[sync.UserID] = info

	replacement := make([]Skill, 0, len(sync.Skills))
	for _, name := range sync.Skills {
		replacement = append(replacement, Skill{
			ID:                    uuid.NewString(),
			UserID:                sync.UserID,
			PersonalInformationID: info.ID,
			SkillName:             name,
		})
	}
	r.skills[sync.UserID] = replacement
	return nil
}

// ReplaceExtraction stores a freshly extracted graph, replacing every child
// collection for the user.
func (r *MemoryRepo) ReplaceExtraction(ctx context.Context, userID string, extraction Extraction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	info, ok := r.personalInfo[userID]
	if !ok {
		info = PersonalInformation{
			ID:        uuid.NewString(),
			UserID:    userID,
			CreatedAt: now,
		}
	}
	info.Name = extraction.PersonalInformation.Name
	info.Email = extraction.PersonalInformation.Email
	info.Phone = extraction.PersonalInformation.Phone
	info.Address = extraction.PersonalInformation.Address
	info.UpdatedAt = now
	r.personalInfo[userID] = info

	r.skills[userID] = attachSkills(userID, info.ID, extraction.Skills)
	r.experiences[userID] = attachExperiences(userID, info.ID, extraction.WorkExperiences)
	r.educations[userID] = attachEducations(userID, info.ID, extraction.Educations)
	r.projects[userID] = attachProjects(userID, info.ID, extraction.Projects)
	return nil
}

func attachSkills(userID, infoID string, in []Skill) []Skill {
	out := make([]Skill, 0, len(in))
	for _, s := range in {
		s.ID = uuid.NewString()
		s.UserID = userID
		s.PersonalInformationID = infoID
		out = append(out, s)
	}
	return out
}

func attachExperiences(userID, infoID string, in []WorkExperience) []WorkExperience {
	out := make([]WorkExperience, 0, len(in))
	for _, w := range in {
		w.ID = uuid.NewString()
		w.UserID = userID
		w.PersonalInformationID = infoID
		out = append(out, w)
	}
	return out
}

func attachEducations(userID, infoID string, in []Education) []Education {
	out := make([]Education, 0, len(in))
	for _, e := range in {
		e.ID = uuid.NewString()
		e.UserID = userID
		e.PersonalInformationID = infoID
		out = append(out, e)
	}
	return out
}

func attachProjects(userID, infoID string, in []Project) []Project {
	out := make([]Project, 0, len(in))
	for _, p := range in {
		p.ID = uuid.NewString()
		p.UserID = userID
		p.PersonalInformationID = infoID
		out = append(out, p)
	}
	return out
}

var _ Repo = (*MemoryRepo)(nil)
