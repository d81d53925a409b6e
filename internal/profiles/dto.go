package profiles

import "time"

// ProfileResponse is the outward-facing representation of a profile.
type ProfileResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio,omitempty"`
	Country   string    `json:"country,omitempty"`
	City      string    `json:"city,omitempty"`
	Address   string    `json:"address,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CoverURL  string    `json:"coverUrl,omitempty"`
	JobTitle  string    `json:"jobTitle,omitempty"`
	Skills    []string  `json:"skills"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateProfileRequest carries the fields accepted on profile creation.
type CreateProfileRequest struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Bio       string   `json:"bio"`
	Country   string   `json:"country"`
	City      string   `json:"city"`
	Address   string   `json:"address"`
	AvatarURL string   `json:"avatarUrl"`
	CoverURL  string   `json:"coverUrl"`
	JobTitle  string   `json:"jobTitle"`
	Skills    []string `json:"skills"`
}

// UpdateProfileRequest carries the mutable profile fields. All fields are
// applied as given; the skill list replaces the stored set.
type UpdateProfileRequest struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Bio       string   `json:"bio"`
	Country   string   `json:"country"`
	City      string   `json:"city"`
	Address   string   `json:"address"`
	AvatarURL string   `json:"avatarUrl"`
	CoverURL  string   `json:"coverUrl"`
	JobTitle  string   `json:"jobTitle"`
	Skills    []string `json:"skills"`
}

func toResponse(p UserProfile) ProfileResponse {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return ProfileResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Username:  p.Username,
		Email:     p.Email,
		Bio:       p.Bio,
		Country:   p.Country,
		City:      p.City,
		Address:   p.Address,
		AvatarURL: p.AvatarURL,
		CoverURL:  p.CoverURL,
		JobTitle:  p.JobTitle,
		Skills:    skills,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
