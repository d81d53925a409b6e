package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Skills are stored as a JSONB array.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new profile row.
func (r *PGRepo) Create(ctx context.Context, profile UserProfile) error {
	const query = `
INSERT INTO user_profiles (
    id, first_name, last_name, username, email, bio,
    country, city, address, avatar_url, cover_url, job_title,
    skills, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	skills, err := marshalSkills(profile.Skills)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		profile.ID,
		profile.FirstName,
		profile.LastName,
		profile.Username,
		profile.Email,
		nullableString(profile.Bio),
		nullableString(profile.Country),
		nullableString(profile.City),
		nullableString(profile.Address),
		nullableString(profile.AvatarURL),
		nullableString(profile.CoverURL),
		nullableString(profile.JobTitle),
		skills,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return err
}

// GetByID returns the profile for an id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (UserProfile, error) {
	const query = `
SELECT id, first_name, last_name, username, email, bio,
       country, city, address, avatar_url, cover_url, job_title,
       skills, created_at, updated_at
FROM user_profiles
WHERE id = $1
LIMIT 1`

	var profile UserProfile
	var bio, country, city, address, avatarURL, coverURL, jobTitle sql.NullString
	var skillsRaw []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&profile.ID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Username,
		&profile.Email,
		&bio,
		&country,
		&city,
		&address,
		&avatarURL,
		&coverURL,
		&jobTitle,
		&skillsRaw,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UserProfile{}, ErrNotFound
		}
		return UserProfile{}, err
	}
	profile.Bio = bio.String
	profile.Country = country.String
	profile.City = city.String
	profile.Address = address.String
	profile.AvatarURL = avatarURL.String
	profile.CoverURL = coverURL.String
	profile.JobTitle = jobTitle.String
	if len(skillsRaw) > 0 {
		if err := json.Unmarshal(skillsRaw, &profile.Skills); err != nil {
			return UserProfile{}, fmt.Errorf("decode skills for profile %s: %w", id, err)
		}
	}
	return profile, nil
}

// Update overwrites the mutable profile fields.
func (r *PGRepo) Update(ctx context.Context, profile UserProfile) error {
	const query = `
UPDATE user_profiles
SET first_name = $2, last_name = $3, username = $4, email = $5, bio = $6,
    country = $7, city = $8, address = $9, avatar_url = $10, cover_url = $11,
    job_title = $12, skills = $13, updated_at = $14
WHERE id = $1`

	skills, err := marshalSkills(profile.Skills)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		profile.ID,
		profile.FirstName,
		profile.LastName,
		profile.Username,
		profile.Email,
		nullableString(profile.Bio),
		nullableString(profile.Country),
		nullableString(profile.City),
		nullableString(profile.Address),
		nullableString(profile.AvatarURL),
		nullableString(profile.CoverURL),
		nullableString(profile.JobTitle),
		skills,
		profile.UpdatedAt,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalSkills(skills []string) ([]byte, error) {
	if skills == nil {
		skills = []string{}
	}
	out, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("encode skills: %w", err)
	}
	return out, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
