package analytics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres. Every mutating method runs inside a
// transaction on this store's own connection pool.
type PGRepo struct {
	DB *sql.DB
}

// GetCandidate returns the candidate row for a user id.
func (r *PGRepo) GetCandidate(ctx context.Context, userID string) (Candidate, error) {
	const query = `
SELECT id, full_name, location, created_at, updated_at
FROM candidates
WHERE id = $1
LIMIT 1`
	var candidate Candidate
	var location sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&candidate.ID,
		&candidate.FullName,
		&location,
		&candidate.CreatedAt,
		&candidate.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Candidate{}, ErrNotFound
		}
		return Candidate{}, err
	}
	candidate.Location = location.String
	return candidate, nil
}

// GetExtraction returns the personal-information row plus all children.
func (r *PGRepo) GetExtraction(ctx context.Context, userID string) (Extraction, error) {
	info, err := r.getPersonalInfo(ctx, userID)
	if err != nil {
		return Extraction{}, err
	}

	extraction := Extraction{
		PersonalInformation: info,
		Skills:              []Skill{},
		WorkExperiences:     []WorkExperience{},
		Educations:          []Education{},
		Projects:            []Project{},
	}

	if extraction.Skills, err = r.listSkills(ctx, userID); err != nil {
		return Extraction{}, err
	}
	if extraction.WorkExperiences, err = r.listExperiences(ctx, userID); err != nil {
		return Extraction{}, err
	}
	if extraction.Educations, err = r.listEducations(ctx, userID); err != nil {
		return Extraction{}, err
	}
	if extraction.Projects, err = r.listProjects(ctx, userID); err != nil {
		return Extraction{}, err
	}
	return extraction, nil
}

// ApplyProfileSync upserts candidate and personal information and replaces
// the skill set, all in one transaction.
func (r *PGRepo) ApplyProfileSync(ctx context.Context, sync ProfileSync) error {
	if strings.TrimSpace(sync.UserID) == "" {
		return ErrInvalidInput
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sync tx: %w", err)
	}
	defer tx.Rollback()

	fullName := strings.TrimSpace(sync.FirstName + " " + sync.LastName)
	now := time.Now().UTC()

	const upsertCandidate = `
INSERT INTO candidates (id, full_name, created_at, updated_at)
VALUES ($1, $2, $3, $3)
ON CONFLICT (id) DO UPDATE SET full_name = EXCLUDED.full_name, updated_at = EXCLUDED.updated_at`
	if _, err := tx.ExecContext(ctx, upsertCandidate, sync.UserID, fullName, now); err != nil {
		return fmt.Errorf("upsert candidate: %w", err)
	}

	infoID, err := upsertPersonalInfoTx(ctx, tx, sync.UserID, personalInfoFields{name: fullName}, false)
	if err != nil {
		return err
	}

	const deleteSkills = `DELETE FROM skills WHERE user_id = $1`
	if _, err := tx.ExecContext(ctx, deleteSkills, sync.UserID); err != nil {
		return fmt.Errorf("delete skills: %w", err)
	}

	const insertSkill = `
INSERT INTO skills (id, user_id, personal_information_id, skill_name, created_at)
VALUES ($1, $2, $3, $4, $5)`
	for _, name := range sync.Skills {
		if _, err := tx.ExecContext(ctx, insertSkill, uuid.NewString(), sync.UserID, infoID, name, now); err != nil {
			return fmt.Errorf("insert skill: %w", err)
		}
	}

	return tx.Commit()
}

// ReplaceExtraction upserts personal information and replaces every child
// collection in one transaction.
func (r *PGRepo) ReplaceExtraction(ctx context.Context, userID string, extraction Extraction) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin extraction tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	infoID, err := upsertPersonalInfoTx(ctx, tx, userID, personalInfoFields{
		name:    extraction.PersonalInformation.Name,
		email:   extraction.PersonalInformation.Email,
		phone:   extraction.PersonalInformation.Phone,
		address: extraction.PersonalInformation.Address,
	}, true)
	if err != nil {
		return err
	}

	for _, table := range []string{"skills", "work_experiences", "educations", "projects"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE user_id = $1", userID); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}

	const insertSkill = `
INSERT INTO skills (id, user_id, personal_information_id, skill_name, proficiency_level, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	for _, s := range extraction.Skills {
		if _, err := tx.ExecContext(ctx, insertSkill,
			uuid.NewString(), userID, infoID,
			nullableString(s.SkillName), nullableString(s.ProficiencyLevel), now,
		); err != nil {
			return fmt.Errorf("insert skill: %w", err)
		}
	}

	const insertExperience = `
INSERT INTO work_experiences (id, user_id, personal_information_id, job_title, job_level, company,
                              start_year, start_month, end_year, end_month, job_description, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for _, w := range extraction.WorkExperiences {
		if _, err := tx.ExecContext(ctx, insertExperience,
			uuid.NewString(), userID, infoID,
			nullableString(w.JobTitle), nullableString(w.JobLevel), nullableString(w.Company),
			nullableInt(w.StartYear), nullableInt(w.StartMonth), nullableInt(w.EndYear), nullableInt(w.EndMonth),
			nullableString(w.JobDescription), now,
		); err != nil {
			return fmt.Errorf("insert work experience: %w", err)
		}
	}

	const insertEducation = `
INSERT INTO educations (id, user_id, personal_information_id, institution, degree, field_of_study,
                        start_year, start_month, end_year, end_month, education_level, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for _, e := range extraction.Educations {
		if _, err := tx.ExecContext(ctx, insertEducation,
			uuid.NewString(), userID, infoID,
			nullableString(e.Institution), nullableString(e.Degree), nullableString(e.FieldOfStudy),
			nullableInt(e.StartYear), nullableInt(e.StartMonth), nullableInt(e.EndYear), nullableInt(e.EndMonth),
			nullableString(e.EducationLevel), now,
		); err != nil {
			return fmt.Errorf("insert education: %w", err)
		}
	}

	const insertProject = `
INSERT INTO projects (id, user_id, personal_information_id, project_name, start_date, end_date, url, description, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, p := range extraction.Projects {
		if _, err := tx.ExecContext(ctx, insertProject,
			uuid.NewString(), userID, infoID,
			nullableString(p.ProjectName), nullableTime(p.StartDate), nullableTime(p.EndDate),
			nullableString(p.URL), nullableString(p.Description), now,
		); err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
	}

	return tx.Commit()
}

type personalInfoFields struct {
	name    string
	email   string
	phone   string
	address string
}

// upsertPersonalInfoTx gets or creates the personal-information row inside
// the caller's transaction and returns its id. When overwriteContact is
// false only the name is touched (profile sync must not clobber CV-derived
// contact fields).
func upsertPersonalInfoTx(ctx context.Context, tx *sql.Tx, userID string, f personalInfoFields, overwriteContact bool) (string, error) {
	const selectInfo = `SELECT id FROM personal_information WHERE user_id = $1 LIMIT 1`
	now := time.Now().UTC()

	var infoID string
	err := tx.QueryRowContext(ctx, selectInfo, userID).Scan(&infoID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		infoID = uuid.NewString()
		const insertInfo = `
INSERT INTO personal_information (id, user_id, name, email, phone, address, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
		if _, err := tx.ExecContext(ctx, insertInfo,
			infoID, userID,
			nullableString(f.name), nullableString(f.email), nullableString(f.phone), nullableString(f.address),
			now,
		); err != nil {
			return "", fmt.Errorf("insert personal information: %w", err)
		}
		return infoID, nil
	case err != nil:
		return "", fmt.Errorf("select personal information: %w", err)
	}

	if overwriteContact {
		const updateInfo = `
UPDATE personal_information
SET name = $2, email = $3, phone = $4, address = $5, updated_at = $6
WHERE id = $1`
		if _, err := tx.ExecContext(ctx, updateInfo,
			infoID,
			nullableString(f.name), nullableString(f.email), nullableString(f.phone), nullableString(f.address),
			now,
		); err != nil {
			return "", fmt.Errorf("update personal information: %w", err)
		}
		return infoID, nil
	}

	const updateName = `UPDATE personal_information SET name = $2, updated_at = $3 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, updateName, infoID, nullableString(f.name), now); err != nil {
		return "", fmt.Errorf("update personal information: %w", err)
	}
	return infoID, nil
}

func (r *PGRepo) getPersonalInfo(ctx context.Context, userID string) (PersonalInformation, error) {
	const query = `
SELECT id, user_id, name, email, phone, address, created_at, updated_at
FROM personal_information
WHERE user_id = $1
LIMIT 1`
	var info PersonalInformation
	var name, email, phone, address sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&info.ID,
		&info.UserID,
		&name,
		&email,
		&phone,
		&address,
		&info.CreatedAt,
		&info.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PersonalInformation{}, ErrNotFound
		}
		return PersonalInformation{}, err
	}
	info.Name = name.String
	info.Email = email.String
	info.Phone = phone.String
	info.Address = address.String
	return info, nil
}

func (r *PGRepo) listSkills(ctx context.Context, userID string) ([]Skill, error) {
	const query = `
SELECT id, user_id, personal_information_id, skill_name, proficiency_level
FROM skills
WHERE user_id = $1
ORDER BY created_at, id`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Skill{}
	for rows.Next() {
		var s Skill
		var skillName, proficiency sql.NullString
		if err := rows.Scan(&s.ID, &s.UserID, &s.PersonalInformationID, &skillName, &proficiency); err != nil {
			return nil, err
		}
		s.SkillName = skillName.String
		s.ProficiencyLevel = proficiency.String
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGRepo) listExperiences(ctx context.Context, userID string) ([]WorkExperience, error) {
	const query = `
SELECT id, user_id, personal_information_id, job_title, job_level, company,
       start_year, start_month, end_year, end_month, job_description
FROM work_experiences
WHERE user_id = $1
ORDER BY created_at, id`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []WorkExperience{}
	for rows.Next() {
		var w WorkExperience
		var jobTitle, jobLevel, company, description sql.NullString
		var startYear, startMonth, endYear, endMonth sql.NullInt64
		if err := rows.Scan(&w.ID, &w.UserID, &w.PersonalInformationID,
			&jobTitle, &jobLevel, &company,
			&startYear, &startMonth, &endYear, &endMonth, &description,
		); err != nil {
			return nil, err
		}
		w.JobTitle = jobTitle.String
		w.JobLevel = jobLevel.String
		w.Company = company.String
		w.JobDescription = description.String
		w.StartYear = intPtr(startYear)
		w.StartMonth = intPtr(startMonth)
		w.EndYear = intPtr(endYear)
		w.EndMonth = intPtr(endMonth)
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *PGRepo) listEducations(ctx context.Context, userID string) ([]Education, error) {
	const query = `
SELECT id, user_id, personal_information_id, institution, degree, field_of_study,
       start_year, start_month, end_year, end_month, education_level
FROM educations
WHERE user_id = $1
ORDER BY created_at, id`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Education{}
	for rows.Next() {
		var e Education
		var institution, degree, fieldOfStudy, level sql.NullString
		var startYear, startMonth, endYear, endMonth sql.NullInt64
		if err := rows.Scan(&e.ID, &e.UserID, &e.PersonalInformationID,
			&institution, &degree, &fieldOfStudy,
			&startYear, &startMonth, &endYear, &endMonth, &level,
		); err != nil {
			return nil, err
		}
		e.Institution = institution.String
		e.Degree = degree.String
		e.FieldOfStudy = fieldOfStudy.String
		e.EducationLevel = level.String
		e.StartYear = intPtr(startYear)
		e.StartMonth = intPtr(startMonth)
		e.EndYear = intPtr(endYear)
		e.EndMonth = intPtr(endMonth)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PGRepo) listProjects(ctx context.Context, userID string) ([]Project, error) {
	const query = `
SELECT id, user_id, personal_information_id, project_name, start_date, end_date, url, description
FROM projects
WHERE user_id = $1
ORDER BY created_at, id`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Project{}
	for rows.Next() {
		var p Project
		var projectName, url, description sql.NullString
		var startDate, endDate sql.NullTime
		if err := rows.Scan(&p.ID, &p.UserID, &p.PersonalInformationID,
			&projectName, &startDate, &endDate, &url, &description,
		); err != nil {
			return nil, err
		}
		p.ProjectName = projectName.String
		p.URL = url.String
		p.Description = description.String
		if startDate.Valid {
			t := startDate.Time
			p.StartDate = &t
		}
		if endDate.Valid {
			t := endDate.Time
			p.EndDate = &t
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return *value
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

var _ Repo = (*PGRepo)(nil)
