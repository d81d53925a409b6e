package analytics

import "time"

// Candidate mirrors minimal profile identity into the analytics store. Keyed
// by the same user id as the profile aggregate; at most one row per user.
type Candidate struct {
	ID        string
	FullName  string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PersonalInformation holds the CV-derived personal projection for a user.
// At most one row per user id; child collections belong to it exclusively.
type PersonalInformation struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Skill is a single skill row. The denormalized UserID exists for query
// convenience; ownership is through PersonalInformationID.
type Skill struct {
	ID                    string
	UserID                string
	PersonalInformationID string
	SkillName             string
	ProficiencyLevel      string
}

// WorkExperience is a single work-history row.
type WorkExperience struct {
	ID                    string
	UserID                string
	PersonalInformationID string
	JobTitle              string
	JobLevel              string
	Company               string
	StartYear             *int
	StartMonth            *int
	EndYear               *int
	EndMonth              *int
	JobDescription        string
}

// Education is a single education row.
type Education struct {
	ID                    string
	UserID                string
	PersonalInformationID string
	Institution           string
	Degree                string
	FieldOfStudy          string
	StartYear             *int
	StartMonth            *int
	EndYear               *int
	EndMonth              *int
	EducationLevel        string
}

// Project is a single project row.
type Project struct {
	ID                    string
	UserID                string
	PersonalInformationID string
	ProjectName           string
	StartDate             *time.Time
	EndDate               *time.Time
	URL                   string
	Description           string
}

// Extraction is the full CV-derived graph for one user.
type Extraction struct {
	PersonalInformation PersonalInformation
	Skills              []Skill
	WorkExperiences     []WorkExperience
	Educations          []Education
	Projects            []Project
}

// ProfileSync carries the fields mirrored from a profile-changed event.
type ProfileSync struct {
	UserID    string
	FirstName string
	LastName  string
	Skills    []string
	UpdatedAt time.Time
}
