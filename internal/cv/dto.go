package cv

import "time"

// UploadResponse is returned after a successful resume upload.
type UploadResponse struct {
	UserID     string    `json:"userId"`
	FileName   string    `json:"fileName"`
	SizeBytes  int       `json:"sizeBytes"`
	UploadDate time.Time `json:"uploadDate"`
}

// PersonalInfoView is the personal block of a CV analysis response.
type PersonalInfoView struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// SkillView is one skill entry of a CV analysis response.
type SkillView struct {
	SkillName        string `json:"skillName"`
	ProficiencyLevel string `json:"proficiencyLevel,omitempty"`
}

// WorkExperienceView is one work-history entry of a CV analysis response.
type WorkExperienceView struct {
	JobTitle       string `json:"jobTitle"`
	JobLevel       string `json:"jobLevel,omitempty"`
	Company        string `json:"company"`
	StartYear      *int   `json:"startYear"`
	StartMonth     *int   `json:"startMonth"`
	EndYear        *int   `json:"endYear"`
	EndMonth       *int   `json:"endMonth"`
	JobDescription string `json:"jobDescription"`
}

// EducationView is one education entry of a CV analysis response.
type EducationView struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	FieldOfStudy   string `json:"fieldOfStudy"`
	StartYear      *int   `json:"startYear"`
	StartMonth     *int   `json:"startMonth"`
	EndYear        *int   `json:"endYear"`
	EndMonth       *int   `json:"endMonth"`
	EducationLevel string `json:"educationLevel,omitempty"`
}

// ProjectView is one project entry of a CV analysis response.
type ProjectView struct {
	ProjectName string     `json:"projectName"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	URL         string     `json:"url,omitempty"`
	Description string     `json:"description"`
}

// CVAnalysis is the structured CV data returned to clients. Collections are
// never nil.
type CVAnalysis struct {
	PersonalInformation PersonalInfoView     `json:"personalInformation"`
	Skills              []SkillView          `json:"skills"`
	WorkExperiences     []WorkExperienceView `json:"workExperiences"`
	Educations          []EducationView      `json:"educations"`
	Projects            []ProjectView        `json:"projects"`
}
