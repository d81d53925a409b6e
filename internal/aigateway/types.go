package aigateway

import "fmt"

// ExtractedPersonalInformation is the personal block of an extraction result.
type ExtractedPersonalInformation struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ExtractedSkill is one skill entry from the extraction model.
type ExtractedSkill struct {
	SkillName        string `json:"skill_name"`
	ProficiencyLevel string `json:"proficiency_level"`
}

// ExtractedWorkExperience is one work-history entry from the extraction model.
type ExtractedWorkExperience struct {
	JobTitle       string `json:"job_title"`
	JobLevel       string `json:"job_level"`
	Company        string `json:"company"`
	StartYear      *int   `json:"start_year"`
	StartMonth     *int   `json:"start_month"`
	EndYear        *int   `json:"end_year"`
	EndMonth       *int   `json:"end_month"`
	JobDescription string `json:"job_description"`
}

// ExtractedEducation is one education entry from the extraction model.
type ExtractedEducation struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	FieldOfStudy   string `json:"field_of_study"`
	StartYear      *int   `json:"start_year"`
	StartMonth     *int   `json:"start_month"`
	EndYear        *int   `json:"end_year"`
	EndMonth       *int   `json:"end_month"`
	EducationLevel string `json:"education_level"`
}

// ExtractedProject is one project entry from the extraction model.
type ExtractedProject struct {
	ProjectName string `json:"project_name"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// ExtractedCV is the structured result of a resume extraction. Collections
// are never nil; a section the model omitted comes back as an empty slice.
type ExtractedCV struct {
	PersonalInformation ExtractedPersonalInformation `json:"personal_information"`
	Skills              []ExtractedSkill             `json:"skills"`
	WorkExperiences     []ExtractedWorkExperience    `json:"work_experiences"`
	Educations          []ExtractedEducation         `json:"educations"`
	Projects            []ExtractedProject           `json:"projects"`
}

// WorkExperienceSummary is the slimmed work-history item sent to the
// recommendation model.
type WorkExperienceSummary struct {
	JobTitle       string `json:"job_title"`
	Company        string `json:"company"`
	JobDescription string `json:"job_description"`
}

// ProjectSummary is the slimmed project item sent to the recommendation model.
type ProjectSummary struct {
	ProjectName string `json:"project_name"`
	Description string `json:"description"`
}

// RecommendationPayload is the request body for job recommendations.
type RecommendationPayload struct {
	Skills         []string                `json:"skills"`
	WorkExperience []WorkExperienceSummary `json:"work_experience"`
	Projects       []ProjectSummary        `json:"projects"`
}

// RecommendedJob is one recommendation item. The upstream schema varies
// between deployments, so items pass through untyped.
type RecommendedJob map[string]any

// JobRecommendationResponse is the normalized recommendation result.
type JobRecommendationResponse struct {
	Recommendations []RecommendedJob `json:"recommendations"`
}

// JobPosting is one catalog entry sent to the skill-similarity model. The
// model's request schema names the title field "title".
type JobPosting struct {
	JobTitle    string `json:"title"`
	Description string `json:"description"`
}

// SimilarityPayload is the request body for skill-similarity matching.
// UserSkills is a single comma-joined string and the catalog travels under
// "job_descriptions"; both names are fixed by the model's request schema.
type SimilarityPayload struct {
	UserSkills string       `json:"user_skills"`
	Jobs       []JobPosting `json:"job_descriptions"`
}

// SkillRecommendationResponse passes the similarity model's body through
// untyped.
type SkillRecommendationResponse map[string]any

// StatusError reports a non-2xx response from the AI service, carrying the
// upstream status and body for diagnostics.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ai %s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}
