package cv

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"careerpath-backend/internal/aigateway"
	"careerpath-backend/internal/analytics"
	"careerpath-backend/internal/shared/storage/object"
	"careerpath-backend/internal/shared/telemetry"
)

const (
	pdfContentType = "application/pdf"
	maxFileSize    = 10 << 20 // 10 MiB
)

// Service implements resume storage and the extraction pipeline.
type Service struct {
	Repo      Repo
	Analytics analytics.Repo
	Gateway   aigateway.Client
	Archive   object.ObjectStore
}

// NewService constructs a Service. Gateway and Archive may be nil; extraction
// then fails with ErrAINotConfigured and archival is skipped.
func NewService(repo Repo, analyticsRepo analytics.Repo, gateway aigateway.Client, archive object.ObjectStore) *Service {
	return &Service{Repo: repo, Analytics: analyticsRepo, Gateway: gateway, Archive: archive}
}

// SaveCV validates and stores an uploaded resume. One row per user; a second
// upload overwrites the first. The stored bytes are the canonical copy; the
// text preview and the object-store archive are both best-effort.
func (s *Service) SaveCV(ctx context.Context, userID, fileName, contentType string, data []byte) (UserCV, error) {
	if strings.TrimSpace(userID) == "" {
		return UserCV{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if len(data) == 0 {
		return UserCV{}, fmt.Errorf("%w: file is empty", ErrValidation)
	}
	if !strings.EqualFold(normalizeContentType(contentType), pdfContentType) {
		return UserCV{}, fmt.Errorf("%w: only PDF files are accepted", ErrValidation)
	}
	if len(data) > maxFileSize {
		return UserCV{}, fmt.Errorf("%w: file exceeds 10 MiB", ErrValidation)
	}

	preview, err := extractTextPreview(data)
	if err != nil {
		telemetry.Warn("cv.preview_failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}

	record, err := s.Repo.Upsert(ctx, UserCV{
		UserID:      userID,
		FileName:    fileName,
		ContentType: pdfContentType,
		FileData:    data,
		TextPreview: preview,
	})
	if err != nil {
		return UserCV{}, fmt.Errorf("store cv: %w", err)
	}

	if s.Archive != nil {
		if key, _, err := s.Archive.Save(ctx, userID, fileName, bytes.NewReader(data)); err != nil {
			telemetry.Warn("cv.archive_failed", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		} else {
			telemetry.Info("cv.archived", map[string]any{
				"user_id":     userID,
				"storage_key": key,
			})
		}
	}

	telemetry.Info("cv.stored", map[string]any{
		"user_id":    userID,
		"file_name":  record.FileName,
		"size_bytes": len(record.FileData),
	})
	return record, nil
}

// GetUserCV returns the stored resume for a user.
func (s *Service) GetUserCV(ctx context.Context, userID string) (UserCV, error) {
	if strings.TrimSpace(userID) == "" {
		return UserCV{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	return s.Repo.GetByUserID(ctx, userID)
}

// ExtractStructuredData sends the stored resume to the AI service and
// replaces the user's analytics record with the result. A missing resume
// fails before any network call. No automatic retry; the caller re-invokes.
func (s *Service) ExtractStructuredData(ctx context.Context, userID string) (CVAnalysis, error) {
	if strings.TrimSpace(userID) == "" {
		return CVAnalysis{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}

	record, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return CVAnalysis{}, err
	}

	if s.Gateway == nil {
		return CVAnalysis{}, ErrAINotConfigured
	}

	extracted, err := s.Gateway.ExtractResume(ctx, record.FileName, record.FileData)
	if err != nil {
		return CVAnalysis{}, fmt.Errorf("extract resume: %w", err)
	}

	extraction := toExtraction(userID, extracted)
	if err := s.Analytics.ReplaceExtraction(ctx, userID, extraction); err != nil {
		return CVAnalysis{}, fmt.Errorf("persist extraction: %w", err)
	}

	telemetry.Info("cv.extracted", map[string]any{
		"user_id":     userID,
		"skill_count": len(extraction.Skills),
	})
	return toAnalysis(extraction), nil
}

// Analysis returns the stored structured CV data for a user.
func (s *Service) Analysis(ctx context.Context, userID string) (CVAnalysis, error) {
	if strings.TrimSpace(userID) == "" {
		return CVAnalysis{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	extraction, err := s.Analytics.GetExtraction(ctx, userID)
	if err != nil {
		return CVAnalysis{}, err
	}
	return toAnalysis(extraction), nil
}

func normalizeContentType(raw string) string {
	// Strip parameters such as "; charset=binary".
	if idx := strings.Index(raw, ";"); idx >= 0 {
		raw = raw[:idx]
	}
	return strings.TrimSpace(raw)
}

func toExtraction(userID string, in aigateway.ExtractedCV) analytics.Extraction {
	out := analytics.Extraction{
		PersonalInformation: analytics.PersonalInformation{
			UserID:  userID,
			Name:    in.PersonalInformation.Name,
			Email:   in.PersonalInformation.Email,
			Phone:   in.PersonalInformation.Phone,
			Address: in.PersonalInformation.Address,
		},
		Skills:          make([]analytics.Skill, 0, len(in.Skills)),
		WorkExperiences: make([]analytics.WorkExperience, 0, len(in.WorkExperiences)),
		Educations:      make([]analytics.Education, 0, len(in.Educations)),
		Projects:        make([]analytics.Project, 0, len(in.Projects)),
	}

	for _, s := range in.Skills {
		out.Skills = append(out.Skills, analytics.Skill{
			SkillName:        s.SkillName,
			ProficiencyLevel: s.ProficiencyLevel,
		})
	}
	for _, w := range in.WorkExperiences {
		out.WorkExperiences = append(out.WorkExperiences, analytics.WorkExperience{
			JobTitle:       w.JobTitle,
			JobLevel:       w.JobLevel,
			Company:        w.Company,
			StartYear:      w.StartYear,
			StartMonth:     w.StartMonth,
			EndYear:        w.EndYear,
			EndMonth:       w.EndMonth,
			JobDescription: w.JobDescription,
		})
	}
	for _, e := range in.Educations {
		out.Educations = append(out.Educations, analytics.Education{
			Institution:    e.Institution,
			Degree:         e.Degree,
			FieldOfStudy:   e.FieldOfStudy,
			StartYear:      e.StartYear,
			StartMonth:     e.StartMonth,
			EndYear:        e.EndYear,
			EndMonth:       e.EndMonth,
			EducationLevel: e.EducationLevel,
		})
	}
	for _, p := range in.Projects {
		out.Projects = append(out.Projects, analytics.Project{
			ProjectName: p.ProjectName,
			StartDate:   parseDate(p.StartDate),
			EndDate:     parseDate(p.EndDate),
			URL:         p.URL,
			Description: p.Description,
		})
	}
	return out
}

func toAnalysis(in analytics.Extraction) CVAnalysis {
	out := CVAnalysis{
		PersonalInformation: PersonalInfoView{
			Name:    in.PersonalInformation.Name,
			Email:   in.PersonalInformation.Email,
			Phone:   in.PersonalInformation.Phone,
			Address: in.PersonalInformation.Address,
		},
		Skills:          make([]SkillView, 0, len(in.Skills)),
		WorkExperiences: make([]WorkExperienceView, 0, len(in.WorkExperiences)),
		Educations:      make([]EducationView, 0, len(in.Educations)),
		Projects:        make([]ProjectView, 0, len(in.Projects)),
	}

	for _, s := range in.Skills {
		out.Skills = append(out.Skills, SkillView{
			SkillName:        s.SkillName,
			ProficiencyLevel: s.ProficiencyLevel,
		})
	}
	for _, w := range in.WorkExperiences {
		out.WorkExperiences = append(out.WorkExperiences, WorkExperienceView{
			JobTitle:       w.JobTitle,
			JobLevel:       w.JobLevel,
			Company:        w.Company,
			StartYear:      w.StartYear,
			StartMonth:     w.StartMonth,
			EndYear:        w.EndYear,
			EndMonth:       w.EndMonth,
			JobDescription: w.JobDescription,
		})
	}
	for _, e := range in.Educations {
		out.Educations = append(out.Educations, EducationView{
			Institution:    e.Institution,
			Degree:         e.Degree,
			FieldOfStudy:   e.FieldOfStudy,
			StartYear:      e.StartYear,
			StartMonth:     e.StartMonth,
			EndYear:        e.EndYear,
			EndMonth:       e.EndMonth,
			EducationLevel: e.EducationLevel,
		})
	}
	for _, p := range in.Projects {
		out.Projects = append(out.Projects, ProjectView{
			ProjectName: p.ProjectName,
			StartDate:   p.StartDate,
			EndDate:     p.EndDate,
			URL:         p.URL,
			Description: p.Description,
		})
	}
	return out
}

func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
