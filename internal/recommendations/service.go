package recommendations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"careerpath-backend/internal/aigateway"
	"careerpath-backend/internal/analytics"
	"careerpath-backend/internal/jobs"
	"careerpath-backend/internal/shared/telemetry"
)

// Placeholder posting sent to the similarity model when the catalog is
// empty, so the model always has at least one job to score against.
var placeholderJob = aigateway.JobPosting{
	JobTitle:    "Software Developer",
	Description: "Experienced developer with skills in web development.",
}

// Service implements the recommendation pipelines on top of the analytics
// store, the job catalog and the AI gateway.
type Service struct {
	Analytics analytics.Repo
	Jobs      jobs.Repo
	Gateway   aigateway.Client
}

// NewService constructs a Service. Gateway may be nil; calls then fail with
// ErrAINotConfigured.
func NewService(analyticsRepo analytics.Repo, jobsRepo jobs.Repo, gateway aigateway.Client) *Service {
	return &Service{Analytics: analyticsRepo, Jobs: jobsRepo, Gateway: gateway}
}

// RecommendJobs builds the user's skill and experience summary from the
// analytics store and asks the AI service for job recommendations. A user
// without an analytics record gets ErrNoData before any network call; a
// record with empty collections is still sent.
func (s *Service) RecommendJobs(ctx context.Context, userID string) (aigateway.JobRecommendationResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return aigateway.JobRecommendationResponse{}, ErrInvalidInput
	}

	extraction, err := s.Analytics.GetExtraction(ctx, userID)
	if err != nil {
		if errors.Is(err, analytics.ErrNotFound) {
			return aigateway.JobRecommendationResponse{}, ErrNoData
		}
		return aigateway.JobRecommendationResponse{}, fmt.Errorf("load analytics record: %w", err)
	}

	if s.Gateway == nil {
		return aigateway.JobRecommendationResponse{}, ErrAINotConfigured
	}

	payload := buildRecommendationPayload(extraction)
	result, err := s.Gateway.RecommendJobs(ctx, payload)
	if err != nil {
		return aigateway.JobRecommendationResponse{}, fmt.Errorf("recommend jobs: %w", err)
	}

	telemetry.Info("recommendations.jobs", map[string]any{
		"user_id": userID,
		"count":   len(result.Recommendations),
	})
	return result, nil
}

// SkillSimilarity matches the user's skills against the job catalog via the
// AI service. Skills travel as one comma-joined string.
func (s *Service) SkillSimilarity(ctx context.Context, userID string) (aigateway.SkillRecommendationResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}

	extraction, err := s.Analytics.GetExtraction(ctx, userID)
	if err != nil {
		if errors.Is(err, analytics.ErrNotFound) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("load analytics record: %w", err)
	}

	if s.Gateway == nil {
		return nil, ErrAINotConfigured
	}

	catalog, err := s.Jobs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load job catalog: %w", err)
	}

	postings := make([]aigateway.JobPosting, 0, len(catalog))
	for _, job := range catalog {
		postings = append(postings, aigateway.JobPosting{
			JobTitle:    job.Title,
			Description: job.Description,
		})
	}
	if len(postings) == 0 {
		postings = append(postings, placeholderJob)
	}

	payload := aigateway.SimilarityPayload{
		UserSkills: joinSkills(extraction.Skills),
		Jobs:       postings,
	}
	result, err := s.Gateway.SkillSimilarity(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("skill similarity: %w", err)
	}
	return result, nil
}

func buildRecommendationPayload(extraction analytics.Extraction) aigateway.RecommendationPayload {
	payload := aigateway.RecommendationPayload{
		Skills:         make([]string, 0, len(extraction.Skills)),
		WorkExperience: make([]aigateway.WorkExperienceSummary, 0, len(extraction.WorkExperiences)),
		Projects:       make([]aigateway.ProjectSummary, 0, len(extraction.Projects)),
	}
	for _, s := range extraction.Skills {
		if name := strings.TrimSpace(s.SkillName); name != "" {
			payload.Skills = append(payload.Skills, name)
		}
	}
	for _, w := range extraction.WorkExperiences {
		payload.WorkExperience = append(payload.WorkExperience, aigateway.WorkExperienceSummary{
			JobTitle:       w.JobTitle,
			Company:        w.Company,
			JobDescription: w.JobDescription,
		})
	}
	for _, p := range extraction.Projects {
		payload.Projects = append(payload.Projects, aigateway.ProjectSummary{
			ProjectName: p.ProjectName,
			Description: p.Description,
		})
	}
	return payload
}

func joinSkills(skills []analytics.Skill) string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		if name := strings.TrimSpace(s.SkillName); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
