package aigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"careerpath-backend/internal/shared/config"
	"careerpath-backend/internal/shared/telemetry"
)

// Client talks to the external AI service. Calls are synchronous, bounded by
// the configured timeout, and never retried here; callers decide whether a
// failure is worth retrying.
type Client interface {
	ExtractResume(ctx context.Context, fileName string, fileData []byte) (ExtractedCV, error)
	RecommendJobs(ctx context.Context, payload RecommendationPayload) (JobRecommendationResponse, error)
	SkillSimilarity(ctx context.Context, payload SimilarityPayload) (SkillRecommendationResponse, error)
}

// HTTPClient is the production Client backed by net/http.
type HTTPClient struct {
	cfg    config.AIGateway
	client *http.Client
}

// New constructs an HTTPClient from gateway configuration.
func New(cfg config.AIGateway) *HTTPClient {
	return &HTTPClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// ExtractResume uploads a resume and returns the structured extraction. The
// file travels as the multipart field "resumefile" with its part declared as
// application/pdf regardless of the stored content type.
func (c *HTTPClient) ExtractResume(ctx context.Context, fileName string, fileData []byte) (ExtractedCV, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resumefile"; filename=%q`, fileName))
	header.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(header)
	if err != nil {
		return ExtractedCV{}, fmt.Errorf("create multipart: %w", err)
	}
	if _, err := part.Write(fileData); err != nil {
		return ExtractedCV{}, fmt.Errorf("write multipart: %w", err)
	}
	if err := writer.Close(); err != nil {
		return ExtractedCV{}, fmt.Errorf("close multipart: %w", err)
	}

	respBody, err := c.do(ctx, "extract", c.cfg.ExtractPath, &body, writer.FormDataContentType())
	if err != nil {
		return ExtractedCV{}, err
	}

	var envelope struct {
		Status string      `json:"status"`
		Data   ExtractedCV `json:"data"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return ExtractedCV{}, fmt.Errorf("decode extract response: %w", err)
	}

	extracted := envelope.Data
	if extracted.Skills == nil {
		extracted.Skills = []ExtractedSkill{}
	}
	if extracted.WorkExperiences == nil {
		extracted.WorkExperiences = []ExtractedWorkExperience{}
	}
	if extracted.Educations == nil {
		extracted.Educations = []ExtractedEducation{}
	}
	if extracted.Projects == nil {
		extracted.Projects = []ExtractedProject{}
	}
	return extracted, nil
}

// RecommendJobs posts the user's skill and experience summary and returns
// job recommendations. The upstream returns either a flat "recommendations"
// array or a "response.jobs" envelope depending on deployment; both decode
// to the same result.
func (c *HTTPClient) RecommendJobs(ctx context.Context, payload RecommendationPayload) (JobRecommendationResponse, error) {
	respBody, err := c.postJSON(ctx, "recommend", c.cfg.RecommendPath, payload)
	if err != nil {
		return JobRecommendationResponse{}, err
	}

	var envelope struct {
		Recommendations []RecommendedJob `json:"recommendations"`
		Response        *struct {
			Jobs []RecommendedJob `json:"jobs"`
		} `json:"response"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return JobRecommendationResponse{}, fmt.Errorf("decode recommend response: %w", err)
	}

	switch {
	case envelope.Recommendations != nil:
		return JobRecommendationResponse{Recommendations: envelope.Recommendations}, nil
	case envelope.Response != nil && envelope.Response.Jobs != nil:
		return JobRecommendationResponse{Recommendations: envelope.Response.Jobs}, nil
	default:
		telemetry.Warn("ai.recommend_unrecognized_shape", map[string]any{
			"body_prefix": prefix(respBody, 256),
		})
		return JobRecommendationResponse{Recommendations: []RecommendedJob{}}, nil
	}
}

// SkillSimilarity posts the comma-joined skill string plus the job catalog
// and passes the model's response through untyped.
func (c *HTTPClient) SkillSimilarity(ctx context.Context, payload SimilarityPayload) (SkillRecommendationResponse, error) {
	respBody, err := c.postJSON(ctx, "similarity", c.cfg.SimilarityPath, payload)
	if err != nil {
		return nil, err
	}

	var out SkillRecommendationResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("decode similarity response: %w", err)
	}
	return out, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, op, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", op, err)
	}
	return c.do(ctx, op, path, bytes.NewReader(data), "application/json")
}

func (c *HTTPClient) do(ctx context.Context, op, path string, body io.Reader, contentType string) ([]byte, error) {
	url := strings.TrimRight(c.cfg.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai %s: %w", op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: prefix(respBody, 512)}
	}
	return respBody, nil
}

func prefix(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}

var _ Client = (*HTTPClient)(nil)
