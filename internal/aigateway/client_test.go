package aigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"careerpath-backend/internal/shared/config"
)

func testConfig(baseURL string) config.AIGateway {
	return config.AIGateway{
		BaseURL:        baseURL,
		ExtractPath:    "/extract",
		RecommendPath:  "/recommend",
		SimilarityPath: "/recomendersystem",
		Timeout:        5 * time.Second,
	}
}

func TestExtractResumeSendsMultipartPDF(t *testing.T) {
	var gotField, gotPartType, gotFileName string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/extract" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		reader, err := r.MultipartReader()
		if err != nil {
			t.Errorf("multipart reader: %v", err)
			return
		}
		part, err := reader.NextPart()
		if err != nil {
			t.Errorf("next part: %v", err)
			return
		}
		gotField = part.FormName()
		gotPartType = part.Header.Get("Content-Type")
		gotFileName = part.FileName()
		gotBody, _ = io.ReadAll(part)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"status": "ok",
			"data": {
				"personal_information": {"name": "Ada Lovelace", "email": "ada@example.com"},
				"skills": [{"skill_name": "Go", "proficiency_level": "expert"}]
			}
		}`)
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL))
	payload := []byte("%PDF-1.4 resume")
	result, err := client.ExtractResume(context.Background(), "resume.pdf", payload)
	if err != nil {
		t.Fatalf("ExtractResume: %v", err)
	}

	if gotField != "resumefile" {
		t.Fatalf("expected field resumefile, got %q", gotField)
	}
	if gotPartType != "application/pdf" {
		t.Fatalf("expected part content type application/pdf, got %q", gotPartType)
	}
	if gotFileName != "resume.pdf" {
		t.Fatalf("expected filename resume.pdf, got %q", gotFileName)
	}
	if !bytes.Equal(gotBody, payload) {
		t.Fatalf("uploaded bytes differ")
	}

	if result.PersonalInformation.Name != "Ada Lovelace" {
		t.Fatalf("personal information lost: %+v", result.PersonalInformation)
	}
	if len(result.Skills) != 1 || result.Skills[0].SkillName != "Go" {
		t.Fatalf("unexpected skills: %v", result.Skills)
	}
	// Sections the model omitted come back as empty slices, not nil.
	if result.WorkExperiences == nil || result.Educations == nil || result.Projects == nil {
		t.Fatalf("omitted sections must be empty slices")
	}
}

func TestRecommendJobsDecodesFlatShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"recommendations": [{"job_title": "Backend Engineer"}]}`)
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL))
	result, err := client.RecommendJobs(context.Background(), RecommendationPayload{Skills: []string{"Go"}})
	if err != nil {
		t.Fatalf("RecommendJobs: %v", err)
	}
	if len(result.Recommendations) != 1 || result.Recommendations[0]["job_title"] != "Backend Engineer" {
		t.Fatalf("unexpected recommendations: %v", result.Recommendations)
	}
}

func TestRecommendJobsDecodesEnvelopedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"response": {"jobs": [{"title": "Data Engineer"}, {"title": "SRE"}]}}`)
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL))
	result, err := client.RecommendJobs(context.Background(), RecommendationPayload{})
	if err != nil {
		t.Fatalf("RecommendJobs: %v", err)
	}
	if len(result.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %v", result.Recommendations)
	}
}

func TestRecommendJobsUnrecognizedShapeIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"something_else": true}`)
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL))
	result, err := client.RecommendJobs(context.Background(), RecommendationPayload{})
	if err != nil {
		t.Fatalf("RecommendJobs: %v", err)
	}
	if result.Recommendations == nil || len(result.Recommendations) != 0 {
		t.Fatalf("expected empty non-nil recommendations, got %v", result.Recommendations)
	}
}

func TestNon2xxBecomesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "model backend down")
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL))
	_, err := client.RecommendJobs(context.Background(), RecommendationPayload{})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", statusErr.StatusCode)
	}
	if statusErr.Body != "model backend down" {
		t.Fatalf("body lost: %q", statusErr.Body)
	}
}

func TestSkillSimilarityWireFormat(t *testing.T) {
	var got map[string]json.RawMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL))
	_, err := client.SkillSimilarity(context.Background(), SimilarityPayload{
		UserSkills: "Go, SQL",
		Jobs: []JobPosting{
			{JobTitle: "Software Developer", Description: "web development"},
		},
	})
	if err != nil {
		t.Fatalf("SkillSimilarity: %v", err)
	}

	if _, ok := got["user_skills"]; !ok {
		t.Fatalf("request body missing user_skills: %v", got)
	}
	rawJobs, ok := got["job_descriptions"]
	if !ok {
		t.Fatalf("request body missing job_descriptions: %v", got)
	}
	var jobs []map[string]string
	if err := json.Unmarshal(rawJobs, &jobs); err != nil {
		t.Fatalf("decode job_descriptions: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 entry, got %v", jobs)
	}
	if jobs[0]["title"] != "Software Developer" {
		t.Fatalf(`expected key "title", got %v`, jobs[0])
	}
	if jobs[0]["description"] != "web development" {
		t.Fatalf(`expected key "description", got %v`, jobs[0])
	}
}

func TestSkillSimilarityPassesBodyThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"matches": [{"job_title": "Software Developer", "score": 0.92}]}`)
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL))
	result, err := client.SkillSimilarity(context.Background(), SimilarityPayload{UserSkills: "Go, SQL"})
	if err != nil {
		t.Fatalf("SkillSimilarity: %v", err)
	}
	if _, ok := result["matches"]; !ok {
		t.Fatalf("similarity body lost: %v", result)
	}
}
