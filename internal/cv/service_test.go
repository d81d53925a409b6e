package cv

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"careerpath-backend/internal/aigateway"
	"careerpath-backend/internal/analytics"
)

type fakeGateway struct {
	extractCalls int
	extractResp  aigateway.ExtractedCV
	extractErr   error
}

func (f *fakeGateway) ExtractResume(ctx context.Context, fileName string, fileData []byte) (aigateway.ExtractedCV, error) {
	f.extractCalls++
	return f.extractResp, f.extractErr
}

func (f *fakeGateway) RecommendJobs(ctx context.Context, payload aigateway.RecommendationPayload) (aigateway.JobRecommendationResponse, error) {
	return aigateway.JobRecommendationResponse{}, nil
}

func (f *fakeGateway) SkillSimilarity(ctx context.Context, payload aigateway.SimilarityPayload) (aigateway.SkillRecommendationResponse, error) {
	return nil, nil
}

func newTestService(gateway aigateway.Client) (*Service, *analytics.MemoryRepo) {
	analyticsRepo := analytics.NewMemoryRepo()
	return NewService(NewMemoryRepo(), analyticsRepo, gateway, nil), analyticsRepo
}

var pdfBytes = []byte("%PDF-1.4 fake resume body")

func TestSaveCVValidations(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	cases := []struct {
		name        string
		userID      string
		contentType string
		data        []byte
	}{
		{"blank user id", "   ", "application/pdf", pdfBytes},
		{"empty payload", "user-1", "application/pdf", nil},
		{"wrong content type", "user-1", "text/plain", pdfBytes},
		{"oversized file", "user-1", "application/pdf", make([]byte, maxFileSize+1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SaveCV(ctx, tc.userID, "resume.pdf", tc.contentType, tc.data)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestSaveCVAcceptsContentTypeVariants(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	for _, contentType := range []string{"application/pdf", "APPLICATION/PDF", "Application/Pdf", "application/pdf; charset=binary"} {
		if _, err := svc.SaveCV(ctx, "user-1", "resume.pdf", contentType, pdfBytes); err != nil {
			t.Fatalf("content type %q rejected: %v", contentType, err)
		}
	}
}

func TestSaveCVAcceptsExactlyMaxSize(t *testing.T) {
	svc, _ := newTestService(nil)

	data := make([]byte, maxFileSize)
	copy(data, pdfBytes)
	if _, err := svc.SaveCV(context.Background(), "user-1", "resume.pdf", "application/pdf", data); err != nil {
		t.Fatalf("file at the 10 MiB limit rejected: %v", err)
	}
}

func TestSaveCVOverwritesPreviousUpload(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	first, err := svc.SaveCV(ctx, "user-1", "old.pdf", "application/pdf", pdfBytes)
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}

	replacement := []byte("%PDF-1.4 newer resume")
	second, err := svc.SaveCV(ctx, "user-1", "new.pdf", "application/pdf", replacement)
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("second upload created a new row: %s vs %s", first.ID, second.ID)
	}

	stored, err := svc.GetUserCV(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUserCV: %v", err)
	}
	if stored.FileName != "new.pdf" {
		t.Fatalf("expected file name new.pdf, got %s", stored.FileName)
	}
	if !bytes.Equal(stored.FileData, replacement) {
		t.Fatalf("stored bytes differ from uploaded bytes")
	}
}

func TestGetUserCVReturnsExactBytes(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	if _, err := svc.SaveCV(ctx, "user-1", "resume.pdf", "application/pdf", pdfBytes); err != nil {
		t.Fatalf("SaveCV: %v", err)
	}

	stored, err := svc.GetUserCV(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUserCV: %v", err)
	}
	if !bytes.Equal(stored.FileData, pdfBytes) {
		t.Fatalf("retrieved bytes are not identical to the upload")
	}
}

func TestExtractWithoutCVSkipsNetwork(t *testing.T) {
	gateway := &fakeGateway{}
	svc, _ := newTestService(gateway)

	_, err := svc.ExtractStructuredData(context.Background(), "user-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if gateway.extractCalls != 0 {
		t.Fatalf("gateway called despite missing cv")
	}
}

func TestExtractWithoutGateway(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	if _, err := svc.SaveCV(ctx, "user-1", "resume.pdf", "application/pdf", pdfBytes); err != nil {
		t.Fatalf("SaveCV: %v", err)
	}

	_, err := svc.ExtractStructuredData(ctx, "user-1")
	if !errors.Is(err, ErrAINotConfigured) {
		t.Fatalf("expected ErrAINotConfigured, got %v", err)
	}
}

func TestExtractPersistsStructuredData(t *testing.T) {
	gateway := &fakeGateway{
		extractResp: aigateway.ExtractedCV{
			PersonalInformation: aigateway.ExtractedPersonalInformation{
				Name:  "Ada Lovelace",
				Email: "ada@example.com",
			},
			Skills: []aigateway.ExtractedSkill{
				{SkillName: "Go", ProficiencyLevel: "expert"},
			},
			WorkExperiences: []aigateway.ExtractedWorkExperience{
				{JobTitle: "Engineer", Company: "Analytical Engines Ltd"},
			},
		},
	}
	svc, analyticsRepo := newTestService(gateway)
	ctx := context.Background()

	if _, err := svc.SaveCV(ctx, "user-1", "resume.pdf", "application/pdf", pdfBytes); err != nil {
		t.Fatalf("SaveCV: %v", err)
	}

	result, err := svc.ExtractStructuredData(ctx, "user-1")
	if err != nil {
		t.Fatalf("ExtractStructuredData: %v", err)
	}
	if result.Educations == nil || result.Projects == nil {
		t.Fatalf("missing sections must come back as empty slices")
	}
	if len(result.Skills) != 1 || result.Skills[0].SkillName != "Go" {
		t.Fatalf("unexpected skills in result: %v", result.Skills)
	}

	extraction, err := analyticsRepo.GetExtraction(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetExtraction: %v", err)
	}
	if extraction.PersonalInformation.Email != "ada@example.com" {
		t.Fatalf("extraction not persisted: %+v", extraction.PersonalInformation)
	}
	if len(extraction.WorkExperiences) != 1 {
		t.Fatalf("work experiences not persisted: %v", extraction.WorkExperiences)
	}
}

func TestExtractSurfacesUpstreamStatus(t *testing.T) {
	gateway := &fakeGateway{
		extractErr: &aigateway.StatusError{Op: "extract", StatusCode: 500, Body: "model crashed"},
	}
	svc, analyticsRepo := newTestService(gateway)
	ctx := context.Background()

	if _, err := svc.SaveCV(ctx, "user-1", "resume.pdf", "application/pdf", pdfBytes); err != nil {
		t.Fatalf("SaveCV: %v", err)
	}

	_, err := svc.ExtractStructuredData(ctx, "user-1")
	var statusErr *aigateway.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != 500 || !strings.Contains(statusErr.Body, "model crashed") {
		t.Fatalf("status details lost: %+v", statusErr)
	}

	// A failed extraction must not touch the stored analytics record.
	if _, err := analyticsRepo.GetExtraction(ctx, "user-1"); !errors.Is(err, analytics.ErrNotFound) {
		t.Fatalf("expected untouched analytics store, got %v", err)
	}
}
