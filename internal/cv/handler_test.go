package cv_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"careerpath-backend/internal/bootstrap"
	"careerpath-backend/internal/shared/config"
)

func buildTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func pdfUploadBody(t *testing.T, fileName string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	header.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestCVUploadAndDownload(t *testing.T) {
	app := buildTestApp(t)

	payload := []byte("%PDF-1.4 test resume")
	body, contentType := pdfUploadBody(t, "resume.pdf", payload)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/cv/user-1", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		UserID    string `json:"userId"`
		FileName  string `json:"fileName"`
		SizeBytes int    `json:"sizeBytes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if created.FileName != "resume.pdf" || created.SizeBytes != len(payload) {
		t.Fatalf("unexpected upload response: %+v", created)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/ai/cv/user-1", nil)
	respGet := httptest.NewRecorder()
	app.Router.ServeHTTP(respGet, reqGet)

	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}
	if !bytes.Equal(respGet.Body.Bytes(), payload) {
		t.Fatalf("downloaded bytes differ from upload")
	}
}

func TestCVUploadRejectsNonPDF(t *testing.T) {
	app := buildTestApp(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	// CreateFormFile declares the part as application/octet-stream.
	fileWriter, err := writer.CreateFormFile("file", "resume.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte("plain text resume")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/cv/user-1", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCVDownloadMissing(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ai/cv/ghost", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestExtractSurfacesUpstreamStatusInDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("model crashed"))
	}))
	t.Cleanup(upstream.Close)

	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		AI: config.AIGateway{
			BaseURL:     upstream.URL,
			ExtractPath: "/extract",
			Timeout:     5 * time.Second,
		},
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	t.Cleanup(app.Close)

	payload := []byte("%PDF-1.4 test resume")
	body, contentType := pdfUploadBody(t, "resume.pdf", payload)
	reqUp := httptest.NewRequest(http.MethodPost, "/api/v1/ai/cv/user-1", body)
	reqUp.Header.Set("Content-Type", contentType)
	respUp := httptest.NewRecorder()
	app.Router.ServeHTTP(respUp, reqUp)
	if respUp.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", respUp.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/extract/user-1", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d: %s", resp.Code, resp.Body.String())
	}
	var errBody struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				UpstreamStatus int `json:"upstreamStatus"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errBody.Error.Code != "upstream_error" {
		t.Fatalf("expected code upstream_error, got %q", errBody.Error.Code)
	}
	if errBody.Error.Details.UpstreamStatus != http.StatusInternalServerError {
		t.Fatalf("expected upstreamStatus 500, got %d", errBody.Error.Details.UpstreamStatus)
	}
}

func TestExtractUnavailableWithoutAIConfig(t *testing.T) {
	app := buildTestApp(t)

	payload := []byte("%PDF-1.4 test resume")
	body, contentType := pdfUploadBody(t, "resume.pdf", payload)
	reqUp := httptest.NewRequest(http.MethodPost, "/api/v1/ai/cv/user-1", body)
	reqUp.Header.Set("Content-Type", contentType)
	respUp := httptest.NewRecorder()
	app.Router.ServeHTTP(respUp, reqUp)
	if respUp.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", respUp.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/extract/user-1", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d: %s", resp.Code, resp.Body.String())
	}
}
