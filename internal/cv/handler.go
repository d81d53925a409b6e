package cv

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"careerpath-backend/internal/aigateway"
	"careerpath-backend/internal/analytics"
	"careerpath-backend/internal/shared/server/respond"
	"careerpath-backend/internal/shared/util"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches CV routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai/cv/:userId", h.upload)
	rg.GET("/ai/cv/:userId", h.download)
	rg.POST("/ai/extract/:userId", h.extract)
	rg.GET("/ai/analysis/:userId", h.analysis)
}

func (h *Handler) upload(c *gin.Context) {
	userID := c.Param("userId")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart field 'file' is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not open uploaded file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxFileSize+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read uploaded file", nil)
		return
	}

	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return
	}

	record, err := h.Svc.SaveCV(
		c.Request.Context(),
		userID,
		fileName,
		fileHeader.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store cv", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, UploadResponse{
		UserID:     record.UserID,
		FileName:   record.FileName,
		SizeBytes:  len(record.FileData),
		UploadDate: record.UploadDate,
	})
}

func (h *Handler) download(c *gin.Context) {
	record, err := h.Svc.GetUserCV(c.Request.Context(), c.Param("userId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no cv stored for user", nil)
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch cv", nil)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", record.FileName))
	c.Data(http.StatusOK, record.ContentType, record.FileData)
}

func (h *Handler) extract(c *gin.Context) {
	result, err := h.Svc.ExtractStructuredData(c.Request.Context(), c.Param("userId"))
	if err != nil {
		var statusErr *aigateway.StatusError
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no cv stored for user", nil)
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrAINotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "not_configured", "ai service is not configured", nil)
		case errors.As(err, &statusErr):
			respond.Error(c, http.StatusBadGateway, "upstream_error", "cv extraction failed", map[string]any{
				"upstreamStatus": statusErr.StatusCode,
			})
		default:
			respond.Error(c, http.StatusBadGateway, "upstream_error", "cv extraction failed", nil)
		}
		return
	}

	respond.OK(c, result)
}

func (h *Handler) analysis(c *gin.Context) {
	result, err := h.Svc.Analysis(c.Request.Context(), c.Param("userId"))
	if err != nil {
		switch {
		case errors.Is(err, analytics.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no analysis stored for user", nil)
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}

	respond.OK(c, result)
}
