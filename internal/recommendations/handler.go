package recommendations

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careerpath-backend/internal/aigateway"
	"careerpath-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai/recommend/:userId", h.recommendJobs)
	rg.POST("/ai/recommendersystem/:userId", h.skillSimilarity)
}

func (h *Handler) recommendJobs(c *gin.Context) {
	result, err := h.Svc.RecommendJobs(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.writeError(c, err, "job recommendation failed")
		return
	}
	respond.OK(c, result)
}

func (h *Handler) skillSimilarity(c *gin.Context) {
	result, err := h.Svc.SkillSimilarity(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.writeError(c, err, "skill similarity failed")
		return
	}
	respond.OK(c, result)
}

func (h *Handler) writeError(c *gin.Context, err error, upstreamMsg string) {
	var statusErr *aigateway.StatusError
	switch {
	case errors.Is(err, ErrNoData):
		respond.Error(c, http.StatusNotFound, "no_data", "no analytics data for user; upload and extract a cv first", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrAINotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "not_configured", "ai service is not configured", nil)
	case errors.As(err, &statusErr):
		respond.Error(c, http.StatusBadGateway, "upstream_error", upstreamMsg, map[string]any{
			"upstreamStatus": statusErr.StatusCode,
		})
	default:
		respond.Error(c, http.StatusBadGateway, "upstream_error", upstreamMsg, nil)
	}
}
