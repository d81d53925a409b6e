package profiles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/profiles", h.create)
	rg.GET("/profiles/:id", h.get)
	rg.PUT("/profiles/:id", h.update)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	profile, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrExists):
			respond.Error(c, http.StatusConflict, "conflict", "profile already exists", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create profile", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(profile))
}

func (h *Handler) get(c *gin.Context) {
	profile, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		}
		return
	}

	respond.OK(c, toResponse(profile))
}

func (h *Handler) update(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	profile, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
		}
		return
	}

	respond.OK(c, toResponse(profile))
}
