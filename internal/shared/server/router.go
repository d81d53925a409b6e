package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careerpath-backend/internal/cv"
	"careerpath-backend/internal/profiles"
	"careerpath-backend/internal/recommendations"
	"careerpath-backend/internal/services/health"
	"careerpath-backend/internal/shared/config"
	"careerpath-backend/internal/shared/server/middleware"
	"careerpath-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config                config.Config
	ProfileHandler        *profiles.Handler
	CVHandler             *cv.Handler
	RecommendationHandler *recommendations.Handler
	Health                *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	if deps.Health != nil {
		api.GET("/health", func(c *gin.Context) {
			respond.JSON(c, http.StatusOK, deps.Health.Status())
		})
		api.GET("/health/ready", func(c *gin.Context) {
			respond.JSON(c, http.StatusOK, deps.Health.Readiness(c.Request.Context()))
		})
	}
	if deps.ProfileHandler != nil {
		deps.ProfileHandler.RegisterRoutes(api)
	}
	if deps.CVHandler != nil {
		deps.CVHandler.RegisterRoutes(api)
	}
	if deps.RecommendationHandler != nil {
		deps.RecommendationHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
