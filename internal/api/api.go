package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/fridgechef/backend/internal/middleware"
	"github.com/pageza/fridgechef/backend/internal/service"
)

// Dependencies are the collaborators the v1 API needs
type Dependencies struct {
	Recommendations service.IRecommendationService
	Tokens          middleware.TokenValidator
	// GenerateLimiter is nil when Redis is unavailable.
	GenerateLimiter *middleware.RateLimiter
}

func SetupAPI(router *gin.Engine, deps Dependencies) {
	v1 := router.Group("/api/v1")
	{
		auth := middleware.AuthMiddleware(deps.Tokens)

		var generateLimit gin.HandlerFunc
		if deps.GenerateLimiter != nil {
			generateLimit = deps.GenerateLimiter.RateLimitMiddleware()
		}

		recommendationHandler := NewRecommendationHandler(deps.Recommendations)
		recommendationHandler.RegisterRoutes(v1, auth, generateLimit)
	}
}
