package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/fridgechef/backend/internal/middleware"
	"github.com/pageza/fridgechef/backend/internal/service"
	"github.com/pageza/fridgechef/backend/internal/types"
)

// RecommendationHandler serves the authenticated user's recipe recommendations.
type RecommendationHandler struct {
	service service.IRecommendationService
}

func NewRecommendationHandler(svc service.IRecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: svc}
}

// RegisterRoutes mounts the handlers under router. generateLimit may be nil.
func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc, generateLimit gin.HandlerFunc) {
	recs := router.Group("/recommendations", auth)
	{
		recs.GET("", h.GetRecommendations)

		generate := []gin.HandlerFunc{h.Generate}
		if generateLimit != nil {
			generate = append([]gin.HandlerFunc{generateLimit}, generate...)
		}
		recs.POST("/generate", generate...)
	}
}

// GetRecommendations returns stored recommendations, generating them on first access
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	views, err := h.service.GetRecommendations(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "failed to get recommendations")
		return
	}

	c.JSON(http.StatusOK, types.RecommendationsResponse{Recommendations: views})
}

// Generate discards the stored set and recomputes it. The new rows are presented
// directly; re-reading would lazily regenerate an empty set.
func (h *RecommendationHandler) Generate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	created, err := h.service.Generate(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "failed to generate recommendations")
		return
	}

	views, err := h.service.Present(c.Request.Context(), created)
	if err != nil {
		h.fail(c, err, "failed to get recommendations")
		return
	}

	c.JSON(http.StatusOK, types.GenerateResponse{
		Generated:       len(created),
		Recommendations: views,
	})
}

func (h *RecommendationHandler) fail(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	if errors.Is(err, service.ErrInvalidUserID) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}
