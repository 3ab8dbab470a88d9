package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/fridgechef/backend/internal/mocks"
	"github.com/pageza/fridgechef/backend/internal/model"
	"github.com/pageza/fridgechef/backend/internal/service"
	"github.com/pageza/fridgechef/backend/internal/types"
)

const testSecret = "test-jwt-secret"

func setupRecommendationRouter(t *testing.T) (*gin.Engine, *mocks.MockRecommendationService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := new(mocks.MockRecommendationService)
	router := gin.New()
	SetupAPI(router, Dependencies{
		Recommendations: svc,
		Tokens:          service.NewTokenService(testSecret),
	})
	return router, svc
}

func bearer(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := service.NewTokenService(testSecret).GenerateToken(userID, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestGetRecommendations(t *testing.T) {
	router, svc := setupRecommendationRouter(t)
	userID := uuid.New()

	views := []types.RecommendationView{
		{ID: uuid.New(), RecipeID: uuid.New(), Title: "김치볶음밥", Score: 30, Reason: "냉장고 속 김치을(를) 활용한 레시피예요!"},
		{ID: uuid.New(), RecipeID: uuid.New(), Title: service.UnknownRecipeTitle, Score: 10},
	}
	svc.On("GetRecommendations", mock.Anything, userID).Return(views, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	req.Header.Set("Authorization", bearer(t, userID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp types.RecommendationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, views, resp.Recommendations)

	var raw map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Contains(t, raw["recommendations"][0], "recipe_id")
	assert.Contains(t, raw["recommendations"][0], "image_url")
}

func TestGetRecommendations_EmptyIsArray(t *testing.T) {
	router, svc := setupRecommendationRouter(t)
	userID := uuid.New()
	svc.On("GetRecommendations", mock.Anything, userID).Return([]types.RecommendationView{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	req.Header.Set("Authorization", bearer(t, userID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recommendations":[]}`, w.Body.String())
}

func TestGetRecommendations_Unauthorized(t *testing.T) {
	router, svc := setupRecommendationRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "GetRecommendations", mock.Anything, mock.Anything)
}

func TestGetRecommendations_ServiceError(t *testing.T) {
	router, svc := setupRecommendationRouter(t)
	userID := uuid.New()
	svc.On("GetRecommendations", mock.Anything, userID).Return(nil, errors.New("db down"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	req.Header.Set("Authorization", bearer(t, userID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"failed to get recommendations"}`, w.Body.String())
}

func TestGenerateRecommendations(t *testing.T) {
	router, svc := setupRecommendationRouter(t)
	userID := uuid.New()

	created := []model.Recommendation{{ID: uuid.New(), UserID: userID, RecipeID: uuid.New(), Score: 20}}
	views := []types.RecommendationView{{ID: created[0].ID, RecipeID: created[0].RecipeID, Title: "계란찜", Score: 20}}
	svc.On("Generate", mock.Anything, userID).Return(created, nil).Once()
	svc.On("Present", mock.Anything, created).Return(views, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/generate", nil)
	req.Header.Set("Authorization", bearer(t, userID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp types.GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Generated)
	assert.Equal(t, views, resp.Recommendations)
	svc.AssertExpectations(t)
	svc.AssertNotCalled(t, "GetRecommendations", mock.Anything, mock.Anything)
}

func TestGenerateRecommendations_EmptySetIsNotReread(t *testing.T) {
	router, svc := setupRecommendationRouter(t)
	userID := uuid.New()

	svc.On("Generate", mock.Anything, userID).Return([]model.Recommendation{}, nil).Once()
	svc.On("Present", mock.Anything, []model.Recommendation{}).Return([]types.RecommendationView{}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/generate", nil)
	req.Header.Set("Authorization", bearer(t, userID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"generated":0,"recommendations":[]}`, w.Body.String())
	svc.AssertExpectations(t)
	svc.AssertNotCalled(t, "GetRecommendations", mock.Anything, mock.Anything)
}

func TestGenerateRecommendations_ServiceError(t *testing.T) {
	router, svc := setupRecommendationRouter(t)
	userID := uuid.New()
	svc.On("Generate", mock.Anything, userID).Return(nil, errors.New("catalog down"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/generate", nil)
	req.Header.Set("Authorization", bearer(t, userID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	svc.AssertNotCalled(t, "Present", mock.Anything, mock.Anything)
}
