package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/fridgechef/backend/internal/api"
	"github.com/pageza/fridgechef/backend/internal/model"
	"github.com/pageza/fridgechef/backend/internal/repository"
	"github.com/pageza/fridgechef/backend/internal/router"
	"github.com/pageza/fridgechef/backend/internal/service"
	"github.com/pageza/fridgechef/backend/internal/testhelpers"
	"github.com/pageza/fridgechef/backend/internal/types"
)

const jwtSecret = "integration-secret"

// scanCounter counts full catalog scans, one per generation.
type scanCounter struct {
	*repository.RecipeRepository
	scans atomic.Int32
}

func (c *scanCounter) ListAll(ctx context.Context) ([]model.Recipe, error) {
	c.scans.Add(1)
	return c.RecipeRepository.ListAll(ctx)
}

func setupApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	engine, db, _ := setupCountingApp(t)
	return engine, db
}

func setupCountingApp(t *testing.T) (*gin.Engine, *gorm.DB, *scanCounter) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLiteDB(t)
	catalog := &scanCounter{RecipeRepository: repository.NewRecipeRepository(db)}
	svc := service.NewRecommendationService(
		catalog,
		repository.NewFridgeRepository(db),
		repository.NewHealthProfileRepository(db),
		repository.NewRecommendationRepository(db),
		zap.NewNop(),
	)

	engine := router.SetupRouter(router.Options{
		API: api.Dependencies{
			Recommendations: svc,
			Tokens:          service.NewTokenService(jwtSecret),
		},
		Logger: zap.NewNop(),
	})
	return engine, db, catalog
}

func do(t *testing.T, engine *gin.Engine, method, path string, userID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	token, err := service.NewTokenService(jwtSecret).GenerateToken(userID, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRecommendationFlow(t *testing.T) {
	engine, db := setupApp(t)
	userID := uuid.New()

	testhelpers.CreateRecipe(t, db, "김치찌개", "김치", "돼지고기", "두부")
	testhelpers.CreateRecipe(t, db, "계란말이", "계란", "대파")
	testhelpers.CreateRecipe(t, db, "새우볶음밥", "새우", "밥", "김치")
	testhelpers.CreateFridgeItems(t, db, userID, "김치", "두부")
	testhelpers.CreateHealthProfile(t, db, userID, "새우")

	// First read fills lazily.
	w := do(t, engine, http.MethodGet, "/api/v1/recommendations", userID)
	require.Equal(t, http.StatusOK, w.Code)

	var list types.RecommendationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Recommendations, 1)
	assert.Equal(t, "김치찌개", list.Recommendations[0].Title)
	assert.Equal(t, 20.0, list.Recommendations[0].Score)
	assert.Equal(t, "냉장고 속 김치, 두부을(를) 활용한 레시피예요!", list.Recommendations[0].Reason)

	// The fridge changes; the stored set is served until regeneration.
	testhelpers.CreateFridgeItems(t, db, userID, "계란")

	w = do(t, engine, http.MethodGet, "/api/v1/recommendations", userID)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Recommendations, 1)

	w = do(t, engine, http.MethodPost, "/api/v1/recommendations/generate", userID)
	require.Equal(t, http.StatusOK, w.Code)

	var generated types.GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &generated))
	assert.Equal(t, 2, generated.Generated)
	require.Len(t, generated.Recommendations, 2)
	assert.Equal(t, "김치찌개", generated.Recommendations[0].Title)
	assert.Equal(t, "계란말이", generated.Recommendations[1].Title)

	var count int64
	require.NoError(t, db.Model(&model.Recommendation{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestRecommendationFlow_NoMatches(t *testing.T) {
	engine, db := setupApp(t)
	userID := uuid.New()

	testhelpers.CreateRecipe(t, db, "샐러드", "양상추")

	w := do(t, engine, http.MethodGet, "/api/v1/recommendations", userID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recommendations":[]}`, w.Body.String())
}

func TestGenerateEndpoint_EmptyResultGeneratesOnce(t *testing.T) {
	engine, db, catalog := setupCountingApp(t)
	userID := uuid.New()

	testhelpers.CreateRecipe(t, db, "샐러드", "양상추")
	testhelpers.CreateFridgeItems(t, db, userID, "김치")

	w := do(t, engine, http.MethodPost, "/api/v1/recommendations/generate", userID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"generated":0,"recommendations":[]}`, w.Body.String())
	assert.Equal(t, int32(1), catalog.scans.Load())
}
