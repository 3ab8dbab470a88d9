package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/fridgechef/backend/internal/model"
	"github.com/pageza/fridgechef/backend/internal/service"
	"github.com/pageza/fridgechef/backend/internal/types"
)

// MockRecommendationStore is a mock implementation of the recommendation store.
// InTx runs fn against the mock itself unless the InTx expectation returns an error.
type MockRecommendationStore struct {
	mock.Mock
}

// Save mocks the Save method
func (m *MockRecommendationStore) Save(ctx context.Context, rec *model.Recommendation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// FindByUserOrderByScoreDesc mocks the FindByUserOrderByScoreDesc method
func (m *MockRecommendationStore) FindByUserOrderByScoreDesc(ctx context.Context, userID uuid.UUID) ([]model.Recommendation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recommendation), args.Error(1)
}

// DeleteByUser mocks the DeleteByUser method
func (m *MockRecommendationStore) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// InTx mocks the InTx method
func (m *MockRecommendationStore) InTx(ctx context.Context, fn func(tx service.RecommendationStore) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

// MockRecommendationService is a mock implementation of the recommendation service
type MockRecommendationService struct {
	mock.Mock
}

// Generate mocks the Generate method
func (m *MockRecommendationService) Generate(ctx context.Context, userID uuid.UUID) ([]model.Recommendation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recommendation), args.Error(1)
}

// GetRecommendations mocks the GetRecommendations method
func (m *MockRecommendationService) GetRecommendations(ctx context.Context, userID uuid.UUID) ([]types.RecommendationView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecommendationView), args.Error(1)
}

// Present mocks the Present method
func (m *MockRecommendationService) Present(ctx context.Context, rows []model.Recommendation) ([]types.RecommendationView, error) {
	args := m.Called(ctx, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecommendationView), args.Error(1)
}
