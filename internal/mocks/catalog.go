package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/fridgechef/backend/internal/model"
)

// MockRecipeCatalog is a mock implementation of the recipe catalog
type MockRecipeCatalog struct {
	mock.Mock
}

// ListAll mocks the ListAll method
func (m *MockRecipeCatalog) ListAll(ctx context.Context) ([]model.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// FindByIDs mocks the FindByIDs method
func (m *MockRecipeCatalog) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Recipe, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// MockFridgeInventory is a mock implementation of the fridge inventory
type MockFridgeInventory struct {
	mock.Mock
}

// ListItemsForUser mocks the ListItemsForUser method
func (m *MockFridgeInventory) ListItemsForUser(ctx context.Context, userID uuid.UUID) ([]model.FridgeItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FridgeItem), args.Error(1)
}

// MockHealthProfiles is a mock implementation of the health profile source
type MockHealthProfiles struct {
	mock.Mock
}

// GetProfile mocks the GetProfile method
func (m *MockHealthProfiles) GetProfile(ctx context.Context, userID uuid.UUID) (*model.HealthProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HealthProfile), args.Error(1)
}

// MockImageURLResolver is a mock implementation of the image URL resolver
type MockImageURLResolver struct {
	mock.Mock
}

// ResolveImageURL mocks the ResolveImageURL method
func (m *MockImageURLResolver) ResolveImageURL(ctx context.Context, ref string) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}
