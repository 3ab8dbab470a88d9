package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/fridgechef/backend/internal/model"
	"github.com/pageza/fridgechef/backend/internal/types"
)

// RecipeCatalog supplies the recipes available for recommendation.
type RecipeCatalog interface {
	// ListAll returns every recipe; order is irrelevant.
	ListAll(ctx context.Context) ([]model.Recipe, error)
	// FindByIDs returns the subset of recipes matching ids. Missing ids are silently omitted.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Recipe, error)
}

// FridgeInventory supplies a user's available ingredients.
type FridgeInventory interface {
	// ListItemsForUser returns an empty slice when the user has no items.
	ListItemsForUser(ctx context.Context, userID uuid.UUID) ([]model.FridgeItem, error)
}

// HealthProfiles supplies a user's optional health constraints.
type HealthProfiles interface {
	// GetProfile returns (nil, nil) when the user has no profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.HealthProfile, error)
}

// RecommendationStore is durable per-user storage for the current recommendation set.
type RecommendationStore interface {
	Save(ctx context.Context, rec *model.Recommendation) error
	FindByUserOrderByScoreDesc(ctx context.Context, userID uuid.UUID) ([]model.Recommendation, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	// InTx runs fn against a store bound to a single transaction. Nothing fn writes is
	// visible to other readers unless fn returns nil.
	InTx(ctx context.Context, fn func(tx RecommendationStore) error) error
}

// ImageURLResolver turns a stored image reference into a client-fetchable URL.
type ImageURLResolver interface {
	ResolveImageURL(ctx context.Context, ref string) (string, error)
}

// UserLocker serializes recommendation generation per user.
type UserLocker interface {
	// Lock blocks until the user's lock is held or ctx is done. The returned func releases it.
	Lock(ctx context.Context, userID uuid.UUID) (func(), error)
}

// IRecommendationService defines the operations exposed to the API layer
type IRecommendationService interface {
	Generate(ctx context.Context, userID uuid.UUID) ([]model.Recommendation, error)
	GetRecommendations(ctx context.Context, userID uuid.UUID) ([]types.RecommendationView, error)
	Present(ctx context.Context, rows []model.Recommendation) ([]types.RecommendationView, error)
}
