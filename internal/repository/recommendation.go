package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/fridgechef/backend/internal/model"
	"github.com/pageza/fridgechef/backend/internal/service"
)

// RecommendationRepository persists per-user recommendation sets.
type RecommendationRepository struct {
	db *gorm.DB
}

var _ service.RecommendationStore = (*RecommendationRepository)(nil)

// NewRecommendationRepository creates a new RecommendationRepository instance
func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// Save inserts rec. Non-positive scores are rejected by the model hook.
func (r *RecommendationRepository) Save(ctx context.Context, rec *model.Recommendation) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to save recommendation: %w", err)
	}
	return nil
}

// FindByUserOrderByScoreDesc returns the user's recommendations, highest score first
func (r *RecommendationRepository) FindByUserOrderByScoreDesc(ctx context.Context, userID uuid.UUID) ([]model.Recommendation, error) {
	recs := []model.Recommendation{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("score DESC").
		Order("created_at ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recommendations: %w", err)
	}
	return recs, nil
}

// DeleteByUser removes every recommendation for the user
func (r *RecommendationRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Recommendation{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete recommendations: %w", err)
	}
	return nil
}

// InTx runs fn inside a single database transaction
func (r *RecommendationRepository) InTx(ctx context.Context, fn func(tx service.RecommendationStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RecommendationRepository{db: tx})
	})
}
