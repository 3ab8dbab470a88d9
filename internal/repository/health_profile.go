package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/fridgechef/backend/internal/model"
)

// HealthProfileRepository reads users' health profiles.
type HealthProfileRepository struct {
	db *gorm.DB
}

// NewHealthProfileRepository creates a new HealthProfileRepository instance
func NewHealthProfileRepository(db *gorm.DB) *HealthProfileRepository {
	return &HealthProfileRepository{db: db}
}

// GetProfile returns the user's profile, or (nil, nil) if they have none
func (r *HealthProfileRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*model.HealthProfile, error) {
	var profile model.HealthProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get health profile: %w", err)
	}
	return &profile, nil
}
