package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/fridgechef/backend/internal/model"
)

// FridgeRepository reads a user's fridge inventory.
type FridgeRepository struct {
	db *gorm.DB
}

// NewFridgeRepository creates a new FridgeRepository instance
func NewFridgeRepository(db *gorm.DB) *FridgeRepository {
	return &FridgeRepository{db: db}
}

// ListItemsForUser returns the user's fridge items, oldest first
func (r *FridgeRepository) ListItemsForUser(ctx context.Context, userID uuid.UUID) ([]model.FridgeItem, error) {
	items := []model.FridgeItem{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list fridge items: %w", err)
	}
	return items, nil
}
