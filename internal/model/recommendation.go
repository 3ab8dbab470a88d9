package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNonPositiveScore is returned when a recommendation without a strictly positive
// score is about to be written. Only qualifying recipes may be persisted.
var ErrNonPositiveScore = errors.New("recommendation score must be positive")

// Recommendation is one ranked recipe for a user. Rows are only ever created by a
// full regeneration and are never updated in place.
type Recommendation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_recommendations_user_score,priority:1" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null" json:"recipe_id"`
	Score     float64   `gorm:"not null;index:idx_recommendations_user_score,priority:2,sort:desc" json:"score"`
	Reason    string    `gorm:"type:text" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}

func (r *Recommendation) BeforeCreate(tx *gorm.DB) error {
	if r.Score <= 0 {
		return ErrNonPositiveScore
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// All lists every model for auto-migration.
func All() []interface{} {
	return []interface{}{
		&Recipe{},
		&FridgeItem{},
		&HealthProfile{},
		&Recommendation{},
	}
}
