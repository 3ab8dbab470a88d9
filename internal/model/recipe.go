package model

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Recipe is a catalog entry. The recommendation engine only reads it.
type Recipe struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Title         string           `gorm:"size:255;not null" json:"title"`
	Description   string           `gorm:"type:text" json:"description"`
	ImageURL      string           `gorm:"size:512" json:"image_url"`
	Ingredients   StringArray      `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Steps         StringArray      `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
	Calories      int              `json:"calories"`
	Difficulty    int              `json:"difficulty"`
	CookingTime   int              `json:"cooking_time"`
	AverageRating float64          `json:"average_rating"`
	Embedding     *pgvector.Vector `gorm:"type:vector(3)" json:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
