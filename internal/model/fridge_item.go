package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FridgeItem is one ingredient a user currently has. Only Name matters for scoring.
type FridgeItem struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string     `gorm:"size:100;not null" json:"name"`
	Quantity   string     `gorm:"size:50" json:"quantity"`
	Category   string     `gorm:"size:50" json:"category"`
	ExpiryDate *time.Time `gorm:"type:date" json:"expiry_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (FridgeItem) TableName() string {
	return "fridge_items"
}

func (f *FridgeItem) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
