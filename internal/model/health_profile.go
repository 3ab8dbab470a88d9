package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HealthProfile holds a user's dietary constraints. At most one per user.
type HealthProfile struct {
	ID                  uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Allergies           StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"allergies"`
	ChronicConditions   StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"chronic_conditions"`
	DietaryRestrictions StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_restrictions"`
	Medications         StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"medications"`
	Goals               StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"goals"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

func (HealthProfile) TableName() string {
	return "health_profiles"
}

func (h *HealthProfile) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
