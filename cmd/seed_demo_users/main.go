package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/fridgechef/backend/config"
	"github.com/pageza/fridgechef/backend/internal/database"
	"github.com/pageza/fridgechef/backend/internal/logging"
	"github.com/pageza/fridgechef/backend/internal/model"
	"github.com/pageza/fridgechef/backend/internal/service"
)

// demoUser is a fixed account whose fridge and profile exercise the ranking rules.
type demoUser struct {
	id        uuid.UUID
	name      string
	fridge    []string
	allergies []string
}

var demoUsers = []demoUser{
	{
		id:     uuid.MustParse("00000000-0000-4000-8000-000000000001"),
		name:   "kimchi-lover",
		fridge: []string{"김치", "계란", "대파", "밥"},
	},
	{
		id:        uuid.MustParse("00000000-0000-4000-8000-000000000002"),
		name:      "shrimp-allergy",
		fridge:    []string{"새우", "밥", "계란", "양파"},
		allergies: []string{"새우"},
	},
	{
		id:        uuid.MustParse("00000000-0000-4000-8000-000000000003"),
		name:      "peanut-allergy",
		fridge:    []string{"식빵", "바나나", "감자"},
		allergies: []string{"땅콩"},
	},
	{
		id:   uuid.MustParse("00000000-0000-4000-8000-000000000004"),
		name: "empty-fridge",
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, logger); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	tokens := service.NewTokenService(cfg.JWTSecret)
	for _, u := range demoUsers {
		if err := seedUser(context.Background(), db, u); err != nil {
			logger.Fatal("Failed to seed demo user", zap.String("name", u.name), zap.Error(err))
		}
		token, err := tokens.GenerateToken(u.id, 30*24*time.Hour)
		if err != nil {
			logger.Fatal("Failed to sign token", zap.Error(err))
		}
		logger.Info("Seeded demo user", zap.String("name", u.name), zap.String("user_id", u.id.String()))
		fmt.Printf("%s\t%s\n", u.name, token)
	}
}

// seedUser replaces the user's fridge and health profile with the demo values.
func seedUser(ctx context.Context, db *gorm.DB, u demoUser) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", u.id).Delete(&model.FridgeItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear fridge: %w", err)
		}
		if err := tx.Where("user_id = ?", u.id).Delete(&model.HealthProfile{}).Error; err != nil {
			return fmt.Errorf("failed to clear health profile: %w", err)
		}
		// Stale recommendations would hide the new fridge until the next regeneration.
		if err := tx.Where("user_id = ?", u.id).Delete(&model.Recommendation{}).Error; err != nil {
			return fmt.Errorf("failed to clear recommendations: %w", err)
		}

		for _, name := range u.fridge {
			item := &model.FridgeItem{UserID: u.id, Name: name, Category: "demo"}
			if err := tx.Create(item).Error; err != nil {
				return fmt.Errorf("failed to create fridge item: %w", err)
			}
		}

		profile := &model.HealthProfile{UserID: u.id, Allergies: model.StringArray(u.allergies)}
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create health profile: %w", err)
		}
		return nil
	})
}
