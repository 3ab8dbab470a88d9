package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/fridgechef/backend/internal/model"
)

// CreateRecipe inserts a recipe with the given title and ingredients.
func CreateRecipe(t *testing.T, db *gorm.DB, title string, ingredients ...string) *model.Recipe {
	t.Helper()
	recipe := &model.Recipe{
		Title:       title,
		Description: title + " 레시피",
		ImageURL:    "recipes/" + title + ".jpg",
		Ingredients: model.StringArray(ingredients),
		Steps:       model.StringArray{"재료를 준비한다", "조리한다"},
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}
	return recipe
}

// CreateFridgeItems stocks a user's fridge with the named ingredients.
func CreateFridgeItems(t *testing.T, db *gorm.DB, userID uuid.UUID, names ...string) {
	t.Helper()
	for _, name := range names {
		item := &model.FridgeItem{UserID: userID, Name: name}
		if err := db.Create(item).Error; err != nil {
			t.Fatalf("failed to create fridge item: %v", err)
		}
	}
}

// CreateHealthProfile stores a profile with the given allergies.
func CreateHealthProfile(t *testing.T, db *gorm.DB, userID uuid.UUID, allergies ...string) *model.HealthProfile {
	t.Helper()
	profile := &model.HealthProfile{
		UserID:    userID,
		Allergies: model.StringArray(allergies),
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create health profile: %v", err)
	}
	return profile
}
