package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/pageza/fridgechef/backend/config"
	"github.com/pageza/fridgechef/backend/internal/database"
	"github.com/pageza/fridgechef/backend/internal/logging"
	"github.com/pageza/fridgechef/backend/internal/model"
	"github.com/pageza/fridgechef/backend/internal/repository"
	"github.com/pageza/fridgechef/backend/internal/service"
)

//go:embed recipes.json
var defaultRecipes []byte

// RecipeData is one catalog entry in the seed file
type RecipeData struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Calories    int      `json:"calories"`
	Difficulty  int      `json:"difficulty"`
	CookingTime int      `json:"cooking_time"`
}

func main() {
	file := flag.String("file", "", "JSON file of recipes to seed (defaults to the bundled catalog)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	data := defaultRecipes
	if *file != "" {
		if data, err = os.ReadFile(*file); err != nil {
			logger.Fatal("Failed to read seed file", zap.String("file", *file), zap.Error(err))
		}
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, logger); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	created, err := seedRecipes(context.Background(), repository.NewRecipeRepository(db), data, logger)
	if err != nil {
		logger.Fatal("Failed to seed recipes", zap.Error(err))
	}
	logger.Info("Seeding complete", zap.Int("created", created))
}

type recipeStore interface {
	FindByTitle(ctx context.Context, title string) (*model.Recipe, error)
	Create(ctx context.Context, recipe *model.Recipe) error
}

// seedRecipes inserts every recipe in data whose title is not already present.
func seedRecipes(ctx context.Context, store recipeStore, data []byte, logger *zap.Logger) (int, error) {
	var recipes []RecipeData
	if err := json.Unmarshal(data, &recipes); err != nil {
		return 0, fmt.Errorf("failed to parse recipes: %w", err)
	}

	created := 0
	for _, r := range recipes {
		existing, err := store.FindByTitle(ctx, r.Title)
		if err != nil {
			return created, err
		}
		if existing != nil {
			logger.Debug("Recipe already exists", zap.String("title", r.Title))
			continue
		}

		recipe := &model.Recipe{
			Title:       r.Title,
			Description: r.Description,
			ImageURL:    r.ImageURL,
			Ingredients: model.StringArray(r.Ingredients),
			Steps:       model.StringArray(r.Steps),
			Calories:    r.Calories,
			Difficulty:  r.Difficulty,
			CookingTime: r.CookingTime,
		}
		recipe.Embedding = service.RecipeEmbedding(recipe)

		if err := store.Create(ctx, recipe); err != nil {
			return created, err
		}
		logger.Info("Created recipe", zap.String("title", recipe.Title), zap.String("id", recipe.ID.String()))
		created++
	}
	return created, nil
}
