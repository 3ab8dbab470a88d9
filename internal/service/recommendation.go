package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/fridgechef/backend/internal/metrics"
	"github.com/pageza/fridgechef/backend/internal/model"
	"github.com/pageza/fridgechef/backend/internal/types"
)

// UnknownRecipeTitle is shown for recommendations whose recipe was deleted after generation.
const UnknownRecipeTitle = "알 수 없는 레시피"

var ErrInvalidUserID = errors.New("invalid user id")

// RecommendationService ranks the recipe catalog against a user's fridge and allergies
// and caches the result per user until the next regeneration.
type RecommendationService struct {
	catalog RecipeCatalog
	fridge  FridgeInventory
	health  HealthProfiles
	store   RecommendationStore
	images  ImageURLResolver
	locker  UserLocker
	logger  *zap.Logger
}

// Ensure RecommendationService implements IRecommendationService
var _ IRecommendationService = (*RecommendationService)(nil)

// Option configures optional collaborators of RecommendationService
type Option func(*RecommendationService)

// WithImageResolver resolves stored recipe image references for presentation.
func WithImageResolver(r ImageURLResolver) Option {
	return func(s *RecommendationService) { s.images = r }
}

// WithUserLocker replaces the default in-process per-user lock.
func WithUserLocker(l UserLocker) Option {
	return func(s *RecommendationService) { s.locker = l }
}

// NewRecommendationService creates a new RecommendationService instance
func NewRecommendationService(
	catalog RecipeCatalog,
	fridge FridgeInventory,
	health HealthProfiles,
	store RecommendationStore,
	logger *zap.Logger,
	opts ...Option,
) *RecommendationService {
	s := &RecommendationService{
		catalog: catalog,
		fridge:  fridge,
		health:  health,
		store:   store,
		locker:  NewLocalUserLocker(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate discards the user's stored recommendations and recomputes them from the
// current catalog, fridge and health profile. It returns the newly persisted rows in
// catalog order.
func (s *RecommendationService) Generate(ctx context.Context, userID uuid.UUID) ([]model.Recommendation, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUserID
	}

	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire generation lock: %w", err)
	}
	defer unlock()

	return s.generateLocked(ctx, userID)
}

// GetRecommendations returns the user's recommendations ordered by score descending,
// generating them first if none are stored.
func (s *RecommendationService) GetRecommendations(ctx context.Context, userID uuid.UUID) ([]types.RecommendationView, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUserID
	}

	rows, err := s.store.FindByUserOrderByScoreDesc(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendations: %w", err)
	}
	if len(rows) == 0 {
		if rows, err = s.fill(ctx, userID); err != nil {
			return nil, err
		}
	}

	return s.Present(ctx, rows)
}

// fill performs the single generation attempt allowed for an empty read. The store is
// re-read under the user lock so concurrent empty reads generate only once.
func (s *RecommendationService) fill(ctx context.Context, userID uuid.UUID) ([]model.Recommendation, error) {
	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire generation lock: %w", err)
	}
	defer unlock()

	rows, err := s.store.FindByUserOrderByScoreDesc(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendations: %w", err)
	}
	if len(rows) > 0 {
		return rows, nil
	}

	metrics.RecordLazyFill()
	s.logger.Debug("No stored recommendations, generating", zap.String("user_id", userID.String()))

	if _, err := s.generateLocked(ctx, userID); err != nil {
		return nil, err
	}

	rows, err = s.store.FindByUserOrderByScoreDesc(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendations: %w", err)
	}
	return rows, nil
}

type generationInput struct {
	recipes   []model.Recipe
	fridge    []string
	allergies []string
}

func (s *RecommendationService) generateLocked(ctx context.Context, userID uuid.UUID) (created []model.Recommendation, err error) {
	start := time.Now()
	excluded := 0
	defer func() {
		metrics.RecordGeneration(len(created), excluded, time.Since(start), err)
	}()

	in, err := s.loadInput(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending := make([]model.Recommendation, 0, len(in.recipes))
	for i := range in.recipes {
		recipe := &in.recipes[i]
		eval := ScoreAndExplain(recipe, in.fridge, in.allergies)
		if eval.Excluded {
			excluded++
			s.logger.Debug("Recipe excluded by allergy",
				zap.String("user_id", userID.String()),
				zap.String("recipe_id", recipe.ID.String()),
			)
			continue
		}
		if !eval.Qualifies() {
			continue
		}
		pending = append(pending, model.Recommendation{
			UserID:   userID,
			RecipeID: recipe.ID,
			Score:    eval.Score,
			Reason:   eval.Reason,
		})
	}

	err = s.store.InTx(ctx, func(tx RecommendationStore) error {
		if err := tx.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete previous recommendations: %w", err)
		}
		for i := range pending {
			if err := tx.Save(ctx, &pending[i]); err != nil {
				return fmt.Errorf("failed to save recommendation: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Generated recommendations",
		zap.String("user_id", userID.String()),
		zap.Int("catalog_size", len(in.recipes)),
		zap.Int("fridge_items", len(in.fridge)),
		zap.Int("persisted", len(pending)),
		zap.Int("excluded", excluded),
		zap.Duration("duration", time.Since(start)),
	)

	return pending, nil
}

// loadInput fetches the catalog, fridge and health profile concurrently.
func (s *RecommendationService) loadInput(ctx context.Context, userID uuid.UUID) (*generationInput, error) {
	var (
		recipes []model.Recipe
		items   []model.FridgeItem
		profile *model.HealthProfile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if recipes, err = s.catalog.ListAll(gctx); err != nil {
			return fmt.Errorf("failed to list recipes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if items, err = s.fridge.ListItemsForUser(gctx, userID); err != nil {
			return fmt.Errorf("failed to list fridge items: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if profile, err = s.health.GetProfile(gctx, userID); err != nil {
			return fmt.Errorf("failed to get health profile: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	var allergies []string
	if profile != nil {
		allergies = profile.Allergies
	}

	return &generationInput{
		recipes:   recipes,
		fridge:    nonEmpty(names),
		allergies: nonEmpty(allergies),
	}, nil
}

// nonEmpty drops empty strings, which are substrings of everything and would otherwise
// match or exclude every recipe. Other values are kept verbatim.
func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Present resolves recipe metadata for rows with one batched catalog lookup and orders
// the result by score descending. It never generates.
func (s *RecommendationService) Present(ctx context.Context, rows []model.Recommendation) ([]types.RecommendationView, error) {
	views := make([]types.RecommendationView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]struct{}, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.RecipeID]; !ok {
			seen[r.RecipeID] = struct{}{}
			ids = append(ids, r.RecipeID)
		}
	}

	recipes, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	byID := make(map[uuid.UUID]*model.Recipe, len(recipes))
	for i := range recipes {
		byID[recipes[i].ID] = &recipes[i]
	}

	missing := 0
	for _, r := range rows {
		if r.Score <= 0 {
			s.logger.DPanic("Stored recommendation has non-positive score",
				zap.String("recommendation_id", r.ID.String()),
				zap.Float64("score", r.Score),
			)
			continue
		}

		view := types.RecommendationView{
			ID:       r.ID,
			RecipeID: r.RecipeID,
			Title:    UnknownRecipeTitle,
			Score:    r.Score,
			Reason:   r.Reason,
		}
		if recipe, ok := byID[r.RecipeID]; ok {
			view.Title = recipe.Title
			view.Description = recipe.Description
			view.ImageURL = recipe.ImageURL
			if s.images != nil {
				resolved, err := s.images.ResolveImageURL(ctx, recipe.ImageURL)
				if err != nil {
					s.logger.Warn("Failed to resolve recipe image",
						zap.String("recipe_id", recipe.ID.String()),
						zap.Error(err),
					)
				} else {
					view.ImageURL = resolved
				}
			}
		} else {
			missing++
		}
		views = append(views, view)
	}
	metrics.RecordMissingRecipes(missing)

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Score > views[j].Score
	})
	return views, nil
}
