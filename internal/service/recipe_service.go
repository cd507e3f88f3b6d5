package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/internal/repository"
	"github.com/nukuldhake/Meal-Mate/pkg/logger"
	"github.com/nukuldhake/Meal-Mate/pkg/telemetry"
)

// RecipeService defines recipe catalogue operations. A userID of 0 means
// an anonymous caller; is_favorite is only filled for signed-in callers.
type RecipeService interface {
	List(ctx context.Context, filter *domain.RecipeFilter, userID int64) ([]*domain.Recipe, int, error)
	// Get returns a recipe with its ingredients and counts the view
	Get(ctx context.Context, id, userID int64) (*domain.Recipe, error)
	ToggleFavorite(ctx context.Context, userID, recipeID int64) (*domain.FavoriteResult, error)
	Rate(ctx context.Context, userID, recipeID int64, rating int, review *string) (*domain.RatingResult, error)
	Favorites(ctx context.Context, userID int64) ([]*domain.Recipe, error)
	Cuisines(ctx context.Context) ([]string, error)
}

type recipeService struct {
	recipeRepo repository.RecipeRepository
	sfGroup    singleflight.Group
	log        *logger.Logger
}

// NewRecipeService creates a new RecipeService
func NewRecipeService(recipeRepo repository.RecipeRepository) RecipeService {
	return &recipeService{
		recipeRepo: recipeRepo,
		log:        logger.Get().Named("recipe"),
	}
}

// List returns a filtered page of recipes
func (s *recipeService) List(ctx context.Context, filter *domain.RecipeFilter, userID int64) ([]*domain.Recipe, int, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.recipe.list")
	defer span.End()

	recipes, total, err := s.recipeRepo.List(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, err
	}

	if err := s.markFavorites(ctx, userID, recipes); err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, err
	}

	span.SetAttributes(attribute.Int("total", total))
	span.SetStatus(codes.Ok, "")
	return recipes, total, nil
}

// Get returns a recipe with its ingredients and counts the view
func (s *recipeService) Get(ctx context.Context, id, userID int64) (*domain.Recipe, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.recipe.get")
	defer span.End()

	span.SetAttributes(attribute.Int64("recipe_id", id))

	recipe, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if recipe == nil {
		span.SetStatus(codes.Error, "recipe not found")
		return nil, domain.ErrRecipeNotFound
	}

	if err := s.recipeRepo.IncrementViewCount(ctx, id); err != nil {
		// a lost view is not worth failing the read
		s.log.Warn("failed to increment view count", zap.Int64("recipe_id", id), zap.Error(err))
	} else {
		recipe.ViewCount++
	}

	recipe.Ingredients, err = s.recipeRepo.Ingredients(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.markFavorites(ctx, userID, []*domain.Recipe{recipe}); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return recipe, nil
}

func (s *recipeService) markFavorites(ctx context.Context, userID int64, recipes []*domain.Recipe) error {
	if userID == 0 || len(recipes) == 0 {
		return nil
	}

	ids := make([]int64, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}

	favorites, err := s.recipeRepo.FavoriteIDs(ctx, userID, ids)
	if err != nil {
		return err
	}
	for _, r := range recipes {
		fav := favorites[r.ID]
		r.IsFavorite = &fav
	}
	return nil
}

func (s *recipeService) ToggleFavorite(ctx context.Context, userID, recipeID int64) (*domain.FavoriteResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.recipe.toggle_favorite")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.Int64("recipe_id", recipeID),
	)

	result, err := s.recipeRepo.ToggleFavorite(ctx, userID, recipeID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return result, nil
}

func (s *recipeService) Rate(ctx context.Context, userID, recipeID int64, rating int, review *string) (*domain.RatingResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.recipe.rate")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.Int64("recipe_id", recipeID),
		attribute.Int("rating", rating),
	)

	result, err := s.recipeRepo.Rate(ctx, userID, recipeID, rating, review)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return result, nil
}

func (s *recipeService) Favorites(ctx context.Context, userID int64) ([]*domain.Recipe, error) {
	recipes, err := s.recipeRepo.Favorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, r := range recipes {
		fav := true
		r.IsFavorite = &fav
	}
	return recipes, nil
}

// Cuisines lists distinct cuisines. Concurrent callers share one query.
func (s *recipeService) Cuisines(ctx context.Context) ([]string, error) {
	v, err, _ := s.sfGroup.Do("cuisines", func() (interface{}, error) {
		return s.recipeRepo.Cuisines(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}
