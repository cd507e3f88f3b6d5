package service

import (
	"context"
	"strings"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/internal/repository"
	"github.com/nukuldhake/Meal-Mate/pkg/telemetry"
)

// PantryMatchLimit caps the recipes returned by pantry matching
const PantryMatchLimit = 20

// SearchService defines free-text and pantry-based lookups
type SearchService interface {
	SearchRecipes(ctx context.Context, query string, limit int) ([]*domain.Recipe, error)
	// RecipesByPantry ranks recipes by how many of the user's pantry ingredients they use
	RecipesByPantry(ctx context.Context, userID int64) ([]*domain.PantryMatch, error)
	SearchIngredients(ctx context.Context, query string, limit int) ([]*domain.Ingredient, error)
}

type searchService struct {
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
}

// NewSearchService creates a new SearchService
func NewSearchService(recipeRepo repository.RecipeRepository, ingredientRepo repository.IngredientRepository) SearchService {
	return &searchService{
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
	}
}

func (s *searchService) SearchRecipes(ctx context.Context, query string, limit int) ([]*domain.Recipe, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.search.recipes")
	defer span.End()

	recipes, err := s.recipeRepo.Search(ctx, strings.TrimSpace(query), limit)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return recipes, nil
}

func (s *searchService) RecipesByPantry(ctx context.Context, userID int64) ([]*domain.PantryMatch, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.search.by_pantry")
	defer span.End()

	matches, err := s.recipeRepo.ByPantry(ctx, userID, PantryMatchLimit)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return matches, nil
}

func (s *searchService) SearchIngredients(ctx context.Context, query string, limit int) ([]*domain.Ingredient, error) {
	return s.ingredientRepo.Search(ctx, strings.TrimSpace(query), limit)
}
