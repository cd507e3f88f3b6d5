package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/internal/dto"
	"github.com/nukuldhake/Meal-Mate/internal/middleware"
	"github.com/nukuldhake/Meal-Mate/internal/service"
	"github.com/nukuldhake/Meal-Mate/pkg/response"
)

const (
	defaultRecipeSearchLimit     = 20
	defaultIngredientSearchLimit = 10
)

// SearchHandler handles search HTTP requests
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Recipes searches recipes by free text
// GET /api/v1/search/recipes
func (h *SearchHandler) Recipes(c *gin.Context) {
	var q dto.SearchQuery
	if !bindQuery(c, &q) {
		return
	}

	recipes, err := h.searchService.SearchRecipes(c.Request.Context(), q.Query, q.LimitOr(defaultRecipeSearchLimit))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if recipes == nil {
		recipes = []*domain.Recipe{}
	}
	response.Success(c, dto.RecipeSearchResponse{Recipes: recipes, Total: len(recipes)})
}

// RecipesByPantry ranks recipes by the caller's pantry. Anonymous callers
// get an empty list and a hint.
// GET /api/v1/search/recipes/by-pantry
func (h *SearchHandler) RecipesByPantry(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == 0 {
		response.Success(c, dto.PantryMatchResponse{
			Recipes: []*domain.PantryMatch{},
			Message: dto.MsgPantryLoginRequired,
		})
		return
	}

	matches, err := h.searchService.RecipesByPantry(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if matches == nil {
		matches = []*domain.PantryMatch{}
	}
	response.Success(c, dto.PantryMatchResponse{Recipes: matches, Total: len(matches)})
}

// Ingredients searches ingredients by name
// GET /api/v1/search/ingredients
// GET /api/v1/recipes/ingredients/search
func (h *SearchHandler) Ingredients(c *gin.Context) {
	var q dto.SearchQuery
	if !bindQuery(c, &q) {
		return
	}

	ingredients, err := h.searchService.SearchIngredients(c.Request.Context(), q.Query, q.LimitOr(defaultIngredientSearchLimit))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if ingredients == nil {
		ingredients = []*domain.Ingredient{}
	}
	response.Success(c, dto.IngredientSearchResponse{Ingredients: ingredients, Total: len(ingredients)})
}
