package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/internal/dto"
	"github.com/nukuldhake/Meal-Mate/internal/middleware"
	"github.com/nukuldhake/Meal-Mate/internal/service"
	"github.com/nukuldhake/Meal-Mate/pkg/response"
)

const msgRecipeNotFound = "Recipe not found"

// RecipeHandler handles recipe catalogue HTTP requests
type RecipeHandler struct {
	recipeService service.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipeService service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// List returns a filtered page of recipes
// GET /api/v1/recipes
func (h *RecipeHandler) List(c *gin.Context) {
	var q dto.RecipeListQuery
	if !bindQuery(c, &q) {
		return
	}
	q.SetDefaults()

	recipes, total, err := h.recipeService.List(c.Request.Context(), q.ToFilter(), middleware.UserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.Success(c, dto.NewRecipeListResponse(&q, recipes, total))
}

// Get returns a recipe with its ingredients
// GET /api/v1/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, recipe)
}

// ToggleFavorite adds or removes the recipe from the caller's favorites
// POST /api/v1/recipes/:id/favorite
func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.recipeService.ToggleFavorite(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, dto.NewFavoriteResponse(result))
}

// Rate records the caller's rating, replacing an earlier one
// POST /api/v1/recipes/:id/rate
func (h *RecipeHandler) Rate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.recipeService.Rate(c.Request.Context(), middleware.UserID(c), id, req.Rating, req.Review)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, dto.RatingResponse{Message: "Recipe rated successfully", RatingResult: *result})
}

// Favorites lists the caller's favorite recipes
// GET /api/v1/recipes/favorites
func (h *RecipeHandler) Favorites(c *gin.Context) {
	recipes, err := h.recipeService.Favorites(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if recipes == nil {
		recipes = []*domain.Recipe{}
	}
	response.Success(c, gin.H{"recipes": recipes, "total": len(recipes)})
}

// Cuisines lists the distinct cuisines of active recipes
// GET /api/v1/recipes/cuisines/list
func (h *RecipeHandler) Cuisines(c *gin.Context) {
	cuisines, err := h.recipeService.Cuisines(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if cuisines == nil {
		cuisines = []string{}
	}
	response.Success(c, gin.H{"cuisines": cuisines})
}

func (h *RecipeHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrRecipeNotFound) {
		response.NotFound(c, msgRecipeNotFound)
		return
	}
	response.InternalError(c, err)
}
