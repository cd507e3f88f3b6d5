package dto

import (
	"strings"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
)

// RecipeListQuery holds recipe listing filters and pagination
type RecipeListQuery struct {
	PageQuery
	Cuisine    string `form:"cuisine"`
	Difficulty string `form:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	MaxTime    *int   `form:"max_time" binding:"omitempty,min=1,max=1440"`
	MealType   string `form:"meal_type" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	SpiceLevel string `form:"spice_level" binding:"omitempty,oneof=mild medium hot very_hot"`
	Vegetarian *bool  `form:"vegetarian"`
	Vegan      *bool  `form:"vegan"`
	GlutenFree *bool  `form:"gluten_free"`
	Search     string `form:"search"`
}

// ToFilter converts the query into a repository filter
func (q *RecipeListQuery) ToFilter() *domain.RecipeFilter {
	return &domain.RecipeFilter{
		Cuisine:    strings.TrimSpace(q.Cuisine),
		Difficulty: q.Difficulty,
		MaxTime:    q.MaxTime,
		MealType:   q.MealType,
		SpiceLevel: q.SpiceLevel,
		Vegetarian: q.Vegetarian,
		Vegan:      q.Vegan,
		GlutenFree: q.GlutenFree,
		Search:     strings.TrimSpace(q.Search),
		Limit:      q.PageSize,
		Offset:     q.Offset(),
	}
}

// RecipeFiltersApplied echoes the filters used for a listing
type RecipeFiltersApplied struct {
	Cuisine    string `json:"cuisine,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	MaxTime    *int   `json:"max_time,omitempty"`
	MealType   string `json:"meal_type,omitempty"`
	SpiceLevel string `json:"spice_level,omitempty"`
	Vegetarian *bool  `json:"vegetarian,omitempty"`
	Vegan      *bool  `json:"vegan,omitempty"`
	GlutenFree *bool  `json:"gluten_free,omitempty"`
	Query      string `json:"query,omitempty"`
}

// RecipeListResponse is a page of recipes
type RecipeListResponse struct {
	Recipes        []*domain.Recipe     `json:"recipes"`
	TotalCount     int                  `json:"total_count"`
	Page           int                  `json:"page"`
	PageSize       int                  `json:"page_size"`
	TotalPages     int                  `json:"total_pages"`
	FiltersApplied RecipeFiltersApplied `json:"filters_applied"`
}

// NewRecipeListResponse builds a listing response
func NewRecipeListResponse(q *RecipeListQuery, recipes []*domain.Recipe, total int) *RecipeListResponse {
	if recipes == nil {
		recipes = []*domain.Recipe{}
	}
	return &RecipeListResponse{
		Recipes:    recipes,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: TotalPages(total, q.PageSize),
		FiltersApplied: RecipeFiltersApplied{
			Cuisine:    q.Cuisine,
			Difficulty: q.Difficulty,
			MaxTime:    q.MaxTime,
			MealType:   q.MealType,
			SpiceLevel: q.SpiceLevel,
			Vegetarian: q.Vegetarian,
			Vegan:      q.Vegan,
			GlutenFree: q.GlutenFree,
			Query:      q.Search,
		},
	}
}

// RateRecipeRequest rates a recipe
type RateRecipeRequest struct {
	Rating int     `json:"rating" binding:"required,min=1,max=5"`
	Review *string `json:"review" binding:"omitempty,max=1000"`
}

// FavoriteResponse is returned by the favorite toggle
type FavoriteResponse struct {
	Message       string `json:"message"`
	IsFavorite    bool   `json:"is_favorite"`
	FavoriteCount int    `json:"favorite_count"`
}

// NewFavoriteResponse builds the toggle response
func NewFavoriteResponse(res *domain.FavoriteResult) FavoriteResponse {
	msg := "Recipe removed from favorites"
	if res.IsFavorite {
		msg = "Recipe added to favorites"
	}
	return FavoriteResponse{Message: msg, IsFavorite: res.IsFavorite, FavoriteCount: res.FavoriteCount}
}

// RatingResponse is returned after rating a recipe
type RatingResponse struct {
	Message string `json:"message"`
	domain.RatingResult
}

// RecipeIngredientInput is an ingredient line on recipe create/update
type RecipeIngredientInput struct {
	IngredientName string `json:"ingredient_name" binding:"required,min=1,max=200"`
	Quantity       string `json:"quantity" binding:"omitempty,max=100"`
	Unit           string `json:"unit" binding:"omitempty,max=50"`
}

// CreateRecipeRequest creates a catalogue recipe
type CreateRecipeRequest struct {
	Name           string                  `json:"name" binding:"required,min=1,max=500"`
	TranslatedName string                  `json:"translated_name" binding:"omitempty,max=500"`
	Cuisine        string                  `json:"cuisine" binding:"required,min=1,max=100"`
	Instructions   string                  `json:"instructions" binding:"required,min=10"`
	Description    string                  `json:"description" binding:"omitempty,max=2000"`
	TotalTimeMins  *int                    `json:"total_time_mins" binding:"omitempty,min=1,max=1440"`
	PrepTimeMins   *int                    `json:"prep_time_mins" binding:"omitempty,min=0,max=720"`
	CookTimeMins   *int                    `json:"cook_time_mins" binding:"omitempty,min=0,max=720"`
	Difficulty     string                  `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Servings       int                     `json:"servings" binding:"omitempty,min=1,max=20"`
	ImageURL       string                  `json:"image_url" binding:"omitempty,max=1000"`
	Tags           []string                `json:"tags" binding:"omitempty,dive,min=1,max=50"`
	MealType       string                  `json:"meal_type" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	SpiceLevel     string                  `json:"spice_level" binding:"omitempty,oneof=mild medium hot very_hot"`
	Ingredients    []RecipeIngredientInput `json:"ingredients" binding:"omitempty,dive"`
}

// ToDomain converts the request into a recipe
func (r *CreateRecipeRequest) ToDomain() *domain.Recipe {
	difficulty := r.Difficulty
	if difficulty == "" {
		difficulty = domain.DifficultyMedium
	}
	servings := r.Servings
	if servings == 0 {
		servings = 4
	}
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Recipe{
		Name:           r.Name,
		TranslatedName: r.TranslatedName,
		Cuisine:        r.Cuisine,
		Instructions:   r.Instructions,
		Description:    r.Description,
		TotalTimeMins:  r.TotalTimeMins,
		PrepTimeMins:   r.PrepTimeMins,
		CookTimeMins:   r.CookTimeMins,
		Difficulty:     difficulty,
		Servings:       servings,
		ImageURL:       r.ImageURL,
		Tags:           tags,
		MealType:       r.MealType,
		SpiceLevel:     r.SpiceLevel,
		IsActive:       true,
		Ingredients:    toIngredientLines(r.Ingredients),
	}
}

// UpdateRecipeRequest is a partial recipe edit
type UpdateRecipeRequest struct {
	Name          *string                 `json:"name" binding:"omitempty,min=1,max=500"`
	Cuisine       *string                 `json:"cuisine" binding:"omitempty,min=1,max=100"`
	Instructions  *string                 `json:"instructions" binding:"omitempty,min=10"`
	Description   *string                 `json:"description" binding:"omitempty,max=2000"`
	TotalTimeMins *int                    `json:"total_time_mins" binding:"omitempty,min=1,max=1440"`
	PrepTimeMins  *int                    `json:"prep_time_mins" binding:"omitempty,min=0,max=720"`
	CookTimeMins  *int                    `json:"cook_time_mins" binding:"omitempty,min=0,max=720"`
	Difficulty    *string                 `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Servings      *int                    `json:"servings" binding:"omitempty,min=1,max=20"`
	ImageURL      *string                 `json:"image_url" binding:"omitempty,max=1000"`
	Tags          []string                `json:"tags" binding:"omitempty,dive,min=1,max=50"`
	MealType      *string                 `json:"meal_type" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	SpiceLevel    *string                 `json:"spice_level" binding:"omitempty,oneof=mild medium hot very_hot"`
	Ingredients   []RecipeIngredientInput `json:"ingredients" binding:"omitempty,dive"`
}

// Apply copies the set fields onto recipe. It reports whether the
// ingredient lines were replaced.
func (r *UpdateRecipeRequest) Apply(recipe *domain.Recipe) bool {
	if r.Name != nil {
		recipe.Name = *r.Name
	}
	if r.Cuisine != nil {
		recipe.Cuisine = *r.Cuisine
	}
	if r.Instructions != nil {
		recipe.Instructions = *r.Instructions
	}
	if r.Description != nil {
		recipe.Description = *r.Description
	}
	if r.TotalTimeMins != nil {
		recipe.TotalTimeMins = r.TotalTimeMins
	}
	if r.PrepTimeMins != nil {
		recipe.PrepTimeMins = r.PrepTimeMins
	}
	if r.CookTimeMins != nil {
		recipe.CookTimeMins = r.CookTimeMins
	}
	if r.Difficulty != nil {
		recipe.Difficulty = *r.Difficulty
	}
	if r.Servings != nil {
		recipe.Servings = *r.Servings
	}
	if r.ImageURL != nil {
		recipe.ImageURL = *r.ImageURL
	}
	if r.Tags != nil {
		recipe.Tags = r.Tags
	}
	if r.MealType != nil {
		recipe.MealType = *r.MealType
	}
	if r.SpiceLevel != nil {
		recipe.SpiceLevel = *r.SpiceLevel
	}
	if r.Ingredients != nil {
		recipe.Ingredients = toIngredientLines(r.Ingredients)
		return true
	}
	return false
}

func toIngredientLines(in []RecipeIngredientInput) []domain.RecipeIngredient {
	lines := make([]domain.RecipeIngredient, 0, len(in))
	for _, i := range in {
		lines = append(lines, domain.RecipeIngredient{
			IngredientName: strings.ToLower(strings.TrimSpace(i.IngredientName)),
			Quantity:       i.Quantity,
			Unit:           i.Unit,
		})
	}
	return lines
}
