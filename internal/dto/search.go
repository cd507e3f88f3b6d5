package dto

import "github.com/nukuldhake/Meal-Mate/internal/domain"

// SearchQuery is a free-text search with a result limit
type SearchQuery struct {
	Query string `form:"query" binding:"required,min=2"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

// LimitOr returns the limit, or def when unset
func (q *SearchQuery) LimitOr(def int) int {
	if q.Limit <= 0 {
		return def
	}
	return q.Limit
}

// RecipeSearchResponse lists recipe hits
type RecipeSearchResponse struct {
	Recipes []*domain.Recipe `json:"recipes"`
	Total   int              `json:"total"`
}

// PantryMatchResponse lists recipes matched from the pantry
type PantryMatchResponse struct {
	Recipes []*domain.PantryMatch `json:"recipes"`
	Total   int                   `json:"total"`
	Message string                `json:"message,omitempty"`
}

// IngredientSearchResponse lists ingredient hits
type IngredientSearchResponse struct {
	Ingredients []*domain.Ingredient `json:"ingredients"`
	Total       int                  `json:"total"`
}

const MsgPantryLoginRequired = "Login required to use pantry matching"
