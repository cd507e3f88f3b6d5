package domain

import "time"

// Recipe difficulty levels
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Dietary tags recognised by recipe filters
const (
	TagVegetarian = "vegetarian"
	TagVegan      = "vegan"
	TagGlutenFree = "gluten-free"
)

// Recipe represents a catalogue recipe
type Recipe struct {
	ID              int64              `json:"id"`
	Name            string             `json:"name"`
	TranslatedName  string             `json:"translated_name,omitempty"`
	Cuisine         string             `json:"cuisine"`
	Description     string             `json:"description,omitempty"`
	Instructions    string             `json:"instructions"`
	TotalTimeMins   *int               `json:"total_time_mins,omitempty"`
	PrepTimeMins    *int               `json:"prep_time_mins,omitempty"`
	CookTimeMins    *int               `json:"cook_time_mins,omitempty"`
	Difficulty      string             `json:"difficulty"`
	Servings        int                `json:"servings"`
	IngredientCount int                `json:"ingredient_count"`
	ImageURL        string             `json:"image_url,omitempty"`
	OriginalURL     string             `json:"original_url,omitempty"`
	Tags            []string           `json:"tags"`
	MealType        string             `json:"meal_type,omitempty"`
	SpiceLevel      string             `json:"spice_level,omitempty"`
	ViewCount       int                `json:"view_count"`
	FavoriteCount   int                `json:"favorite_count"`
	RatingAverage   float64            `json:"rating_average"`
	RatingCount     int                `json:"rating_count"`
	IsActive        bool               `json:"is_active"`
	IsVerified      bool               `json:"is_verified"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	Ingredients     []RecipeIngredient `json:"ingredients"`
	IsFavorite      *bool              `json:"is_favorite"`
}

// RecipeIngredient is one ingredient line of a recipe
type RecipeIngredient struct {
	IngredientID   int64  `json:"ingredient_id"`
	IngredientName string `json:"ingredient_name"`
	Quantity       string `json:"quantity,omitempty"`
	Unit           string `json:"unit,omitempty"`
}

// Ingredient represents a catalogue ingredient
type Ingredient struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RecipeFilter holds recipe listing filters
type RecipeFilter struct {
	Cuisine    string
	Difficulty string
	MaxTime    *int
	MealType   string
	SpiceLevel string
	Vegetarian *bool
	Vegan      *bool
	GlutenFree *bool
	Search     string
	Limit      int
	Offset     int
}

// PantryMatch is a recipe found through the caller's pantry
type PantryMatch struct {
	Recipe
	MatchedIngredients int `json:"matched_ingredients"`
}

// FavoriteResult is the outcome of a favorite toggle
type FavoriteResult struct {
	IsFavorite    bool `json:"is_favorite"`
	FavoriteCount int  `json:"favorite_count"`
}

// RatingResult is the outcome of rating a recipe
type RatingResult struct {
	Rating        int     `json:"rating"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}
