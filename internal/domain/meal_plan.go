package domain

import "time"

// Meal types
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

// MealPlan groups planned meals over a date range
type MealPlan struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"user_id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	IsActive    bool           `json:"is_active"`
	IsCompleted bool           `json:"is_completed"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Items       []MealPlanItem `json:"items,omitempty"`
}

// Covers reports whether day falls inside the plan's date range (inclusive)
func (m *MealPlan) Covers(day time.Time) bool {
	d := truncateDay(day)
	return !d.Before(truncateDay(m.StartDate)) && !d.After(truncateDay(m.EndDate))
}

// MealPlanItem is one planned meal
type MealPlanItem struct {
	ID              int64     `json:"id"`
	MealPlanID      int64     `json:"meal_plan_id"`
	RecipeID        *int64    `json:"recipe_id,omitempty"`
	RecipeName      string    `json:"recipe_name,omitempty"`
	MealDate        time.Time `json:"meal_date"`
	MealType        string    `json:"meal_type"`
	MealName        string    `json:"meal_name,omitempty"`
	PlannedServings int       `json:"planned_servings"`
	IsCooked        bool      `json:"is_cooked"`
	IsSkipped       bool      `json:"is_skipped"`
	Notes           string    `json:"notes,omitempty"`
	PrepNotes       string    `json:"prep_notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
