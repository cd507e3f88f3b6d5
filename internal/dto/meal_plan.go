package dto

import (
	"strings"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
)

// CreateMealPlanRequest creates a meal plan
type CreateMealPlanRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
}

// ToDomain parses dates and builds a meal plan
func (r *CreateMealPlanRequest) ToDomain(userID int64) (*domain.MealPlan, error) {
	start, err := parseDate("start_date", r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", r.EndDate)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, domain.ErrInvalidDateRange
	}
	return &domain.MealPlan{
		UserID:      userID,
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		StartDate:   start,
		EndDate:     end,
		IsActive:    true,
	}, nil
}

// AddMealPlanItemRequest adds a meal to a plan
type AddMealPlanItemRequest struct {
	MealDate        string  `json:"meal_date" binding:"required"`
	MealType        string  `json:"meal_type" binding:"required,oneof=breakfast lunch dinner snack"`
	RecipeID        *int64  `json:"recipe_id" binding:"omitempty,min=1"`
	MealName        *string `json:"meal_name" binding:"omitempty,min=1,max=200"`
	PlannedServings int     `json:"planned_servings" binding:"omitempty,min=1,max=20"`
	Notes           string  `json:"notes" binding:"omitempty,max=2000"`
	PrepNotes       string  `json:"prep_notes" binding:"omitempty,max=2000"`
}

// ToDomain validates and builds a meal plan item
func (r *AddMealPlanItemRequest) ToDomain(planID int64) (*domain.MealPlanItem, error) {
	day, err := parseDate("meal_date", r.MealDate)
	if err != nil {
		return nil, err
	}
	if r.RecipeID == nil && (r.MealName == nil || strings.TrimSpace(*r.MealName) == "") {
		return nil, domain.ErrMealTargetMissing
	}
	servings := r.PlannedServings
	if servings == 0 {
		servings = 1
	}
	item := &domain.MealPlanItem{
		MealPlanID:      planID,
		RecipeID:        r.RecipeID,
		MealDate:        day,
		MealType:        r.MealType,
		PlannedServings: servings,
		Notes:           r.Notes,
		PrepNotes:       r.PrepNotes,
	}
	if r.MealName != nil {
		item.MealName = strings.TrimSpace(*r.MealName)
	}
	return item, nil
}

// MealPlansResponse lists meal plans
type MealPlansResponse struct {
	MealPlans []*domain.MealPlan `json:"meal_plans"`
}

// MealPlanResponse wraps a meal plan with a message
type MealPlanResponse struct {
	Message  string           `json:"message,omitempty"`
	MealPlan *domain.MealPlan `json:"meal_plan"`
}

// MealPlanItemResponse wraps a new meal plan item
type MealPlanItemResponse struct {
	Message string               `json:"message"`
	Item    *domain.MealPlanItem `json:"item"`
}

const (
	MsgMealPlanCreated  = "Meal plan created"
	MsgMealPlanDeleted  = "Meal plan deleted"
	MsgMealAdded        = "Meal added to plan"
	MsgMealPlanNotFound = "Meal plan not found"
)
