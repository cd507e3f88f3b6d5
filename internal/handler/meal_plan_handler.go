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

// MealPlanHandler handles meal plan HTTP requests
type MealPlanHandler struct {
	mealPlanService service.MealPlanService
}

// NewMealPlanHandler creates a new MealPlanHandler
func NewMealPlanHandler(mealPlanService service.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{mealPlanService: mealPlanService}
}

// List returns the caller's meal plans
// GET /api/v1/meal-plans
func (h *MealPlanHandler) List(c *gin.Context) {
	plans, err := h.mealPlanService.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if plans == nil {
		plans = []*domain.MealPlan{}
	}
	response.Success(c, dto.MealPlansResponse{MealPlans: plans})
}

// Create creates a meal plan
// POST /api/v1/meal-plans
func (h *MealPlanHandler) Create(c *gin.Context) {
	var req dto.CreateMealPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := req.ToDomain(middleware.UserID(c))
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := h.mealPlanService.Create(c.Request.Context(), plan); err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, dto.MealPlanResponse{Message: dto.MsgMealPlanCreated, MealPlan: plan})
}

// Get returns a meal plan with its items
// GET /api/v1/meal-plans/:id
func (h *MealPlanHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	plan, err := h.mealPlanService.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, dto.MealPlanResponse{MealPlan: plan})
}

// AddItem adds a meal to a plan
// POST /api/v1/meal-plans/:id/items
func (h *MealPlanHandler) AddItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AddMealPlanItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := req.ToDomain(id)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := h.mealPlanService.AddItem(c.Request.Context(), middleware.UserID(c), item); err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, dto.MealPlanItemResponse{Message: dto.MsgMealAdded, Item: item})
}

// Delete removes a meal plan and its items
// DELETE /api/v1/meal-plans/:id
func (h *MealPlanHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.mealPlanService.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: dto.MsgMealPlanDeleted})
}

func (h *MealPlanHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrMealPlanNotFound):
		response.NotFound(c, dto.MsgMealPlanNotFound)
	case errors.Is(err, domain.ErrRecipeNotFound):
		response.NotFound(c, msgRecipeNotFound)
	case errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrMealDateOutOfRange),
		errors.Is(err, domain.ErrMealTargetMissing):
		response.ValidationError(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
