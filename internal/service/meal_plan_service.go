package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/internal/repository"
	"github.com/nukuldhake/Meal-Mate/pkg/telemetry"
)

// MealPlanService defines meal planning operations. Every call is scoped to userID.
type MealPlanService interface {
	List(ctx context.Context, userID int64) ([]*domain.MealPlan, error)
	Create(ctx context.Context, plan *domain.MealPlan) error
	// Get returns a plan with its items
	Get(ctx context.Context, userID, id int64) (*domain.MealPlan, error)
	// AddItem adds a meal to a plan; its date must fall within the plan
	AddItem(ctx context.Context, userID int64, item *domain.MealPlanItem) error
	Delete(ctx context.Context, userID, id int64) error
}

type mealPlanService struct {
	mealPlanRepo repository.MealPlanRepository
}

// NewMealPlanService creates a new MealPlanService
func NewMealPlanService(mealPlanRepo repository.MealPlanRepository) MealPlanService {
	return &mealPlanService{mealPlanRepo: mealPlanRepo}
}

func (s *mealPlanService) List(ctx context.Context, userID int64) ([]*domain.MealPlan, error) {
	return s.mealPlanRepo.ListByUser(ctx, userID)
}

func (s *mealPlanService) Create(ctx context.Context, plan *domain.MealPlan) error {
	ctx, span := telemetry.StartSpan(ctx, "service.meal_plan.create")
	defer span.End()

	if !plan.EndDate.After(plan.StartDate) {
		span.SetStatus(codes.Error, "invalid date range")
		return domain.ErrInvalidDateRange
	}

	if err := s.mealPlanRepo.Create(ctx, plan); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	span.SetAttributes(attribute.Int64("meal_plan_id", plan.ID))
	span.SetStatus(codes.Ok, "")
	return nil
}

func (s *mealPlanService) Get(ctx context.Context, userID, id int64) (*domain.MealPlan, error) {
	plan, err := s.mealPlanRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrMealPlanNotFound
	}

	plan.Items, err = s.mealPlanRepo.Items(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *mealPlanService) AddItem(ctx context.Context, userID int64, item *domain.MealPlanItem) error {
	ctx, span := telemetry.StartSpan(ctx, "service.meal_plan.add_item")
	defer span.End()

	span.SetAttributes(attribute.Int64("meal_plan_id", item.MealPlanID))

	plan, err := s.mealPlanRepo.FindByID(ctx, userID, item.MealPlanID)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if plan == nil {
		span.SetStatus(codes.Error, "meal plan not found")
		return domain.ErrMealPlanNotFound
	}
	if item.RecipeID == nil && item.MealName == "" {
		span.SetStatus(codes.Error, "meal target missing")
		return domain.ErrMealTargetMissing
	}
	if !plan.Covers(item.MealDate) {
		span.SetStatus(codes.Error, "meal date out of range")
		return domain.ErrMealDateOutOfRange
	}

	if err := s.mealPlanRepo.AddItem(ctx, item); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

func (s *mealPlanService) Delete(ctx context.Context, userID, id int64) error {
	deleted, err := s.mealPlanRepo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrMealPlanNotFound
	}
	return nil
}
