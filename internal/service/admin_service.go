package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/internal/dto"
	"github.com/nukuldhake/Meal-Mate/internal/repository"
	"github.com/nukuldhake/Meal-Mate/pkg/logger"
	"github.com/nukuldhake/Meal-Mate/pkg/telemetry"
)

// AdminService defines user and catalogue administration
type AdminService interface {
	ListUsers(ctx context.Context, filter *domain.UserFilter) ([]*domain.User, int, error)
	// SetUserStatus activates or deactivates a user other than the actor
	SetUserStatus(ctx context.Context, actorID, userID int64, active bool) (*domain.User, error)
	// SetUserRole changes the role of a user other than the actor
	SetUserRole(ctx context.Context, actorID, userID int64, role domain.Role) (*domain.User, error)
	CreateRecipe(ctx context.Context, recipe *domain.Recipe) error
	UpdateRecipe(ctx context.Context, id int64, req *dto.UpdateRecipeRequest) (*domain.Recipe, error)
	// DeleteRecipe deactivates a recipe
	DeleteRecipe(ctx context.Context, id int64) error
}

type adminService struct {
	userRepo   repository.UserRepository
	recipeRepo repository.RecipeRepository
	log        *logger.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(userRepo repository.UserRepository, recipeRepo repository.RecipeRepository) AdminService {
	return &adminService{
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
		log:        logger.Get().Named("admin"),
	}
}

func (s *adminService) ListUsers(ctx context.Context, filter *domain.UserFilter) ([]*domain.User, int, error) {
	return s.userRepo.List(ctx, filter)
}

func (s *adminService) SetUserStatus(ctx context.Context, actorID, userID int64, active bool) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.admin.set_user_status")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("actor_id", actorID),
		attribute.Int64("user_id", userID),
		attribute.Bool("active", active),
	)

	if actorID == userID {
		span.SetStatus(codes.Error, "self modification")
		return nil, domain.ErrSelfModification
	}

	user, err := s.userRepo.SetActive(ctx, userID, active)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if user == nil {
		span.SetStatus(codes.Error, "user not found")
		return nil, domain.ErrIdentityNotFound
	}

	s.log.Info("user status changed",
		zap.Int64("actor_id", actorID),
		zap.Int64("user_id", userID),
		zap.Bool("active", active),
	)
	span.SetStatus(codes.Ok, "")
	return user, nil
}

func (s *adminService) SetUserRole(ctx context.Context, actorID, userID int64, role domain.Role) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.admin.set_user_role")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("actor_id", actorID),
		attribute.Int64("user_id", userID),
		attribute.String("role", string(role)),
	)

	if !role.Valid() {
		span.SetStatus(codes.Error, "invalid role")
		return nil, domain.ErrInvalidRole
	}
	if actorID == userID {
		span.SetStatus(codes.Error, "self modification")
		return nil, domain.ErrSelfModification
	}

	user, err := s.userRepo.SetRole(ctx, userID, role)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if user == nil {
		span.SetStatus(codes.Error, "user not found")
		return nil, domain.ErrIdentityNotFound
	}

	s.log.Info("user role changed",
		zap.Int64("actor_id", actorID),
		zap.Int64("user_id", userID),
		zap.String("role", string(role)),
	)
	span.SetStatus(codes.Ok, "")
	return user, nil
}

func (s *adminService) CreateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	ctx, span := telemetry.StartSpan(ctx, "service.admin.create_recipe")
	defer span.End()

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	span.SetAttributes(attribute.Int64("recipe_id", recipe.ID))
	span.SetStatus(codes.Ok, "")
	return nil
}

func (s *adminService) UpdateRecipe(ctx context.Context, id int64, req *dto.UpdateRecipeRequest) (*domain.Recipe, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.admin.update_recipe")
	defer span.End()

	span.SetAttributes(attribute.Int64("recipe_id", id))

	recipe, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if recipe == nil {
		span.SetStatus(codes.Error, "recipe not found")
		return nil, domain.ErrRecipeNotFound
	}

	replaced := req.Apply(recipe)
	if err := s.recipeRepo.Update(ctx, recipe, replaced); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if !replaced {
		recipe.Ingredients, err = s.recipeRepo.Ingredients(ctx, id)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	span.SetStatus(codes.Ok, "")
	return recipe, nil
}

func (s *adminService) DeleteRecipe(ctx context.Context, id int64) error {
	deactivated, err := s.recipeRepo.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if !deactivated {
		return domain.ErrRecipeNotFound
	}
	s.log.Info("recipe deactivated", zap.Int64("recipe_id", id))
	return nil
}
