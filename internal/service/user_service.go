package service

import (
	"context"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/internal/repository"
	"github.com/nukuldhake/Meal-Mate/pkg/telemetry"
)

// UserService defines profile operations
type UserService interface {
	// GetProfile returns the user's own profile
	GetProfile(ctx context.Context, id int64) (*domain.User, error)
	// UpdateProfile applies a partial profile edit
	UpdateProfile(ctx context.Context, id int64, update *domain.ProfileUpdate) (*domain.User, error)
	// GetPublicProfile returns an active user's public profile
	GetPublicProfile(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrIdentityNotFound
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id int64, update *domain.ProfileUpdate) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.update_profile")
	defer span.End()

	user, err := s.userRepo.UpdateProfile(ctx, id, update)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrIdentityNotFound
	}
	return user, nil
}

func (s *userService) GetPublicProfile(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrIdentityNotFound
	}
	return user, nil
}
