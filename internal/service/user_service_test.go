package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
)

func TestUserService_GetProfile(t *testing.T) {
	repo := newMockUserRepository()
	repo.add(&domain.User{ID: 1, Username: "cook", IsActive: true})
	svc := NewUserService(repo)

	user, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "cook", user.Username)

	_, err = svc.GetProfile(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
}

func TestUserService_GetProfile_StoreError(t *testing.T) {
	repo := newMockUserRepository()
	repo.findError = errors.New("db down")
	svc := NewUserService(repo)

	_, err := svc.GetProfile(context.Background(), 1)
	assert.EqualError(t, err, "db down")
}

func TestUserService_UpdateProfile(t *testing.T) {
	repo := newMockUserRepository()
	repo.add(&domain.User{ID: 1, FullName: "Old", IsActive: true})
	svc := NewUserService(repo)

	name := "New Name"
	level := "advanced"
	user, err := svc.UpdateProfile(context.Background(), 1, &domain.ProfileUpdate{
		FullName:          &name,
		CookingSkillLevel: &level,
		FavoriteCuisines:  []string{"Thai"},
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", user.FullName)
	assert.Equal(t, "advanced", user.CookingSkillLevel)
	assert.Equal(t, []string{"Thai"}, user.FavoriteCuisines)

	_, err = svc.UpdateProfile(context.Background(), 42, &domain.ProfileUpdate{FullName: &name})
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
}

func TestUserService_GetPublicProfile_HidesInactive(t *testing.T) {
	repo := newMockUserRepository()
	repo.add(&domain.User{ID: 1, Username: "active", IsActive: true})
	repo.add(&domain.User{ID: 2, Username: "gone", IsActive: false})
	svc := NewUserService(repo)

	user, err := svc.GetPublicProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "active", user.Username)

	_, err = svc.GetPublicProfile(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
}
