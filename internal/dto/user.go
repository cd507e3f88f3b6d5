package dto

import (
	"time"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
)

// UserProfileResponse is the caller's own profile
type UserProfileResponse struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	Username           string     `json:"username"`
	FullName           string     `json:"full_name"`
	Role               string     `json:"role"`
	Bio                string     `json:"bio,omitempty"`
	ProfileImage       string     `json:"profile_image,omitempty"`
	CookingSkillLevel  string     `json:"cooking_skill_level"`
	DietaryPreferences []string   `json:"dietary_preferences"`
	FavoriteCuisines   []string   `json:"favorite_cuisines"`
	IsActive           bool       `json:"is_active"`
	IsVerified         bool       `json:"is_verified"`
	CreatedAt          time.Time  `json:"created_at"`
	LastLogin          *time.Time `json:"last_login,omitempty"`
}

// PublicUserResponse is what other users may see
type PublicUserResponse struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"`
	FullName          string    `json:"full_name"`
	Bio               string    `json:"bio,omitempty"`
	ProfileImage      string    `json:"profile_image,omitempty"`
	CookingSkillLevel string    `json:"cooking_skill_level"`
	FavoriteCuisines  []string  `json:"favorite_cuisines"`
	CreatedAt         time.Time `json:"created_at"`
}

// ToUserProfile converts a user to its owner-facing profile
func ToUserProfile(u *domain.User) UserProfileResponse {
	return UserProfileResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Username:           u.Username,
		FullName:           u.FullName,
		Role:               string(u.Role),
		Bio:                u.Bio,
		ProfileImage:       u.ProfileImage,
		CookingSkillLevel:  u.CookingSkillLevel,
		DietaryPreferences: nonNil(u.DietaryPreferences),
		FavoriteCuisines:   nonNil(u.FavoriteCuisines),
		IsActive:           u.IsActive,
		IsVerified:         u.IsVerified,
		CreatedAt:          u.CreatedAt,
		LastLogin:          u.LastLogin,
	}
}

// ToPublicUser converts a user to its public profile
func ToPublicUser(u *domain.User) PublicUserResponse {
	return PublicUserResponse{
		ID:                u.ID,
		Username:          u.Username,
		FullName:          u.FullName,
		Bio:               u.Bio,
		ProfileImage:      u.ProfileImage,
		CookingSkillLevel: u.CookingSkillLevel,
		FavoriteCuisines:  nonNil(u.FavoriteCuisines),
		CreatedAt:         u.CreatedAt,
	}
}

// UpdateProfileRequest is a partial profile edit
type UpdateProfileRequest struct {
	FullName           *string  `json:"full_name" binding:"omitempty,min=1,max=255"`
	Bio                *string  `json:"bio" binding:"omitempty,max=1000"`
	ProfileImage       *string  `json:"profile_image" binding:"omitempty,max=500"`
	CookingSkillLevel  *string  `json:"cooking_skill_level" binding:"omitempty,oneof=beginner intermediate advanced"`
	DietaryPreferences []string `json:"dietary_preferences" binding:"omitempty,max=50,dive,min=1,max=100"`
	FavoriteCuisines   []string `json:"favorite_cuisines" binding:"omitempty,max=50,dive,min=1,max=100"`
}

// ToDomain converts the request into a profile update
func (r *UpdateProfileRequest) ToDomain() *domain.ProfileUpdate {
	return &domain.ProfileUpdate{
		FullName:           r.FullName,
		Bio:                r.Bio,
		ProfileImage:       r.ProfileImage,
		CookingSkillLevel:  r.CookingSkillLevel,
		DietaryPreferences: r.DietaryPreferences,
		FavoriteCuisines:   r.FavoriteCuisines,
	}
}

// ListUsersQuery is the admin user listing query
type ListUsersQuery struct {
	PageQuery
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=user admin"`
	IsActive *bool  `form:"is_active"`
}

// ToFilter converts the query into a repository filter
func (q *ListUsersQuery) ToFilter() *domain.UserFilter {
	return &domain.UserFilter{
		Search:   q.Search,
		IsActive: q.IsActive,
		Role:     domain.Role(q.Role),
		Limit:    q.PageSize,
		Offset:   q.Offset(),
	}
}

// UpdateUserStatusRequest activates or deactivates a user
type UpdateUserStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// UpdateUserRoleRequest changes a user's role
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
