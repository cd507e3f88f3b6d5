package domain

import (
	"time"
)

// Role represents user role
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Cooking skill levels
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// User represents a registered identity
type User struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	Username           string     `json:"username"`
	FullName           string     `json:"full_name"`
	PasswordHash       string     `json:"-"` // Never serialize password
	Role               Role       `json:"role"`
	IsActive           bool       `json:"is_active"`
	IsVerified         bool       `json:"is_verified"`
	Bio                string     `json:"bio,omitempty"`
	ProfileImage       string     `json:"profile_image,omitempty"`
	CookingSkillLevel  string     `json:"cooking_skill_level"`
	DietaryPreferences []string   `json:"dietary_preferences"`
	FavoriteCuisines   []string   `json:"favorite_cuisines"`
	LastLogin          *time.Time `json:"last_login,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// IsAdmin reports whether the user carries the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ProfileUpdate carries the optional fields of a profile edit.
// Nil means unchanged.
type ProfileUpdate struct {
	FullName           *string
	Bio                *string
	ProfileImage       *string
	CookingSkillLevel  *string
	DietaryPreferences []string
	FavoriteCuisines   []string
}

// UserFilter is used by the admin user listing
type UserFilter struct {
	Search   string
	IsActive *bool
	Role     Role
	Limit    int
	Offset   int
}
