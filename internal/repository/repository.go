package repository

import (
	"context"
	"time"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
)

// UserRepository defines the interface for user data access.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	// FindByID retrieves a user by ID
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByEmailOrUsername retrieves a user whose email or username equals s (case-insensitive)
	FindByEmailOrUsername(ctx context.Context, s string) (*domain.User, error)
	// FindByEmail retrieves a user by email
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// ExistsByEmail checks if a user exists with the given email
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ExistsByUsername checks if a user exists with the given username
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Create inserts a user and fills its ID and timestamps
	Create(ctx context.Context, user *domain.User) error
	// UpdateLastLogin records a successful login
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	// UpdateProfile applies a partial profile edit and returns the updated user
	UpdateProfile(ctx context.Context, id int64, update *domain.ProfileUpdate) (*domain.User, error)
	// UpdatePassword replaces the password hash
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	// SetActive activates or deactivates a user
	SetActive(ctx context.Context, id int64, active bool) (*domain.User, error)
	// SetRole changes a user's role
	SetRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error)
	// List returns a filtered page of users and the total match count
	List(ctx context.Context, filter *domain.UserFilter) ([]*domain.User, int, error)
}

// PasswordResetRepository records single-use password reset redemptions
type PasswordResetRepository interface {
	// ConsumeAndSetPassword marks the token consumed and updates the password
	// atomically. It returns domain.ErrInvalidToken if the token was already used.
	ConsumeAndSetPassword(ctx context.Context, token *domain.PasswordResetToken, passwordHash string) error
	// PurgeExpired removes consumption records whose tokens expired before t
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}

// RecipeRepository defines the interface for recipe data access.
// Only active recipes are visible.
type RecipeRepository interface {
	List(ctx context.Context, filter *domain.RecipeFilter) ([]*domain.Recipe, int, error)
	FindByID(ctx context.Context, id int64) (*domain.Recipe, error)
	// Ingredients loads the ingredient lines of a recipe
	Ingredients(ctx context.Context, recipeID int64) ([]domain.RecipeIngredient, error)
	IncrementViewCount(ctx context.Context, id int64) error
	// FavoriteIDs returns which of recipeIDs the user has favourited
	FavoriteIDs(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error)
	ToggleFavorite(ctx context.Context, userID, recipeID int64) (*domain.FavoriteResult, error)
	Rate(ctx context.Context, userID, recipeID int64, rating int, review *string) (*domain.RatingResult, error)
	Favorites(ctx context.Context, userID int64) ([]*domain.Recipe, error)
	Cuisines(ctx context.Context) ([]string, error)
	Search(ctx context.Context, query string, limit int) ([]*domain.Recipe, error)
	// ByPantry returns recipes using the user's pantry ingredients, best match first
	ByPantry(ctx context.Context, userID int64, limit int) ([]*domain.PantryMatch, error)
	Create(ctx context.Context, recipe *domain.Recipe) error
	Update(ctx context.Context, recipe *domain.Recipe, replaceIngredients bool) error
	// Deactivate hides a recipe; it reports false if no active recipe matched
	Deactivate(ctx context.Context, id int64) (bool, error)
}

// IngredientRepository defines the interface for ingredient data access
type IngredientRepository interface {
	Search(ctx context.Context, query string, limit int) ([]*domain.Ingredient, error)
	// FindOrCreate returns the ingredient named name (case-insensitive), creating it if needed
	FindOrCreate(ctx context.Context, name string) (*domain.Ingredient, error)
}

// PantryRepository defines the interface for pantry data access.
// Every call is scoped to the owning user.
type PantryRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]*domain.PantryItem, error)
	FindByID(ctx context.Context, userID, id int64) (*domain.PantryItem, error)
	// AddOrMerge adds the item, or adds its quantity to an existing item for the
	// same ingredient. merged reports which happened.
	AddOrMerge(ctx context.Context, item *domain.PantryItem) (result *domain.PantryItem, merged bool, err error)
	Update(ctx context.Context, userID, id int64, update *domain.PantryItemUpdate) (*domain.PantryItem, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

// MealPlanRepository defines the interface for meal plan data access.
// Every call is scoped to the owning user.
type MealPlanRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]*domain.MealPlan, error)
	FindByID(ctx context.Context, userID, id int64) (*domain.MealPlan, error)
	// Items loads the items of a meal plan ordered by date
	Items(ctx context.Context, planID int64) ([]domain.MealPlanItem, error)
	Create(ctx context.Context, plan *domain.MealPlan) error
	AddItem(ctx context.Context, item *domain.MealPlanItem) error
	Delete(ctx context.Context, userID, id int64) (bool, error)
}
