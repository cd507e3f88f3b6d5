package domain

import "errors"

// Domain errors
var (
	// Token errors. Verification failures are reported to callers as
	// ErrInvalidToken; the specific cause stays reachable via errors.Is.
	ErrInvalidToken        = errors.New("invalid token")
	ErrMalformedCredential = errors.New("malformed credential")
	ErrInvalidSignature    = errors.New("invalid token signature")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenTypeMismatch   = errors.New("token type mismatch")
	ErrTokenAlreadyUsed    = errors.New("token already used")

	// Identity errors
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrIdentityInactive   = errors.New("identity is inactive")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidRole        = errors.New("invalid role")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrSelfModification   = errors.New("admins cannot change their own status or role")

	// Resource errors
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrPantryItemNotFound = errors.New("pantry item not found")
	ErrMealPlanNotFound   = errors.New("meal plan not found")
	ErrInvalidDateRange   = errors.New("end date must be after start date")
	ErrMealDateOutOfRange = errors.New("meal date is outside the meal plan range")
	ErrMealTargetMissing  = errors.New("either recipe_id or meal_name is required")
)

// TokenError collapses a token verification failure into ErrInvalidToken
// while keeping the underlying cause for logging.
type TokenError struct {
	Cause error
}

// NewTokenError wraps cause as an invalid token failure
func NewTokenError(cause error) error {
	return &TokenError{Cause: cause}
}

func (e *TokenError) Error() string {
	return ErrInvalidToken.Error()
}

// Is makes every TokenError match ErrInvalidToken
func (e *TokenError) Is(target error) bool {
	return target == ErrInvalidToken
}

func (e *TokenError) Unwrap() error {
	return e.Cause
}
