package dto

import (
	"regexp"
	"strings"
	"unicode"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email,max=255"`
	Username        string `json:"username" binding:"required,min=3,max=50"`
	FullName        string `json:"full_name" binding:"required,min=1,max=255"`
	Password        string `json:"password" binding:"required,min=8,max=100"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// Validate runs the checks binding tags cannot express
func (r *RegisterRequest) Validate() (bool, string) {
	if !usernamePattern.MatchString(r.Username) {
		return false, "Username can only contain letters, numbers, and underscores"
	}
	if ok, msg := ValidatePassword(r.Password); !ok {
		return false, msg
	}
	if r.Password != r.ConfirmPassword {
		return false, "Passwords do not match"
	}
	return true, ""
}

// ValidatePassword validates password strength requirements:
// - 8 to 100 characters
// - At least one uppercase letter
// - At least one lowercase letter
// - At least one digit
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}
	if len(password) > 100 {
		return false, "Password must not exceed 100 characters"
	}

	var hasUpper, hasLower, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}

	if !hasUpper {
		return false, "Password must contain at least one uppercase letter"
	}
	if !hasLower {
		return false, "Password must contain at least one lowercase letter"
	}
	if !hasDigit {
		return false, "Password must contain at least one digit"
	}

	return true, ""
}

// LoginRequest represents login request. Username accepts either the
// username or the email; Email is kept for clients that send it instead.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// Identifier returns the login name the client supplied
func (r *LoginRequest) Identifier() string {
	if s := strings.TrimSpace(r.Username); s != "" {
		return s
	}
	return strings.TrimSpace(r.Email)
}

// RefreshTokenRequest represents refresh token request. The token may
// also arrive as a bearer credential.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ForgotPasswordRequest starts a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest redeems a password reset token
type ResetPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=100"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// Validate checks password strength and confirmation
func (r *ResetPasswordRequest) Validate() (bool, string) {
	if ok, msg := ValidatePassword(r.NewPassword); !ok {
		return false, msg
	}
	if r.NewPassword != r.ConfirmPassword {
		return false, "Passwords do not match"
	}
	return true, ""
}

// VerifyTokenResponse describes a valid access token
type VerifyTokenResponse struct {
	Valid     bool   `json:"valid"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	ExpiresAt int64  `json:"expires_at"`
}

// MessageResponse is a bare message payload
type MessageResponse struct {
	Message string `json:"message"`
}

const (
	MsgLoggedOut           = "Successfully logged out"
	MsgResetLinkSent       = "If the email exists, a password reset link has been sent"
	MsgPasswordReset       = "Password successfully reset"
	MsgInvalidResetToken   = "Invalid or expired reset token"
	MsgInvalidCredentials  = "Incorrect username or password"
	MsgInvalidRefreshToken = "Invalid refresh token"
	MsgInvalidAccessToken  = "Invalid or expired token"
	MsgInactiveUser        = "Inactive user"
)
