package domain

import "time"

// TokenType discriminates what a signed token may be used for
type TokenType string

const (
	TokenTypeAccess        TokenType = "access"
	TokenTypeRefresh       TokenType = "refresh"
	TokenTypePasswordReset TokenType = "password_reset"
)

// BearerTokenType is reported to clients alongside issued tokens
const BearerTokenType = "bearer"

// Claims is the verified payload of a token
type Claims struct {
	UserID    int64     `json:"user_id"`
	Type      TokenType `json:"type"`
	TokenID   string    `json:"jti"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"` // seconds until access token expires
}

// AccessToken is the result of a refresh; the refresh token is not rotated
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// PasswordResetToken is a single-use token minted for a reset request
type PasswordResetToken struct {
	Token     string
	TokenID   string
	UserID    int64
	ExpiresAt time.Time
}

// PasswordResetRequested is published when a user asks for a reset link
type PasswordResetRequested struct {
	EventID     string    `json:"event_id"`
	UserID      int64     `json:"user_id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
	RequestedAt time.Time `json:"requested_at"`
}
