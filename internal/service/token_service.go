package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/pkg/logger"
	"github.com/nukuldhake/Meal-Mate/pkg/telemetry"
)

// TokenServiceConfig holds configuration for TokenService
type TokenServiceConfig struct {
	Secret          string
	Algorithm       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	ResetTokenTTL   time.Duration
	Issuer          string
	// Now is the clock; defaults to time.Now
	Now func() time.Time
}

// TokenVerifier verifies signed tokens of an expected type
type TokenVerifier interface {
	Verify(token string, expected domain.TokenType) (*domain.Claims, error)
}

// UserFinder resolves identities by id
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

// TokenService issues and verifies access, refresh and password reset tokens
type TokenService interface {
	TokenVerifier
	// Issue mints a fresh access and refresh token for user
	Issue(user *domain.User) (*domain.TokenPair, error)
	// IssuePasswordReset mints a single-use password reset token
	IssuePasswordReset(user *domain.User) (*domain.PasswordResetToken, error)
	// Refresh exchanges a refresh token for a new access token. The refresh
	// token itself is not rotated.
	Refresh(ctx context.Context, refreshToken string) (*domain.AccessToken, error)
}

type tokenClaims struct {
	Type domain.TokenType `json:"type"`
	jwt.RegisteredClaims
}

type tokenService struct {
	users  UserFinder
	config *TokenServiceConfig
	method jwt.SigningMethod
	log    *logger.Logger
}

// NewTokenService creates a new TokenService
func NewTokenService(users UserFinder, config *TokenServiceConfig) (TokenService, error) {
	if config.Secret == "" {
		return nil, errors.New("token secret is required")
	}
	if config.Algorithm == "" {
		config.Algorithm = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(config.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm: %q", config.Algorithm)
	}
	if config.AccessTokenTTL == 0 {
		config.AccessTokenTTL = 30 * time.Minute
	}
	if config.RefreshTokenTTL == 0 {
		config.RefreshTokenTTL = 7 * 24 * time.Hour
	}
	if config.ResetTokenTTL == 0 {
		config.ResetTokenTTL = 15 * time.Minute
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &tokenService{
		users:  users,
		config: config,
		method: method,
		log:    logger.Get().Named("token"),
	}, nil
}

func (s *tokenService) ttl(t domain.TokenType) time.Duration {
	switch t {
	case domain.TokenTypeRefresh:
		return s.config.RefreshTokenTTL
	case domain.TokenTypePasswordReset:
		return s.config.ResetTokenTTL
	default:
		return s.config.AccessTokenTTL
	}
}

// sign mints one token. iat is truncated to whole seconds so exp - iat is exactly the TTL.
func (s *tokenService) sign(userID int64, t domain.TokenType) (string, *tokenClaims, error) {
	now := s.config.Now().Truncate(time.Second)
	claims := &tokenClaims{
		Type: t,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl(t))),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign %s token: %w", t, err)
	}
	return signed, claims, nil
}

// Issue mints a fresh access and refresh token for user
func (s *tokenService) Issue(user *domain.User) (*domain.TokenPair, error) {
	access, _, err := s.sign(user.ID, domain.TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.sign(user.ID, domain.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    domain.BearerTokenType,
		ExpiresIn:    int64(s.config.AccessTokenTTL.Seconds()),
	}, nil
}

// IssuePasswordReset mints a single-use password reset token
func (s *tokenService) IssuePasswordReset(user *domain.User) (*domain.PasswordResetToken, error) {
	signed, claims, err := s.sign(user.ID, domain.TokenTypePasswordReset)
	if err != nil {
		return nil, err
	}
	return &domain.PasswordResetToken{
		Token:     signed,
		TokenID:   claims.ID,
		UserID:    user.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Verify checks signature, algorithm, expiry and type. Every failure is a
// *domain.TokenError matching domain.ErrInvalidToken.
func (s *tokenService) Verify(token string, expected domain.TokenType) (*domain.Claims, error) {
	claims, err := s.verify(token, expected)
	if err != nil {
		s.log.Debug("token verification failed",
			zap.String("expected_type", string(expected)),
			zap.Error(err),
		)
		return nil, domain.NewTokenError(err)
	}
	return claims, nil
}

func (s *tokenService) verify(token string, expected domain.TokenType) (*domain.Claims, error) {
	if token == "" {
		return nil, domain.ErrMalformedCredential
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.config.Now),
	}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	parsed := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, parsed, func(*jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	}, opts...)
	if err != nil {
		return nil, classifyJWTError(err)
	}

	if parsed.Type != expected {
		return nil, domain.ErrTokenTypeMismatch
	}

	userID, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, domain.ErrMalformedCredential
	}

	claims := &domain.Claims{
		UserID:    userID,
		Type:      parsed.Type,
		TokenID:   parsed.ID,
		ExpiresAt: parsed.ExpiresAt.Time,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time
	}
	return claims, nil
}

func classifyJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return domain.ErrInvalidSignature
	default:
		return domain.ErrMalformedCredential
	}
}

// Refresh exchanges a refresh token for a new access token
func (s *tokenService) Refresh(ctx context.Context, refreshToken string) (*domain.AccessToken, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.token.refresh")
	defer span.End()

	claims, err := s.Verify(refreshToken, domain.TokenTypeRefresh)
	if err != nil {
		span.SetStatus(codes.Error, "invalid refresh token")
		return nil, err
	}

	span.SetAttributes(attribute.Int64("user_id", claims.UserID))

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if user == nil {
		span.SetStatus(codes.Error, "user not found")
		return nil, domain.NewTokenError(domain.ErrIdentityNotFound)
	}
	if !user.IsActive {
		span.SetStatus(codes.Error, "user inactive")
		return nil, domain.NewTokenError(domain.ErrIdentityInactive)
	}

	access, _, err := s.sign(user.ID, domain.TokenTypeAccess)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return &domain.AccessToken{
		AccessToken: access,
		TokenType:   domain.BearerTokenType,
		ExpiresIn:   int64(s.config.AccessTokenTTL.Seconds()),
	}, nil
}
