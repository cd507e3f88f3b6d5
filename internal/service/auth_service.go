package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/internal/dto"
	"github.com/nukuldhake/Meal-Mate/internal/repository"
	"github.com/nukuldhake/Meal-Mate/pkg/logger"
	"github.com/nukuldhake/Meal-Mate/pkg/telemetry"
)

// PasswordResetNotifier delivers password reset links to users
type PasswordResetNotifier interface {
	NotifyPasswordReset(ctx context.Context, event *domain.PasswordResetRequested) error
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Register registers a new user
	Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error)
	// Login authenticates a user by username or email
	Login(ctx context.Context, req *dto.LoginRequest) (*domain.TokenPair, error)
	// Refresh mints a new access token from a refresh token
	Refresh(ctx context.Context, refreshToken string) (*domain.AccessToken, error)
	// ForgotPassword starts a password reset. It never reveals whether the email exists.
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword redeems a password reset token
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	// VerifyToken describes a valid access token
	VerifyToken(ctx context.Context, token string) (*dto.VerifyTokenResponse, error)
}

// authService implements AuthService
type authService struct {
	userRepo  repository.UserRepository
	resetRepo repository.PasswordResetRepository
	tokens    TokenService
	hasher    PasswordHasher
	notifier  PasswordResetNotifier
	now       func() time.Time
	log       *logger.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
	tokens TokenService,
	hasher PasswordHasher,
	notifier PasswordResetNotifier,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		tokens:    tokens,
		hasher:    hasher,
		notifier:  notifier,
		now:       time.Now,
		log:       logger.Get().Named("auth"),
	}
}

// Register registers a new user
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.register")
	defer span.End()

	span.SetAttributes(attribute.String("username", req.Username))

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if exists {
		span.SetStatus(codes.Error, "email taken")
		return nil, domain.ErrEmailTaken
	}

	exists, err = s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if exists {
		span.SetStatus(codes.Error, "username taken")
		return nil, domain.ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	user := &domain.User{
		Email:             req.Email,
		Username:          req.Username,
		FullName:          req.FullName,
		PasswordHash:      hash,
		Role:              domain.RoleUser,
		IsActive:          true,
		CookingSkillLevel: domain.SkillBeginner,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("user_id", user.ID))
	span.SetStatus(codes.Ok, "")
	return user, nil
}

// Login authenticates a user by username or email
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*domain.TokenPair, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.login")
	defer span.End()

	user, err := s.userRepo.FindByEmailOrUsername(ctx, req.Identifier())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if user == nil || !s.hasher.Compare(user.PasswordHash, req.Password) {
		span.SetStatus(codes.Error, "invalid credentials")
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		span.SetStatus(codes.Error, "user inactive")
		return nil, domain.ErrIdentityInactive
	}

	span.SetAttributes(attribute.Int64("user_id", user.ID))

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return pair, nil
}

// Refresh mints a new access token from a refresh token
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.AccessToken, error) {
	return s.tokens.Refresh(ctx, refreshToken)
}

// ForgotPassword mints a reset token for an active user and hands it to the
// notifier. Unknown or inactive emails are silently ignored.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.forgot_password")
	defer span.End()

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if user == nil || !user.IsActive {
		span.SetStatus(codes.Ok, "no eligible user")
		return nil
	}

	span.SetAttributes(attribute.Int64("user_id", user.ID))

	token, err := s.tokens.IssuePasswordReset(user)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	event := &domain.PasswordResetRequested{
		EventID:     uuid.NewString(),
		UserID:      user.ID,
		Email:       user.Email,
		Username:    user.Username,
		Token:       token.Token,
		ExpiresAt:   token.ExpiresAt,
		RequestedAt: s.now().UTC(),
	}
	if err := s.notifier.NotifyPasswordReset(ctx, event); err != nil {
		// the caller always sees the same answer
		telemetry.RecordError(span, err)
		s.log.Error("failed to publish password reset",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		return nil
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// ResetPassword verifies the token, then consumes it and stores the new
// password atomically. A replayed token fails with domain.ErrInvalidToken.
func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.reset_password")
	defer span.End()

	claims, err := s.tokens.Verify(req.Token, domain.TokenTypePasswordReset)
	if err != nil {
		span.SetStatus(codes.Error, "invalid reset token")
		return err
	}

	span.SetAttributes(attribute.Int64("user_id", claims.UserID))

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if user == nil {
		span.SetStatus(codes.Error, "user not found")
		return domain.NewTokenError(domain.ErrIdentityNotFound)
	}
	if !user.IsActive {
		span.SetStatus(codes.Error, "user inactive")
		return domain.NewTokenError(domain.ErrIdentityInactive)
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	token := &domain.PasswordResetToken{
		Token:     req.Token,
		TokenID:   claims.TokenID,
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt,
	}
	if err := s.resetRepo.ConsumeAndSetPassword(ctx, token, hash); err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			span.SetStatus(codes.Error, "reset token already used")
		} else {
			telemetry.RecordError(span, err)
		}
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// VerifyToken describes a valid access token whose owner is still active
func (s *authService) VerifyToken(ctx context.Context, token string) (*dto.VerifyTokenResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.verify_token")
	defer span.End()

	claims, err := s.tokens.Verify(token, domain.TokenTypeAccess)
	if err != nil {
		span.SetStatus(codes.Error, "invalid token")
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if user == nil {
		return nil, domain.NewTokenError(domain.ErrIdentityNotFound)
	}
	if !user.IsActive {
		return nil, domain.NewTokenError(domain.ErrIdentityInactive)
	}

	span.SetStatus(codes.Ok, "")
	return &dto.VerifyTokenResponse{
		Valid:     true,
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}
