package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/internal/dto"
	"github.com/nukuldhake/Meal-Mate/internal/middleware"
	"github.com/nukuldhake/Meal-Mate/internal/service"
	"github.com/nukuldhake/Meal-Mate/pkg/response"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles user registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.ValidationError(c, msg)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			response.Error(c, http.StatusBadRequest, response.CodeEmailTaken, "Email already registered", "")
		case errors.Is(err, domain.ErrUsernameTaken):
			response.Error(c, http.StatusBadRequest, response.CodeUsernameTaken, "Username already taken", "")
		default:
			response.InternalError(c, err)
		}
		return
	}

	response.Created(c, dto.ToUserProfile(user))
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Identifier() == "" {
		response.ValidationError(c, "username is required")
		return
	}

	pair, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			unauthorized(c, dto.MsgInvalidCredentials)
		case errors.Is(err, domain.ErrIdentityInactive):
			response.Error(c, http.StatusBadRequest, response.CodeInactiveAccount, dto.MsgInactiveUser, "")
		default:
			response.InternalError(c, err)
		}
		return
	}

	response.Success(c, pair)
}

// RefreshToken exchanges a refresh token for a new access token. The token
// is read from the body, or from the Authorization header when the body has none.
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	// an empty body, chunked or not, falls through to the bearer header
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.ValidationError(c, err.Error())
		return
	}
	token := req.RefreshToken
	if token == "" {
		token, _ = middleware.BearerToken(c)
	}
	if token == "" {
		response.ValidationError(c, "refresh_token is required")
		return
	}

	access, err := h.authService.Refresh(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			unauthorized(c, dto.MsgInvalidRefreshToken)
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Success(c, access)
}

// Logout acknowledges a logout. Tokens are stateless; clients discard them.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, dto.MessageResponse{Message: dto.MsgLoggedOut})
}

// ForgotPassword starts a password reset. The answer is the same whether or
// not the email belongs to an account.
// POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.InternalError(c, err)
		return
	}

	response.Success(c, dto.MessageResponse{Message: dto.MsgResetLinkSent})
}

// ResetPassword redeems a reset token
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.ValidationError(c, msg)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), &req); err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			response.Error(c, http.StatusBadRequest, response.CodeInvalidToken, dto.MsgInvalidResetToken, "")
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Success(c, dto.MessageResponse{Message: dto.MsgPasswordReset})
}

// VerifyToken describes the bearer access token
// POST /api/v1/auth/verify-token
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	token, ok := middleware.BearerToken(c)
	if !ok {
		unauthorized(c, dto.MsgInvalidAccessToken)
		return
	}

	result, err := h.authService.VerifyToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			unauthorized(c, dto.MsgInvalidAccessToken)
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Success(c, result)
}

// Me returns the authenticated user
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		unauthorized(c, "User not authenticated")
		return
	}
	response.Success(c, dto.ToUserProfile(user))
}
