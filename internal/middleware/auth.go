package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/internal/metrics"
	"github.com/nukuldhake/Meal-Mate/internal/service"
	"github.com/nukuldhake/Meal-Mate/pkg/logger"
	"github.com/nukuldhake/Meal-Mate/pkg/response"
)

const (
	// UserKey is the context key for the authenticated *domain.User
	UserKey = "user"
	// UserIDKey is the context key for the authenticated user id
	UserIDKey = "user_id"

	bearerPrefix = "Bearer "

	msgCouldNotValidate = "Could not validate credentials"
	msgInactiveUser     = "Inactive user"
	msgNotEnoughRights  = "Not enough permissions"
)

type gateMode int

const (
	gateRequired gateMode = iota
	gateOptional
	gateAdmin
)

func (m gateMode) String() string {
	switch m {
	case gateOptional:
		return "optional"
	case gateAdmin:
		return "admin"
	default:
		return "required"
	}
}

// AuthGate resolves the caller of a request from its bearer access token
type AuthGate struct {
	verifier service.TokenVerifier
	users    service.UserFinder
	log      *logger.Logger
}

// NewAuthGate creates a new AuthGate
func NewAuthGate(verifier service.TokenVerifier, users service.UserFinder) *AuthGate {
	return &AuthGate{
		verifier: verifier,
		users:    users,
		log:      logger.Get().Named("auth_gate"),
	}
}

// RequireAuth rejects requests without a valid access token for an active user
func (g *AuthGate) RequireAuth() gin.HandlerFunc {
	return g.handler(gateRequired)
}

// OptionalAuth resolves the caller when it can and otherwise lets the
// request through anonymously.
func (g *AuthGate) OptionalAuth() gin.HandlerFunc {
	return g.handler(gateOptional)
}

// RequireAdmin is RequireAuth restricted to admins
func (g *AuthGate) RequireAdmin() gin.HandlerFunc {
	return g.handler(gateAdmin)
}

func (g *AuthGate) handler(mode gateMode) gin.HandlerFunc {
	gate := mode.String()
	return func(c *gin.Context) {
		user, outcome := g.resolve(c)

		switch {
		case user == nil || !user.IsActive:
			metrics.AuthOutcomes.WithLabelValues(gate, outcome).Inc()
			if mode == gateOptional {
				c.Next()
				return
			}
			if user == nil {
				c.Header("WWW-Authenticate", "Bearer")
				response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, msgCouldNotValidate)
				return
			}
			response.Abort(c, http.StatusBadRequest, response.CodeInactiveAccount, msgInactiveUser)
			return
		case mode == gateAdmin && !user.IsAdmin():
			metrics.AuthOutcomes.WithLabelValues(gate, metrics.OutcomeUnauthorized).Inc()
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, msgNotEnoughRights)
			return
		}

		metrics.AuthOutcomes.WithLabelValues(gate, outcome).Inc()
		c.Set(UserKey, user)
		c.Set(UserIDKey, user.ID)
		c.Next()
	}
}

// resolve returns the user behind the bearer token, or nil when there is no
// usable token or no such identity.
func (g *AuthGate) resolve(c *gin.Context) (*domain.User, string) {
	token, ok := BearerToken(c)
	if !ok {
		return nil, metrics.OutcomeAnonymous
	}

	claims, err := g.verifier.Verify(token, domain.TokenTypeAccess)
	if err != nil {
		return nil, metrics.OutcomeRejected
	}

	user, err := g.users.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		g.log.Error("Failed to resolve token subject",
			zap.Int64("user_id", claims.UserID),
			zap.String("request_id", GetRequestID(c)),
			zap.Error(err),
		)
		return nil, metrics.OutcomeRejected
	}
	if user == nil {
		g.log.Debug("Token subject not found", zap.Int64("user_id", claims.UserID))
		return nil, metrics.OutcomeRejected
	}
	if !user.IsActive {
		return user, metrics.OutcomeInactive
	}
	return user, metrics.OutcomeSuccess
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

// CurrentUser returns the user set by the auth gate, or nil for anonymous requests
func CurrentUser(c *gin.Context) *domain.User {
	if v, exists := c.Get(UserKey); exists {
		if user, ok := v.(*domain.User); ok {
			return user
		}
	}
	return nil
}

// UserID returns the authenticated user id, or 0 for anonymous requests
func UserID(c *gin.Context) int64 {
	return c.GetInt64(UserIDKey)
}
