package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/internal/dto"
	"github.com/nukuldhake/Meal-Mate/internal/middleware"
	"github.com/nukuldhake/Meal-Mate/internal/service"
	"github.com/nukuldhake/Meal-Mate/pkg/response"
)

const msgUserNotFound = "User not found"

// UserHandler handles profile HTTP requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe returns the caller's profile
// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, dto.ToUserProfile(user))
}

// UpdateMe applies a partial profile edit
// PUT /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.UserID(c), req.ToDomain())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, dto.ToUserProfile(user))
}

// GetPublic returns another user's public profile
// GET /api/v1/users/:id
func (h *UserHandler) GetPublic(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetPublicProfile(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, dto.ToPublicUser(user))
}

func (h *UserHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrIdentityNotFound) {
		response.NotFound(c, msgUserNotFound)
		return
	}
	response.InternalError(c, err)
}
