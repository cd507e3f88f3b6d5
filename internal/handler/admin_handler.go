package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/internal/dto"
	"github.com/nukuldhake/Meal-Mate/internal/middleware"
	"github.com/nukuldhake/Meal-Mate/internal/service"
	"github.com/nukuldhake/Meal-Mate/pkg/response"
)

// AdminHandler handles user and catalogue administration
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers returns a page of users
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var q dto.ListUsersQuery
	if !bindQuery(c, &q) {
		return
	}
	q.SetDefaults()

	users, total, err := h.adminService.ListUsers(c.Request.Context(), q.ToFilter())
	if err != nil {
		response.InternalError(c, err)
		return
	}

	profiles := make([]dto.UserProfileResponse, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, dto.ToUserProfile(u))
	}
	response.SuccessWithMeta(c, profiles, response.NewPageMeta(q.Page, q.PageSize, int64(total)))
}

// SetUserStatus activates or deactivates a user
// PATCH /api/v1/admin/users/:id/status
func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.adminService.SetUserStatus(c.Request.Context(), middleware.UserID(c), id, *req.IsActive)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, dto.ToUserProfile(user))
}

// SetUserRole changes a user's role
// PATCH /api/v1/admin/users/:id/role
func (h *AdminHandler) SetUserRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.adminService.SetUserRole(c.Request.Context(), middleware.UserID(c), id, domain.Role(req.Role))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, dto.ToUserProfile(user))
}

// CreateRecipe adds a recipe to the catalogue
// POST /api/v1/admin/recipes
func (h *AdminHandler) CreateRecipe(c *gin.Context) {
	var req dto.CreateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe := req.ToDomain()
	if err := h.adminService.CreateRecipe(c.Request.Context(), recipe); err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, recipe)
}

// UpdateRecipe applies a partial recipe edit
// PUT /api/v1/admin/recipes/:id
func (h *AdminHandler) UpdateRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.adminService.UpdateRecipe(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, recipe)
}

// DeleteRecipe hides a recipe from the catalogue
// DELETE /api/v1/admin/recipes/:id
func (h *AdminHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteRecipe(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: "Recipe deleted"})
}

func (h *AdminHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrIdentityNotFound):
		response.NotFound(c, msgUserNotFound)
	case errors.Is(err, domain.ErrRecipeNotFound):
		response.NotFound(c, msgRecipeNotFound)
	case errors.Is(err, domain.ErrSelfModification):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "Admins cannot change their own status or role", "")
	case errors.Is(err, domain.ErrInvalidRole):
		response.ValidationError(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
