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

// PantryHandler handles pantry HTTP requests
type PantryHandler struct {
	pantryService service.PantryService
}

// NewPantryHandler creates a new PantryHandler
func NewPantryHandler(pantryService service.PantryService) *PantryHandler {
	return &PantryHandler{pantryService: pantryService}
}

// ListItems returns the caller's pantry
// GET /api/v1/pantry/items
func (h *PantryHandler) ListItems(c *gin.Context) {
	items, err := h.pantryService.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if items == nil {
		items = []*domain.PantryItem{}
	}
	response.Success(c, dto.PantryItemsResponse{Items: items})
}

// AddItem adds an ingredient, merging into an existing item for it
// POST /api/v1/pantry/items
func (h *PantryHandler) AddItem(c *gin.Context) {
	var req dto.CreatePantryItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := req.ToDomain(middleware.UserID(c))
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	result, merged, err := h.pantryService.Add(c.Request.Context(), item)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	if merged {
		response.Success(c, dto.PantryItemResponse{Message: dto.MsgPantryItemUpdated, Item: result})
		return
	}
	response.Created(c, dto.PantryItemResponse{Message: dto.MsgPantryItemAdded, Item: result})
}

// UpdateItem applies a partial edit to one of the caller's items
// PUT /api/v1/pantry/items/:id
func (h *PantryHandler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePantryItemRequest
	if !bindJSON(c, &req) {
		return
	}
	update, err := req.ToDomain()
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	item, err := h.pantryService.Update(c.Request.Context(), middleware.UserID(c), id, update)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, dto.PantryItemResponse{Message: dto.MsgPantryItemUpdated, Item: item})
}

// DeleteItem removes one of the caller's items
// DELETE /api/v1/pantry/items/:id
func (h *PantryHandler) DeleteItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.pantryService.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: dto.MsgPantryItemRemoved})
}

// Stats summarises the caller's pantry
// GET /api/v1/pantry/stats
func (h *PantryHandler) Stats(c *gin.Context) {
	stats, err := h.pantryService.Stats(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, stats)
}

func (h *PantryHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrPantryItemNotFound) {
		response.NotFound(c, dto.MsgPantryNotFound)
		return
	}
	response.InternalError(c, err)
}
