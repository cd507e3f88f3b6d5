package dto

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
)

// ErrEmptyIngredientName is returned when an ingredient name is blank after trimming
var ErrEmptyIngredientName = errors.New("ingredient_name must not be blank")

// CreatePantryItemRequest adds an ingredient to the pantry
type CreatePantryItemRequest struct {
	IngredientName    string           `json:"ingredient_name" binding:"required,min=1,max=200"`
	Quantity          decimal.Decimal  `json:"quantity"`
	Unit              string           `json:"unit" binding:"required,min=1,max=50"`
	ExpirationDate    *string          `json:"expiration_date"`
	PurchaseDate      *string          `json:"purchase_date"`
	StorageLocation   string           `json:"storage_location" binding:"omitempty,max=100"`
	Notes             string           `json:"notes" binding:"omitempty,max=500"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold"`
}

// ToDomain validates the non-tag fields and builds a pantry item
func (r *CreatePantryItemRequest) ToDomain(userID int64) (*domain.PantryItem, error) {
	name := strings.ToLower(strings.TrimSpace(r.IngredientName))
	if name == "" {
		return nil, ErrEmptyIngredientName
	}
	if !r.Quantity.IsPositive() {
		return nil, errors.New("quantity must be greater than 0")
	}
	if r.LowStockThreshold != nil && !r.LowStockThreshold.IsPositive() {
		return nil, errors.New("low_stock_threshold must be greater than 0")
	}
	exp, err := parseOptionalDate("expiration_date", r.ExpirationDate)
	if err != nil {
		return nil, err
	}
	purchased, err := parseOptionalDate("purchase_date", r.PurchaseDate)
	if err != nil {
		return nil, err
	}

	return &domain.PantryItem{
		UserID:            userID,
		IngredientName:    name,
		Quantity:          r.Quantity,
		Unit:              r.Unit,
		ExpirationDate:    exp,
		PurchaseDate:      purchased,
		StorageLocation:   r.StorageLocation,
		Notes:             r.Notes,
		LowStockThreshold: r.LowStockThreshold,
	}, nil
}

// UpdatePantryItemRequest is a partial pantry edit
type UpdatePantryItemRequest struct {
	Quantity          *decimal.Decimal `json:"quantity"`
	Unit              *string          `json:"unit" binding:"omitempty,min=1,max=50"`
	ExpirationDate    *string          `json:"expiration_date"`
	StorageLocation   *string          `json:"storage_location" binding:"omitempty,max=100"`
	Notes             *string          `json:"notes" binding:"omitempty,max=500"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold"`
}

// ToDomain validates and converts the request
func (r *UpdatePantryItemRequest) ToDomain() (*domain.PantryItemUpdate, error) {
	if r.Quantity != nil && !r.Quantity.IsPositive() {
		return nil, errors.New("quantity must be greater than 0")
	}
	if r.LowStockThreshold != nil && !r.LowStockThreshold.IsPositive() {
		return nil, errors.New("low_stock_threshold must be greater than 0")
	}
	exp, err := parseOptionalDate("expiration_date", r.ExpirationDate)
	if err != nil {
		return nil, err
	}
	return &domain.PantryItemUpdate{
		Quantity:          r.Quantity,
		Unit:              r.Unit,
		ExpirationDate:    exp,
		StorageLocation:   r.StorageLocation,
		Notes:             r.Notes,
		LowStockThreshold: r.LowStockThreshold,
	}, nil
}

// PantryItemsResponse lists pantry items
type PantryItemsResponse struct {
	Items []*domain.PantryItem `json:"items"`
}

// PantryItemResponse wraps a single pantry item with a message
type PantryItemResponse struct {
	Message string             `json:"message"`
	Item    *domain.PantryItem `json:"item"`
}

const (
	MsgPantryItemUpdated = "Pantry item updated"
	MsgPantryItemAdded   = "Item added to pantry"
	MsgPantryItemRemoved = "Item removed from pantry"
	MsgPantryNotFound    = "Pantry item not found"
)
