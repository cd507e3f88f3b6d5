package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpiringSoonWindow is how far ahead pantry stats look for expiring items
const ExpiringSoonWindow = 7 * 24 * time.Hour

// PantryItem is an ingredient held in a user's pantry
type PantryItem struct {
	ID                 int64            `json:"id"`
	UserID             int64            `json:"user_id"`
	IngredientID       int64            `json:"ingredient_id"`
	IngredientName     string           `json:"ingredient_name"`
	IngredientCategory string           `json:"ingredient_category,omitempty"`
	Quantity           decimal.Decimal  `json:"quantity"`
	Unit               string           `json:"unit"`
	ExpirationDate     *time.Time       `json:"expiration_date,omitempty"`
	PurchaseDate       *time.Time       `json:"purchase_date,omitempty"`
	IsExpired          bool             `json:"is_expired"`
	StorageLocation    string           `json:"storage_location,omitempty"`
	Notes              string           `json:"notes,omitempty"`
	LowStockThreshold  *decimal.Decimal `json:"low_stock_threshold,omitempty"`
	IsLowStock         bool             `json:"is_low_stock"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// RefreshFlags recomputes the expired and low-stock flags as of now
func (p *PantryItem) RefreshFlags(now time.Time) {
	today := truncateDay(now)
	p.IsExpired = p.ExpirationDate != nil && truncateDay(*p.ExpirationDate).Before(today)
	p.IsLowStock = p.LowStockThreshold != nil && p.Quantity.LessThanOrEqual(*p.LowStockThreshold)
}

// ExpiresWithin reports whether the item expires between now and now+window
func (p *PantryItem) ExpiresWithin(now time.Time, window time.Duration) bool {
	if p.ExpirationDate == nil {
		return false
	}
	exp := truncateDay(*p.ExpirationDate)
	today := truncateDay(now)
	return !exp.Before(today) && !exp.After(today.Add(window))
}

// PantryItemUpdate carries a partial pantry edit. Nil means unchanged.
type PantryItemUpdate struct {
	Quantity          *decimal.Decimal
	Unit              *string
	ExpirationDate    *time.Time
	StorageLocation   *string
	Notes             *string
	LowStockThreshold *decimal.Decimal
}

// PantryStats summarises a user's pantry
type PantryStats struct {
	TotalItems        int            `json:"total_items"`
	ItemsByCategory   map[string]int `json:"items_by_category"`
	ExpiredItems      int            `json:"expired_items"`
	LowStockItems     int            `json:"low_stock_items"`
	ItemsExpiringSoon int            `json:"items_expiring_soon"`
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
