package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTokenError(t *testing.T) {
	err := NewTokenError(ErrTokenExpired)

	assert.True(t, errors.Is(err, ErrInvalidToken))
	assert.True(t, errors.Is(err, ErrTokenExpired))
	assert.False(t, errors.Is(err, ErrTokenTypeMismatch))
	assert.Equal(t, "invalid token", err.Error())

	wrapped := fmt.Errorf("refresh: %w", err)
	assert.True(t, errors.Is(wrapped, ErrInvalidToken))
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
}

func TestUser_IsAdmin(t *testing.T) {
	var nilUser *User
	assert.False(t, nilUser.IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
}

func TestPantryItem_RefreshFlags(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	threshold := decimal.NewFromInt(2)

	tests := []struct {
		name         string
		item         PantryItem
		wantExpired  bool
		wantLowStock bool
	}{
		{
			name: "no dates or threshold",
			item: PantryItem{Quantity: decimal.NewFromInt(1)},
		},
		{
			name:        "expired yesterday",
			item:        PantryItem{Quantity: decimal.NewFromInt(5), ExpirationDate: &yesterday},
			wantExpired: true,
		},
		{
			name: "expires today is not expired",
			item: PantryItem{Quantity: decimal.NewFromInt(5), ExpirationDate: &today},
		},
		{
			name:         "at threshold is low stock",
			item:         PantryItem{Quantity: decimal.NewFromInt(2), LowStockThreshold: &threshold},
			wantLowStock: true,
		},
		{
			name: "above threshold",
			item: PantryItem{Quantity: decimal.RequireFromString("2.5"), LowStockThreshold: &threshold},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.item.RefreshFlags(now)
			assert.Equal(t, tt.wantExpired, tt.item.IsExpired)
			assert.Equal(t, tt.wantLowStock, tt.item.IsLowStock)
		})
	}
}

func TestPantryItem_ExpiresWithin(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	in3 := now.AddDate(0, 0, 3)
	in8 := now.AddDate(0, 0, 8)
	past := now.AddDate(0, 0, -2)

	assert.True(t, (&PantryItem{ExpirationDate: &in3}).ExpiresWithin(now, ExpiringSoonWindow))
	assert.False(t, (&PantryItem{ExpirationDate: &in8}).ExpiresWithin(now, ExpiringSoonWindow))
	assert.False(t, (&PantryItem{ExpirationDate: &past}).ExpiresWithin(now, ExpiringSoonWindow))
	assert.False(t, (&PantryItem{}).ExpiresWithin(now, ExpiringSoonWindow))
}

func TestMealPlan_Covers(t *testing.T) {
	plan := &MealPlan{
		StartDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 5, 7, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, plan.Covers(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, plan.Covers(time.Date(2026, 5, 7, 23, 0, 0, 0, time.UTC)))
	assert.False(t, plan.Covers(time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)))
	assert.False(t, plan.Covers(time.Date(2026, 5, 8, 0, 0, 0, 0, time.UTC)))
}
