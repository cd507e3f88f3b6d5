package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/internal/repository"
	"github.com/nukuldhake/Meal-Mate/pkg/telemetry"
)

// uncategorized groups pantry items whose ingredient has no category
const uncategorized = "uncategorized"

// PantryService defines pantry operations. Every call is scoped to userID.
type PantryService interface {
	List(ctx context.Context, userID int64) ([]*domain.PantryItem, error)
	// Add stores an item, merging into an existing item for the same
	// ingredient. merged reports which happened.
	Add(ctx context.Context, item *domain.PantryItem) (result *domain.PantryItem, merged bool, err error)
	Update(ctx context.Context, userID, id int64, update *domain.PantryItemUpdate) (*domain.PantryItem, error)
	Delete(ctx context.Context, userID, id int64) error
	Stats(ctx context.Context, userID int64) (*domain.PantryStats, error)
}

type pantryService struct {
	pantryRepo repository.PantryRepository
	now        func() time.Time
}

// NewPantryService creates a new PantryService
func NewPantryService(pantryRepo repository.PantryRepository) PantryService {
	return &pantryService{
		pantryRepo: pantryRepo,
		now:        time.Now,
	}
}

// List returns the user's items with flags current as of today
func (s *pantryService) List(ctx context.Context, userID int64) ([]*domain.PantryItem, error) {
	items, err := s.pantryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for _, item := range items {
		item.RefreshFlags(now)
	}
	return items, nil
}

func (s *pantryService) Add(ctx context.Context, item *domain.PantryItem) (*domain.PantryItem, bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.pantry.add")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", item.UserID),
		attribute.String("ingredient", item.IngredientName),
	)

	result, merged, err := s.pantryRepo.AddOrMerge(ctx, item)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, false, err
	}
	result.RefreshFlags(s.now())

	span.SetAttributes(attribute.Bool("merged", merged))
	span.SetStatus(codes.Ok, "")
	return result, merged, nil
}

func (s *pantryService) Update(ctx context.Context, userID, id int64, update *domain.PantryItemUpdate) (*domain.PantryItem, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.pantry.update")
	defer span.End()

	item, err := s.pantryRepo.Update(ctx, userID, id, update)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if item == nil {
		span.SetStatus(codes.Error, "pantry item not found")
		return nil, domain.ErrPantryItemNotFound
	}
	item.RefreshFlags(s.now())

	span.SetStatus(codes.Ok, "")
	return item, nil
}

func (s *pantryService) Delete(ctx context.Context, userID, id int64) error {
	deleted, err := s.pantryRepo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrPantryItemNotFound
	}
	return nil
}

// Stats summarises the user's pantry as of today
func (s *pantryService) Stats(ctx context.Context, userID int64) (*domain.PantryStats, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stats := &domain.PantryStats{
		TotalItems:      len(items),
		ItemsByCategory: make(map[string]int),
	}
	for _, item := range items {
		category := item.IngredientCategory
		if category == "" {
			category = uncategorized
		}
		stats.ItemsByCategory[category]++

		if item.IsExpired {
			stats.ExpiredItems++
		} else if item.ExpiresWithin(now, domain.ExpiringSoonWindow) {
			stats.ItemsExpiringSoon++
		}
		if item.IsLowStock {
			stats.LowStockItems++
		}
	}
	return stats, nil
}
