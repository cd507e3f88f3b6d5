package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/pkg/database"
)

const pantryColumns = `p.id, p.user_id, p.ingredient_id, i.name, COALESCE(i.category, ''),
	p.quantity::text, p.unit, p.expiration_date, p.purchase_date, p.is_expired,
	COALESCE(p.storage_location, ''), COALESCE(p.notes, ''), p.low_stock_threshold::text,
	p.is_low_stock, p.created_at, p.updated_at`

const pantryFrom = ` FROM pantry_items p JOIN ingredients i ON i.id = p.ingredient_id`

// flag expressions evaluated against the row being written
const pantryFlags = `is_expired = COALESCE(expiration_date < CURRENT_DATE, FALSE),
	is_low_stock = COALESCE(quantity <= low_stock_threshold, FALSE)`

// PostgresPantryRepository implements PantryRepository using PostgreSQL
type PostgresPantryRepository struct {
	db database.Pool
}

// NewPostgresPantryRepository creates a new PostgresPantryRepository
func NewPostgresPantryRepository(db database.Pool) *PostgresPantryRepository {
	return &PostgresPantryRepository{db: db}
}

func scanPantryItem(row pgx.Row) (*domain.PantryItem, error) {
	item := &domain.PantryItem{}
	var quantity string
	var threshold *string

	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.IngredientID,
		&item.IngredientName,
		&item.IngredientCategory,
		&quantity,
		&item.Unit,
		&item.ExpirationDate,
		&item.PurchaseDate,
		&item.IsExpired,
		&item.StorageLocation,
		&item.Notes,
		&threshold,
		&item.IsLowStock,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if item.Quantity, err = decimal.NewFromString(quantity); err != nil {
		return nil, err
	}
	if threshold != nil {
		t, err := decimal.NewFromString(*threshold)
		if err != nil {
			return nil, err
		}
		item.LowStockThreshold = &t
	}
	return item, nil
}

func numericArg(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func dateArg(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// ListByUser returns the user's pantry ordered by ingredient name
func (r *PostgresPantryRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.PantryItem, error) {
	rows, err := r.db.Query(ctx, `SELECT `+pantryColumns+pantryFrom+` WHERE p.user_id = $1 ORDER BY i.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*domain.PantryItem{}
	for rows.Next() {
		item, err := scanPantryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// FindByID retrieves a pantry item owned by userID
func (r *PostgresPantryRepository) FindByID(ctx context.Context, userID, id int64) (*domain.PantryItem, error) {
	return findPantryItem(ctx, r.db, userID, id)
}

func findPantryItem(ctx context.Context, db database.DBTX, userID, id int64) (*domain.PantryItem, error) {
	query := `SELECT ` + pantryColumns + pantryFrom + ` WHERE p.id = $1 AND p.user_id = $2`
	return scanPantryItem(db.QueryRow(ctx, query, id, userID))
}

// AddOrMerge inserts the item, or adds its quantity to the user's existing
// item for the same ingredient.
func (r *PostgresPantryRepository) AddOrMerge(ctx context.Context, item *domain.PantryItem) (*domain.PantryItem, bool, error) {
	var (
		result *domain.PantryItem
		merged bool
	)

	err := database.WithTx(ctx, r.db, func(ctx context.Context, tx database.DBTX) error {
		ing, err := findOrCreateIngredient(ctx, tx, item.IngredientName)
		if err != nil {
			return err
		}

		// Concurrent first adds of one ingredient merge here too.
		// xmax is non-zero only when the UPDATE arm wrote the row.
		var id int64
		err = tx.QueryRow(ctx, `
			INSERT INTO pantry_items (user_id, ingredient_id, quantity, unit, expiration_date,
				purchase_date, storage_location, notes, low_stock_threshold)
			VALUES ($1, $2, $3::numeric, $4, $5::date, $6::date, NULLIF($7, ''), NULLIF($8, ''), $9::numeric)
			ON CONFLICT (user_id, ingredient_id) DO UPDATE
			SET quantity = pantry_items.quantity + EXCLUDED.quantity,
				expiration_date = COALESCE(EXCLUDED.expiration_date, pantry_items.expiration_date),
				updated_at = NOW()
			RETURNING id, (xmax <> 0)
		`,
			item.UserID,
			ing.ID,
			item.Quantity.String(),
			item.Unit,
			dateArg(item.ExpirationDate),
			dateArg(item.PurchaseDate),
			item.StorageLocation,
			item.Notes,
			numericArg(item.LowStockThreshold),
		).Scan(&id, &merged)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `UPDATE pantry_items SET `+pantryFlags+` WHERE id = $1`, id); err != nil {
			return err
		}

		result, err = findPantryItem(ctx, tx, item.UserID, id)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return result, merged, nil
}

// Update applies a partial edit to a pantry item owned by userID.
// It returns (nil, nil) when no such item exists.
func (r *PostgresPantryRepository) Update(ctx context.Context, userID, id int64, update *domain.PantryItemUpdate) (*domain.PantryItem, error) {
	var result *domain.PantryItem
	err := database.WithTx(ctx, r.db, func(ctx context.Context, tx database.DBTX) error {
		tag, err := tx.Exec(ctx, `
			UPDATE pantry_items
			SET quantity = COALESCE($3::numeric, quantity),
				unit = COALESCE($4, unit),
				expiration_date = COALESCE($5::date, expiration_date),
				storage_location = COALESCE($6, storage_location),
				notes = COALESCE($7, notes),
				low_stock_threshold = COALESCE($8::numeric, low_stock_threshold),
				updated_at = NOW()
			WHERE id = $1 AND user_id = $2
		`,
			id,
			userID,
			numericArg(update.Quantity),
			update.Unit,
			dateArg(update.ExpirationDate),
			update.StorageLocation,
			update.Notes,
			numericArg(update.LowStockThreshold),
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		if _, err := tx.Exec(ctx, `UPDATE pantry_items SET `+pantryFlags+` WHERE id = $1`, id); err != nil {
			return err
		}

		result, err = findPantryItem(ctx, tx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a pantry item owned by userID
func (r *PostgresPantryRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM pantry_items WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
