package repository

import (
	"context"
	"strings"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/pkg/database"
)

// PostgresIngredientRepository implements IngredientRepository using PostgreSQL
type PostgresIngredientRepository struct {
	db database.DBTX
}

// NewPostgresIngredientRepository creates a new PostgresIngredientRepository
func NewPostgresIngredientRepository(db database.DBTX) *PostgresIngredientRepository {
	return &PostgresIngredientRepository{db: db}
}

// Search finds ingredients whose name contains query
func (r *PostgresIngredientRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Ingredient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, COALESCE(category, ''), created_at
		FROM ingredients
		WHERE name ILIKE $1 ESCAPE '\'
		ORDER BY LENGTH(name), name
		LIMIT $2
	`, containsPattern(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ingredients := []*domain.Ingredient{}
	for rows.Next() {
		ing := &domain.Ingredient{}
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Category, &ing.CreatedAt); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

// FindOrCreate returns the ingredient named name, creating it if needed
func (r *PostgresIngredientRepository) FindOrCreate(ctx context.Context, name string) (*domain.Ingredient, error) {
	return findOrCreateIngredient(ctx, r.db, name)
}

// findOrCreateIngredient upserts on the case-insensitive name index so
// concurrent callers converge on one row.
func findOrCreateIngredient(ctx context.Context, db database.DBTX, name string) (*domain.Ingredient, error) {
	ing := &domain.Ingredient{}
	err := db.QueryRow(ctx, `
		INSERT INTO ingredients (name)
		VALUES (LOWER($1))
		ON CONFLICT ((LOWER(name))) DO UPDATE SET updated_at = ingredients.updated_at
		RETURNING id, name, COALESCE(category, ''), created_at
	`, strings.TrimSpace(name)).Scan(&ing.ID, &ing.Name, &ing.Category, &ing.CreatedAt)
	if err != nil {
		return nil, err
	}
	return ing, nil
}
