package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/pkg/database"
)

const recipeColumns = `r.id, r.name, COALESCE(r.translated_name, ''), r.cuisine, COALESCE(r.description, ''),
	r.instructions, r.total_time_mins, r.prep_time_mins, r.cook_time_mins, r.difficulty, r.servings,
	r.ingredient_count, COALESCE(r.image_url, ''), COALESCE(r.original_url, ''), r.tags,
	COALESCE(r.meal_type, ''), COALESCE(r.spice_level, ''), r.view_count, r.favorite_count,
	r.rating_average::float8, r.rating_count, r.is_active, r.is_verified, r.created_at, r.updated_at`

// PostgresRecipeRepository implements RecipeRepository using PostgreSQL
type PostgresRecipeRepository struct {
	db database.Pool
}

// NewPostgresRecipeRepository creates a new PostgresRecipeRepository
func NewPostgresRecipeRepository(db database.Pool) *PostgresRecipeRepository {
	return &PostgresRecipeRepository{db: db}
}

func recipeScanTargets(recipe *domain.Recipe) []any {
	return []any{
		&recipe.ID,
		&recipe.Name,
		&recipe.TranslatedName,
		&recipe.Cuisine,
		&recipe.Description,
		&recipe.Instructions,
		&recipe.TotalTimeMins,
		&recipe.PrepTimeMins,
		&recipe.CookTimeMins,
		&recipe.Difficulty,
		&recipe.Servings,
		&recipe.IngredientCount,
		&recipe.ImageURL,
		&recipe.OriginalURL,
		&recipe.Tags,
		&recipe.MealType,
		&recipe.SpiceLevel,
		&recipe.ViewCount,
		&recipe.FavoriteCount,
		&recipe.RatingAverage,
		&recipe.RatingCount,
		&recipe.IsActive,
		&recipe.IsVerified,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	}
}

func scanRecipe(row pgx.Row) (*domain.Recipe, error) {
	recipe := &domain.Recipe{}
	if err := row.Scan(recipeScanTargets(recipe)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return recipe, nil
}

func collectRecipes(rows pgx.Rows) ([]*domain.Recipe, error) {
	defer rows.Close()

	recipes := []*domain.Recipe{}
	for rows.Next() {
		recipe := &domain.Recipe{}
		if err := rows.Scan(recipeScanTargets(recipe)...); err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, rows.Err()
}

// recipeWhere builds the WHERE clause for a listing filter
func recipeWhere(filter *domain.RecipeFilter) (string, []any) {
	conds := []string{"r.is_active"}
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	tag := func(name string, want *bool) {
		if want == nil {
			return
		}
		cond := arg(name) + " = ANY(r.tags)"
		if !*want {
			cond = "NOT (" + cond + ")"
		}
		conds = append(conds, cond)
	}

	if filter.Cuisine != "" {
		conds = append(conds, "r.cuisine ILIKE "+arg(containsPattern(filter.Cuisine))+likeEscape)
	}
	if filter.Difficulty != "" {
		conds = append(conds, "r.difficulty = "+arg(filter.Difficulty))
	}
	if filter.MaxTime != nil {
		conds = append(conds, "r.total_time_mins <= "+arg(*filter.MaxTime))
	}
	if filter.MealType != "" {
		conds = append(conds, "r.meal_type = "+arg(filter.MealType))
	}
	if filter.SpiceLevel != "" {
		conds = append(conds, "r.spice_level = "+arg(filter.SpiceLevel))
	}
	tag(domain.TagVegetarian, filter.Vegetarian)
	tag(domain.TagVegan, filter.Vegan)
	tag(domain.TagGlutenFree, filter.GlutenFree)
	if filter.Search != "" {
		p := arg(containsPattern(filter.Search)) + likeEscape
		conds = append(conds, fmt.Sprintf("(r.name ILIKE %s OR r.description ILIKE %s OR r.instructions ILIKE %s)", p, p, p))
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns a filtered page of active recipes
func (r *PostgresRecipeRepository) List(ctx context.Context, filter *domain.RecipeFilter) ([]*domain.Recipe, int, error) {
	where, args := recipeWhere(filter)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM recipes r`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM recipes r%s ORDER BY r.id LIMIT $%d OFFSET $%d`,
		recipeColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	recipes, err := collectRecipes(rows)
	return recipes, total, err
}

// FindByID retrieves an active recipe by ID
func (r *PostgresRecipeRepository) FindByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes r WHERE r.id = $1 AND r.is_active`
	return scanRecipe(r.db.QueryRow(ctx, query, id))
}

// Ingredients loads the ingredient lines of a recipe
func (r *PostgresRecipeRepository) Ingredients(ctx context.Context, recipeID int64) ([]domain.RecipeIngredient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ri.ingredient_id, i.name, COALESCE(ri.quantity, ''), COALESCE(ri.unit, '')
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = $1
		ORDER BY i.name
	`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []domain.RecipeIngredient{}
	for rows.Next() {
		var line domain.RecipeIngredient
		if err := rows.Scan(&line.IngredientID, &line.IngredientName, &line.Quantity, &line.Unit); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// IncrementViewCount bumps the view counter of a recipe
func (r *PostgresRecipeRepository) IncrementViewCount(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE recipes SET view_count = view_count + 1 WHERE id = $1`, id)
	return err
}

// FavoriteIDs returns which of recipeIDs the user has favourited
func (r *PostgresRecipeRepository) FavoriteIDs(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	favorites := make(map[int64]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return favorites, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT recipe_id FROM user_favorite_recipes
		WHERE user_id = $1 AND recipe_id = ANY($2)
	`, userID, recipeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		favorites[id] = true
	}
	return favorites, rows.Err()
}

// lockActiveRecipe row-locks an active recipe for the rest of the transaction
func lockActiveRecipe(ctx context.Context, tx database.DBTX, id int64) error {
	var locked int64
	err := tx.QueryRow(ctx, `SELECT id FROM recipes WHERE id = $1 AND is_active FOR UPDATE`, id).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrRecipeNotFound
	}
	return err
}

// ToggleFavorite adds or removes a favourite and keeps favorite_count in step
func (r *PostgresRecipeRepository) ToggleFavorite(ctx context.Context, userID, recipeID int64) (*domain.FavoriteResult, error) {
	result := &domain.FavoriteResult{}
	err := database.WithTx(ctx, r.db, func(ctx context.Context, tx database.DBTX) error {
		if err := lockActiveRecipe(ctx, tx, recipeID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM user_favorite_recipes WHERE user_id = $1 AND recipe_id = $2`, userID, recipeID)
		if err != nil {
			return err
		}

		delta := -1
		if tag.RowsAffected() == 0 {
			if _, err := tx.Exec(ctx, `INSERT INTO user_favorite_recipes (user_id, recipe_id) VALUES ($1, $2)`, userID, recipeID); err != nil {
				return err
			}
			delta = 1
			result.IsFavorite = true
		}

		return tx.QueryRow(ctx, `
			UPDATE recipes SET favorite_count = GREATEST(favorite_count + $2, 0)
			WHERE id = $1
			RETURNING favorite_count
		`, recipeID, delta).Scan(&result.FavoriteCount)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Rate records the user's rating (replacing an earlier one) and recomputes
// the recipe's rating aggregate in the same transaction.
func (r *PostgresRecipeRepository) Rate(ctx context.Context, userID, recipeID int64, rating int, review *string) (*domain.RatingResult, error) {
	result := &domain.RatingResult{Rating: rating}
	err := database.WithTx(ctx, r.db, func(ctx context.Context, tx database.DBTX) error {
		if err := lockActiveRecipe(ctx, tx, recipeID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO cooking_history (user_id, recipe_id, rating, notes)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, recipe_id) WHERE rating IS NOT NULL
			DO UPDATE SET rating = EXCLUDED.rating, notes = EXCLUDED.notes, cooked_at = NOW()
		`, userID, recipeID, rating, review); err != nil {
			return err
		}

		return tx.QueryRow(ctx, `
			UPDATE recipes r
			SET rating_count = s.cnt, rating_average = s.avg, updated_at = NOW()
			FROM (
				SELECT COUNT(*) AS cnt, COALESCE(AVG(rating), 0) AS avg
				FROM cooking_history
				WHERE recipe_id = $1 AND rating IS NOT NULL
			) s
			WHERE r.id = $1
			RETURNING r.rating_average::float8, r.rating_count
		`, recipeID).Scan(&result.AverageRating, &result.TotalRatings)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Favorites returns the user's favourite recipes, newest first
func (r *PostgresRecipeRepository) Favorites(ctx context.Context, userID int64) ([]*domain.Recipe, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes r
		JOIN user_favorite_recipes f ON f.recipe_id = r.id
		WHERE f.user_id = $1 AND r.is_active
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectRecipes(rows)
}

// Cuisines returns the distinct cuisines of active recipes
func (r *PostgresRecipeRepository) Cuisines(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT cuisine FROM recipes
		WHERE is_active AND cuisine <> ''
		ORDER BY cuisine
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cuisines := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cuisines = append(cuisines, c)
	}
	return cuisines, rows.Err()
}

// Search finds active recipes by name, cuisine, description or instructions
func (r *PostgresRecipeRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Recipe, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes r
		WHERE r.is_active AND (
			r.name ILIKE $1 ESCAPE '\' OR r.cuisine ILIKE $1 ESCAPE '\'
			OR r.description ILIKE $1 ESCAPE '\' OR r.instructions ILIKE $1 ESCAPE '\'
		)
		ORDER BY (r.name ILIKE $1 ESCAPE '\') DESC, r.rating_average DESC, r.id
		LIMIT $2
	`, containsPattern(query), limit)
	if err != nil {
		return nil, err
	}
	return collectRecipes(rows)
}

// ByPantry returns recipes sharing ingredients with the user's pantry
func (r *PostgresRecipeRepository) ByPantry(ctx context.Context, userID int64, limit int) ([]*domain.PantryMatch, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+recipeColumns+`, COUNT(DISTINCT ri.ingredient_id) AS matched
		FROM recipes r
		JOIN recipe_ingredients ri ON ri.recipe_id = r.id
		JOIN pantry_items p ON p.ingredient_id = ri.ingredient_id AND p.user_id = $1
		WHERE r.is_active
		GROUP BY r.id
		ORDER BY matched DESC, r.rating_average DESC, r.id
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []*domain.PantryMatch{}
	for rows.Next() {
		m := &domain.PantryMatch{}
		targets := append(recipeScanTargets(&m.Recipe), &m.MatchedIngredients)
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Create inserts a recipe with its ingredient lines
func (r *PostgresRecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	return database.WithTx(ctx, r.db, func(ctx context.Context, tx database.DBTX) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO recipes (name, translated_name, cuisine, description, instructions,
				total_time_mins, prep_time_mins, cook_time_mins, difficulty, servings,
				image_url, tags, meal_type, spice_level, is_active)
			VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10,
				NULLIF($11, ''), $12, NULLIF($13, ''), NULLIF($14, ''), TRUE)
			RETURNING id, is_active, created_at, updated_at
		`,
			recipe.Name,
			recipe.TranslatedName,
			recipe.Cuisine,
			recipe.Description,
			recipe.Instructions,
			recipe.TotalTimeMins,
			recipe.PrepTimeMins,
			recipe.CookTimeMins,
			recipe.Difficulty,
			recipe.Servings,
			recipe.ImageURL,
			recipe.Tags,
			recipe.MealType,
			recipe.SpiceLevel,
		).Scan(&recipe.ID, &recipe.IsActive, &recipe.CreatedAt, &recipe.UpdatedAt)
		if err != nil {
			return err
		}
		return replaceRecipeIngredients(ctx, tx, recipe)
	})
}

// Update saves an edited recipe, optionally replacing its ingredient lines
func (r *PostgresRecipeRepository) Update(ctx context.Context, recipe *domain.Recipe, replaceIngredients bool) error {
	return database.WithTx(ctx, r.db, func(ctx context.Context, tx database.DBTX) error {
		err := tx.QueryRow(ctx, `
			UPDATE recipes
			SET name = $2, cuisine = $3, description = NULLIF($4, ''), instructions = $5,
				total_time_mins = $6, prep_time_mins = $7, cook_time_mins = $8, difficulty = $9,
				servings = $10, image_url = NULLIF($11, ''), tags = $12, meal_type = NULLIF($13, ''),
				spice_level = NULLIF($14, ''), updated_at = NOW()
			WHERE id = $1 AND is_active
			RETURNING updated_at
		`,
			recipe.ID,
			recipe.Name,
			recipe.Cuisine,
			recipe.Description,
			recipe.Instructions,
			recipe.TotalTimeMins,
			recipe.PrepTimeMins,
			recipe.CookTimeMins,
			recipe.Difficulty,
			recipe.Servings,
			recipe.ImageURL,
			recipe.Tags,
			recipe.MealType,
			recipe.SpiceLevel,
		).Scan(&recipe.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecipeNotFound
		}
		if err != nil {
			return err
		}
		if !replaceIngredients {
			return nil
		}
		return replaceRecipeIngredients(ctx, tx, recipe)
	})
}

// replaceRecipeIngredients rewrites the ingredient lines of recipe and
// refreshes ingredient_count. Duplicate names collapse into one line.
func replaceRecipeIngredients(ctx context.Context, tx database.DBTX, recipe *domain.Recipe) error {
	if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipe.ID); err != nil {
		return err
	}

	lines := make([]domain.RecipeIngredient, 0, len(recipe.Ingredients))
	seen := make(map[int64]int, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		ing, err := findOrCreateIngredient(ctx, tx, line.IngredientName)
		if err != nil {
			return fmt.Errorf("failed to resolve ingredient %q: %w", line.IngredientName, err)
		}
		line.IngredientID = ing.ID
		line.IngredientName = ing.Name

		if _, err := tx.Exec(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity, unit)
			VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
			ON CONFLICT (recipe_id, ingredient_id)
			DO UPDATE SET quantity = EXCLUDED.quantity, unit = EXCLUDED.unit
		`, recipe.ID, ing.ID, line.Quantity, line.Unit); err != nil {
			return err
		}

		if i, ok := seen[ing.ID]; ok {
			lines[i] = line
			continue
		}
		seen[ing.ID] = len(lines)
		lines = append(lines, line)
	}

	recipe.Ingredients = lines
	recipe.IngredientCount = len(lines)
	_, err := tx.Exec(ctx, `UPDATE recipes SET ingredient_count = $2 WHERE id = $1`, recipe.ID, len(lines))
	return err
}

// Deactivate hides a recipe from every listing
func (r *PostgresRecipeRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE recipes SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
