package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/pkg/database"
)

const mealPlanColumns = `id, user_id, name, COALESCE(description, ''), start_date, end_date,
	is_active, is_completed, created_at, updated_at`

// PostgresMealPlanRepository implements MealPlanRepository using PostgreSQL
type PostgresMealPlanRepository struct {
	db database.DBTX
}

// NewPostgresMealPlanRepository creates a new PostgresMealPlanRepository
func NewPostgresMealPlanRepository(db database.DBTX) *PostgresMealPlanRepository {
	return &PostgresMealPlanRepository{db: db}
}

func scanMealPlan(row pgx.Row) (*domain.MealPlan, error) {
	plan := &domain.MealPlan{}
	err := row.Scan(
		&plan.ID,
		&plan.UserID,
		&plan.Name,
		&plan.Description,
		&plan.StartDate,
		&plan.EndDate,
		&plan.IsActive,
		&plan.IsCompleted,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return plan, nil
}

// ListByUser returns the user's meal plans, most recent start first
func (r *PostgresMealPlanRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.MealPlan, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+mealPlanColumns+`
		FROM meal_plans
		WHERE user_id = $1
		ORDER BY start_date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []*domain.MealPlan{}
	for rows.Next() {
		plan, err := scanMealPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// FindByID retrieves a meal plan owned by userID
func (r *PostgresMealPlanRepository) FindByID(ctx context.Context, userID, id int64) (*domain.MealPlan, error) {
	query := `SELECT ` + mealPlanColumns + ` FROM meal_plans WHERE id = $1 AND user_id = $2`
	return scanMealPlan(r.db.QueryRow(ctx, query, id, userID))
}

// Items loads the items of a meal plan ordered by date
func (r *PostgresMealPlanRepository) Items(ctx context.Context, planID int64) ([]domain.MealPlanItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.meal_plan_id, m.recipe_id, COALESCE(r.name, ''), m.meal_date, m.meal_type,
			COALESCE(m.meal_name, ''), m.planned_servings, m.is_cooked, m.is_skipped,
			COALESCE(m.notes, ''), COALESCE(m.prep_notes, ''), m.created_at
		FROM meal_plan_items m
		LEFT JOIN recipes r ON r.id = m.recipe_id
		WHERE m.meal_plan_id = $1
		ORDER BY m.meal_date,
			CASE m.meal_type WHEN 'breakfast' THEN 1 WHEN 'lunch' THEN 2 WHEN 'dinner' THEN 3 ELSE 4 END,
			m.id
	`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MealPlanItem{}
	for rows.Next() {
		var item domain.MealPlanItem
		err := rows.Scan(
			&item.ID,
			&item.MealPlanID,
			&item.RecipeID,
			&item.RecipeName,
			&item.MealDate,
			&item.MealType,
			&item.MealName,
			&item.PlannedServings,
			&item.IsCooked,
			&item.IsSkipped,
			&item.Notes,
			&item.PrepNotes,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Create inserts a meal plan and fills its ID and timestamps
func (r *PostgresMealPlanRepository) Create(ctx context.Context, plan *domain.MealPlan) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO meal_plans (user_id, name, description, start_date, end_date)
		VALUES ($1, $2, NULLIF($3, ''), $4::date, $5::date)
		RETURNING id, is_active, is_completed, created_at, updated_at
	`,
		plan.UserID,
		plan.Name,
		plan.Description,
		plan.StartDate.Format("2006-01-02"),
		plan.EndDate.Format("2006-01-02"),
	).Scan(&plan.ID, &plan.IsActive, &plan.IsCompleted, &plan.CreatedAt, &plan.UpdatedAt)
}

// AddItem inserts a planned meal. A recipe_id that does not reference an
// active recipe returns domain.ErrRecipeNotFound.
func (r *PostgresMealPlanRepository) AddItem(ctx context.Context, item *domain.MealPlanItem) error {
	if item.RecipeID != nil {
		err := r.db.QueryRow(ctx, `SELECT name FROM recipes WHERE id = $1 AND is_active`, *item.RecipeID).Scan(&item.RecipeName)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecipeNotFound
		}
		if err != nil {
			return err
		}
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO meal_plan_items (meal_plan_id, recipe_id, meal_date, meal_type, meal_name,
			planned_servings, notes, prep_notes)
		VALUES ($1, $2, $3::date, $4, NULLIF($5, ''), $6, NULLIF($7, ''), NULLIF($8, ''))
		RETURNING id, is_cooked, is_skipped, created_at
	`,
		item.MealPlanID,
		item.RecipeID,
		item.MealDate.Format("2006-01-02"),
		item.MealType,
		item.MealName,
		item.PlannedServings,
		item.Notes,
		item.PrepNotes,
	).Scan(&item.ID, &item.IsCooked, &item.IsSkipped, &item.CreatedAt)
}

// Delete removes a meal plan owned by userID together with its items
func (r *PostgresMealPlanRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM meal_plans WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
