package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/pkg/database"
)

const userColumns = `id, email, username, full_name, password_hash, role, is_active, is_verified,
	COALESCE(bio, ''), COALESCE(profile_image, ''), cooking_skill_level,
	dietary_preferences, favorite_cuisines, last_login, created_at, updated_at`

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db database.DBTX
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db database.DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.FullName,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.IsVerified,
		&user.Bio,
		&user.ProfileImage,
		&user.CookingSkillLevel,
		&user.DietaryPreferences,
		&user.FavoriteCuisines,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// FindByID retrieves a user by ID
func (r *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// FindByEmailOrUsername retrieves a user by email or username
func (r *PostgresUserRepository) FindByEmailOrUsername(ctx context.Context, s string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(email) = LOWER($1) OR LOWER(username) = LOWER($1)
		ORDER BY (LOWER(email) = LOWER($1)) DESC
		LIMIT 1
	`
	return scanUser(r.db.QueryRow(ctx, query, s))
}

// FindByEmail retrieves a user by email
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// ExistsByEmail checks if a user exists with the given email
func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	return exists, err
}

// ExistsByUsername checks if a user exists with the given username
func (r *PostgresUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(username) = LOWER($1))`
	var exists bool
	err := r.db.QueryRow(ctx, query, username).Scan(&exists)
	return exists, err
}

// Create creates a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (email, username, full_name, password_hash, role, is_active, is_verified,
			cooking_skill_level, dietary_preferences, favorite_cuisines)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	if user.CookingSkillLevel == "" {
		user.CookingSkillLevel = domain.SkillBeginner
	}
	if user.DietaryPreferences == nil {
		user.DietaryPreferences = []string{}
	}
	if user.FavoriteCuisines == nil {
		user.FavoriteCuisines = []string{}
	}
	err := r.db.QueryRow(ctx, query,
		user.Email,
		user.Username,
		user.FullName,
		user.PasswordHash,
		user.Role,
		user.IsActive,
		user.IsVerified,
		user.CookingSkillLevel,
		user.DietaryPreferences,
		user.FavoriteCuisines,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return mapUserConflict(err)
}

// UpdateLastLogin records a successful login
func (r *PostgresUserRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE users SET last_login = $2 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, at)
	return err
}

// UpdateProfile applies a partial profile edit
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id int64, update *domain.ProfileUpdate) (*domain.User, error) {
	query := `
		UPDATE users
		SET full_name = COALESCE($2, full_name),
			bio = COALESCE($3, bio),
			profile_image = COALESCE($4, profile_image),
			cooking_skill_level = COALESCE($5, cooking_skill_level),
			dietary_preferences = COALESCE($6, dietary_preferences),
			favorite_cuisines = COALESCE($7, favorite_cuisines),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query,
		id,
		update.FullName,
		update.Bio,
		update.ProfileImage,
		update.CookingSkillLevel,
		update.DietaryPreferences,
		update.FavoriteCuisines,
	))
}

// UpdatePassword replaces the password hash
func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

// SetActive activates or deactivates a user
func (r *PostgresUserRepository) SetActive(ctx context.Context, id int64, active bool) (*domain.User, error) {
	query := `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query, id, active))
}

// SetRole changes a user's role
func (r *PostgresUserRepository) SetRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error) {
	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query, id, role))
}

// List returns a filtered page of users
func (r *PostgresUserRepository) List(ctx context.Context, filter *domain.UserFilter) ([]*domain.User, int, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Search != "" {
		args = append(args, containsPattern(filter.Search))
		p := fmt.Sprintf("$%d", len(args)) + likeEscape
		conds = append(conds, "(email ILIKE "+p+" OR username ILIKE "+p+" OR full_name ILIKE "+p+")")
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conds = append(conds, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if filter.Role != "" {
		args = append(args, filter.Role)
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM users%s ORDER BY id LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	return users, total, rows.Err()
}
