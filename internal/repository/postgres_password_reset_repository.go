package repository

import (
	"context"
	"time"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/pkg/database"
)

// PostgresPasswordResetRepository implements PasswordResetRepository using PostgreSQL
type PostgresPasswordResetRepository struct {
	db database.TxBeginner
}

// NewPostgresPasswordResetRepository creates a new PostgresPasswordResetRepository
func NewPostgresPasswordResetRepository(db database.TxBeginner) *PostgresPasswordResetRepository {
	return &PostgresPasswordResetRepository{db: db}
}

// ConsumeAndSetPassword inserts the consumption record for the token and
// updates the password in the same transaction. A second redemption of the
// same token finds the record already present and changes nothing.
func (r *PostgresPasswordResetRepository) ConsumeAndSetPassword(ctx context.Context, token *domain.PasswordResetToken, passwordHash string) error {
	return database.WithTx(ctx, r.db, func(ctx context.Context, tx database.DBTX) error {
		tag, err := tx.Exec(ctx, `
			INSERT INTO password_reset_consumptions (token_id, user_id, expires_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (token_id) DO NOTHING
		`, token.TokenID, token.UserID, token.ExpiresAt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.NewTokenError(domain.ErrTokenAlreadyUsed)
		}

		return NewPostgresUserRepository(tx).UpdatePassword(ctx, token.UserID, passwordHash)
	})
}

// PurgeExpired removes consumption records whose tokens expired before t.
// Expired tokens fail verification on their own, so their records are no longer needed.
func (r *PostgresPasswordResetRepository) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64
	err := database.WithTx(ctx, r.db, func(ctx context.Context, tx database.DBTX) error {
		tag, err := tx.Exec(ctx, `DELETE FROM password_reset_consumptions WHERE expires_at < $1`, before)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected()
		return nil
	})
	return deleted, err
}
