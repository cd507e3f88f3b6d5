package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
)

const pgUniqueViolation = "23505"

// unique indexes on users, see migrations/00001_create_users.sql
const (
	usersEmailIndex    = "idx_users_email"
	usersUsernameIndex = "idx_users_username"
)

// mapUserConflict turns a unique violation on users into the matching domain error
func mapUserConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case usersEmailIndex:
		return domain.ErrEmailTaken
	case usersUsernameIndex:
		return domain.ErrUsernameTaken
	}
	return err
}

// likeEscape is appended to every ILIKE built from containsPattern
const likeEscape = ` ESCAPE '\'`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches s literally anywhere in the column
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
