package repository

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
)

// scriptedRow fills scan destinations from values; nil values leave the destination untouched
type scriptedRow struct {
	values []any
	err    error
}

func (r scriptedRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		if i >= len(r.values) || r.values[i] == nil {
			continue
		}
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

// scriptedDB answers QueryRow by SQL fragment. It serves as both the pool and
// the transaction it begins.
type scriptedDB struct {
	pgx.Tx
	rows       map[string]scriptedRow
	queries    []string
	execs      []string
	committed  bool
	rolledBack bool
}

func newScriptedDB() *scriptedDB {
	return &scriptedDB{rows: make(map[string]scriptedRow)}
}

func (db *scriptedDB) on(fragment string, row scriptedRow) {
	db.rows[fragment] = row
}

func (db *scriptedDB) Begin(context.Context) (pgx.Tx, error) { return db, nil }

func (db *scriptedDB) Commit(context.Context) error {
	db.committed = true
	return nil
}

func (db *scriptedDB) Rollback(context.Context) error {
	db.rolledBack = true
	return nil
}

func (db *scriptedDB) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	db.queries = append(db.queries, sql)
	for fragment, row := range db.rows {
		if strings.Contains(sql, fragment) {
			return row
		}
	}
	return scriptedRow{err: pgx.ErrNoRows}
}

func (db *scriptedDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	db.execs = append(db.execs, sql)
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (db *scriptedDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not scripted")
}

func (db *scriptedDB) queryContaining(fragment string) string {
	for _, q := range db.queries {
		if strings.Contains(q, fragment) {
			return q
		}
	}
	return ""
}

func TestPostgresUserRepository_Create_UniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{"email", usersEmailIndex, domain.ErrEmailTaken},
		{"username", usersUsernameIndex, domain.ErrUsernameTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newScriptedDB()
			db.on("INSERT INTO users", scriptedRow{err: &pgconn.PgError{Code: "23505", ConstraintName: tt.constraint}})

			err := NewPostgresUserRepository(db).Create(context.Background(), &domain.User{Email: "a@b.c", Username: "ab"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPostgresUserRepository_Create_OtherErrorsPassThrough(t *testing.T) {
	fkErr := &pgconn.PgError{Code: "23503", ConstraintName: "users_something_fkey"}
	db := newScriptedDB()
	db.on("INSERT INTO users", scriptedRow{err: fkErr})

	err := NewPostgresUserRepository(db).Create(context.Background(), &domain.User{})
	assert.Same(t, fkErr, err)

	other := &pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"}
	assert.Same(t, other, mapUserConflict(other))
	assert.NoError(t, mapUserConflict(nil))
}

func TestPostgresUserRepository_Create_Success(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	db := newScriptedDB()
	db.on("INSERT INTO users", scriptedRow{values: []any{int64(11), created, created}})

	user := &domain.User{Email: "a@b.c", Username: "ab"}
	require.NoError(t, NewPostgresUserRepository(db).Create(context.Background(), user))
	assert.Equal(t, int64(11), user.ID)
	assert.Equal(t, domain.SkillBeginner, user.CookingSkillLevel)
}

func pantryRow(id int64, quantity string) scriptedRow {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return scriptedRow{values: []any{
		id, int64(7), int64(3), "rice", "grains",
		quantity, "kg", nil, nil, false,
		"", "", nil, false, now, now,
	}}
}

func TestPostgresPantryRepository_AddOrMerge(t *testing.T) {
	tests := []struct {
		name   string
		merged bool
	}{
		{"new item", false},
		{"existing item merged", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Now()
			db := newScriptedDB()
			db.on("INSERT INTO ingredients", scriptedRow{values: []any{int64(3), "rice", "grains", now}})
			db.on("INSERT INTO pantry_items", scriptedRow{values: []any{int64(9), tt.merged}})
			db.on("FROM pantry_items p", pantryRow(9, "5"))

			item, merged, err := NewPostgresPantryRepository(db).AddOrMerge(context.Background(), &domain.PantryItem{
				UserID:         7,
				IngredientName: "Rice",
				Quantity:       decimal.NewFromInt(2),
				Unit:           "kg",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.merged, merged)
			assert.Equal(t, int64(9), item.ID)
			assert.True(t, decimal.NewFromInt(5).Equal(item.Quantity))

			upsert := db.queryContaining("INSERT INTO pantry_items")
			assert.Contains(t, upsert, "ON CONFLICT (user_id, ingredient_id) DO UPDATE")
			assert.Empty(t, db.queryContaining("FOR UPDATE"))
			require.Len(t, db.execs, 1)
			assert.Contains(t, db.execs[0], "is_low_stock")
			assert.True(t, db.committed)
		})
	}
}

func TestPostgresPantryRepository_AddOrMerge_RollsBackOnError(t *testing.T) {
	now := time.Now()
	db := newScriptedDB()
	db.on("INSERT INTO ingredients", scriptedRow{values: []any{int64(3), "rice", "", now}})
	db.on("INSERT INTO pantry_items", scriptedRow{err: errors.New("connection lost")})

	_, _, err := NewPostgresPantryRepository(db).AddOrMerge(context.Background(), &domain.PantryItem{
		UserID:         7,
		IngredientName: "rice",
		Quantity:       decimal.NewFromInt(1),
		Unit:           "kg",
	})
	assert.EqualError(t, err, "connection lost")
	assert.True(t, db.rolledBack)
	assert.False(t, db.committed)
}

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"rice", `%rice%`},
		{"%", `%\%%`},
		{"50%_off", `%50\%\_off%`},
		{`back\slash`, `%back\\slash%`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, containsPattern(tt.in), tt.in)
	}
}

func TestRecipeWhere_EscapesWildcards(t *testing.T) {
	where, args := recipeWhere(&domain.RecipeFilter{Cuisine: "_", Search: "100%"})

	assert.Contains(t, args, `%\_%`)
	assert.Contains(t, args, `%100\%%`)
	assert.Equal(t, 4, strings.Count(where, `ESCAPE '\'`))
}
