package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPostgresConfig(t *testing.T) {
	cfg := DefaultPostgresConfig("host=localhost dbname=meal_mate")

	assert.Equal(t, "host=localhost dbname=meal_mate", cfg.DSN)
	assert.Equal(t, int32(20), cfg.MaxConns)
	assert.Equal(t, int32(2), cfg.MinConns)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestNewPostgres_RequiresDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), nil)
	require.Error(t, err)

	_, err = NewPostgres(context.Background(), &PostgresConfig{})
	require.Error(t, err)
}

func TestNewPostgres_InvalidDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), &PostgresConfig{DSN: "postgres://u@localhost:notaport/db"})
	assert.Error(t, err)
}

func TestNewPostgres_Unreachable(t *testing.T) {
	cfg := DefaultPostgresConfig("host=127.0.0.1 port=1 user=x dbname=x sslmode=disable")
	cfg.MaxRetries = 0
	cfg.ConnectTimeout = 500 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := NewPostgres(ctx, cfg)
	assert.Error(t, err)
}
