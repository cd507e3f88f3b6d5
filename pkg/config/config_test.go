package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func writeEnvFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
	return path
}

func TestLoadWithPath_Defaults(t *testing.T) {
	path := writeEnvFile(t, "JWT_SECRET="+testSecret)

	cfg, err := LoadWithPath(path)
	require.NoError(t, err)

	assert.Equal(t, "meal-mate", cfg.App.Name)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenTTL)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, 10, cfg.RateLimit.StrictRequests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "development", cfg.Log.Level)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadWithPath_Overrides(t *testing.T) {
	path := writeEnvFile(t,
		"JWT_SECRET="+testSecret,
		"JWT_ALGORITHM=hs512",
		"JWT_ACCESS_TOKEN_TTL=5m",
		"CORS_ALLOWED_ORIGINS=https://a.example, https://b.example",
	)

	cfg, err := LoadWithPath(path)
	require.NoError(t, err)

	assert.Equal(t, "HS512", cfg.JWT.Algorithm)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadWithPath_RejectsMissingSecret(t *testing.T) {
	path := writeEnvFile(t, "APP_NAME=meal-mate")

	_, err := LoadWithPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestLoadWithPath_MissingFile(t *testing.T) {
	_, err := LoadWithPath(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

func TestJWTConfig_Validate(t *testing.T) {
	valid := func() JWTConfig {
		return JWTConfig{
			Secret:          testSecret,
			Algorithm:       "HS256",
			AccessTokenTTL:  30 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			ResetTokenTTL:   15 * time.Minute,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*JWTConfig)
		wantErr string
	}{
		{"valid", func(*JWTConfig) {}, ""},
		{"empty secret", func(j *JWTConfig) { j.Secret = "" }, "required"},
		{"short secret", func(j *JWTConfig) { j.Secret = testSecret[:31] }, "at least 32"},
		{"exactly 32", func(j *JWTConfig) { j.Secret = testSecret[:32] }, ""},
		{"unsupported algorithm", func(j *JWTConfig) { j.Algorithm = "RS256" }, "unsupported"},
		{"zero access ttl", func(j *JWTConfig) { j.AccessTokenTTL = 0 }, "access"},
		{"zero refresh ttl", func(j *JWTConfig) { j.RefreshTokenTTL = 0 }, "refresh"},
		{"zero reset ttl", func(j *JWTConfig) { j.ResetTokenTTL = 0 }, "reset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := valid()
			tt.mutate(&j)
			err := j.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "meals", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=meals sslmode=disable", d.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", r.Addr())
}
