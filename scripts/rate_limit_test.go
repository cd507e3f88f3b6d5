package scripts

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nukuldhake/Meal-Mate/pkg/redis"
)

func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redis.Wrap(rdb), mr
}

func TestRateLimit_AllowsUpToLimit(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	params := RateLimitParams{Key: "rl:test:1.2.3.4", Limit: 3, Window: time.Minute}

	for i := 1; i <= 3; i++ {
		res, err := RateLimit(ctx, client, params)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d should pass", i)
		assert.Equal(t, int64(i), res.Count)
		assert.Equal(t, int64(3-i), res.Remaining)
		assert.Greater(t, res.ResetAfter, time.Duration(0))
		assert.LessOrEqual(t, res.ResetAfter, time.Minute)
	}

	res, err := RateLimit(ctx, client, params)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, int64(0), res.Remaining)
}

func TestRateLimit_WindowExpires(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()
	params := RateLimitParams{Key: "rl:test:window", Limit: 1, Window: 10 * time.Second}

	res, err := RateLimit(ctx, client, params)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = RateLimit(ctx, client, params)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	mr.FastForward(11 * time.Second)

	res, err = RateLimit(ctx, client, params)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, int64(1), res.Count)
}

func TestRateLimit_SeparateKeys(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	_, err := RateLimit(ctx, client, RateLimitParams{Key: "a", Limit: 1, Window: time.Minute})
	require.NoError(t, err)

	res, err := RateLimit(ctx, client, RateLimitParams{Key: "b", Limit: 1, Window: time.Minute})
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestRateLimit_InvalidParams(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := RateLimit(context.Background(), client, RateLimitParams{Key: "k", Limit: 0, Window: time.Minute})
	assert.Error(t, err)

	_, err = RateLimit(context.Background(), client, RateLimitParams{Key: "k", Limit: 1})
	assert.Error(t, err)
}

func TestRateLimit_RedisDown(t *testing.T) {
	client, mr := newTestClient(t)
	mr.Close()

	_, err := RateLimit(context.Background(), client, RateLimitParams{Key: "k", Limit: 1, Window: time.Minute})
	assert.Error(t, err)
}

func TestParseRateLimitResult_BadFormat(t *testing.T) {
	_, err := parseRateLimitResult("nope", 5)
	assert.Error(t, err)

	_, err = parseRateLimitResult([]interface{}{int64(1)}, 5)
	assert.Error(t, err)
}
