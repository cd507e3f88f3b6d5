package scripts

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/nukuldhake/Meal-Mate/pkg/redis"
)

//go:embed lua/rate_limit.lua
var RateLimitScript string

// RateLimitScriptName is the cache name of the script on the Redis client
const RateLimitScriptName = "rate_limit"

// RateLimitParams holds parameters for a fixed-window check
type RateLimitParams struct {
	Key    string
	Limit  int
	Window time.Duration
}

// RateLimitResult holds the outcome of a fixed-window check
type RateLimitResult struct {
	Allowed    bool
	Count      int64
	Remaining  int64
	ResetAfter time.Duration
}

// RateLimit counts one request against params.Key and reports whether it fits the window
func RateLimit(ctx context.Context, client *redis.Client, params RateLimitParams) (*RateLimitResult, error) {
	if params.Limit <= 0 {
		return nil, fmt.Errorf("invalid rate limit: %d", params.Limit)
	}
	windowMs := params.Window.Milliseconds()
	if windowMs <= 0 {
		return nil, fmt.Errorf("invalid rate limit window: %s", params.Window)
	}

	result, err := client.EvalWithFallback(ctx, RateLimitScriptName, RateLimitScript,
		[]string{params.Key}, params.Limit, windowMs).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to execute rate_limit script: %w", err)
	}

	return parseRateLimitResult(result, int64(params.Limit))
}

func parseRateLimitResult(result interface{}, limit int64) (*RateLimitResult, error) {
	arr, ok := result.([]interface{})
	if !ok || len(arr) < 3 {
		return nil, fmt.Errorf("unexpected result format: %v", result)
	}

	allowed, _ := arr[0].(int64)
	count, _ := arr[1].(int64)
	ttl, _ := arr[2].(int64)

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &RateLimitResult{
		Allowed:    allowed == 1,
		Count:      count,
		Remaining:  remaining,
		ResetAfter: time.Duration(ttl) * time.Millisecond,
	}, nil
}
