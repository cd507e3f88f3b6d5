package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(retries int) *Config {
	return &Config{
		MaxRetries:      retries,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      2,
	}
}

func TestNew_WithNilConfig(t *testing.T) {
	r := New(nil)
	assert.Equal(t, 3, r.config.MaxRetries)
	assert.Equal(t, 200*time.Millisecond, r.config.InitialInterval)
}

func TestNew_ClampsValues(t *testing.T) {
	r := New(&Config{JitterFactor: 3})
	assert.Equal(t, 1.0, r.config.JitterFactor)
	assert.Equal(t, 2.0, r.config.Multiplier)
	assert.Equal(t, 5*time.Second, r.config.MaxInterval)
}

func TestRetrier_Do(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("success first try", func(t *testing.T) {
		attempts, err := New(fastConfig(3)).Do(context.Background(), func(context.Context) error { return nil }, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("success after retries", func(t *testing.T) {
		calls := 0
		var callbacks []int
		attempts, err := New(fastConfig(3)).Do(context.Background(), func(context.Context) error {
			calls++
			if calls < 3 {
				return errBoom
			}
			return nil
		}, func(attempt int, err error, _ time.Duration) {
			callbacks = append(callbacks, attempt)
			assert.ErrorIs(t, err, errBoom)
		})
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, []int{1, 2}, callbacks)
	})

	t.Run("max retries exceeded", func(t *testing.T) {
		attempts, err := New(fastConfig(2)).Do(context.Background(), func(context.Context) error { return errBoom }, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMaxRetriesExceeded)
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, 3, attempts)
	})

	t.Run("permanent error stops immediately", func(t *testing.T) {
		calls := 0
		attempts, err := New(fastConfig(5)).Do(context.Background(), func(context.Context) error {
			calls++
			return Permanent(errBoom)
		}, nil)
		assert.Equal(t, errBoom, err)
		assert.Equal(t, 1, attempts)
		assert.Equal(t, 1, calls)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New(fastConfig(5)).Do(ctx, func(context.Context) error { return errBoom }, nil)
		assert.ErrorIs(t, err, ErrContextCanceled)
	})
}

func TestPermanent_Nil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
}

func TestCalculateInterval(t *testing.T) {
	r := New(&Config{InitialInterval: 10 * time.Millisecond, MaxInterval: 50 * time.Millisecond, Multiplier: 2})

	assert.Equal(t, 10*time.Millisecond, r.calculateInterval(0))
	assert.Equal(t, 20*time.Millisecond, r.calculateInterval(1))
	assert.Equal(t, 40*time.Millisecond, r.calculateInterval(2))
	assert.Equal(t, 50*time.Millisecond, r.calculateInterval(5))
}

func TestCalculateInterval_WithJitter(t *testing.T) {
	r := New(&Config{InitialInterval: 100 * time.Millisecond, MaxInterval: time.Second, Multiplier: 2, JitterFactor: 0.1})

	for i := 0; i < 50; i++ {
		d := r.calculateInterval(0)
		assert.GreaterOrEqual(t, d, 90*time.Millisecond)
		assert.LessOrEqual(t, d, 110*time.Millisecond)
	}
}
