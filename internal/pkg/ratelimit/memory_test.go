package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAllowWithinWindow(t *testing.T) {
	limiter := NewMemory(Policy{MaxAttempts: 3, Window: time.Hour})
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	for i := range 3 {
		ok, err := limiter.Allow(context.Background(), "register:alice@example.com", now.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d should pass", i+1)
	}

	ok, err := limiter.Allow(context.Background(), "register:alice@example.com", now.Add(3*time.Minute))
	require.NoError(t, err)
	assert.False(t, ok, "fourth attempt should be denied")
}

func TestMemoryDeniedAttemptNotRecorded(t *testing.T) {
	limiter := NewMemory(Policy{MaxAttempts: 1, Window: time.Hour})
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	ok, err := limiter.Allow(context.Background(), "rotate:alice", now)
	require.NoError(t, err)
	require.True(t, ok)

	// Hammering while throttled must not extend the throttle.
	for i := range 10 {
		ok, err = limiter.Allow(context.Background(), "rotate:alice", now.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		assert.False(t, ok)
	}

	ok, err = limiter.Allow(context.Background(), "rotate:alice", now.Add(time.Hour+time.Second))
	require.NoError(t, err)
	assert.True(t, ok, "window expired, attempt should pass again")
}

func TestMemoryPrunesExpiredAttempts(t *testing.T) {
	limiter := NewMemory(Policy{MaxAttempts: 2, Window: 10 * time.Minute})
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	ok, err := limiter.Allow(context.Background(), "qr:bob", now)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = limiter.Allow(context.Background(), "qr:bob", now.Add(time.Minute))
	require.NoError(t, err)
	require.True(t, ok)

	// First attempt has slid out, second is still inside.
	ok, err = limiter.Allow(context.Background(), "qr:bob", now.Add(10*time.Minute+time.Second))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryIdentifiersAreIndependent(t *testing.T) {
	limiter := NewMemory(Policy{MaxAttempts: 1, Window: time.Hour})
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	ok, err := limiter.Allow(context.Background(), "rotate:alice", now)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = limiter.Allow(context.Background(), "rotate:bob", now)
	require.NoError(t, err)
	assert.True(t, ok, "a full window for alice must not throttle bob")
}

func TestMemoryContextCanceled(t *testing.T) {
	limiter := NewMemory(Policy{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := limiter.Allow(ctx, "list:127.0.0.1", time.Now())
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewFromDriver(t *testing.T) {
	limiter, err := NewFromDriver(DriverMemory, FactoryOptions{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, limiter)

	_, err = NewFromDriver(DriverRedis, FactoryOptions{})
	assert.ErrorIs(t, err, ErrRedisClientRequired)

	_, err = NewFromDriver("bogus", FactoryOptions{})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
