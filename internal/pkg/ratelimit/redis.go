package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisClientRequired is returned when no Redis client is configured.
var ErrRedisClientRequired = errors.New("ratelimit: redis client is required")

// Attempts live in a sorted set per identifier, scored by unix nanos. The
// script prunes, checks capacity and records in one atomic step so concurrent
// attempts for the same identifier cannot both claim the last slot.
//
// KEYS[1] window key
// ARGV[1] now (unix nanos)
// ARGV[2] window (nanos)
// ARGV[3] max attempts
// Returns 1 when the attempt was recorded, 0 when denied.
var allowScript = redis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[1] - ARGV[2])
if redis.call('ZCARD', KEYS[1]) >= tonumber(ARGV[3]) then
	return 0
end
redis.call('ZADD', KEYS[1], ARGV[1], ARGV[1])
redis.call('PEXPIRE', KEYS[1], math.ceil(ARGV[2] / 1e6))
return 1
`)

// RedisConfig configures the Redis implementation.
type RedisConfig struct {
	// Client is the shared Redis client.
	Client *redis.Client
	// KeyPrefix namespaces window keys, default "ratelimit".
	KeyPrefix string
}

// Redis is a Limiter backed by Redis sorted sets, for deployments where
// several instances must share one window.
type Redis struct {
	client *redis.Client
	prefix string
	policy Policy
}

// NewRedis constructs a Redis-backed sliding-window limiter.
func NewRedis(cfg RedisConfig, policy Policy) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrRedisClientRequired
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "ratelimit"
	}

	return &Redis{
		client: cfg.Client,
		prefix: prefix,
		policy: policy.normalize(),
	}, nil
}

// Allow implements Limiter.
func (r *Redis) Allow(ctx context.Context, identifier string, now time.Time) (bool, error) {
	key := r.prefix + ":" + identifier

	res, err := allowScript.Run(ctx, r.client, []string{key},
		strconv.FormatInt(now.UnixNano(), 10),
		strconv.FormatInt(r.policy.Window.Nanoseconds(), 10),
		strconv.Itoa(r.policy.MaxAttempts),
	).Int()
	if err != nil {
		return false, fmt.Errorf("ratelimit: redis allow: %w", err)
	}

	return res == 1, nil
}

// Close implements io.Closer. The shared client is owned by the caller.
func (r *Redis) Close() error {
	return nil
}
