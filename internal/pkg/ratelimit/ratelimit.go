// Package ratelimit provides sliding-window attempt throttling keyed by an
// operation-scoped identifier.
//
// A window holds the timestamps of prior attempts. On each call the window is
// pruned to the configured duration, then either the attempt is denied
// (window full, nothing recorded) or recorded and allowed. Calls for the same
// identifier are linearizable.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ErrUnknownDriver indicates an unsupported ratelimit driver.
var ErrUnknownDriver = errors.New("ratelimit: unknown driver")

const (
	// DriverMemory selects the in-process backend.
	DriverMemory = "memory"
	// DriverRedis selects the Redis backend.
	DriverRedis = "redis"
)

// Limiter throttles attempts per identifier over a sliding window.
type Limiter interface {
	io.Closer

	// Allow records an attempt for identifier at time now and reports whether
	// it fits the window. A denied attempt is not recorded, so being throttled
	// does not extend the throttle.
	Allow(ctx context.Context, identifier string, now time.Time) (bool, error)
}

// Policy bounds a sliding window.
type Policy struct {
	// MaxAttempts is the number of attempts permitted inside one window.
	MaxAttempts int
	// Window is the sliding window duration.
	Window time.Duration
}

func (p Policy) normalize() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 5
	}
	if p.Window <= 0 {
		p.Window = time.Hour
	}
	return p
}

// FactoryOptions groups config for supported ratelimit backends.
type FactoryOptions struct {
	// Policy applies to every identifier.
	Policy Policy
	// Redis provides configuration for the Redis driver.
	Redis RedisConfig
}

// NewFromDriver constructs a Limiter implementation by driver name.
func NewFromDriver(driver string, opts FactoryOptions) (Limiter, error) {
	switch strings.TrimSpace(driver) {
	case DriverMemory, "":
		return NewMemory(opts.Policy), nil
	case DriverRedis:
		return NewRedis(opts.Redis, opts.Policy)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
