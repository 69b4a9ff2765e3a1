package ratelimit

import (
	"context"
	"hash/fnv"
	"sync"
	"time"
)

const memoryShards = 32

// Memory is an in-process Limiter. Identifiers are spread across shards so
// unrelated identifiers do not contend on one mutex, while attempts for the
// same identifier serialize on its shard.
type Memory struct {
	policy Policy
	shards [memoryShards]memoryShard
}

type memoryShard struct {
	mu      sync.Mutex
	windows map[string][]time.Time
}

// NewMemory constructs an in-process sliding-window limiter.
func NewMemory(policy Policy) *Memory {
	m := &Memory{policy: policy.normalize()}
	for i := range m.shards {
		m.shards[i].windows = make(map[string][]time.Time)
	}
	return m
}

// Allow implements Limiter.
func (m *Memory) Allow(ctx context.Context, identifier string, now time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	shard := &m.shards[shardIndex(identifier)]
	shard.mu.Lock()
	defer shard.mu.Unlock()

	cutoff := now.Add(-m.policy.Window)

	window := shard.windows[identifier]
	kept := window[:0]
	for _, at := range window {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}

	if len(kept) >= m.policy.MaxAttempts {
		shard.windows[identifier] = kept
		return false, nil
	}

	shard.windows[identifier] = append(kept, now)
	return true, nil
}

// Close implements io.Closer for interface compatibility.
func (m *Memory) Close() error {
	return nil
}

func shardIndex(identifier string) int {
	h := fnv.New32a()
	h.Write([]byte(identifier)) //nolint:errcheck // fnv never fails
	return int(h.Sum32() % memoryShards)
}
