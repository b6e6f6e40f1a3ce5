// Package cache holds a short-lived Redis snapshot of the stations
// availability response. The cache is optional: callers nil-guard it,
// and a missing Redis simply means every request recomputes.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "stations:availability"

type Snapshot struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshot(addr, password string, db int, ttl time.Duration) *Snapshot {
	return &Snapshot{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		ttl:    ttl,
	}
}

// Get returns the cached snapshot, or nil on a miss.
func (c *Snapshot) Get(ctx context.Context) ([]byte, error) {
	b, err := c.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (c *Snapshot) Set(ctx context.Context, body []byte) error {
	return c.client.Set(ctx, snapshotKey, body, c.ttl).Err()
}

// Invalidate drops the snapshot. Called on every bike change signal so
// the next read recomputes from the database.
func (c *Snapshot) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, snapshotKey).Err()
}

func (c *Snapshot) Close() error {
	return c.client.Close()
}

func (c *Snapshot) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
