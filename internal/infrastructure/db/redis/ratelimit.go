package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// WindowCounter counts hits per key within a fixed window, backed by Redis.
// Key format: ratelimit:<scope>:<caller>. The counter is shared across
// replicas, so the auth throttle holds fleet-wide.
type WindowCounter struct {
	client *redis.Client
}

// NewWindowCounter creates a WindowCounter wrapping the given Redis client.
func NewWindowCounter(client *redis.Client) *WindowCounter {
	return &WindowCounter{client: client}
}

// Incr increments the counter for key and returns the new count. The window
// TTL is set only when the key is first created, so the window is fixed from
// the first hit rather than sliding.
func (c *WindowCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	count := pipe.Incr(ctx, c.key(key))
	pipe.ExpireNX(ctx, c.key(key), window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("ratelimit incr: %w", err)
	}
	return count.Val(), nil
}

func (c *WindowCounter) key(key string) string {
	return "ratelimit:" + key
}
