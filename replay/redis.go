package replay

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// compile-time interface check.
var _ Guard = (*Redis)(nil)

const redisKeyPrefix = "linebridge:webhook:seen:"

// Redis is a Guard backed by Redis SET NX, sharing redelivery state across
// replicas behind a load balancer.
type Redis struct {
	rdb goredis.UniversalClient
	ttl time.Duration
}

// NewRedis creates a Redis-backed guard on an existing client. A ttl of 0
// uses DefaultTTL.
func NewRedis(rdb goredis.UniversalClient, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{rdb: rdb, ttl: ttl}
}

// Seen marks the event ID via SET NX and reports whether the key already
// existed. The TTL starts at first sight; a redelivery does not extend it.
func (r *Redis) Seen(ctx context.Context, eventID string) (bool, error) {
	ok, err := r.rdb.SetNX(ctx, redisKeyPrefix+eventID, 1, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("replay: mark event: %w", err)
	}
	return !ok, nil
}

// Close closes the underlying Redis client.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
