// Package cache implements the query cache behind the read endpoints: a
// byte store (Redis, or a bounded in-process LRU when Redis is unreachable)
// and the façade services use to fetch and invalidate rendered responses.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrMiss is returned by Store.Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is a TTL byte store with prefix deletion.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix drops every key starting with prefix and returns how
	// many were removed.
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

// NewStore returns a Redis-backed store when client answers a ping, and a
// memory store of memorySize entries otherwise.
func NewStore(ctx context.Context, client *redis.Client, memorySize int, log zerolog.Logger) (Store, error) {
	if client != nil {
		err := client.Ping(ctx).Err()
		if err == nil {
			return NewRedisStore(client), nil
		}
		log.Warn().Err(err).Msg("redis unreachable, caching in memory")
	}
	return NewMemoryStore(memorySize)
}
