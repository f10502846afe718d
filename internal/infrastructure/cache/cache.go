package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/easework/jobboard-api/internal/core/cachekey"
	"github.com/easework/jobboard-api/internal/core/domain"
	"github.com/easework/jobboard-api/internal/core/ports"
	"github.com/easework/jobboard-api/internal/pkg/metrics"
)

// TTLs holds the lifetime of each key class.
type TTLs struct {
	List      time.Duration
	Detail    time.Duration
	Aggregate time.Duration
}

// DefaultTTLs are two minutes for lists and ten for details and aggregates.
var DefaultTTLs = TTLs{
	List:      2 * time.Minute,
	Detail:    10 * time.Minute,
	Aggregate: 10 * time.Minute,
}

func (t TTLs) For(c cachekey.Class) time.Duration {
	var d, def time.Duration
	switch c {
	case cachekey.ClassDetail:
		d, def = t.Detail, DefaultTTLs.Detail
	case cachekey.ClassAggregate:
		d, def = t.Aggregate, DefaultTTLs.Aggregate
	default:
		d, def = t.List, DefaultTTLs.List
	}
	if d <= 0 {
		return def
	}
	return d
}

// computeTimeout bounds a computation once it no longer follows the
// caller's context.
const computeTimeout = 30 * time.Second

// QueryCache is the ports.QueryCache over a Store. Store failures are
// logged and served as misses; concurrent misses on one key share a single
// computation.
//
// Every resource type carries a generation that Invalidate bumps. A
// computation started under an older generation is never stored, and
// callers arriving after a write never join it.
type QueryCache struct {
	store Store
	ttls  TTLs
	group singleflight.Group
	log   zerolog.Logger

	mu          sync.Mutex
	generations map[domain.ResourceType]uint64
}

var _ ports.QueryCache = (*QueryCache)(nil)

func New(store Store, ttls TTLs, log zerolog.Logger) *QueryCache {
	return &QueryCache{
		store:       store,
		ttls:        ttls,
		log:         log,
		generations: make(map[domain.ResourceType]uint64),
	}
}

func (c *QueryCache) generation(rt domain.ResourceType) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[rt]
}

// Fetch serves key from the store or runs compute. The computation runs
// detached from ctx with its own timeout; ctx only bounds how long this
// caller waits.
func (c *QueryCache) Fetch(ctx context.Context, key cachekey.Key, compute ports.ComputeFunc) ([]byte, error) {
	k := key.String()
	resource := string(key.Resource())
	gen := c.generation(key.Resource())

	b, err := c.store.Get(ctx, k)
	switch {
	case err == nil:
		metrics.CacheRequestsTotal.WithLabelValues(resource, "hit").Inc()
		return b, nil
	case errors.Is(err, ErrMiss):
		metrics.CacheRequestsTotal.WithLabelValues(resource, "miss").Inc()
	default:
		metrics.CacheRequestsTotal.WithLabelValues(resource, "error").Inc()
		c.log.Warn().Err(err).Str("key", k).Msg("cache read failed")
	}

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(fmt.Sprintf("%s@%d", k, gen), func() (any, error) {
		cctx, cancel := context.WithTimeout(detached, computeTimeout)
		defer cancel()

		value, err := compute(cctx)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key.Endpoint(), err)
		}
		c.put(cctx, key, gen, encoded)
		return encoded, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			metrics.CacheRequestsTotal.WithLabelValues(resource, "shared").Inc()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// put stores encoded unless key's resource was invalidated after gen was
// read. The second check covers an Invalidate that lands while Set runs.
func (c *QueryCache) put(ctx context.Context, key cachekey.Key, gen uint64, encoded []byte) {
	k, rt := key.String(), key.Resource()
	if c.generation(rt) != gen {
		c.log.Debug().Str("key", k).Msg("stale computation not cached")
		return
	}
	if err := c.store.Set(ctx, k, encoded, c.ttls.For(key.Class())); err != nil {
		c.log.Warn().Err(err).Str("key", k).Msg("cache write failed")
		return
	}
	if c.generation(rt) != gen {
		if err := c.store.Delete(ctx, k); err != nil {
			c.log.Warn().Err(err).Str("key", k).Msg("cache delete failed")
		}
	}
}

// Invalidate drops every key of rt and of the resources derived from it.
func (c *QueryCache) Invalidate(ctx context.Context, rt domain.ResourceType) {
	metrics.CacheInvalidationsTotal.WithLabelValues(string(rt)).Inc()
	affected := cachekey.Affected(rt)

	c.mu.Lock()
	for _, r := range affected {
		c.generations[r]++
	}
	c.mu.Unlock()

	for _, r := range affected {
		prefix := cachekey.Prefix(r)
		n, err := c.store.DeletePrefix(ctx, prefix)
		if err != nil {
			c.log.Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation failed")
			continue
		}
		c.log.Debug().Str("prefix", prefix).Int("removed", n).Msg("cache invalidated")
	}
}
