package ports

import (
	"context"

	"github.com/easework/jobboard-api/internal/core/cachekey"
	"github.com/easework/jobboard-api/internal/core/domain"
)

// ComputeFunc produces the value to cache. It is marshalled to JSON.
type ComputeFunc func(ctx context.Context) (any, error)

// QueryCache serves rendered read responses.
//
// Fetch returns the cached bytes for key or, on a miss, the JSON encoding of
// compute's result, storing it with the TTL of the key's class. Store
// failures count as misses. Invalidate drops every entry derived from rt.
type QueryCache interface {
	Fetch(ctx context.Context, key cachekey.Key, compute ComputeFunc) ([]byte, error)
	Invalidate(ctx context.Context, rt domain.ResourceType)
}
