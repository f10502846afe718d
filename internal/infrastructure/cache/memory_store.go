package cache

import (
	"context"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMemorySize = 1024

type memEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is a bounded LRU with per-entry expiry. The least recently
// used entry is evicted once the size is reached.
type MemoryStore struct {
	entries *lru.Cache[string, memEntry]
	now     func() time.Time
}

func NewMemoryStore(size int) (*MemoryStore, error) {
	if size <= 0 {
		size = defaultMemorySize
	}
	entries, err := lru.New[string, memEntry](size)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{entries: entries, now: time.Now}, nil
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	e, ok := m.entries.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	if m.now().After(e.expiresAt) {
		m.entries.Remove(key)
		return nil, ErrMiss
	}
	return e.value, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	b := make([]byte, len(value))
	copy(b, value)
	m.entries.Add(key, memEntry{value: b, expiresAt: m.now().Add(ttl)})
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.entries.Remove(key)
	return nil
}

func (m *MemoryStore) DeletePrefix(_ context.Context, prefix string) (int, error) {
	removed := 0
	for _, k := range m.entries.Keys() {
		if strings.HasPrefix(k, prefix) && m.entries.Remove(k) {
			removed++
		}
	}
	return removed, nil
}
