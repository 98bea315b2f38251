// Package memory is the in-process query cache used when no shared cache is configured.
package memory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/karlseguin/ccache/v3"

	"hotel_catalog/internal/adapters/observability"
)

// Cache stores JSON encodings so callers get private copies back, as with the remote caches.
type Cache struct {
	c *ccache.Cache[[]byte]
}

func New(maxSize int64) *Cache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &Cache{c: ccache.New(ccache.Configure[[]byte]().MaxSize(maxSize))}
}

func (m *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	item := m.c.Get(key)
	if item == nil || item.Expired() {
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	observability.ObserveCache("memory", "hit")
	return true, json.Unmarshal(item.Value(), dst)
}

func (m *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("memory", "set")
	m.c.Set(key, b, time.Duration(ttlSec)*time.Second)
	return nil
}

func (m *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache("memory", "del")
	m.c.Delete(key)
	return nil
}

// Stop releases the cache's background worker.
func (m *Cache) Stop() { m.c.Stop() }
