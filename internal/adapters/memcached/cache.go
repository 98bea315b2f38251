// Package memcached is a shared query cache backed by memcached.
package memcached

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bradfitz/gomemcache/memcache"

	"hotel_catalog/internal/adapters/observability"
)

type Cache struct{ c *memcache.Client }

// New accepts one or more host:port servers.
func New(servers ...string) *Cache {
	return &Cache{c: memcache.New(servers...)}
}

func (m *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	it, err := m.c.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		observability.ObserveCache("memcached", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache("memcached", "hit")
	return true, json.Unmarshal(it.Value, dst)
}

func (m *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("memcached", "set")
	return m.c.Set(&memcache.Item{Key: key, Value: b, Expiration: int32(ttlSec)})
}

func (m *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache("memcached", "del")
	if err := m.c.Delete(key); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return err
	}
	return nil
}
