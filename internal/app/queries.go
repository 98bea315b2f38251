package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"hotel_catalog/internal/domain"
)

// CatalogSource yields the catalog currently being served; nil before the first build.
type CatalogSource interface {
	Catalog() *Catalog
}

// QueryService answers read requests from the current catalog, caching per catalog run.
// A new run id means new keys, so a rebuild never serves results from an older catalog.
type QueryService struct {
	src      CatalogSource
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(src CatalogSource, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{src: src, cache: c, cacheTTL: ttl}
}

func (s *QueryService) Find(ctx context.Context, q domain.HotelQuery) ([]domain.Hotel, error) {
	c := s.src.Catalog()
	if c == nil {
		return nil, domain.ErrCatalogNotReady
	}
	key := fmt.Sprintf("hotels:%s:%s", c.RunID(), filterKey(q))
	var out []domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok && out != nil {
			return out, nil
		}
	}

	out = c.Find(q)
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

func (s *QueryService) Get(ctx context.Context, id string) (domain.Hotel, error) {
	c := s.src.Catalog()
	if c == nil {
		return domain.Hotel{}, domain.ErrCatalogNotReady
	}
	key := fmt.Sprintf("hotel:%s:%s", c.RunID(), id)
	var h domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}

	h, found := c.Get(id)
	if !found {
		return domain.Hotel{}, fmt.Errorf("hotel %q: %w", id, domain.ErrNotFound)
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}

// filterKey renders a query independently of input order and duplicates. An empty set encodes
// as null, so "no constraint" cannot collide with any list of ids, and ids are JSON strings, so
// ["a,b"] and ["a","b"] stay apart.
func filterKey(q domain.HotelQuery) string {
	b, _ := json.Marshal(struct {
		IDs   []string `json:"ids"`
		Dests []int    `json:"dests"`
	}{normalizeIDs(q.HotelIDs), normalizeDests(q.DestinationIDs)})
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}

func normalizeIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	cp := append([]string(nil), ids...)
	sort.Strings(cp)
	out := cp[:0]
	for _, id := range cp {
		if len(out) == 0 || out[len(out)-1] != id {
			out = append(out, id)
		}
	}
	return out
}

func normalizeDests(dests []int) []int {
	if len(dests) == 0 {
		return nil
	}
	cp := append([]int(nil), dests...)
	sort.Ints(cp)
	out := cp[:0]
	for _, d := range cp {
		if len(out) == 0 || out[len(out)-1] != d {
			out = append(out, d)
		}
	}
	return out
}
