package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel_catalog/internal/app"
	"hotel_catalog/internal/domain"
)

// ---- fakes ----

type fakeSource struct {
	c *app.Catalog
}

func (f *fakeSource) Catalog() *app.Catalog { return f.c }

type fakeCache struct {
	store map[string]any
	gets  int
	sets  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.gets++
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.Hotel:
		*d = v.(domain.Hotel)
	case *[]domain.Hotel:
		*d = v.([]domain.Hotel)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.sets++
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

// ---- tests ----

func TestQueryService_NotReady(t *testing.T) {
	q := app.NewQueryService(&fakeSource{}, &fakeCache{}, time.Minute)

	if _, err := q.Find(context.Background(), domain.HotelQuery{}); !errors.Is(err, domain.ErrCatalogNotReady) {
		t.Fatalf("expected ErrCatalogNotReady, got %v", err)
	}
	if _, err := q.Get(context.Background(), "iJhz"); !errors.Is(err, domain.ErrCatalogNotReady) {
		t.Fatalf("expected ErrCatalogNotReady, got %v", err)
	}
}

func TestQueryService_FindCacheMissThenHit(t *testing.T) {
	src := &fakeSource{c: app.NewCatalog(sampleHotels())}
	cache := &fakeCache{}
	q := app.NewQueryService(src, cache, 10*time.Minute)

	out, err := q.Find(context.Background(), domain.HotelQuery{DestinationIDs: []int{5432}})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got := ids(out); len(got) != 2 || got[0] != "iJhz" || got[1] != "SjyX" {
		t.Fatalf("unexpected hotels: %v", got)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache set, got %d", cache.sets)
	}

	// same filter in another order and with a duplicate hits the same key
	out2, err := q.Find(context.Background(), domain.HotelQuery{DestinationIDs: []int{5432, 5432}})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out2) != 2 || cache.sets != 1 {
		t.Fatalf("expected cached result, sets=%d", cache.sets)
	}
}

func TestQueryService_RebuildChangesKeys(t *testing.T) {
	src := &fakeSource{c: app.NewCatalog(sampleHotels())}
	cache := &fakeCache{}
	q := app.NewQueryService(src, cache, time.Minute)

	if _, err := q.Find(context.Background(), domain.HotelQuery{}); err != nil {
		t.Fatalf("err: %v", err)
	}

	// a new run must not see the previous run's cached list
	src.c = app.NewCatalog([]domain.Hotel{{ID: "only", DestinationID: 1}})
	out, err := q.Find(context.Background(), domain.HotelQuery{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 1 || out[0].ID != "only" {
		t.Fatalf("served stale catalog: %v", ids(out))
	}
}

func TestQueryService_Get(t *testing.T) {
	src := &fakeSource{c: app.NewCatalog(sampleHotels())}
	cache := &fakeCache{}
	q := app.NewQueryService(src, cache, time.Minute)

	h, err := q.Get(context.Background(), "f8c9")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.DestinationID != 1122 {
		t.Fatalf("unexpected hotel: %+v", h)
	}
	if cache.sets != 1 {
		t.Fatalf("expected get to populate cache")
	}

	if _, err := q.Get(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestQueryService_NilCache(t *testing.T) {
	q := app.NewQueryService(&fakeSource{c: app.NewCatalog(sampleHotels())}, nil, time.Minute)
	out, err := q.Find(context.Background(), domain.HotelQuery{HotelIDs: []string{"SjyX"}})
	if err != nil || len(out) != 1 {
		t.Fatalf("unexpected result %v, %v", ids(out), err)
	}
}

func TestQueryService_FilterKeysDoNotCollide(t *testing.T) {
	src := &fakeSource{c: app.NewCatalog([]domain.Hotel{
		{ID: "a", DestinationID: 1},
		{ID: "b", DestinationID: 1},
		{ID: "a,b", DestinationID: 2},
	})}
	cache := &fakeCache{}
	q := app.NewQueryService(src, cache, time.Minute)
	ctx := context.Background()

	cases := []struct {
		name  string
		query domain.HotelQuery
		want  []string
	}{
		{"unfiltered", domain.HotelQuery{}, []string{"a", "b", "a,b"}},
		{"literal star id", domain.HotelQuery{HotelIDs: []string{"*"}}, []string{}},
		{"two ids", domain.HotelQuery{HotelIDs: []string{"a", "b"}}, []string{"a", "b"}},
		{"id containing comma", domain.HotelQuery{HotelIDs: []string{"a,b"}}, []string{"a,b"}},
		{"same ids reordered", domain.HotelQuery{HotelIDs: []string{"b", "a", "b"}}, []string{"a", "b"}},
		{"destination only", domain.HotelQuery{DestinationIDs: []int{2}}, []string{"a,b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := q.Find(ctx, tc.query)
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			if g := ids(got); !equalStrings(g, tc.want) {
				t.Fatalf("got %v, want %v", g, tc.want)
			}
		})
	}
	// reordered ids reuse the "two ids" entry
	if cache.sets != len(cases)-1 {
		t.Fatalf("expected %d cache sets, got %d", len(cases)-1, cache.sets)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
