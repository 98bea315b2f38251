package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"hotel_catalog/internal/adapters/observability"
	"hotel_catalog/internal/domain"
)

// AggregationService builds the catalog from every supplier and holds the current build.
type AggregationService struct {
	suppliers []domain.Supplier
	fetcher   domain.RawFetcher
	workers   int64

	rebuild *semaphore.Weighted // one FetchAndMerge at a time, fetch through publish
	mu      sync.Mutex
	current atomic.Pointer[Catalog]
}

// NewAggregationService keeps suppliers in the given order; that order decides which
// record wins when two suppliers publish the same hotel id.
func NewAggregationService(sups []domain.Supplier, f domain.RawFetcher, workers int) *AggregationService {
	if workers <= 0 {
		workers = 1
	}
	return &AggregationService{
		suppliers: sups,
		fetcher:   f,
		workers:   int64(workers),
		rebuild:   semaphore.NewWeighted(1),
	}
}

// FetchAndMerge fetches every supplier (concurrently, up to the worker limit), then merges
// their hotels in supplier order. Any failure aborts the run and leaves the previous catalog in place.
// Overlapping calls run one after another, so the catalog published last is from the run started last.
func (s *AggregationService) FetchAndMerge(ctx context.Context) (*Catalog, error) {
	if err := s.rebuild.Acquire(ctx, 1); err != nil {
		observability.ObserveRebuild(outcome(err), 0)
		return nil, fmt.Errorf("wait for running rebuild: %w", err)
	}
	defer s.rebuild.Release(1)

	start := time.Now()
	results := make([][]domain.Hotel, len(s.suppliers))

	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(s.workers)
	for i, sup := range s.suppliers {
		i, sup := i, sup
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return &domain.TransportError{Supplier: sup.Name(), Source: sup.SourceLocation(), Err: err}
			}
			defer sem.Release(1)

			t0 := time.Now()
			hotels, err := FetchSupplier(gctx, s.fetcher, sup)
			if err != nil {
				log.Warn().Err(err).Str("supplier", sup.Name()).Str("source", sup.SourceLocation()).Msg("supplier fetch failed")
				return err
			}
			observability.ObserveSupplier(sup.Name(), len(hotels))
			log.Debug().Str("supplier", sup.Name()).Int("records", len(hotels)).
				Dur("duration", time.Since(t0)).Msg("supplier fetched")
			results[i] = hotels
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		observability.ObserveRebuild(outcome(err), 0)
		return nil, err
	}

	var all []domain.Hotel
	for _, hs := range results {
		all = append(all, hs...)
	}
	c := s.MergeAndSave(all)
	log.Info().Str("run_id", c.RunID()).Int("records", len(all)).Int("hotels", c.Len()).
		Dur("duration", time.Since(start)).Msg("catalog rebuilt")
	return c, nil
}

// MergeAndSave replaces the current catalog with one built from records alone.
func (s *AggregationService) MergeAndSave(records []domain.Hotel) *Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := NewCatalog(records)
	s.current.Store(c)
	observability.ObserveRebuild("ok", c.Len())
	return c
}

// Catalog returns the current build, or nil before the first successful merge.
func (s *AggregationService) Catalog() *Catalog { return s.current.Load() }

// Find filters the current catalog. An empty set means no constraint on that dimension.
func (s *AggregationService) Find(hotelIDs []string, destinationIDs []int) []domain.Hotel {
	c := s.current.Load()
	if c == nil {
		return []domain.Hotel{}
	}
	return c.Find(domain.HotelQuery{HotelIDs: hotelIDs, DestinationIDs: destinationIDs})
}

// Export hands the current catalog to every sink in turn; the first failure stops.
func (s *AggregationService) Export(ctx context.Context, sinks ...domain.CatalogSink) error {
	c := s.current.Load()
	if c == nil {
		return domain.ErrCatalogNotReady
	}
	for _, sink := range sinks {
		if err := sink.ReplaceCatalog(ctx, c.RunID(), c.Hotels()); err != nil {
			return fmt.Errorf("export run %s: %w", c.RunID(), err)
		}
	}
	log.Info().Str("run_id", c.RunID()).Int("hotels", c.Len()).Int("sinks", len(sinks)).Msg("catalog exported")
	return nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrTransport):
		return "transport_error"
	case errors.Is(err, domain.ErrMapping):
		return "mapping_error"
	default:
		return "error"
	}
}
