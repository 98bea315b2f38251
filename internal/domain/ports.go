package domain

import "context"

// Supplier maps one supplier's raw schema into the canonical Hotel.
// Parse must be pure: the same record always yields the same Hotel or error.
type Supplier interface {
	Name() string
	SourceLocation() string
	Parse(raw RawRecord) (Hotel, error)
}

// RawFetcher retrieves the raw record array published at a source location.
// Any failure is reported as a *TransportError.
type RawFetcher interface {
	FetchRaw(ctx context.Context, source string) ([]RawRecord, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// CatalogSink receives a full copy of every successfully built catalog.
type CatalogSink interface {
	ReplaceCatalog(ctx context.Context, runID string, hotels []Hotel) error
}
