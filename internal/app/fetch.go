package app

import (
	"context"
	"errors"

	"hotel_catalog/internal/domain"
)

// FetchSupplier retrieves s's raw records through f and parses them in payload order.
// The first failure aborts: a *domain.TransportError, or a *domain.MappingError carrying the record index.
func FetchSupplier(ctx context.Context, f domain.RawFetcher, s domain.Supplier) ([]domain.Hotel, error) {
	raw, err := f.FetchRaw(ctx, s.SourceLocation())
	if err != nil {
		var te *domain.TransportError
		if !errors.As(err, &te) {
			return nil, &domain.TransportError{Supplier: s.Name(), Source: s.SourceLocation(), Err: err}
		}
		if te.Supplier == "" {
			te.Supplier = s.Name()
		}
		return nil, err
	}

	out := make([]domain.Hotel, 0, len(raw))
	for i, r := range raw {
		h, err := s.Parse(r)
		if err != nil {
			var me *domain.MappingError
			if errors.As(err, &me) {
				me.Index = i
			}
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}
