// Package suppliers holds one adapter per hotel supplier and the HTTP fetch collaborator.
package suppliers

import "hotel_catalog/internal/domain"

// Endpoints overrides the source location of each adapter; empty fields keep the defaults.
type Endpoints struct {
	Acme       string
	Paperflies string
	Patagonia  string
}

// Default returns every adapter in the fixed merge order: Acme, Paperflies, Patagonia.
func Default(ep Endpoints) []domain.Supplier {
	return []domain.Supplier{
		NewAcme(ep.Acme),
		NewPaperflies(ep.Paperflies),
		NewPatagonia(ep.Patagonia),
	}
}
