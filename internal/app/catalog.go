package app

import (
	"time"

	"github.com/google/uuid"

	"hotel_catalog/internal/domain"
)

// Catalog is one immutable, deduplicated build of the hotel set.
// Hotels keep the order in which their id was first seen.
type Catalog struct {
	hotels  []domain.Hotel
	byID    map[string]int
	runID   string
	builtAt time.Time
}

// NewCatalog folds records into a fresh catalog. When an id repeats, the later record is
// dropped whole; fields are never merged across records.
func NewCatalog(records []domain.Hotel) *Catalog {
	c := &Catalog{
		hotels:  make([]domain.Hotel, 0, len(records)),
		byID:    make(map[string]int, len(records)),
		runID:   uuid.NewString(),
		builtAt: time.Now().UTC(),
	}
	for _, h := range records {
		if _, seen := c.byID[h.ID]; seen {
			continue
		}
		c.byID[h.ID] = len(c.hotels)
		c.hotels = append(c.hotels, h.Clone())
	}
	return c
}

// Hotels returns every hotel in catalog order. Hotels are deep copies; changing them
// never changes the catalog.
func (c *Catalog) Hotels() []domain.Hotel {
	out := make([]domain.Hotel, len(c.hotels))
	for i, h := range c.hotels {
		out[i] = h.Clone()
	}
	return out
}

func (c *Catalog) Get(id string) (domain.Hotel, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Hotel{}, false
	}
	return c.hotels[i].Clone(), true
}

func (c *Catalog) Len() int           { return len(c.hotels) }
func (c *Catalog) RunID() string      { return c.runID }
func (c *Catalog) BuiltAt() time.Time { return c.builtAt }

// Find returns deep copies of the hotels matching q in catalog order; never nil.
func (c *Catalog) Find(q domain.HotelQuery) []domain.Hotel {
	out := []domain.Hotel{}
	for _, h := range c.hotels {
		if q.Matches(h) {
			out = append(out, h.Clone())
		}
	}
	return out
}
