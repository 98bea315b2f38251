// Package storage holds what the catalog snapshot sinks share: the flattened row shape.
package storage

import (
	"encoding/json"
	"fmt"

	"hotel_catalog/internal/domain"
)

// Columns is the column order of every hotels snapshot table.
var Columns = []string{
	"position", "id", "run_id", "destination_id", "name",
	"lat", "lng", "address", "city", "country", "description",
	"amenities", "images", "booking_conditions",
}

// Row is one hotel flattened for insertion; nested parts are JSON text.
type Row struct {
	Position          int
	ID                string
	RunID             string
	DestinationID     int
	Name              string
	Lat, Lng          float64
	Address           string
	City              string
	Country           string
	Description       string
	Amenities         string
	Images            string
	BookingConditions string
}

func NewRow(pos int, runID string, h domain.Hotel) (Row, error) {
	amen, err := json.Marshal(h.Amenities)
	if err != nil {
		return Row{}, fmt.Errorf("hotel %s amenities: %w", h.ID, err)
	}
	imgs, err := json.Marshal(h.Images)
	if err != nil {
		return Row{}, fmt.Errorf("hotel %s images: %w", h.ID, err)
	}
	bc := h.BookingConditions
	if bc == nil {
		bc = []string{}
	}
	cond, err := json.Marshal(bc)
	if err != nil {
		return Row{}, fmt.Errorf("hotel %s booking conditions: %w", h.ID, err)
	}
	return Row{
		Position:          pos,
		ID:                h.ID,
		RunID:             runID,
		DestinationID:     h.DestinationID,
		Name:              h.Name,
		Lat:               h.Location.Lat,
		Lng:               h.Location.Lng,
		Address:           h.Location.Address,
		City:              h.Location.City,
		Country:           h.Location.Country,
		Description:       h.Description,
		Amenities:         string(amen),
		Images:            string(imgs),
		BookingConditions: string(cond),
	}, nil
}

// Args returns the row's values in Columns order.
func (r Row) Args() []any {
	return []any{
		r.Position, r.ID, r.RunID, r.DestinationID, r.Name,
		r.Lat, r.Lng, r.Address, r.City, r.Country, r.Description,
		r.Amenities, r.Images, r.BookingConditions,
	}
}

// Rows flattens a catalog in order.
func Rows(runID string, hotels []domain.Hotel) ([]Row, error) {
	out := make([]Row, 0, len(hotels))
	for i, h := range hotels {
		r, err := NewRow(i, runID, h)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
