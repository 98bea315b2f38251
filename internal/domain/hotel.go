package domain

// Hotel is the canonical record every supplier payload is mapped into.
// Slices are never nil once built by an adapter, so JSON output shows [] rather than null.
type Hotel struct {
	ID                string    `json:"id"`
	DestinationID     int       `json:"destination_id"`
	Name              string    `json:"name"`
	Location          Location  `json:"location"`
	Description       string    `json:"description"`
	Amenities         Amenities `json:"amenities"`
	Images            Images    `json:"images"`
	BookingConditions []string  `json:"booking_conditions"`
}

type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
	City    string  `json:"city"`
	Country string  `json:"country"`
}

type Amenities struct {
	General []string `json:"general"`
	Room    []string `json:"room"`
}

type Images struct {
	Rooms     []Image `json:"rooms"`
	Site      []Image `json:"site"`
	Amenities []Image `json:"amenities"`
}

type Image struct {
	Link        string `json:"link"`
	Description string `json:"description"`
}

// RawRecord is one untyped supplier record as decoded from its JSON array.
type RawRecord map[string]any

// HotelQuery holds the two optional inclusion sets of a catalog lookup.
// An empty set places no constraint on its dimension.
type HotelQuery struct {
	HotelIDs       []string
	DestinationIDs []int
}

// Matches reports whether h satisfies both inclusion sets.
func (q HotelQuery) Matches(h Hotel) bool {
	return (len(q.HotelIDs) == 0 || containsString(q.HotelIDs, h.ID)) &&
		(len(q.DestinationIDs) == 0 || containsInt(q.DestinationIDs, h.DestinationID))
}

func containsString(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// Clone returns a copy of h that shares no slice backing arrays with it.
func (h Hotel) Clone() Hotel {
	h.Amenities.General = cloneSlice(h.Amenities.General)
	h.Amenities.Room = cloneSlice(h.Amenities.Room)
	h.Images.Rooms = cloneSlice(h.Images.Rooms)
	h.Images.Site = cloneSlice(h.Images.Site)
	h.Images.Amenities = cloneSlice(h.Images.Amenities)
	h.BookingConditions = cloneSlice(h.BookingConditions)
	return h
}

// cloneSlice keeps nil as nil and an empty slice as empty.
func cloneSlice[T any](xs []T) []T {
	if xs == nil {
		return nil
	}
	return append(make([]T, 0, len(xs)), xs...)
}
