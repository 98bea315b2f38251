package suppliers

import "hotel_catalog/internal/domain"

const PatagoniaEndpoint = "https://5f2be0b4ffc88500167b85a0.mockapi.io/suppliers/patagonia"

var patagoniaPolicy = policy{
	ID:                required("id"),
	DestinationID:     required("destination"),
	Name:              required("name"),
	Lat:               optional("lat"),
	Lng:               optional("lng"),
	Address:           optional("address"),
	City:              optional("city"),
	Country:           optional("country"),
	Description:       optional("info"),
	GeneralAmenities:  optional("amenities"),
	RoomImages:        imageRule{Path: "images.rooms", Link: "url", Description: "description"},
	AmenityImages:     imageRule{Path: "images.amenities", Link: "url", Description: "description"},
	BookingConditions: optional("booking_conditions"),
}

type Patagonia struct{ endpoint string }

// NewPatagonia returns the Patagonia adapter; an empty endpoint selects PatagoniaEndpoint.
func NewPatagonia(endpoint string) *Patagonia {
	if endpoint == "" {
		endpoint = PatagoniaEndpoint
	}
	return &Patagonia{endpoint: endpoint}
}

func (p *Patagonia) Name() string           { return "patagonia" }
func (p *Patagonia) SourceLocation() string { return p.endpoint }

func (p *Patagonia) Parse(raw domain.RawRecord) (domain.Hotel, error) {
	return patagoniaPolicy.apply(p.Name(), raw)
}
