package suppliers

import "hotel_catalog/internal/domain"

const PaperfliesEndpoint = "https://5f2be0b4ffc88500167b85a0.mockapi.io/suppliers/paperflies"

// Paperflies nests address/country under "location" and amenities/images under their own objects.
// Latitude, Longitude and City are read from the top level, where this schema never has them,
// so they always take their defaults.
var paperfliesPolicy = policy{
	ID:                required("hotel_id"),
	DestinationID:     required("destination_id"),
	Name:              required("hotel_name"),
	Lat:               optional("Latitude"),
	Lng:               optional("Longitude"),
	Address:           optional("location.address"),
	City:              optional("City"),
	Country:           optional("location.country"),
	Description:       optional("details"),
	GeneralAmenities:  optional("amenities.general"),
	RoomAmenities:     optional("amenities.room"),
	RoomImages:        imageRule{Path: "images.rooms", Link: "link", Description: "caption"},
	SiteImages:        imageRule{Path: "images.site", Link: "link", Description: "caption"},
	BookingConditions: optional("booking_conditions"),
}

type Paperflies struct{ endpoint string }

// NewPaperflies returns the Paperflies adapter; an empty endpoint selects PaperfliesEndpoint.
func NewPaperflies(endpoint string) *Paperflies {
	if endpoint == "" {
		endpoint = PaperfliesEndpoint
	}
	return &Paperflies{endpoint: endpoint}
}

func (p *Paperflies) Name() string           { return "paperflies" }
func (p *Paperflies) SourceLocation() string { return p.endpoint }

func (p *Paperflies) Parse(raw domain.RawRecord) (domain.Hotel, error) {
	return paperfliesPolicy.apply(p.Name(), raw)
}
