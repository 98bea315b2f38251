package suppliers

import "hotel_catalog/internal/domain"

const AcmeEndpoint = "https://5f2be0b4ffc88500167b85a0.mockapi.io/suppliers/acme"

// Acme publishes a flat PascalCase schema with no images or room amenities.
var acmePolicy = policy{
	ID:               required("Id"),
	DestinationID:    required("DestinationId"),
	Name:             required("Name"),
	Lat:              optional("Latitude"),
	Lng:              optional("Longitude"),
	Address:          optional("Address"),
	City:             optional("City"),
	Country:          optional("Country"),
	Description:      optional("Description"),
	GeneralAmenities: optional("Facilities"),
}

type Acme struct{ endpoint string }

// NewAcme returns the Acme adapter; an empty endpoint selects AcmeEndpoint.
func NewAcme(endpoint string) *Acme {
	if endpoint == "" {
		endpoint = AcmeEndpoint
	}
	return &Acme{endpoint: endpoint}
}

func (a *Acme) Name() string           { return "acme" }
func (a *Acme) SourceLocation() string { return a.endpoint }

func (a *Acme) Parse(raw domain.RawRecord) (domain.Hotel, error) {
	return acmePolicy.apply(a.Name(), raw)
}
