package suppliers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"hotel_catalog/internal/domain"
)

/********** field policy table **********/

// fieldRule says where a canonical field lives in a raw record (dot path).
// An empty Path means the supplier never provides the field and the default applies.
type fieldRule struct {
	Path     string
	Required bool
}

// imageRule maps a list of image objects; Link is required inside every entry.
type imageRule struct {
	Path        string
	Link        string
	Description string
}

func required(path string) fieldRule { return fieldRule{Path: path, Required: true} }
func optional(path string) fieldRule { return fieldRule{Path: path} }

// policy is one supplier's complete mapping into domain.Hotel.
type policy struct {
	ID            fieldRule
	DestinationID fieldRule
	Name          fieldRule

	Lat, Lng fieldRule
	Address  fieldRule
	City     fieldRule
	Country  fieldRule

	Description fieldRule

	GeneralAmenities fieldRule
	RoomAmenities    fieldRule

	RoomImages    imageRule
	SiteImages    imageRule
	AmenityImages imageRule

	BookingConditions fieldRule
}

func (p policy) apply(supplier string, raw domain.RawRecord) (domain.Hotel, error) {
	m := &mapper{supplier: supplier, raw: raw}
	h := domain.Hotel{
		ID:            m.str(p.ID),
		DestinationID: m.integer(p.DestinationID),
		Name:          m.str(p.Name),
		Location: domain.Location{
			Lat:     m.float(p.Lat),
			Lng:     m.float(p.Lng),
			Address: m.str(p.Address),
			City:    m.str(p.City),
			Country: m.str(p.Country),
		},
		Description: m.str(p.Description),
		Amenities: domain.Amenities{
			General: m.strings(p.GeneralAmenities),
			Room:    m.strings(p.RoomAmenities),
		},
		Images: domain.Images{
			Rooms:     m.images(p.RoomImages),
			Site:      m.images(p.SiteImages),
			Amenities: m.images(p.AmenityImages),
		},
		BookingConditions: m.strings(p.BookingConditions),
	}
	if m.err != nil {
		return domain.Hotel{}, m.err
	}
	return h, nil
}

/********** mapper **********/

// mapper keeps the first failure; later lookups still run but cannot overwrite it.
type mapper struct {
	supplier string
	raw      domain.RawRecord
	err      error
}

func (m *mapper) fail(field string, cause error) {
	if m.err != nil {
		return
	}
	m.err = &domain.MappingError{Supplier: m.supplier, Index: -1, Field: field, Record: m.raw, Err: cause}
}

// value resolves a rule; a JSON null counts as absent.
func (m *mapper) value(r fieldRule) (any, bool) {
	if r.Path == "" {
		return nil, false
	}
	v, ok := lookupAny(m.raw, r.Path)
	if !ok || v == nil {
		if r.Required {
			m.fail(r.Path, domain.ErrMissingField)
		}
		return nil, false
	}
	return v, true
}

func (m *mapper) str(r fieldRule) string {
	v, ok := m.value(r)
	if !ok {
		return ""
	}
	s, isStr := v.(string)
	if !isStr {
		if r.Required {
			m.fail(r.Path, domain.ErrInvalidField)
		}
		return ""
	}
	return s
}

func (m *mapper) integer(r fieldRule) int {
	v, ok := m.value(r)
	if !ok {
		return 0
	}
	n, ok := toInt(v)
	if !ok {
		if r.Required {
			m.fail(r.Path, domain.ErrInvalidField)
		}
		return 0
	}
	return n
}

func (m *mapper) float(r fieldRule) float64 {
	v, ok := m.value(r)
	if !ok {
		return 0
	}
	f, ok := toFloat(v)
	if !ok {
		if r.Required {
			m.fail(r.Path, domain.ErrInvalidField)
		}
		return 0
	}
	return f
}

// strings keeps the string entries of a list, in order. Never returns nil.
func (m *mapper) strings(r fieldRule) []string {
	out := []string{}
	v, ok := m.value(r)
	if !ok {
		return out
	}
	items, isList := v.([]any)
	if !isList {
		return out
	}
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (m *mapper) images(r imageRule) []domain.Image {
	out := []domain.Image{}
	v, ok := m.value(optional(r.Path))
	if !ok {
		return out
	}
	items, isList := v.([]any)
	if !isList {
		return out
	}
	for i, it := range items {
		entry, _ := it.(map[string]any)
		field := fmt.Sprintf("%s[%d].%s", r.Path, i, r.Link)
		link, present := entry[r.Link]
		if !present || link == nil {
			m.fail(field, domain.ErrMissingField)
			return []domain.Image{}
		}
		ls, isStr := link.(string)
		if !isStr {
			m.fail(field, domain.ErrInvalidField)
			return []domain.Image{}
		}
		desc, _ := entry[r.Description].(string)
		out = append(out, domain.Image{Link: ls, Description: desc})
	}
	return out
}

/********** tiny helpers **********/

// lookupAny: nested lookup with dot paths on maps; reports presence separately from value.
func lookupAny(m map[string]any, path string) (any, bool) {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := obj[part]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// toInt accepts JSON numbers and numeric strings ("5432"). Fractions are truncated;
// values outside the int range are rejected.
func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		// MinInt is a power of two, so both bounds are exact in float64
		if t < float64(math.MinInt) || t >= -float64(math.MinInt) {
			return 0, false
		}
		return int(t), true
	case int:
		return t, true
	case int64:
		if int64(int(t)) != t {
			return 0, false
		}
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// toFloat accepts JSON numbers and numeric strings; "" and other text are rejected.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
