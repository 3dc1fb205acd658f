package models

// PropertyFilters is the filter object emitted by the generation step and
// consumed by the map/UI layer. Nil fields are unconstrained.
type PropertyFilters struct {
	MaxPrice           *float64 `json:"maxPrice,omitempty"`
	MinPrice           *float64 `json:"minPrice,omitempty"`
	MinBedrooms        *float64 `json:"minBedrooms,omitempty"`
	MaxBedrooms        *float64 `json:"maxBedrooms,omitempty"`
	MinBathrooms       *float64 `json:"minBathrooms,omitempty"`
	MaxBathrooms       *float64 `json:"maxBathrooms,omitempty"`
	Amenities          []string `json:"amenities,omitempty"`
	MaxWalkingDistance *int     `json:"maxWalkingDistance,omitempty"`
}

// Apply returns the properties that satisfy every set field. Each field is an
// independent predicate; a property must pass all of them.
func (f *PropertyFilters) Apply(properties []Property) []Property {
	if f == nil {
		return properties
	}
	out := make([]Property, 0, len(properties))
	for _, p := range properties {
		if f.matches(&p) {
			out = append(out, p)
		}
	}
	return out
}

func (f *PropertyFilters) matches(p *Property) bool {
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MinBedrooms != nil && p.Bedrooms < *f.MinBedrooms {
		return false
	}
	if f.MaxBedrooms != nil && p.Bedrooms > *f.MaxBedrooms {
		return false
	}
	if f.MinBathrooms != nil && p.Bathrooms < *f.MinBathrooms {
		return false
	}
	if f.MaxBathrooms != nil && p.Bathrooms > *f.MaxBathrooms {
		return false
	}
	for _, amenity := range f.Amenities {
		if !p.HasAmenity(amenity) {
			return false
		}
	}
	if f.MaxWalkingDistance != nil {
		// Unknown distance passes; absence means "unknown", not "far".
		if d, ok := p.WalkingDistance(); ok && d > *f.MaxWalkingDistance {
			return false
		}
	}
	return true
}
