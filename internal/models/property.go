// Package models defines core data structures for properties, queries, and results.
package models

import (
	"fmt"
	"strings"
)

// Serviceable bounding box for the University City / Philadelphia metro area.
// Listings outside this box are rejected at ingestion.
const (
	MinLatitude  = 39.80
	MaxLatitude  = 40.20
	MinLongitude = -75.40
	MaxLongitude = -74.95
)

// Property is a rental listing. Records are owned by the property store and
// treated as read-only by the retrieval pipeline.
type Property struct {
	ID        string  `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	Address   string  `json:"address" db:"address"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
	// Price is the monthly per-person rate in dollars.
	Price     float64  `json:"price" db:"price"`
	Bedrooms  float64  `json:"bedrooms" db:"bedrooms"`
	Bathrooms float64  `json:"bathrooms" db:"bathrooms"`
	Amenities []string `json:"amenities" db:"amenities"`
	Description string `json:"description" db:"description"`
	// WalkingDistanceToWharton is in minutes; nil means unknown, not zero.
	WalkingDistanceToWharton *int `json:"walkingDistanceToWharton,omitempty" db:"walking_distance"`
}

// Validate checks that the property is a well-formed listing inside the
// serviceable area. Used at ingestion; the retrieval core never re-validates.
func (p *Property) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("property has no id")
	}
	if p.Name == "" {
		return fmt.Errorf("property %s has no name", p.ID)
	}
	if p.Price <= 0 {
		return fmt.Errorf("property %s has non-positive price %.0f", p.ID, p.Price)
	}
	if p.Bedrooms <= 0 || p.Bathrooms <= 0 {
		return fmt.Errorf("property %s has non-positive room counts", p.ID)
	}
	if p.Latitude < MinLatitude || p.Latitude > MaxLatitude ||
		p.Longitude < MinLongitude || p.Longitude > MaxLongitude {
		return fmt.Errorf("property %s is outside the serviceable area (%.4f, %.4f)", p.ID, p.Latitude, p.Longitude)
	}
	if p.WalkingDistanceToWharton != nil && *p.WalkingDistanceToWharton < 0 {
		return fmt.Errorf("property %s has negative walking distance", p.ID)
	}
	return nil
}

// HasAmenity reports whether any amenity tag contains s, case-insensitive.
func (p *Property) HasAmenity(s string) bool {
	s = strings.ToLower(s)
	for _, a := range p.Amenities {
		if strings.Contains(strings.ToLower(a), s) {
			return true
		}
	}
	return false
}

// WalkingDistance returns the walking distance and whether it is known.
func (p *Property) WalkingDistance() (int, bool) {
	if p.WalkingDistanceToWharton == nil {
		return 0, false
	}
	return *p.WalkingDistanceToWharton, true
}

// IntPtr is a convenience for building optional walking distances.
func IntPtr(v int) *int { return &v }
