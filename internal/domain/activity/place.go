package activity

import (
	"context"

	"github.com/wayfarer-travel/service-travel/internal/domain/geo"
)

const defaultCategory = "point_of_interest"

// CandidatePlace is a point of interest returned by a places lookup.
type CandidatePlace struct {
	ID          string
	Location    geo.Coordinate
	Name        string
	Description string
	Types       []string
	Rating      float64
}

// HasType reports whether the place carries the given tag.
func (p CandidatePlace) HasType(c PertinentCategory) bool {
	for _, t := range p.Types {
		if t == string(c) {
			return true
		}
	}
	return false
}

// Category is the place's first tag, or point_of_interest when untagged.
func (p CandidatePlace) Category() string {
	if len(p.Types) == 0 {
		return defaultCategory
	}
	return p.Types[0]
}

// IsPertinent reports whether the place's tags intersect the pertinent universe.
func (p CandidatePlace) IsPertinent() bool {
	return IsPertinent(p.Types)
}

// PlacesFinder looks up places around a point.
type PlacesFinder interface {
	// Nearby returns places within radiusMeters of point matching the given type.
	Nearby(ctx context.Context, point geo.Coordinate, radiusMeters float64, placeType PertinentCategory) ([]CandidatePlace, error)
}
