package route

import (
	"context"
	"fmt"

	"github.com/wayfarer-travel/service-travel/internal/domain/geo"
)

// TravelMode selects how the route is travelled.
type TravelMode string

const (
	ModeDriving   TravelMode = "driving"
	ModeWalking   TravelMode = "walking"
	ModeBicycling TravelMode = "bicycling"
	ModeTransit   TravelMode = "transit"
)

// IsValid returns true if the mode is recognized.
func (m TravelMode) IsValid() bool {
	switch m {
	case ModeDriving, ModeWalking, ModeBicycling, ModeTransit:
		return true
	}
	return false
}

// ParseTravelMode converts a string to a TravelMode, defaulting to driving when empty.
func ParseTravelMode(s string) (TravelMode, error) {
	if s == "" {
		return ModeDriving, nil
	}
	mode := TravelMode(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid travel mode: %s", s)
	}
	return mode, nil
}

// DirectionsProvider computes routes between two coordinates.
type DirectionsProvider interface {
	// Directions returns candidate routes, best first. An empty slice means no route exists.
	Directions(ctx context.Context, origin, destination geo.Coordinate, mode TravelMode) ([]Route, error)
}

// GeocodeResult is a single geocoding match.
type GeocodeResult struct {
	FormattedAddress string         `json:"formatted_address"`
	PlaceID          string         `json:"place_id"`
	Location         geo.Coordinate `json:"location"`
	Types            []string       `json:"types"`
}

// Geocoder resolves free-text addresses.
type Geocoder interface {
	Geocode(ctx context.Context, address, language string) ([]GeocodeResult, error)
}
