// Package google adapts the Google Maps Platform client to the travel service ports.
package google

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"github.com/wayfarer-travel/service-travel/internal/domain/activity"
	"github.com/wayfarer-travel/service-travel/internal/domain/geo"
	"github.com/wayfarer-travel/service-travel/internal/domain/route"
)

// maxNearbyRadius is the largest radius the Places nearby search accepts.
const maxNearbyRadius = 50000

// mapsAPI is the subset of *maps.Client used here.
type mapsAPI interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// Client implements route.DirectionsProvider, route.Geocoder and activity.PlacesFinder.
type Client struct {
	api    mapsAPI
	logger *zap.Logger
}

// NewClient creates a Google Maps client authenticated with apiKey.
func NewClient(apiKey string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	api, err := maps.NewClient(
		maps.WithAPIKey(apiKey),
		maps.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create google maps client: %w", err)
	}
	return &Client{api: api, logger: logger}, nil
}

// Directions returns the routes between origin and destination, departing now.
func (c *Client) Directions(ctx context.Context, origin, destination geo.Coordinate, mode route.TravelMode) ([]route.Route, error) {
	routes, _, err := c.api.Directions(ctx, &maps.DirectionsRequest{
		Origin:        origin.String(),
		Destination:   destination.String(),
		Mode:          maps.Mode(mode),
		DepartureTime: "now",
	})
	if err != nil {
		return nil, fmt.Errorf("google directions: %w", err)
	}

	result := make([]route.Route, len(routes))
	for i, r := range routes {
		result[i] = toRoute(r)
	}
	return result, nil
}

// Nearby runs a Places nearby search around point.
func (c *Client) Nearby(ctx context.Context, point geo.Coordinate, radiusMeters float64, placeType activity.PertinentCategory) ([]activity.CandidatePlace, error) {
	radius := uint(math.Round(math.Min(radiusMeters, maxNearbyRadius)))
	resp, err := c.api.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: point.Lat, Lng: point.Lng},
		Radius:   radius,
		Type:     maps.PlaceType(placeType),
	})
	if err != nil {
		return nil, fmt.Errorf("google nearby search: %w", err)
	}

	c.logger.Debug("nearby search",
		zap.String("point", point.String()),
		zap.Uint("radius", radius),
		zap.Int("results", len(resp.Results)),
	)

	places := make([]activity.CandidatePlace, len(resp.Results))
	for i, p := range resp.Results {
		places[i] = toCandidatePlace(p)
	}
	return places, nil
}

// Geocode resolves address in the given language.
func (c *Client) Geocode(ctx context.Context, address, language string) ([]route.GeocodeResult, error) {
	results, err := c.api.Geocode(ctx, &maps.GeocodingRequest{
		Address:  address,
		Language: language,
	})
	if err != nil {
		return nil, fmt.Errorf("google geocode: %w", err)
	}

	out := make([]route.GeocodeResult, len(results))
	for i, r := range results {
		out[i] = route.GeocodeResult{
			FormattedAddress: r.FormattedAddress,
			PlaceID:          r.PlaceID,
			Location:         geo.Coordinate{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
			Types:            r.Types,
		}
	}
	return out, nil
}

func toRoute(r maps.Route) route.Route {
	legs := make([]route.Leg, 0, len(r.Legs))
	for _, leg := range r.Legs {
		if leg == nil {
			continue
		}
		steps := make([]route.Step, 0, len(leg.Steps))
		for _, step := range leg.Steps {
			if step == nil {
				continue
			}
			steps = append(steps, route.Step{
				Polyline: route.Polyline{Points: step.Polyline.Points},
				Distance: toDistance(step.Distance),
				Duration: toDuration(step.Duration),
			})
		}
		legs = append(legs, route.Leg{
			Distance: toDistance(leg.Distance),
			Duration: toDuration(leg.Duration),
			Steps:    steps,
		})
	}
	return route.Route{
		OverviewPolyline: route.Polyline{Points: r.OverviewPolyline.Points},
		Legs:             legs,
	}
}

func toDistance(d maps.Distance) route.Distance {
	return route.Distance{Text: d.HumanReadable, Value: d.Meters}
}

func toDuration(d time.Duration) route.Duration {
	return route.Duration{Text: humanDuration(d), Value: int(d.Round(time.Second) / time.Second)}
}

func toCandidatePlace(p maps.PlacesSearchResult) activity.CandidatePlace {
	return activity.CandidatePlace{
		ID:          p.PlaceID,
		Location:    geo.Coordinate{Lat: p.Geometry.Location.Lat, Lng: p.Geometry.Location.Lng},
		Name:        p.Name,
		Description: p.Vicinity,
		Types:       p.Types,
		Rating:      float64(p.Rating),
	}
}

// humanDuration renders d the way the Directions API labels durations, e.g. "1 hour 5 mins".
func humanDuration(d time.Duration) string {
	minutes := int(math.Round(d.Minutes()))
	if minutes < 1 {
		return "1 min"
	}

	days := minutes / (24 * 60)
	hours := (minutes % (24 * 60)) / 60
	mins := minutes % 60

	switch {
	case days > 0:
		if hours == 0 {
			return plural(days, "day")
		}
		return plural(days, "day") + " " + plural(hours, "hour")
	case hours > 0:
		if mins == 0 {
			return plural(hours, "hour")
		}
		return plural(hours, "hour") + " " + plural(mins, "min")
	default:
		return plural(mins, "min")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
