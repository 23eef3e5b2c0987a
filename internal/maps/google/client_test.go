package google

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"github.com/wayfarer-travel/service-travel/internal/domain/activity"
	"github.com/wayfarer-travel/service-travel/internal/domain/geo"
	"github.com/wayfarer-travel/service-travel/internal/domain/route"
)

type fakeAPI struct {
	directionsReq *maps.DirectionsRequest
	nearbyReq     *maps.NearbySearchRequest
	geocodeReq    *maps.GeocodingRequest
	routes        []maps.Route
	places        maps.PlacesSearchResponse
	err           error
}

func (f *fakeAPI) Directions(_ context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error) {
	f.directionsReq = r
	return f.routes, nil, f.err
}

func (f *fakeAPI) NearbySearch(_ context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error) {
	f.nearbyReq = r
	return f.places, f.err
}

func (f *fakeAPI) Geocode(_ context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
	f.geocodeReq = r
	if f.err != nil {
		return nil, f.err
	}
	res := maps.GeocodingResult{FormattedAddress: "Champ de Mars, Paris", PlaceID: "g1", Types: []string{"premise"}}
	res.Geometry.Location = maps.LatLng{Lat: 48.8584, Lng: 2.2945}
	return []maps.GeocodingResult{res}, nil
}

func TestDirections_MapsRouteShape(t *testing.T) {
	step := &maps.Step{Duration: 95 * time.Second}
	step.Polyline.Points = "_p~iF~ps|U"
	step.Distance = maps.Distance{HumanReadable: "0.3 km", Meters: 300}

	leg := &maps.Leg{Steps: []*maps.Step{step}, Duration: 65 * time.Minute}
	leg.Distance = maps.Distance{HumanReadable: "52 km", Meters: 52000}

	r := maps.Route{Legs: []*maps.Leg{leg}}
	r.OverviewPolyline.Points = "_p~iF~ps|U_ulLnnqC"

	api := &fakeAPI{routes: []maps.Route{r}}
	c := &Client{api: api, logger: zap.NewNop()}

	routes, err := c.Directions(context.Background(), geo.Coordinate{Lat: 48.85, Lng: 2.35}, geo.Coordinate{Lat: 45.76, Lng: 4.83}, route.ModeWalking)
	require.NoError(t, err)
	require.Len(t, routes, 1)

	got := routes[0]
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC", got.OverviewPolyline.Points)
	require.Len(t, got.Legs, 1)
	assert.Equal(t, route.Distance{Text: "52 km", Value: 52000}, got.Legs[0].Distance)
	assert.Equal(t, route.Duration{Text: "1 hour 5 mins", Value: 3900}, got.Legs[0].Duration)
	require.Len(t, got.Legs[0].Steps, 1)
	assert.Equal(t, "_p~iF~ps|U", got.Legs[0].Steps[0].Polyline.Points)
	assert.Equal(t, 95, got.Legs[0].Steps[0].Duration.Value)

	assert.Equal(t, "48.85,2.35", api.directionsReq.Origin)
	assert.Equal(t, maps.Mode("walking"), api.directionsReq.Mode)
	assert.Equal(t, "now", api.directionsReq.DepartureTime)
}

func TestDirections_Error(t *testing.T) {
	c := &Client{api: &fakeAPI{err: errors.New("REQUEST_DENIED")}, logger: zap.NewNop()}
	_, err := c.Directions(context.Background(), geo.Coordinate{}, geo.Coordinate{}, route.ModeDriving)
	assert.ErrorContains(t, err, "REQUEST_DENIED")
}

func TestNearby_MapsResults(t *testing.T) {
	p := maps.PlacesSearchResult{
		PlaceID:  "ChIJ123",
		Name:     "Musée d'Orsay",
		Vicinity: "1 Rue de la Légion d'Honneur, Paris",
		Rating:   4.5,
		Types:    []string{"museum", "point_of_interest"},
	}
	p.Geometry.Location = maps.LatLng{Lat: 48.86, Lng: 2.3266}

	api := &fakeAPI{places: maps.PlacesSearchResponse{Results: []maps.PlacesSearchResult{p}}}
	c := &Client{api: api, logger: zap.NewNop()}

	places, err := c.Nearby(context.Background(), geo.Coordinate{Lat: 48.86, Lng: 2.33}, 1500.4, activity.CategoryMuseum)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "ChIJ123", places[0].ID)
	assert.Equal(t, "1 Rue de la Légion d'Honneur, Paris", places[0].Description)
	assert.InDelta(t, 4.5, places[0].Rating, 1e-6)
	assert.Equal(t, geo.Coordinate{Lat: 48.86, Lng: 2.3266}, places[0].Location)

	assert.Equal(t, uint(1500), api.nearbyReq.Radius)
	assert.Equal(t, maps.PlaceType("museum"), api.nearbyReq.Type)
}

func TestNearby_ClampsRadius(t *testing.T) {
	api := &fakeAPI{}
	c := &Client{api: api, logger: zap.NewNop()}

	_, err := c.Nearby(context.Background(), geo.Coordinate{}, 120000, activity.CategoryPark)
	require.NoError(t, err)
	assert.Equal(t, uint(50000), api.nearbyReq.Radius)
}

func TestGeocode_PassesLanguage(t *testing.T) {
	api := &fakeAPI{}
	c := &Client{api: api, logger: zap.NewNop()}

	results, err := c.Geocode(context.Background(), "Tour Eiffel", "fr")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "g1", results[0].PlaceID)
	assert.Equal(t, "fr", api.geocodeReq.Language)
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "1 min", humanDuration(20*time.Second))
	assert.Equal(t, "12 mins", humanDuration(12*time.Minute))
	assert.Equal(t, "1 hour", humanDuration(time.Hour))
	assert.Equal(t, "2 hours 1 min", humanDuration(121*time.Minute))
	assert.Equal(t, "1 day 3 hours", humanDuration(27*time.Hour))
}
