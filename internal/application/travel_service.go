package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wayfarer-travel/service-travel/internal/domain/activity"
	"github.com/wayfarer-travel/service-travel/internal/domain/geo"
	"github.com/wayfarer-travel/service-travel/internal/domain/route"
	"github.com/wayfarer-travel/service-travel/internal/events"
	"github.com/wayfarer-travel/service-travel/internal/platform/apperr"
	"github.com/wayfarer-travel/service-travel/internal/platform/metrics"
)

const (
	DefaultNearbyRadiusMeters     = 1000.0
	DefaultAlongRouteRadiusMeters = 1500.0
	DefaultSamplingDistanceKm     = 50.0
	defaultGeocodeLanguage        = "fr"
	nearbyActivityType            = activity.CategoryMonument
)

// ActivityDTO is the response representation of a place found for a traveller.
type ActivityDTO struct {
	Position    geo.Coordinate `json:"position"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Types       []string       `json:"types"`
	Rating      float64        `json:"rating"`
	PlaceID     string         `json:"place_id"`
}

// RouteWithActivitiesDTO is the response of the nearby-activities route search.
type RouteWithActivitiesDTO struct {
	Route            route.Route   `json:"route"`
	NearbyActivities []ActivityDTO `json:"nearby_activities"`
}

// ActivitiesAlongRouteDTO is the response of the along-route search.
type ActivitiesAlongRouteDTO struct {
	RouteID    *uuid.UUID    `json:"route_id,omitempty"`
	Route      route.Route   `json:"route"`
	Activities []ActivityDTO `json:"activities"`
}

// SavedActivityDTO is an activity attached to a saved route.
type SavedActivityDTO struct {
	ActivityDTO
	ActivityID          uuid.UUID `json:"activity_id"`
	DistanceFromRouteKm float64   `json:"distance_from_route_km"`
}

// SavedRouteDTO is the response representation of a persisted route.
type SavedRouteDTO struct {
	ID              uuid.UUID          `json:"id"`
	Start           geo.Coordinate     `json:"start"`
	End             geo.Coordinate     `json:"end"`
	DistanceKm      float64            `json:"distance_km"`
	DurationSeconds int                `json:"duration_seconds"`
	Polyline        string             `json:"polyline"`
	Activities      []SavedActivityDTO `json:"activities"`
	CreatedAt       time.Time          `json:"created_at"`
}

// AlongRouteQuery holds the parameters of an along-route search.
type AlongRouteQuery struct {
	Start              geo.Coordinate
	End                geo.Coordinate
	ActivityType       activity.PertinentCategory
	RadiusMeters       float64
	SamplingDistanceKm float64
}

// TravelServiceOptions configures a TravelService.
type TravelServiceOptions struct {
	Aggregator       AggregatorOptions
	RequestTimeout   time.Duration
	NearbyStepPoints int
	GeocodeLanguage  string
}

// TravelService is the application service for routes and activities.
type TravelService struct {
	directions route.DirectionsProvider
	places     activity.PlacesFinder
	geocoder   route.Geocoder
	routes     route.SavedRouteRepository
	aggregator *Aggregator
	publisher  EventPublisher
	opts       TravelServiceOptions
	logger     *zap.Logger
}

// NewTravelService creates a new TravelService. routes and publisher may be nil.
func NewTravelService(
	directions route.DirectionsProvider,
	places activity.PlacesFinder,
	geocoder route.Geocoder,
	routes route.SavedRouteRepository,
	publisher EventPublisher,
	opts TravelServiceOptions,
	logger *zap.Logger,
) *TravelService {
	if opts.NearbyStepPoints < 1 {
		opts.NearbyStepPoints = 10
	}
	if opts.GeocodeLanguage == "" {
		opts.GeocodeLanguage = defaultGeocodeLanguage
	}
	return &TravelService{
		directions: directions,
		places:     places,
		geocoder:   geocoder,
		routes:     routes,
		aggregator: NewAggregator(places, opts.Aggregator, logger),
		publisher:  publisher,
		opts:       opts,
		logger:     logger,
	}
}

// NearbyActivities returns pertinent places around a point.
func (s *TravelService) NearbyActivities(ctx context.Context, point geo.Coordinate, radiusMeters float64) ([]ActivityDTO, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	if radiusMeters <= 0 {
		return nil, apperr.NewValidationError("radius must be positive")
	}

	places, err := s.aggregator.lookup(ctx, point, radiusMeters, nearbyActivityType)
	if err != nil {
		return nil, err
	}

	result := make([]ActivityDTO, 0, len(places))
	for _, p := range places {
		if p.IsPertinent() {
			result = append(result, toActivityDTO(p))
		}
	}
	return result, nil
}

// Directions returns the best route between two points.
func (s *TravelService) Directions(ctx context.Context, start, end geo.Coordinate, mode string) (*route.Route, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	travelMode, err := route.ParseTravelMode(mode)
	if err != nil {
		return nil, apperr.NewValidationError(err.Error())
	}
	return s.bestRoute(ctx, start, end, travelMode)
}

// RouteWithNearbyActivities returns the route between two points and the best
// pertinent place around evenly spaced points of its steps.
func (s *TravelService) RouteWithNearbyActivities(ctx context.Context, start, end geo.Coordinate, radiusMeters float64, mode string) (*RouteWithActivitiesDTO, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	travelMode, err := route.ParseTravelMode(mode)
	if err != nil {
		return nil, apperr.NewValidationError(err.Error())
	}
	if radiusMeters <= 0 {
		return nil, apperr.NewValidationError("radius must be positive")
	}

	r, err := s.bestRoute(ctx, start, end, travelMode)
	if err != nil {
		return nil, err
	}

	points, err := route.EvenlySpacedStepPoints(*r, s.opts.NearbyStepPoints)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("route step points selected", zap.Int("points", len(points)))

	matches, err := s.aggregator.collect(ctx, points, radiusMeters, nearbyActivityType)
	if err != nil {
		return nil, err
	}

	return &RouteWithActivitiesDTO{
		Route:            *r,
		NearbyActivities: matchesToDTOs(matches),
	}, nil
}

// ActivitiesAlongRoute returns the driving route between two points and the
// activities of the requested type found along it. The result is saved and
// announced on a best-effort basis.
func (s *TravelService) ActivitiesAlongRoute(ctx context.Context, q AlongRouteQuery) (*ActivitiesAlongRouteDTO, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	if !q.ActivityType.IsValid() {
		return nil, apperr.NewValidationError("invalid activity type: " + string(q.ActivityType))
	}
	if q.RadiusMeters <= 0 {
		return nil, apperr.NewValidationError("radius must be positive")
	}

	r, err := s.bestRoute(ctx, q.Start, q.End, route.ModeDriving)
	if err != nil {
		return nil, err
	}

	matches, sampleCount, err := s.aggregator.alongRoute(ctx, *r, q.ActivityType, q.RadiusMeters, q.SamplingDistanceKm)
	if err != nil {
		return nil, err
	}

	s.logger.Info("activities found along route",
		zap.String("activity_type", q.ActivityType.String()),
		zap.Int("sample_points", sampleCount),
		zap.Int("activities", len(matches)),
	)

	result := &ActivitiesAlongRouteDTO{
		Route:      *r,
		Activities: matchesToDTOs(matches),
	}
	result.RouteID = s.saveRoute(ctx, q, *r, matches)
	s.publishActivitiesFound(ctx, q, result, sampleCount)
	return result, nil
}

// Geocode resolves a free-text address.
func (s *TravelService) Geocode(ctx context.Context, address string) ([]route.GeocodeResult, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	address = strings.TrimSpace(address)
	if address == "" {
		return nil, apperr.NewValidationError("address is required")
	}

	start := time.Now()
	results, err := s.geocoder.Geocode(ctx, address, s.opts.GeocodeLanguage)
	metrics.ObserveUpstream("geocode", start, err)
	if err != nil {
		return nil, upstreamError("geocode", err)
	}
	return results, nil
}

// SavedRoute retrieves a persisted route with its activities.
func (s *TravelService) SavedRoute(ctx context.Context, id uuid.UUID) (*SavedRouteDTO, error) {
	if s.routes == nil {
		return nil, apperr.NewNotFoundError("route", id.String())
	}
	saved, err := s.routes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toSavedRouteDTO(saved)
	return &result, nil
}

func (s *TravelService) bestRoute(ctx context.Context, start, end geo.Coordinate, mode route.TravelMode) (*route.Route, error) {
	began := time.Now()
	routes, err := s.directions.Directions(ctx, start, end, mode)
	metrics.ObserveUpstream("directions", began, err)
	if err != nil {
		return nil, upstreamError("directions", err)
	}
	if len(routes) == 0 {
		return nil, apperr.NewNotFoundError("route", "")
	}
	return &routes[0], nil
}

func (s *TravelService) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.RequestTimeout)
}

func (s *TravelService) saveRoute(ctx context.Context, q AlongRouteQuery, r route.Route, matches []routeMatch) *uuid.UUID {
	if s.routes == nil {
		return nil
	}

	saved := make([]route.SavedActivity, len(matches))
	for i, m := range matches {
		saved[i] = route.SavedActivity{
			Place:               m.place,
			DistanceFromRouteKm: geo.DistanceKm(m.point, m.place.Location),
		}
	}

	sr := route.NewSavedRoute(q.Start, q.End, r, saved)
	if err := s.routes.Save(ctx, sr); err != nil {
		s.logger.Error("failed to save route",
			zap.String("route_id", sr.ID.String()),
			zap.Error(err),
		)
		return nil
	}
	return &sr.ID
}

func (s *TravelService) publishActivitiesFound(ctx context.Context, q AlongRouteQuery, result *ActivitiesAlongRouteDTO, sampleCount int) {
	placeIDs := make([]string, len(result.Activities))
	for i, a := range result.Activities {
		placeIDs[i] = a.PlaceID
	}

	evt := events.RouteActivitiesFoundEvent{
		RouteID:      result.RouteID,
		StartLat:     q.Start.Lat,
		StartLng:     q.Start.Lng,
		EndLat:       q.End.Lat,
		EndLng:       q.End.Lng,
		ActivityType: q.ActivityType.String(),
		SamplePoints: sampleCount,
		PlaceIDs:     placeIDs,
		OccurredAt:   time.Now().UTC(),
	}

	key := q.Start.String() + "|" + q.End.String()
	if result.RouteID != nil {
		key = result.RouteID.String()
	}
	publishEvent(ctx, s.publisher, s.logger, events.TopicRouteEvents, events.RouteActivitiesFound, key, evt)
}

func toActivityDTO(p activity.CandidatePlace) ActivityDTO {
	types := p.Types
	if types == nil {
		types = []string{}
	}
	return ActivityDTO{
		Position:    p.Location,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category(),
		Types:       types,
		Rating:      p.Rating,
		PlaceID:     p.ID,
	}
}

func matchesToDTOs(matches []routeMatch) []ActivityDTO {
	dtos := make([]ActivityDTO, len(matches))
	for i, m := range matches {
		dtos[i] = toActivityDTO(m.place)
	}
	return dtos
}

func toSavedRouteDTO(sr *route.SavedRoute) SavedRouteDTO {
	activities := make([]SavedActivityDTO, len(sr.Activities))
	for i, a := range sr.Activities {
		activities[i] = SavedActivityDTO{
			ActivityDTO:         toActivityDTO(a.Place),
			ActivityID:          a.ActivityID,
			DistanceFromRouteKm: a.DistanceFromRouteKm,
		}
	}
	return SavedRouteDTO{
		ID:              sr.ID,
		Start:           sr.Start,
		End:             sr.End,
		DistanceKm:      sr.DistanceKm,
		DurationSeconds: sr.DurationSeconds,
		Polyline:        sr.Polyline,
		Activities:      activities,
		CreatedAt:       sr.CreatedAt,
	}
}
