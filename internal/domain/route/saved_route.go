package route

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarer-travel/service-travel/internal/domain/activity"
	"github.com/wayfarer-travel/service-travel/internal/domain/geo"
)

// SavedActivity is an activity attached to a persisted route.
type SavedActivity struct {
	ActivityID uuid.UUID
	Place      activity.CandidatePlace
	// DistanceFromRouteKm is measured from the sample point the place was found around.
	DistanceFromRouteKm float64
}

// SavedRoute is a route and the activities found along it.
type SavedRoute struct {
	ID              uuid.UUID
	Start           geo.Coordinate
	End             geo.Coordinate
	DistanceKm      float64
	DurationSeconds int
	Polyline        string
	Activities      []SavedActivity
	CreatedAt       time.Time
}

// NewSavedRoute builds a SavedRoute from a provider route.
func NewSavedRoute(start, end geo.Coordinate, r Route, activities []SavedActivity) *SavedRoute {
	return &SavedRoute{
		ID:              uuid.New(),
		Start:           start,
		End:             end,
		DistanceKm:      float64(r.TotalDistanceMeters()) / 1000,
		DurationSeconds: r.TotalDurationSeconds(),
		Polyline:        r.OverviewPolyline.Points,
		Activities:      activities,
		CreatedAt:       time.Now().UTC(),
	}
}

// SavedRouteRepository persists routes with their activities.
type SavedRouteRepository interface {
	// Save stores the route, upserting activities by place ID.
	Save(ctx context.Context, r *SavedRoute) error

	// FindByID retrieves a route and its activities.
	FindByID(ctx context.Context, id uuid.UUID) (*SavedRoute, error)
}
