package application

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wayfarer-travel/service-travel/internal/domain/activity"
	"github.com/wayfarer-travel/service-travel/internal/domain/geo"
	"github.com/wayfarer-travel/service-travel/internal/domain/route"
	"github.com/wayfarer-travel/service-travel/internal/platform/apperr"
	"github.com/wayfarer-travel/service-travel/internal/platform/metrics"
)

// AggregatorOptions tunes how places lookups are issued.
type AggregatorOptions struct {
	// Concurrency bounds in-flight lookups. 1 issues them one at a time.
	Concurrency int
	// LookupTimeout applies to each places lookup.
	LookupTimeout time.Duration
	// SkipFailedLookups drops a failing point instead of aborting the run.
	SkipFailedLookups bool
}

// routeMatch is a retained place and the sample point it was found around.
type routeMatch struct {
	place activity.CandidatePlace
	point geo.Coordinate
}

// Aggregator finds the best pertinent place around each point of a route.
type Aggregator struct {
	places activity.PlacesFinder
	opts   AggregatorOptions
	logger *zap.Logger
}

// NewAggregator creates a new Aggregator.
func NewAggregator(places activity.PlacesFinder, opts AggregatorOptions, logger *zap.Logger) *Aggregator {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Aggregator{
		places: places,
		opts:   opts,
		logger: logger,
	}
}

// FindActivitiesAlongRoute samples the route's overview polyline every
// samplingDistanceKm and returns at most one pertinent place per sample point,
// in traversal order and without repeated place IDs.
func (a *Aggregator) FindActivitiesAlongRoute(
	ctx context.Context,
	r route.Route,
	activityType activity.PertinentCategory,
	radiusMeters float64,
	samplingDistanceKm float64,
) ([]activity.CandidatePlace, error) {
	matches, _, err := a.alongRoute(ctx, r, activityType, radiusMeters, samplingDistanceKm)
	if err != nil {
		return nil, err
	}
	places := make([]activity.CandidatePlace, len(matches))
	for i, m := range matches {
		places[i] = m.place
	}
	return places, nil
}

func (a *Aggregator) alongRoute(
	ctx context.Context,
	r route.Route,
	activityType activity.PertinentCategory,
	radiusMeters float64,
	samplingDistanceKm float64,
) ([]routeMatch, int, error) {
	points, err := geo.DecodePolyline(r.OverviewPolyline.Points)
	if err != nil {
		return nil, 0, err
	}
	sampled, err := route.Sample(points, samplingDistanceKm)
	if err != nil {
		return nil, 0, err
	}
	metrics.SampledPoints.Observe(float64(len(sampled)))

	a.logger.Debug("route sampled",
		zap.Int("route_points", len(points)),
		zap.Int("sample_points", len(sampled)),
		zap.Float64("sampling_distance_km", samplingDistanceKm),
	)

	matches, err := a.collect(ctx, sampled, radiusMeters, activityType)
	if err != nil {
		return nil, 0, err
	}
	return matches, len(sampled), nil
}

// collect issues one lookup per point, then ranks the results in point order
// against a running set of already selected place IDs.
func (a *Aggregator) collect(
	ctx context.Context,
	points []geo.Coordinate,
	radiusMeters float64,
	placeType activity.PertinentCategory,
) ([]routeMatch, error) {
	results := make([][]activity.CandidatePlace, len(points))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Concurrency)
	for i, p := range points {
		i, p := i, p
		g.Go(func() error {
			places, err := a.lookup(gctx, p, radiusMeters, placeType)
			if err != nil {
				if a.opts.SkipFailedLookups && gctx.Err() == nil {
					a.logger.Warn("places lookup failed, skipping point",
						zap.Int("point_index", i),
						zap.String("point", p.String()),
						zap.Error(err),
					)
					return nil
				}
				return err
			}
			results[i] = places
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var matches []routeMatch
	for i, candidates := range results {
		best, ok := activity.RankBest(candidates, seen)
		if !ok || !best.IsPertinent() {
			continue
		}
		seen[best.ID] = struct{}{}
		matches = append(matches, routeMatch{place: best, point: points[i]})
	}
	return matches, nil
}

func (a *Aggregator) lookup(ctx context.Context, point geo.Coordinate, radiusMeters float64, placeType activity.PertinentCategory) ([]activity.CandidatePlace, error) {
	if a.opts.LookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.LookupTimeout)
		defer cancel()
	}

	start := time.Now()
	places, err := a.places.Nearby(ctx, point, radiusMeters, placeType)
	metrics.ObserveUpstream("places_nearby", start, err)
	if err != nil {
		return nil, upstreamError("places lookup", err)
	}
	return places, nil
}

// upstreamError wraps err as an upstream failure unless it already carries a kind.
func upstreamError(operation string, err error) error {
	if apperr.KindOf(err) != "" {
		return err
	}
	return apperr.NewUpstreamError(operation, err)
}
