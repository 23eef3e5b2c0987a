package route

import (
	"math"

	"github.com/wayfarer-travel/service-travel/internal/domain/geo"
	"github.com/wayfarer-travel/service-travel/internal/platform/apperr"
)

// Sample returns the subsequence of points spaced at least minSpacingKm apart.
//
// The first point is always kept. For every later point the distance from the
// last kept point is added to a running total; once the total reaches
// minSpacingKm the point is kept and the total resets to zero.
func Sample(points []geo.Coordinate, minSpacingKm float64) ([]geo.Coordinate, error) {
	indices, err := SampleIndices(points, minSpacingKm)
	if err != nil {
		return nil, err
	}

	sampled := make([]geo.Coordinate, len(indices))
	for i, idx := range indices {
		sampled[i] = points[idx]
	}
	return sampled, nil
}

// SampleIndices is Sample returning positions in points instead of coordinates.
func SampleIndices(points []geo.Coordinate, minSpacingKm float64) ([]int, error) {
	if len(points) == 0 {
		return nil, apperr.NewInvalidArgumentError("route has no points to sample")
	}
	if math.IsNaN(minSpacingKm) || minSpacingKm <= 0 {
		return nil, apperr.NewInvalidArgumentError("sampling distance must be positive")
	}

	indices := []int{0}
	last := points[0]
	acc := 0.0

	for i := 1; i < len(points); i++ {
		acc += geo.DistanceKm(last, points[i])
		if acc >= minSpacingKm {
			indices = append(indices, i)
			last = points[i]
			acc = 0
		}
	}
	return indices, nil
}

// EvenlySpacedStepPoints decodes every step polyline of r, concatenates the
// points and, when there are more than n, keeps every len/n-th point.
func EvenlySpacedStepPoints(r Route, n int) ([]geo.Coordinate, error) {
	if n < 1 {
		return nil, apperr.NewInvalidArgumentError("point count must be positive")
	}

	var points []geo.Coordinate
	for _, leg := range r.Legs {
		for _, step := range leg.Steps {
			decoded, err := geo.DecodePolyline(step.Polyline.Points)
			if err != nil {
				return nil, err
			}
			points = append(points, decoded...)
		}
	}

	if len(points) <= n {
		return points, nil
	}

	stride := len(points) / n
	spaced := make([]geo.Coordinate, 0, len(points)/stride+1)
	for i := 0; i < len(points); i += stride {
		spaced = append(spaced, points[i])
	}
	return spaced, nil
}
