package geo

import (
	"github.com/twpayne/go-polyline"

	"github.com/wayfarer-travel/service-travel/internal/platform/apperr"
)

// DecodePolyline decodes a Google encoded polyline (1e-5 precision).
// An empty string decodes to an empty slice.
func DecodePolyline(encoded string) ([]Coordinate, error) {
	if encoded == "" {
		return []Coordinate{}, nil
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, apperr.NewDecodeError(err)
	}

	points := make([]Coordinate, len(coords))
	for i, c := range coords {
		points[i] = Coordinate{Lat: c[0], Lng: c[1]}
	}
	return points, nil
}

// EncodePolyline encodes points with the Google polyline algorithm.
func EncodePolyline(points []Coordinate) string {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Lat, p.Lng}
	}
	return string(polyline.EncodeCoords(coords))
}
