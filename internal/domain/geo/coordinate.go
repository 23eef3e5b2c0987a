package geo

import "fmt"

// Coordinate is a latitude/longitude pair in decimal degrees.
// Values are not range-checked.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String formats the coordinate as "lat,lng", the form accepted by map providers.
func (c Coordinate) String() string {
	return fmt.Sprintf("%g,%g", c.Lat, c.Lng)
}
