package route

// Distance is a provider distance: display text and value in meters.
type Distance struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// Duration is a provider duration: display text and value in seconds.
type Duration struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// Polyline holds an encoded polyline.
type Polyline struct {
	Points string `json:"points"`
}

// Step is the smallest unit of a leg.
type Step struct {
	Polyline Polyline `json:"polyline"`
	Distance Distance `json:"distance"`
	Duration Duration `json:"duration"`
}

// Leg is the part of a route between two waypoints.
type Leg struct {
	Distance Distance `json:"distance"`
	Duration Duration `json:"duration"`
	Steps    []Step   `json:"steps"`
}

// Route is a driving (or other mode) route as returned by the directions provider.
// It is read-only once produced.
type Route struct {
	OverviewPolyline Polyline `json:"overview_polyline"`
	Legs             []Leg    `json:"legs"`
}

// TotalDistanceMeters sums leg distances.
func (r Route) TotalDistanceMeters() int {
	total := 0
	for _, leg := range r.Legs {
		total += leg.Distance.Value
	}
	return total
}

// TotalDurationSeconds sums leg durations.
func (r Route) TotalDurationSeconds() int {
	total := 0
	for _, leg := range r.Legs {
		total += leg.Duration.Value
	}
	return total
}
