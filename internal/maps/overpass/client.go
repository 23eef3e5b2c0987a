// Package overpass finds places in OpenStreetMap through the Overpass API.
package overpass

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/serjvanilla/go-overpass"
	"go.uber.org/zap"

	"github.com/wayfarer-travel/service-travel/internal/domain/activity"
	"github.com/wayfarer-travel/service-travel/internal/domain/geo"
)

// querier is the subset of overpass.Client used here.
type querier interface {
	Query(query string) (overpass.Result, error)
}

// Client implements activity.PlacesFinder on top of Overpass.
type Client struct {
	client  querier
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates a Client for the given Overpass interpreter endpoint.
func NewClient(endpoint string, timeout time.Duration, logger *zap.Logger) *Client {
	httpClient := &http.Client{
		Timeout: timeout,
	}
	client := overpass.NewWithSettings(endpoint, 2, httpClient)
	return &Client{
		client:  &client,
		timeout: timeout,
		logger:  logger,
	}
}

// Nearby returns tagged nodes and ways within radiusMeters of point. OSM has no
// ratings, so every place has rating 0.
func (c *Client) Nearby(ctx context.Context, point geo.Coordinate, radiusMeters float64, placeType activity.PertinentCategory) ([]activity.CandidatePlace, error) {
	query := buildQuery(point, radiusMeters, placeType, c.timeout)

	result, err := c.executeQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("overpass nearby %s: %w", placeType, err)
	}

	places := convertToPlaces(result)
	c.logger.Debug("overpass nearby",
		zap.String("point", point.String()),
		zap.String("type", placeType.String()),
		zap.Int("results", len(places)),
	)
	return places, nil
}

func (c *Client) executeQuery(ctx context.Context, query string) (*overpass.Result, error) {
	type outcome struct {
		result overpass.Result
		err    error
	}

	// The client has no context support; its HTTP timeout bounds the goroutine.
	done := make(chan outcome, 1)
	go func() {
		result, err := c.client.Query(query)
		done <- outcome{result: result, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		if o.err != nil {
			return nil, fmt.Errorf("overpass query failed: %w", o.err)
		}
		return &o.result, nil
	}
}

// buildQuery selects nodes and ways matching placeType around point. Way nodes
// are recursed so way centres can be computed.
func buildQuery(point geo.Coordinate, radiusMeters float64, placeType activity.PertinentCategory, timeout time.Duration) string {
	around := fmt.Sprintf("(around:%.0f,%f,%f)", radiusMeters, point.Lat, point.Lng)

	var b strings.Builder
	fmt.Fprintf(&b, "[out:json][timeout:%d];\n(\n", int(timeout.Seconds()))
	for _, sel := range selectorsFor(placeType) {
		fmt.Fprintf(&b, "  node%s%s;\n", sel, around)
		fmt.Fprintf(&b, "  way%s%s;\n", sel, around)
	}
	b.WriteString(");\nout body;\n>;\nout skel qt;\n")
	return b.String()
}

func convertToPlaces(result *overpass.Result) []activity.CandidatePlace {
	var places []activity.CandidatePlace

	for _, node := range result.Nodes {
		if node == nil || len(node.Tags) == 0 {
			continue
		}
		types := categoriesFor(node.Tags)
		if len(types) == 0 {
			continue
		}
		places = append(places, activity.CandidatePlace{
			ID:          fmt.Sprintf("osm:node/%d", node.ID),
			Location:    geo.Coordinate{Lat: node.Lat, Lng: node.Lon},
			Name:        node.Tags["name"],
			Description: describe(node.Tags),
			Types:       types,
		})
	}

	for _, way := range result.Ways {
		if way == nil || len(way.Tags) == 0 {
			continue
		}
		types := categoriesFor(way.Tags)
		if len(types) == 0 {
			continue
		}

		var lat, lon float64
		count := 0
		for _, n := range way.Nodes {
			if n == nil {
				continue
			}
			lat += n.Lat
			lon += n.Lon
			count++
		}
		if count > 0 {
			lat /= float64(count)
			lon /= float64(count)
		}

		places = append(places, activity.CandidatePlace{
			ID:          fmt.Sprintf("osm:way/%d", way.ID),
			Location:    geo.Coordinate{Lat: lat, Lng: lon},
			Name:        way.Tags["name"],
			Description: describe(way.Tags),
			Types:       types,
		})
	}

	// Results arrive in maps; order by ID so ranking ties are stable.
	sort.Slice(places, func(i, j int) bool { return places[i].ID < places[j].ID })
	return places
}

// describe builds a short address from addr:* tags.
func describe(tags map[string]string) string {
	var parts []string
	street := strings.TrimSpace(tags["addr:housenumber"] + " " + tags["addr:street"])
	if street != "" {
		parts = append(parts, street)
	}
	if city := tags["addr:city"]; city != "" {
		parts = append(parts, city)
	}
	return strings.Join(parts, ", ")
}
