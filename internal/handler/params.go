package handler

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wayfarer-travel/service-travel/internal/domain/geo"
)

// queryFloat parses a required float query parameter.
func queryFloat(c *gin.Context, key string) (float64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return 0, fmt.Errorf("missing query parameter: %s", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid query parameter %s: %q", key, raw)
	}
	return v, nil
}

// optionalFloat parses a float query parameter, returning def when absent.
func optionalFloat(c *gin.Context, key string, def float64) (float64, error) {
	if raw, ok := c.GetQuery(key); !ok || raw == "" {
		return def, nil
	}
	return queryFloat(c, key)
}

// queryCoordinate parses a lat/lon query parameter pair.
func queryCoordinate(c *gin.Context, latKey, lonKey string) (geo.Coordinate, error) {
	lat, err := queryFloat(c, latKey)
	if err != nil {
		return geo.Coordinate{}, err
	}
	lng, err := queryFloat(c, lonKey)
	if err != nil {
		return geo.Coordinate{}, err
	}
	return geo.Coordinate{Lat: lat, Lng: lng}, nil
}

// queryEndpoints parses start_lat/start_lon/end_lat/end_lon.
func queryEndpoints(c *gin.Context) (geo.Coordinate, geo.Coordinate, error) {
	start, err := queryCoordinate(c, "start_lat", "start_lon")
	if err != nil {
		return geo.Coordinate{}, geo.Coordinate{}, err
	}
	end, err := queryCoordinate(c, "end_lat", "end_lon")
	if err != nil {
		return geo.Coordinate{}, geo.Coordinate{}, err
	}
	return start, end, nil
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
