// Package cache memoizes geocoding results.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wayfarer-travel/service-travel/internal/domain/route"
	"github.com/wayfarer-travel/service-travel/internal/platform/metrics"
)

// Store is a TTL byte store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Geocoder caches a route.Geocoder. Store failures degrade to uncached calls.
type Geocoder struct {
	next   route.Geocoder
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewGeocoder wraps next with a cache in store.
func NewGeocoder(next route.Geocoder, store Store, ttl time.Duration, logger *zap.Logger) *Geocoder {
	return &Geocoder{next: next, store: store, ttl: ttl, logger: logger}
}

// Geocode returns cached results for address and language, calling through on a miss.
func (g *Geocoder) Geocode(ctx context.Context, address, language string) ([]route.GeocodeResult, error) {
	key := cacheKey(address, language)

	raw, ok, err := g.store.Get(ctx, key)
	if err != nil {
		g.logger.Warn("geocode cache read failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		var results []route.GeocodeResult
		if err := json.Unmarshal(raw, &results); err == nil {
			metrics.CacheHits.WithLabelValues("geocode").Inc()
			return results, nil
		}
		g.logger.Warn("discarding corrupt geocode cache entry", zap.String("key", key))
	}
	metrics.CacheMisses.WithLabelValues("geocode").Inc()

	results, err := g.next.Geocode(ctx, address, language)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(results)
	if err != nil {
		g.logger.Warn("failed to encode geocode results", zap.Error(err))
		return results, nil
	}
	if err := g.store.Set(ctx, key, payload, g.ttl); err != nil {
		g.logger.Warn("geocode cache write failed", zap.String("key", key), zap.Error(err))
	}
	return results, nil
}

func cacheKey(address, language string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(address), " "))
	sum := sha1.Sum([]byte(language + "|" + normalized))
	return "geocode:" + hex.EncodeToString(sum[:])
}
