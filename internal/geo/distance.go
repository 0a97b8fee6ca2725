package geo

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/Tnmoxa/epg-task/internal/cache"
	"github.com/Tnmoxa/epg-task/internal/metrics"
)

// distanceTTL bounds how long a computed distance stays cached.
const distanceTTL = time.Hour

// Calculator memoizes haversine distances in Redis. The cache is advisory:
// any Redis failure falls back to direct computation and never reaches the
// caller. Concurrent duplicate computations on a miss are fine, last write
// wins on the cache entry.
type Calculator struct {
	cache *cache.RedisCache
	log   *slog.Logger
}

// NewCalculator creates a Calculator. A nil cache disables memoization.
func NewCalculator(rdb *cache.RedisCache, log *slog.Logger) *Calculator {
	return &Calculator{cache: rdb, log: log}
}

// Distance returns the great-circle distance in kilometers between two points,
// cache-first. The cache key is order-sensitive (endpoints encoded in call
// order), so the same pair queried in reverse occupies a second entry; the
// returned value is symmetric regardless.
func (d *Calculator) Distance(ctx context.Context, lat1, lon1, lat2, lon2 float64) float64 {
	var key string
	if d.cache != nil {
		key = d.cache.KeyForDistance(lat1, lon1, lat2, lon2)
		if cached, err := d.cache.Get(ctx, key); err == nil {
			if km, perr := strconv.ParseFloat(cached, 64); perr == nil {
				metrics.DistanceCacheHits.Inc()
				return km
			}
		}
	}

	metrics.DistanceCacheMisses.Inc()
	km := Haversine(lat1, lon1, lat2, lon2)

	if d.cache != nil {
		if err := d.cache.Set(ctx, key, strconv.FormatFloat(km, 'f', -1, 64), distanceTTL); err != nil {
			// advisory cache, log and move on
			if d.log != nil {
				d.log.Warn("distance cache write failed", "key", key, "err", err)
			}
		}
	}

	return km
}
