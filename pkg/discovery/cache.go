package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

const cacheExpiry = 60 * time.Second

// ResultCache keeps recent discovery responses so that nearby clients
// refreshing the same area do not hammer the Overpass mirrors.
type ResultCache struct {
	cache *cache.Cache[string]
}

func NewResultCache(client *redis.Client) *ResultCache {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(cacheExpiry))

	return &ResultCache{
		cache: cache.New[string](redisStore),
	}
}

// cacheKey rounds coordinates to ~100 m so adjacent queries share entries.
func cacheKey(lat float64, lng float64, radius float64) string {
	return fmt.Sprintf("discovery:%.3f:%.3f:%.0f", lat, lng, radius)
}

func (resultCache *ResultCache) Get(ctx context.Context, lat float64, lng float64, radius float64) ([]DiscoveredStop, bool) {
	cached, err := resultCache.cache.Get(ctx, cacheKey(lat, lng, radius))
	if err != nil || cached == "" {
		return nil, false
	}

	var stops []DiscoveredStop
	if err := json.Unmarshal([]byte(cached), &stops); err != nil {
		return nil, false
	}

	return stops, true
}

func (resultCache *ResultCache) Set(ctx context.Context, lat float64, lng float64, radius float64, stops []DiscoveredStop) {
	payload, err := json.Marshal(stops)
	if err != nil {
		return
	}

	resultCache.cache.Set(ctx, cacheKey(lat, lng, radius), string(payload))
}
