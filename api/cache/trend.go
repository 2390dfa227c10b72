package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"goclan/pkg/redis"
)

const (
	trendCacheDuration = 15 * time.Minute
	trendKey           = "trend:clan:%d:v%d:%s"
	trendVersionKey    = "trend:version:%d"
)

// TrendCache caches assembled trend reports per clan. Invalidation bumps
// a per-clan version instead of scanning keys, so stale entries simply
// expire unread.
type TrendCache interface {
	Get(ctx context.Context, clanId uint, variant string, out any) bool
	Set(ctx context.Context, clanId uint, variant string, value any) error
	Invalidate(ctx context.Context, clanId uint) error
}

// trendCache is the redis implementation.
type trendCache struct {
	redis *redis.RedisClient
}

// NewTrendCache creates a new trend cache on top of the redis client.
func NewTrendCache(redis *redis.RedisClient) TrendCache {
	return &trendCache{redis: redis}
}

// Get loads a cached report into out, reporting whether it was found.
func (tc *trendCache) Get(ctx context.Context, clanId uint, variant string, out any) bool {
	key, err := tc.buildKey(ctx, clanId, variant)
	if err != nil {
		return false
	}

	raw, err := tc.redis.Get(ctx, key)
	if err != nil {
		return false
	}

	return json.Unmarshal([]byte(raw), out) == nil
}

// Set stores a report under the clan's current version.
func (tc *trendCache) Set(ctx context.Context, clanId uint, variant string, value any) error {
	key, err := tc.buildKey(ctx, clanId, variant)
	if err != nil {
		return err
	}

	j, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return tc.redis.Set(ctx, key, string(j), trendCacheDuration)
}

// Invalidate bumps the clan version so every cached variant goes stale at once.
func (tc *trendCache) Invalidate(ctx context.Context, clanId uint) error {
	_, err := tc.redis.Incr(ctx, fmt.Sprintf(trendVersionKey, clanId))
	return err
}

func (tc *trendCache) buildKey(ctx context.Context, clanId uint, variant string) (string, error) {
	version := int64(0)
	raw, err := tc.redis.Get(ctx, fmt.Sprintf(trendVersionKey, clanId))
	if err == nil {
		fmt.Sscanf(raw, "%d", &version)
	}

	return fmt.Sprintf(trendKey, clanId, version, variant), nil
}

// PurgeStaleTrends deletes cached trend variants whose version pointer
// moved on. Invalidation only bumps the clan version, so superseded
// entries linger until their TTL expires; the scheduler sweeps them out
// early to keep redis memory flat. Returns how many keys were deleted.
func PurgeStaleTrends(ctx context.Context, client *redis.RedisClient) (int, error) {
	versions := make(map[uint]int64)
	currentVersion := func(clanId uint) int64 {
		if v, ok := versions[clanId]; ok {
			return v
		}

		version := int64(0)
		raw, err := client.Get(ctx, fmt.Sprintf(trendVersionKey, clanId))
		if err == nil {
			fmt.Sscanf(raw, "%d", &version)
		}
		versions[clanId] = version
		return version
	}

	purged := 0
	var cursor uint64
	for {
		keys, next, err := client.Scan(ctx, cursor, "trend:clan:*", 100)
		if err != nil {
			return purged, err
		}

		if stale := staleTrendKeys(keys, currentVersion); len(stale) > 0 {
			if err := client.Del(ctx, stale...); err != nil {
				return purged, err
			}
			purged += len(stale)
		}

		if next == 0 {
			break
		}
		cursor = next
	}

	return purged, nil
}

// staleTrendKeys filters the scanned keys down to entries stored under an
// older version than the clan's current one. Keys that don't parse are
// left alone.
func staleTrendKeys(keys []string, currentVersion func(clanId uint) int64) []string {
	stale := make([]string, 0, len(keys))
	for _, key := range keys {
		var clanId uint
		var version int64
		if n, err := fmt.Sscanf(key, "trend:clan:%d:v%d", &clanId, &version); n != 2 || err != nil {
			continue
		}

		if version < currentVersion(clanId) {
			stale = append(stale, key)
		}
	}

	return stale
}
