package infra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisTagCache is a read-through cache for asset-by-tag lookups, the hot
// path for barcode scanners on the floor. Cache failures are logged and
// treated as misses; the database remains the source of truth.
type RedisTagCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisTagCache(rdb *redis.Client, ttl time.Duration) *RedisTagCache {
	return &RedisTagCache{rdb: rdb, ttl: ttl}
}

func tagCacheKey(tag string) string { return "asset:tag:" + tag }

func (c *RedisTagCache) Get(ctx context.Context, tag string) (*dto.AssetResponse, bool) {
	raw, err := c.rdb.Get(ctx, tagCacheKey(tag)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("tag", tag).Msg("tag cache read failed")
		}
		return nil, false
	}
	var resp dto.AssetResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		log.Warn().Err(err).Str("tag", tag).Msg("tag cache entry corrupt, dropping")
		c.rdb.Del(ctx, tagCacheKey(tag))
		return nil, false
	}
	return &resp, true
}

func (c *RedisTagCache) Set(ctx context.Context, tag string, asset *dto.AssetResponse) {
	raw, err := json.Marshal(asset)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, tagCacheKey(tag), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("tag", tag).Msg("tag cache write failed")
	}
}

func (c *RedisTagCache) Invalidate(ctx context.Context, tag string) {
	if err := c.rdb.Del(ctx, tagCacheKey(tag)).Err(); err != nil {
		log.Warn().Err(err).Str("tag", tag).Msg("tag cache invalidation failed")
	}
}
