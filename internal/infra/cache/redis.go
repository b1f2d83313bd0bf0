package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kagari-dev/driftboard"
)

// RedisFeedCache caches rendered feed pages in redis. Cache failures are
// swallowed: a broken cache degrades to recomputation, never to an error.
type RedisFeedCache struct {
	rdb *redis.Client
}

func NewRedisFeedCache(rdb *redis.Client) *RedisFeedCache {
	return &RedisFeedCache{rdb: rdb}
}

func (c *RedisFeedCache) Get(ctx context.Context, key string) (*driftboard.PageResult[driftboard.FeedItem], bool) {
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var page driftboard.PageResult[driftboard.FeedItem]
	if err := json.Unmarshal(payload, &page); err != nil {
		return nil, false
	}
	return &page, true
}

func (c *RedisFeedCache) Set(ctx context.Context, key string, page driftboard.PageResult[driftboard.FeedItem], ttl time.Duration) {
	payload, err := json.Marshal(page)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, payload, ttl)
}
