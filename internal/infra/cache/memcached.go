package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/kagari-dev/driftboard"
)

// MemcachedFeedCache is the memcached-backed twin of RedisFeedCache, for
// deployments that already run memcached.
type MemcachedFeedCache struct {
	mc *memcache.Client
}

func NewMemcachedFeedCache(mc *memcache.Client) *MemcachedFeedCache {
	return &MemcachedFeedCache{mc: mc}
}

func (c *MemcachedFeedCache) Get(ctx context.Context, key string) (*driftboard.PageResult[driftboard.FeedItem], bool) {
	item, err := c.mc.Get(key)
	if err != nil {
		return nil, false
	}

	var page driftboard.PageResult[driftboard.FeedItem]
	if err := json.Unmarshal(item.Value, &page); err != nil {
		return nil, false
	}
	return &page, true
}

func (c *MemcachedFeedCache) Set(ctx context.Context, key string, page driftboard.PageResult[driftboard.FeedItem], ttl time.Duration) {
	payload, err := json.Marshal(page)
	if err != nil {
		return
	}
	c.mc.Set(&memcache.Item{
		Key:        key,
		Value:      payload,
		Expiration: int32(ttl / time.Second),
	})
}
