// Package rediscache caches trending results in Redis with a short TTL,
// fronted by an in-process layer. Cache failures degrade to the underlying
// aggregator, never to an error.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
	"github.com/ripple-social/ripple/internal/trending"
)

// TrendingSource is the aggregator the cache falls through to.
type TrendingSource interface {
	GetTrending(ctx context.Context, limit int) ([]trending.Tag, error)
}

type memoryEntry struct {
	tags      []trending.Tag
	expiresAt time.Time
}

type TrendingCache struct {
	rdb    goredis.Cmdable
	source TrendingSource
	ttl    time.Duration
	clock  clockwork.Clock

	mu  sync.Mutex
	mem map[int]memoryEntry
}

// NewTrendingCache builds the cache. rdb may be nil, in which case only the
// in-process layer is used.
func NewTrendingCache(rdb goredis.Cmdable, source TrendingSource, ttl time.Duration, clock clockwork.Clock) *TrendingCache {
	return &TrendingCache{
		rdb:    rdb,
		source: source,
		ttl:    ttl,
		clock:  clock,
		mem:    make(map[int]memoryEntry),
	}
}

// GetTrending serves from the in-process layer, then Redis, then the
// aggregator, refilling the faster layers on the way back.
func (c *TrendingCache) GetTrending(ctx context.Context, limit int) ([]trending.Tag, error) {
	if tags, ok := c.memGet(limit); ok {
		return tags, nil
	}

	if tags, ok := c.redisGet(ctx, limit); ok {
		c.memSet(limit, tags)
		return tags, nil
	}

	tags, err := c.source.GetTrending(ctx, limit)
	if err != nil {
		return nil, err
	}

	c.memSet(limit, tags)
	c.redisSet(ctx, limit, tags)
	return tags, nil
}

// Invalidate drops both layers, used after bulk imports in tooling.
func (c *TrendingCache) Invalidate(ctx context.Context, limit int) {
	c.mu.Lock()
	delete(c.mem, limit)
	c.mu.Unlock()

	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, cacheKey(limit)).Err(); err != nil {
		slog.Warn("Failed to invalidate trending cache", "error", err)
	}
}

func (c *TrendingCache) memGet(limit int) ([]trending.Tag, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.mem[limit]
	if !ok || c.clock.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.tags, true
}

func (c *TrendingCache) memSet(limit int, tags []trending.Tag) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mem[limit] = memoryEntry{tags: tags, expiresAt: c.clock.Now().Add(c.ttl)}
}

func (c *TrendingCache) redisGet(ctx context.Context, limit int) ([]trending.Tag, bool) {
	if c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, cacheKey(limit)).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("Trending cache read failed", "error", err)
		return nil, false
	}

	var tags []trending.Tag
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		slog.Warn("Trending cache entry corrupt, ignoring", "error", err)
		return nil, false
	}
	return tags, true
}

func (c *TrendingCache) redisSet(ctx context.Context, limit int, tags []trending.Tag) {
	if c.rdb == nil {
		return
	}

	raw, err := json.Marshal(tags)
	if err != nil {
		slog.Warn("Failed to marshal trending tags", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(limit), raw, c.ttl).Err(); err != nil {
		slog.Warn("Trending cache write failed", "error", err)
	}
}

func cacheKey(limit int) string {
	return fmt.Sprintf("trending:%d", limit)
}
