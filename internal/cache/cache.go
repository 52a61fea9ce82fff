// Package cache memoizes slow lookups (external APIs, catalog queries) for a fixed TTL.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/wonny/matchday/pkg/metrics"
	"github.com/wonny/matchday/pkg/redis"
)

// LoadFunc produces a fresh value
type LoadFunc[T any] func(ctx context.Context) (T, error)

type entry[T any] struct {
	value    T
	loadedAt time.Time
}

// Cache is a per-key TTL cache. Concurrent misses for one key share a single load.
// When a remote tier is configured, values are also shared through Redis.
type Cache[T any] struct {
	name string
	ttl  time.Duration

	mu      sync.RWMutex
	entries map[string]entry[T]
	group   singleflight.Group

	remote  *redis.Cache
	metrics *metrics.Registry
	now     func() time.Time
}

// Option configures a Cache
type Option func(*options)

type options struct {
	remote  *redis.Cache
	metrics *metrics.Registry
	now     func() time.Time
}

// WithRemote adds a shared Redis tier
func WithRemote(rc *redis.Cache) Option {
	return func(o *options) { o.remote = rc }
}

// WithMetrics records hits and misses
func WithMetrics(m *metrics.Registry) Option {
	return func(o *options) { o.metrics = m }
}

// WithClock overrides time.Now (tests)
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New creates a cache named name (used in metrics and Redis keys)
func New[T any](name string, ttl time.Duration, opts ...Option) *Cache[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &Cache[T]{
		name:    name,
		ttl:     ttl,
		entries: make(map[string]entry[T]),
		remote:  o.remote,
		metrics: o.metrics,
		now:     o.now,
	}
}

// GetOrLoad returns the cached value for key or loads it.
// Load errors are returned and nothing is cached.
func (c *Cache[T]) GetOrLoad(ctx context.Context, key string, load LoadFunc[T]) (T, error) {
	if v, ok := c.get(key); ok {
		c.metrics.CacheLookup(c.name, true)
		return v, nil
	}
	c.metrics.CacheLookup(c.name, false)

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if v, ok := c.get(key); ok {
			return v, nil
		}
		if v, ok := c.getRemote(ctx, key); ok {
			c.set(key, v)
			return v, nil
		}
		return c.load(ctx, key, load)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Refresh loads key unconditionally and replaces the cached value
func (c *Cache[T]) Refresh(ctx context.Context, key string, load LoadFunc[T]) (T, error) {
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		return c.load(ctx, key, load)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Invalidate drops key from both tiers
func (c *Cache[T]) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	if c.remote != nil {
		return c.remote.Delete(ctx, c.remoteKey(key))
	}
	return nil
}

// Len returns the number of locally cached keys, fresh or stale
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[T]) load(ctx context.Context, key string, load LoadFunc[T]) (T, error) {
	v, err := load(ctx)
	if err != nil {
		return v, fmt.Errorf("cache %s: load %q: %w", c.name, key, err)
	}

	c.set(key, v)
	if c.remote != nil {
		// Redis is best effort; the local tier already holds the value
		_ = c.remote.Set(ctx, c.remoteKey(key), v, c.ttl)
	}
	return v, nil
}

func (c *Cache[T]) get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(e.loadedAt) >= c.ttl {
		var zero T
		return zero, false
	}
	return e.value, true
}

func (c *Cache[T]) getRemote(ctx context.Context, key string) (T, bool) {
	var v T
	if c.remote == nil {
		return v, false
	}
	found, err := c.remote.Get(ctx, c.remoteKey(key), &v)
	if err != nil || !found {
		return v, false
	}
	return v, true
}

func (c *Cache[T]) set(key string, v T) {
	c.mu.Lock()
	c.entries[key] = entry[T]{value: v, loadedAt: c.now()}
	c.mu.Unlock()
}

func (c *Cache[T]) remoteKey(key string) string {
	if key == "" {
		return c.name
	}
	return c.name + ":" + key
}
