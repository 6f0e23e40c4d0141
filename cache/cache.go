package cache

import (
	"time"

	"github.com/karlseguin/ccache/v3"
)

// ICache is a size bounded store of values that expire.
type ICache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T, opts ...SetOption)
	Delete(key string) bool
	Clear()
	Len() int
	Close()
}

type setConfig struct {
	ttl time.Duration
}

// SetOption customizes a single Set call.
type SetOption func(*setConfig)

// WithTTL overrides the default TTL for one entry. Non-positive values are ignored.
func WithTTL(ttl time.Duration) SetOption {
	return func(c *setConfig) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

type inMemoryCache[T any] struct {
	items      *ccache.Cache[T]
	defaultTTL time.Duration
}

// NewInMemoryCache creates a cache holding at most size entries that expire after defaultTTL.
func NewInMemoryCache[T any](size int64, defaultTTL time.Duration) ICache[T] {
	return &inMemoryCache[T]{
		items:      ccache.New(ccache.Configure[T]().MaxSize(size)),
		defaultTTL: defaultTTL,
	}
}

func (c *inMemoryCache[T]) Get(key string) (T, bool) {
	item := c.items.Get(key)
	if item == nil || item.Expired() {
		var zero T
		return zero, false
	}
	return item.Value(), true
}

func (c *inMemoryCache[T]) Set(key string, value T, opts ...SetOption) {
	cfg := setConfig{ttl: c.defaultTTL}
	for _, opt := range opts {
		opt(&cfg)
	}
	c.items.Set(key, value, cfg.ttl)
}

// Delete removes key and reports whether it was present.
func (c *inMemoryCache[T]) Delete(key string) bool {
	return c.items.Delete(key)
}

func (c *inMemoryCache[T]) Clear() {
	c.items.Clear()
}

func (c *inMemoryCache[T]) Len() int {
	return c.items.ItemCount()
}

// Close stops the background worker of the cache.
func (c *inMemoryCache[T]) Close() {
	c.items.Stop()
}
