package verifier

import (
	"log/slog"
	"time"

	"github.com/iden3/go-iden3-predicate/loaders"
)

type config struct {
	logger       *slog.Logger
	attributes   loaders.AttributeCodeLoader
	requestTTL   time.Duration
	cacheSize    int64
	circuitCheck bool
}

// Option sets verifier options.
type Option func(c *config)

// WithLogger sets the logger. Rejection reasons are logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithAttributeLoader sets the resolver of attribute names used by CreateRequest.
func WithAttributeLoader(l loaders.AttributeCodeLoader) Option {
	return func(c *config) {
		c.attributes = l
	}
}

// WithRequestTTL sets how long a request stays pending.
func WithRequestTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.requestTTL = ttl
	}
}

// WithCacheSize sets the maximum number of pending requests.
func WithCacheSize(size int64) Option {
	return func(c *config) {
		c.cacheSize = size
	}
}

// WithCircuitCheck additionally solves the predicate circuit for every accepted evaluation.
func WithCircuitCheck(enabled bool) Option {
	return func(c *config) {
		c.circuitCheck = enabled
	}
}
