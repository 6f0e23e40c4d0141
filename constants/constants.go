package constants

import "time"

const (
	// MaxQuerySize is the number of operation slots in every query.
	MaxQuerySize = 20
	// MaxNumOfAttrs is the number of attribute slots in a claim and of
	// commitment pairs in a commitment set.
	MaxNumOfAttrs = 20

	DefaultCacheMaxSize int64 = 10_000
	DefaultRequestTTL         = time.Hour // 1 hour
)
