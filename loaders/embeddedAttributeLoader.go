package loaders

import (
	"embed"
	"sync"

	"github.com/iden3/go-iden3-predicate/predicate"
	"github.com/pkg/errors"
)

//go:embed attributes/*.json
var defaultTables embed.FS

const defaultTable = "attributes/default.json"

// EmbeddedAttributeLoader resolves attribute codes from the embedded table.
// A custom loader, if set, is asked first.
type EmbeddedAttributeLoader struct {
	loader   AttributeCodeLoader
	cache    map[string]predicate.AttributeCode
	cacheMu  *sync.RWMutex
	useCache bool

	tableOnce sync.Once
	table     map[string]predicate.AttributeCode
	tableErr  error
}

// NewEmbeddedAttributeLoader creates a new loader with the embedded table.
// By default results are cached.
//
// Custom table on filesystem:
//
//	loader := NewEmbeddedAttributeLoader(WithAttributeLoader(FSAttributeLoader{Path: "/path/to/codes.json"}))
func NewEmbeddedAttributeLoader(opts ...Option) *EmbeddedAttributeLoader {
	l := &EmbeddedAttributeLoader{
		useCache: true,
		cache:    make(map[string]predicate.AttributeCode),
		cacheMu:  &sync.RWMutex{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Option defines functional option for configuring EmbeddedAttributeLoader
type Option func(*EmbeddedAttributeLoader)

// WithAttributeLoader sets a loader that is tried before the embedded table
func WithAttributeLoader(loader AttributeCodeLoader) Option {
	return func(e *EmbeddedAttributeLoader) {
		e.loader = loader
	}
}

// WithCacheDisabled disables caching of resolved codes
func WithCacheDisabled() Option {
	return func(e *EmbeddedAttributeLoader) {
		e.useCache = false
		e.cache = nil
	}
}

// Resolve resolves name in the following order:
// 1. From cache if enabled
// 2. From the custom loader if provided
// 3. From the embedded table
// The embedded table is used after a custom loader only if it returned ErrAttributeNotFound.
func (e *EmbeddedAttributeLoader) Resolve(name string) (predicate.AttributeCode, error) {
	if e.useCache {
		if code, ok := e.getFromCache(name); ok {
			return code, nil
		}
	}

	if e.loader != nil {
		code, err := e.loader.Resolve(name)
		if err == nil {
			e.storeInCache(name, code)
			return code, nil
		}
		if !errors.Is(err, ErrAttributeNotFound) {
			return 0, err
		}
	}

	table, err := e.embeddedTable()
	if err != nil {
		return 0, err
	}
	code, ok := table[name]
	if !ok {
		return 0, errors.Wrapf(ErrAttributeNotFound, "'%s'", name)
	}
	e.storeInCache(name, code)
	return code, nil
}

func (e *EmbeddedAttributeLoader) embeddedTable() (map[string]predicate.AttributeCode, error) {
	e.tableOnce.Do(func() {
		data, err := defaultTables.ReadFile(defaultTable)
		if err != nil {
			e.tableErr = errors.Wrap(err, "failed to load default attribute table")
			return
		}
		e.table, e.tableErr = parseTable(data)
	})
	return e.table, e.tableErr
}

func (e *EmbeddedAttributeLoader) getFromCache(name string) (predicate.AttributeCode, bool) {
	e.cacheMu.RLock()
	defer e.cacheMu.RUnlock()
	code, ok := e.cache[name]
	return code, ok
}

func (e *EmbeddedAttributeLoader) storeInCache(name string, code predicate.AttributeCode) {
	if !e.useCache {
		return
	}
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	e.cache[name] = code
}
