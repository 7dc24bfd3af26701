package pipeline

import (
	"context"
	"sync"

	"github.com/rgehrsitz/taxengine/internal/engine"
)

// InMemoryCache is the reference Cache implementation: a mutex-guarded
// map keyed by fingerprint. Concurrent readers never block each other's
// correctness (map reads are taken under RLock); concurrent writers for
// the same key race harmlessly since spec §5 only requires their values
// be byte-identical, which holds because the fingerprint is a pure
// function of the inputs.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*engine.Result
}

// NewInMemoryCache builds an empty InMemoryCache.
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{entries: make(map[string]*engine.Result)}
}

func (c *InMemoryCache) Get(_ context.Context, key string) (*engine.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.entries[key]
	return r, ok
}

func (c *InMemoryCache) Store(_ context.Context, key string, result *engine.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = result
}
