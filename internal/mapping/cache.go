package mapping

import "sync"

// Cache holds the resolved mapping and its inverse. It is owned by a
// Resolver and can be shared with consumers that need the same snapshot.
type Cache struct {
	mu      sync.RWMutex
	mapping Mapping
	inverse Mapping
}

func NewCache() *Cache {
	return &Cache{}
}

// Mapping returns the cached mapping, if any.
func (c *Cache) Mapping() (Mapping, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mapping, c.mapping != nil
}

// Inverse returns the cached inverse mapping, if any.
func (c *Cache) Inverse() (Mapping, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inverse, c.inverse != nil
}

// Store replaces the cached mapping and derives its inverse.
func (c *Cache) Store(m Mapping) {
	inv := m.Inverse()
	c.mu.Lock()
	c.mapping = m
	c.inverse = inv
	c.mu.Unlock()
}

// Invalidate drops both cached values. The next read resolves from the store.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.mapping = nil
	c.inverse = nil
	c.mu.Unlock()
}
