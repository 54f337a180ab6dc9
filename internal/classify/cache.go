package classify

import (
	"sync"
	"sync/atomic"
)

// Cache is a bounded, concurrency-safe map from text to label. When full it
// evicts the oldest entry. A nil *Cache is valid and never hits.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
	order   []string
	size    int

	hits   atomic.Int64
	misses atomic.Int64
}

func NewCache(size int) *Cache {
	return &Cache{
		entries: make(map[string]string, size),
		order:   make([]string, 0, size),
		size:    size,
	}
}

func (c *Cache) Get(text string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.RLock()
	label, ok := c.entries[text]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return label, ok
}

func (c *Cache) Set(text, label string) {
	if c == nil || c.size <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[text]; exists {
		c.entries[text] = label
		return
	}
	if len(c.order) >= c.size {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.order = append(c.order, text)
	c.entries[text] = label
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}
