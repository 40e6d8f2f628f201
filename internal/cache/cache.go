package cache

import "sync"

// Cache is a generic thread-safe LRU cache holding at most limit entries.
// Every access refreshes an entry's recency; inserting past the limit
// evicts the least recently used entries until the cache fits again.
//
// Cache is safe for concurrent use.
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*cacheEntry[K, V]
	lru     lruList[K]
	limit   int
}

// cacheEntry pairs a cached value with its recency-list node.
type cacheEntry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// New creates a cache bounded to limit entries.
// A limit of 0 means unbounded.
func New[K comparable, V any](limit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]*cacheEntry[K, V]),
		limit:   limit,
	}
}

// Get retrieves a value and marks it most recently used.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.lru.moveToFront(entry.node)
	return entry.value, true
}

// Set stores a value, replacing any previous value for the key. The entry
// becomes the most recently used one; the oldest entries are evicted if
// the cache grew past its limit.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		entry.value = value
		c.lru.moveToFront(entry.node)
		return
	}
	c.entries[key] = &cacheEntry[K, V]{value: value, node: c.lru.pushFront(key)}
	c.evict()
}

// GetOrCreate returns the cached value or creates it.
// Thread-safe: create is called under lock to prevent duplicate creation.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		c.lru.moveToFront(entry.node)
		return entry.value
	}

	value := create()
	c.entries[key] = &cacheEntry[K, V]{value: value, node: c.lru.pushFront(key)}
	c.evict()
	return value
}

// Delete removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return false
	}
	c.lru.remove(entry.node)
	delete(c.entries, key)
	return true
}

// Clear removes all entries from the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*cacheEntry[K, V])
	c.lru.clear()
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Capacity returns the entry limit, 0 meaning unbounded.
func (c *Cache[K, V]) Capacity() int {
	return c.limit
}

// evict removes least recently used entries until the cache fits its
// limit. Caller must hold c.mu.
func (c *Cache[K, V]) evict() {
	if c.limit <= 0 {
		return
	}
	for len(c.entries) > c.limit {
		node := c.lru.removeTail()
		if node == nil {
			return
		}
		delete(c.entries, node.key)
	}
}
