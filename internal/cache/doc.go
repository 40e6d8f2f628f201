// Package cache provides a small generic thread-safe LRU cache.
//
// The cache backs per-key artifacts that are expensive to rebuild, such
// as compiled shader modules. Every access refreshes an entry's recency;
// inserting past the limit evicts the least recently used entries.
//
//	c := cache.New[string, int](100)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
