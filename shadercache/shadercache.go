// Package shadercache caches compiled custom-filter shader programs.
//
// Pages reference filter shaders by URL. Fetching the WGSL source is the
// host's business (the Loader is injected); this package compiles the
// source to SPIR-V words once per URL and keeps the result in a bounded
// LRU cache. A helper turns cached words into a hal.ShaderModule when a
// GPU device is at hand. No network or filesystem code lives here.
package shadercache

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/internal/cache"
)

// ErrNilLoader is returned by New when the configuration has no loader.
var ErrNilLoader = errors.New("shadercache: nil loader")

// DefaultLimit is the number of compiled programs kept when the
// configuration does not say otherwise.
const DefaultLimit = 64

// Loader fetches WGSL source for a shader URL.
type Loader func(url string) (string, error)

// CompileFunc compiles WGSL source to SPIR-V words.
type CompileFunc func(wgsl string) ([]uint32, error)

// Config configures a shader cache.
type Config struct {
	// Loader fetches shader source by URL. Required.
	Loader Loader

	// Compile compiles fetched source to SPIR-V words.
	// Defaults to CompileToSPIRV.
	Compile CompileFunc

	// Limit is the maximum number of cached programs. 0 means
	// DefaultLimit; negative means unbounded.
	Limit int
}

// Cache is a URL-keyed cache of compiled shader programs.
//
// Cache is safe for concurrent use. Failed loads and compiles are never
// cached; the next Get for the same URL retries.
type Cache struct {
	mu       sync.Mutex
	loader   Loader
	compile  CompileFunc
	programs *cache.Cache[string, []uint32]
}

// New creates a shader cache around the given loader.
func New(cfg Config) (*Cache, error) {
	if cfg.Loader == nil {
		return nil, ErrNilLoader
	}
	compile := cfg.Compile
	if compile == nil {
		compile = CompileToSPIRV
	}
	limit := cfg.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	return &Cache{
		loader:   cfg.Loader,
		compile:  compile,
		programs: cache.New[string, []uint32](limit),
	}, nil
}

// Get returns the compiled program for url, loading and compiling it on a
// miss. The whole miss path runs under the cache lock, so concurrent Gets
// for one URL load and compile at most once.
func (c *Cache) Get(url string) ([]uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if words, ok := c.programs.Get(url); ok {
		return words, nil
	}

	wgsl, err := c.loader(url)
	if err != nil {
		return nil, fmt.Errorf("shadercache: load %q: %w", url, err)
	}
	words, err := c.compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("shadercache: compile %q: %w", url, err)
	}

	c.programs.Set(url, words)
	compositor.Logger().Debug("shader compiled",
		"url", url,
		"words", len(words))
	return words, nil
}

// Invalidate drops the cached program for url, reporting whether one was
// cached. The next Get reloads and recompiles.
func (c *Cache) Invalidate(url string) bool {
	return c.programs.Delete(url)
}

// Clear drops every cached program.
func (c *Cache) Clear() {
	c.programs.Clear()
}

// Len returns the number of cached programs.
func (c *Cache) Len() int {
	return c.programs.Len()
}
