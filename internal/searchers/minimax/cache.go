package minimax

import (
	"sync"
	"sync/atomic"

	. "github.com/janpfeifer/tttGo/internal/state"
	"golang.org/x/sync/singleflight"
)

// Key identifies a cached evaluation.
//
// By default only the Board is set, and the cache is keyed on the board configuration alone.
// See Searcher.WithCacheByDepth to also key on the search depth and the side to move.
type Key struct {
	Board      Board
	Depth      int8
	Maximizing bool
}

// flightKey is the string version of the key used for singleflight.
func (k Key) flightKey() string {
	var buf [NumCells + 2]byte
	for ii, m := range k.Board {
		buf[ii] = byte(m)
	}
	buf[NumCells] = byte(k.Depth)
	if k.Maximizing {
		buf[NumCells+1] = 1
	}
	return string(buf[:])
}

// Cache of evaluated positions. It lives for a game: it's populated lazily during the searches
// and should be cleared when a new game starts.
//
// It is safe for concurrent use, and a value is computed at most once per key, even if
// requested concurrently.
type Cache struct {
	mu     sync.RWMutex
	values map[Key]int
	flight singleflight.Group

	hits, misses atomic.Int64
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{values: make(map[Key]int)}
}

// Get returns the cached value for key, if there is one.
func (c *Cache) Get(key Key) (value int, found bool) {
	c.mu.RLock()
	value, found = c.values[key]
	c.mu.RUnlock()
	if found {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return
}

// Set the value for key, overwriting any previous value.
func (c *Cache) Set(key Key, value int) {
	c.mu.Lock()
	c.values[key] = value
	c.mu.Unlock()
}

// GetOrCompute returns the cached value for key, or calls compute and caches its result.
// Concurrent calls for the same key wait for a single compute call.
func (c *Cache) GetOrCompute(key Key, compute func() int) int {
	if value, found := c.Get(key); found {
		return value
	}
	return c.computeOnce(key, compute)
}

// computeOnce calls compute for a key that was not found, unless a concurrent call
// already did it, and caches the result.
func (c *Cache) computeOnce(key Key, compute func() int) int {
	value, _, _ := c.flight.Do(key.flightKey(), func() (any, error) {
		c.mu.RLock()
		value, found := c.values[key]
		c.mu.RUnlock()
		if found {
			// Computed by a concurrent call that finished in the meantime.
			return value, nil
		}
		value = compute()
		c.Set(key, value)
		return value, nil
	})
	return value.(int)
}

// Len returns the number of cached evaluations.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}

// Clear removes all the cached evaluations and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	clear(c.values)
	c.mu.Unlock()
	c.hits.Store(0)
	c.misses.Store(0)
}

// HitsAndMisses returns the number of Get calls that found (hits) or didn't find (misses)
// a value since the last Clear.
func (c *Cache) HitsAndMisses() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
