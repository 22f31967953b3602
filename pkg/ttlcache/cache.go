// Package ttlcache is an in-memory key/value store whose entries expire after
// a per-entry time-to-live. It memoizes upstream responses for a short window.
package ttlcache

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	DefaultTTL          = 5 * time.Minute
	DefaultMaxEntries   = 50
	DefaultLowWatermark = 40
)

// Options configures a Cache. Zero values take the package defaults.
type Options struct {
	DefaultTTL   time.Duration
	MaxEntries   int
	LowWatermark int
	Now          func() time.Time
}

// Entry is a stored value together with the time it was written and its ttl.
type Entry struct {
	Key       string
	Data      any
	Timestamp time.Time
	TTL       time.Duration
}

// Valid reports whether the entry is still fresh at now.
func (e Entry) Valid(now time.Time) bool {
	return now.Sub(e.Timestamp) < e.TTL
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]Entry
	opts    Options
	closed  bool
	stop    chan struct{}
}

// New creates an empty cache.
func New(opts Options) *Cache {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = DefaultTTL
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if opts.LowWatermark <= 0 || opts.LowWatermark >= opts.MaxEntries {
		opts.LowWatermark = opts.MaxEntries * 4 / 5
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Cache{
		entries: make(map[string]Entry),
		opts:    opts,
		stop:    make(chan struct{}),
	}
}

// Get returns the cached data for key if present and not expired.
// An expired entry is removed on read.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !e.Valid(c.opts.Now()) {
		delete(c.entries, key)
		return nil, false
	}
	return e.Data, true
}

// Set stores data under key with the default ttl.
func (c *Cache) Set(key string, data any) {
	c.SetWithTTL(key, data, c.opts.DefaultTTL)
}

// SetWithTTL stores data under key, overwriting any previous entry.
func (c *Cache) SetWithTTL(key string, data any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.opts.DefaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.entries[key] = Entry{
		Key:       key,
		Data:      data,
		Timestamp: c.opts.Now(),
		TTL:       ttl,
	}
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// DeletePrefix removes every key starting with prefix and returns how many went.
func (c *Cache) DeletePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Sweep drops expired entries. If the cache is still above MaxEntries it then
// evicts the oldest entries until LowWatermark remain. Returns the number removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.opts.Now()
	removed := 0
	for k, e := range c.entries {
		if !e.Valid(now) {
			delete(c.entries, k)
			removed++
		}
	}

	if len(c.entries) <= c.opts.MaxEntries {
		return removed
	}

	byAge := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		byAge = append(byAge, e)
	}
	sort.Slice(byAge, func(i, j int) bool {
		if byAge[i].Timestamp.Equal(byAge[j].Timestamp) {
			return byAge[i].Key < byAge[j].Key
		}
		return byAge[i].Timestamp.Before(byAge[j].Timestamp)
	})

	excess := len(byAge) - c.opts.LowWatermark
	for _, e := range byAge[:excess] {
		delete(c.entries, e.Key)
		removed++
	}
	return removed
}

// Run sweeps every interval until ctx is done or the cache is closed.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stop:
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

// Close clears the cache and stops Run. Later writes are ignored.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.entries = make(map[string]Entry)
	close(c.stop)
}
