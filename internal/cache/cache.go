// Package cache keeps recently computed sweep results in memory.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"sync"
	"time"
)

// DefaultTTL applies when SWEEP_CACHE_TTL is unset or invalid.
const DefaultTTL = 10 * time.Minute

// Entry is one cached value.
type Entry[T any] struct {
	Value     T
	ExpiresAt time.Time
}

// Cache is a TTL map safe for concurrent use. A nil *Cache is valid and
// never stores anything.
type Cache[T any] struct {
	mu    sync.RWMutex
	store map[string]*Entry[T]
	ttl   time.Duration
	now   func() time.Time
	stop  chan struct{}
	done  chan struct{}
	once  sync.Once
}

// New returns an empty cache. Call Close to stop the cleanup goroutine.
func New[T any](ttl time.Duration) *Cache[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache[T]{
		store: make(map[string]*Entry[T]),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go c.cleanup(ttl)
	return c
}

// FromEnv returns a cache when SWEEP_CACHE=true, nil otherwise.
// SWEEP_CACHE_TTL is a time.ParseDuration string.
func FromEnv[T any]() *Cache[T] {
	if os.Getenv("SWEEP_CACHE") != "true" {
		return nil
	}
	ttl := DefaultTTL
	if s := os.Getenv("SWEEP_CACHE_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			ttl = d
		}
	}
	return New[T](ttl)
}

// Get returns the value under key if present and not expired.
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok || c.now().After(entry.ExpiresAt) {
		return zero, false
	}
	return entry.Value, true
}

func (c *Cache[T]) Set(key string, v T) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &Entry[T]{Value: v, ExpiresAt: c.now().Add(c.ttl)}
}

// Len counts stored entries, expired or not.
func (c *Cache[T]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

func (c *Cache[T]) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*Entry[T])
}

// Prune drops expired entries and reports how many were removed.
func (c *Cache[T]) Prune() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.store {
		if now.After(entry.ExpiresAt) {
			delete(c.store, key)
			removed++
		}
	}
	return removed
}

// Close stops the cleanup goroutine and waits for it to exit. The cache
// stays usable.
func (c *Cache[T]) Close() {
	if c == nil {
		return
	}
	c.once.Do(func() { close(c.stop) })
	<-c.done
}

func (c *Cache[T]) cleanup(every time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.Prune()
		}
	}
}

// Key hashes the JSON encoding of v into a stable cache key.
func Key(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(raw)
	return hex.EncodeToString(hash[:]), nil
}
