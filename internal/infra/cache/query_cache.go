// Package cache contains the in-memory implementation of the query cache
// that mirrors record store reads between mutations.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"afya/internal/domain/service"
	"afya/internal/errors"

	"golang.org/x/sync/singleflight"
)

// entry tracks one cached result set. gen is bumped on every invalidation of
// the key so a fetch that was in flight while the key was invalidated stores
// its result as already stale.
type entry struct {
	value     any
	fetchedAt time.Time
	valid     bool
	gen       uint64
}

// MemoryQueryCache implements service.QueryCache. It is an owned instance,
// not a process-wide singleton, so tests and independent clients each get a
// fresh cache.
type MemoryQueryCache struct {
	logger *slog.Logger

	mu      sync.Mutex
	entries map[service.CacheKey]*entry
	subs    map[uint64]func(service.CacheKey)
	nextSub uint64

	group singleflight.Group
}

// NewMemoryQueryCache is the constructor for MemoryQueryCache.
func NewMemoryQueryCache(logger *slog.Logger) *MemoryQueryCache {
	return &MemoryQueryCache{
		logger:  logger,
		entries: make(map[service.CacheKey]*entry),
		subs:    make(map[uint64]func(service.CacheKey)),
	}
}

var _ service.QueryCache = (*MemoryQueryCache)(nil)

// GetOrFetch returns the cached value for key unless the key is stale or has
// never been fetched, in which case it runs fetch and stores the result.
// Concurrent callers for the same key share a single outstanding fetch.
//
// Cancellation is consumer-local: the fetch runs on a context detached from
// the caller, so an abandoned consumer stops waiting but the fetch completes
// and still populates the cache for everyone else.
func (c *MemoryQueryCache) GetOrFetch(ctx context.Context, key service.CacheKey, fetch service.Fetcher) (any, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	if e.valid {
		value := e.value
		c.mu.Unlock()

		return value, nil
	}
	c.mu.Unlock()

	ch := c.group.DoChan(key.String(), func() (any, error) {
		c.mu.Lock()
		startGen := e.gen
		c.mu.Unlock()

		value, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			// Failed fetches are not cached; the next access retries.
			return nil, err
		}

		c.mu.Lock()
		e.value = value
		e.fetchedAt = time.Now()
		// An invalidation that raced the fetch wins: the result is kept but
		// immediately stale.
		e.valid = e.gen == startGen
		c.mu.Unlock()

		return value, nil
	})

	select {
	case <-ctx.Done():
		return nil, errors.WithStack(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		return res.Val, nil
	}
}

// Invalidate marks every key matching the predicate stale and notifies
// subscribers once per key. Marking is atomic with respect to concurrent
// GetOrFetch calls.
func (c *MemoryQueryCache) Invalidate(match service.KeyPredicate) {
	c.mu.Lock()
	var invalidated []service.CacheKey
	for key, e := range c.entries {
		if !match(key) {
			continue
		}

		e.valid = false
		e.gen++
		invalidated = append(invalidated, key)
	}

	observers := make([]func(service.CacheKey), 0, len(c.subs))
	for _, fn := range c.subs {
		observers = append(observers, fn)
	}
	c.mu.Unlock()

	if c.logger != nil && len(invalidated) > 0 {
		c.logger.Debug("cache keys invalidated", "count", len(invalidated))
	}

	// Notify outside the lock so observers may call back into the cache.
	for _, key := range invalidated {
		for _, fn := range observers {
			fn(key)
		}
	}
}

// Subscribe registers an observer notified once per invalidated key. The
// returned function cancels the subscription.
func (c *MemoryQueryCache) Subscribe(fn func(service.CacheKey)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}
