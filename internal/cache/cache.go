// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

// Package cache provides the time-bounded result memo for external lookups.
// Entries are keyed by (service, normalized query), immutable once written,
// expire lazily by age at read time, and can be invalidated explicitly.
// Only successful external responses are ever cached, so a transient outage
// never poisons results for the TTL duration.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/maubert/saporium/internal/metrics"
)

// keySep joins service and query in the map key. NUL cannot appear in a
// normalized query.
const keySep = "\x00"

// entry is a cached result list with its expiry.
type entry struct {
	values    []string
	expiresAt time.Time
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	TotalKeys int64
}

// ResultCache is a thread-safe in-memory memo of cleaned suggestion lists.
// Returned lists are copies; callers can never mutate a cached entry.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	statsMu sync.Mutex
	stats   Stats

	// now is the clock, replaceable in tests.
	now func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a ResultCache with the given default TTL and starts a
// background sweep that removes expired entries every sweepInterval.
// A sweepInterval of 0 disables the background sweep; lazy expiry at read
// time still applies.
func New(ttl time.Duration, sweepInterval time.Duration) *ResultCache {
	c := &ResultCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if sweepInterval > 0 {
		go c.sweepLoop(sweepInterval)
	}
	return c
}

// Stop terminates the background sweep, if one is running. Safe to call
// more than once; the cache itself remains usable.
func (c *ResultCache) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Get returns a copy of the cached list for (service, normalizedQuery), or
// false on miss. Expired entries are removed on access and count as misses.
func (c *ResultCache) Get(service, normalizedQuery string) ([]string, bool) {
	key := cacheKey(service, normalizedQuery)

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.recordMiss(service)
		return nil, false
	}

	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		c.recordMiss(service)
		c.recordEvictions(1)
		return nil, false
	}

	c.recordHit(service)
	out := make([]string, len(e.values))
	copy(out, e.values)
	return out, true
}

// Set stores a copy of values under (service, normalizedQuery) with the
// default TTL. Re-caching the same key from concurrent requests is harmless:
// last write wins and both writers computed equivalent results.
func (c *ResultCache) Set(service, normalizedQuery string, values []string) {
	c.SetWithTTL(service, normalizedQuery, values, c.ttl)
}

// SetWithTTL stores a copy of values with an explicit TTL.
func (c *ResultCache) SetWithTTL(service, normalizedQuery string, values []string, ttl time.Duration) {
	stored := make([]string, len(values))
	copy(stored, values)

	c.mu.Lock()
	c.entries[cacheKey(service, normalizedQuery)] = entry{
		values:    stored,
		expiresAt: c.now().Add(ttl),
	}
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.setTotalKeys(total)
}

// Clear removes all entries belonging to one service.
func (c *ResultCache) Clear(service string) {
	prefix := service + keySep

	c.mu.Lock()
	evicted := int64(0)
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			evicted++
		}
	}
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.recordEvictions(evicted)
	c.setTotalKeys(total)
}

// ClearAll removes every entry in a single atomic operation.
func (c *ResultCache) ClearAll() {
	c.mu.Lock()
	evicted := int64(len(c.entries))
	c.entries = make(map[string]entry)
	c.mu.Unlock()

	c.recordEvictions(evicted)
	c.setTotalKeys(0)
}

// Len returns the current number of entries, including any not yet swept.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of the cache counters.
func (c *ResultCache) GetStats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// HitRate returns the cache hit rate as a percentage.
func (c *ResultCache) HitRate() float64 {
	s := c.GetStats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

// sweepLoop periodically removes expired entries.
func (c *ResultCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}

// sweep removes all expired entries.
func (c *ResultCache) sweep() {
	now := c.now()

	c.mu.Lock()
	evicted := int64(0)
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.recordEvictions(evicted)
	c.setTotalKeys(total)
}

func cacheKey(service, normalizedQuery string) string {
	return service + keySep + normalizedQuery
}

func (c *ResultCache) recordHit(service string) {
	c.statsMu.Lock()
	c.stats.Hits++
	c.statsMu.Unlock()
	metrics.CacheHits.WithLabelValues(service).Inc()
}

func (c *ResultCache) recordMiss(service string) {
	c.statsMu.Lock()
	c.stats.Misses++
	c.statsMu.Unlock()
	metrics.CacheMisses.WithLabelValues(service).Inc()
}

func (c *ResultCache) recordEvictions(n int64) {
	if n == 0 {
		return
	}
	c.statsMu.Lock()
	c.stats.Evictions += n
	c.statsMu.Unlock()
}

func (c *ResultCache) setTotalKeys(total int64) {
	c.statsMu.Lock()
	c.stats.TotalKeys = total
	c.statsMu.Unlock()
	metrics.CacheEntries.Set(float64(total))
}
