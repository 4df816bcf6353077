// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package cache

import (
	"reflect"
	"sync"
	"testing"
	"time"
)

// fixedClock lets tests move time forward without sleeping.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFixedClock() *fixedClock {
	return &fixedClock{now: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestCache(ttl time.Duration) (*ResultCache, *fixedClock) {
	clock := newFixedClock()
	c := New(ttl, 0)
	c.now = clock.Now
	return c, clock
}

func TestGetMissOnEmptyCache(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	if _, ok := c.Get("wikidata", "pizza"); ok {
		t.Error("expected miss on empty cache")
	}
}

func TestSetThenGet(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set("wikidata", "pizza", []string{"Pizza", "Pizza Margherita"})

	got, ok := c.Get("wikidata", "pizza")
	if !ok {
		t.Fatal("expected hit")
	}
	want := []string{"Pizza", "Pizza Margherita"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get = %v, want %v", got, want)
	}
}

func TestEntriesAreKeyedPerService(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set("wikidata", "pizza", []string{"Pizza"})

	if _, ok := c.Get("wikipedia", "pizza"); ok {
		t.Error("entry for wikidata must not be visible under wikipedia")
	}
}

func TestExpiryByAge(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	c.Set("wikidata", "pizza", []string{"Pizza"})

	clock.Advance(59 * time.Second)
	if _, ok := c.Get("wikidata", "pizza"); !ok {
		t.Error("entry should still be valid before TTL")
	}

	clock.Advance(2 * time.Second)
	if _, ok := c.Get("wikidata", "pizza"); ok {
		t.Error("entry should have expired after TTL")
	}
}

func TestReturnedListIsACopy(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set("wikidata", "pizza", []string{"Pizza"})

	got, _ := c.Get("wikidata", "pizza")
	got[0] = "mutated"

	again, _ := c.Get("wikidata", "pizza")
	if again[0] != "Pizza" {
		t.Errorf("cached entry was mutated via returned slice: %v", again)
	}
}

func TestStoredListIsACopy(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	in := []string{"Pizza"}
	c.Set("wikidata", "pizza", in)
	in[0] = "mutated"

	got, _ := c.Get("wikidata", "pizza")
	if got[0] != "Pizza" {
		t.Errorf("cached entry shares backing array with caller: %v", got)
	}
}

func TestClearService(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set("wikidata", "pizza", []string{"Pizza"})
	c.Set("wikidata", "ramen", []string{"Ramen"})
	c.Set("wikipedia", "pizza", []string{"Pizza"})

	c.Clear("wikidata")

	if _, ok := c.Get("wikidata", "pizza"); ok {
		t.Error("wikidata entries should be cleared")
	}
	if _, ok := c.Get("wikidata", "ramen"); ok {
		t.Error("wikidata entries should be cleared")
	}
	if _, ok := c.Get("wikipedia", "pizza"); !ok {
		t.Error("wikipedia entries must survive Clear(wikidata)")
	}
}

func TestClearAll(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set("wikidata", "pizza", []string{"Pizza"})
	c.Set("wikipedia", "ramen", []string{"Ramen"})

	c.ClearAll()

	if c.Len() != 0 {
		t.Errorf("Len() = %d after ClearAll, want 0", c.Len())
	}
}

func TestStats(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set("wikidata", "pizza", []string{"Pizza"})

	c.Get("wikidata", "pizza")
	c.Get("wikidata", "pizza")
	c.Get("wikidata", "missing")

	s := c.GetStats()
	if s.Hits != 2 {
		t.Errorf("Hits = %d, want 2", s.Hits)
	}
	if s.Misses != 1 {
		t.Errorf("Misses = %d, want 1", s.Misses)
	}
	if s.TotalKeys != 1 {
		t.Errorf("TotalKeys = %d, want 1", s.TotalKeys)
	}

	if rate := c.HitRate(); rate < 66.0 || rate > 67.0 {
		t.Errorf("HitRate() = %f, want ~66.7", rate)
	}
}

func TestSweepRemovesExpired(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	c.Set("wikidata", "pizza", []string{"Pizza"})
	c.Set("wikidata", "fresh", []string{"Fresh"})

	clock.Advance(2 * time.Minute)
	c.Set("wikidata", "newer", []string{"Newer"})
	c.sweep()

	if c.Len() != 1 {
		t.Errorf("Len() = %d after sweep, want 1", c.Len())
	}
	if _, ok := c.Get("wikidata", "newer"); !ok {
		t.Error("unexpired entry removed by sweep")
	}
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set("wikidata", "pizza", []string{"Pizza"})
				c.Get("wikidata", "pizza")
				c.Get("wikidata", "absent")
			}
		}()
	}
	wg.Wait()

	if got, ok := c.Get("wikidata", "pizza"); !ok || got[0] != "Pizza" {
		t.Errorf("expected stable entry after concurrent access, got %v ok=%v", got, ok)
	}
}
