// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package lookup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maubert/saporium/internal/breaker"
	"github.com/maubert/saporium/internal/cache"
	"github.com/maubert/saporium/internal/pipeline"
)

type spySource struct {
	name  string
	calls int
	names []string
	err   error
}

func (s *spySource) Name() string { return s.name }

func (s *spySource) Fetch(_ context.Context, _ pipeline.Kind, _ string) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.names, nil
}

type spyRecorder struct {
	services []string
}

func (r *spyRecorder) RecordExternalCall(service string) {
	r.services = append(r.services, service)
}

func TestLookupReturnsSourceResults(t *testing.T) {
	src := &spySource{name: "test", names: []string{"Jamaican", "Japanese"}}
	client := NewResilientClient(src, ResilientOptions{RateLimit: 100, RateBurst: 100})

	got := client.Lookup(context.Background(), pipeline.KindCuisine, "ja")
	if len(got) != 2 || got[0] != "Jamaican" {
		t.Errorf("Lookup() = %v, want [Jamaican Japanese]", got)
	}
	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1", src.calls)
	}
}

func TestLookupCacheHitAvoidsFetch(t *testing.T) {
	src := &spySource{name: "test", names: []string{"Saffron"}}
	c := cache.New(time.Minute, 0)
	client := NewResilientClient(src, ResilientOptions{Cache: c, RateLimit: 100, RateBurst: 100})

	first := client.Lookup(context.Background(), pipeline.KindIngredient, "saff")
	second := client.Lookup(context.Background(), pipeline.KindIngredient, "saff")

	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1", src.calls)
	}
	if len(first) != 1 || len(second) != 1 || second[0] != "Saffron" {
		t.Errorf("results = %v / %v, want [Saffron] both times", first, second)
	}
}

func TestLookupCacheKeyIncludesKind(t *testing.T) {
	src := &spySource{name: "test", names: []string{"result"}}
	c := cache.New(time.Minute, 0)
	client := NewResilientClient(src, ResilientOptions{Cache: c, RateLimit: 100, RateBurst: 100})

	client.Lookup(context.Background(), pipeline.KindDish, "curry")
	client.Lookup(context.Background(), pipeline.KindCuisine, "curry")

	if src.calls != 2 {
		t.Errorf("source calls = %d, want 2 (one per kind)", src.calls)
	}
}

func TestLookupCacheExpiryRefetches(t *testing.T) {
	src := &spySource{name: "test", names: []string{"Pho"}}
	c := cache.New(10*time.Millisecond, 0)
	client := NewResilientClient(src, ResilientOptions{Cache: c, RateLimit: 100, RateBurst: 100})

	client.Lookup(context.Background(), pipeline.KindDish, "pho")
	time.Sleep(20 * time.Millisecond)
	client.Lookup(context.Background(), pipeline.KindDish, "pho")

	if src.calls != 2 {
		t.Errorf("source calls = %d, want 2 after TTL expiry", src.calls)
	}
}

func TestLookupErrorDegradesToEmpty(t *testing.T) {
	src := &spySource{name: "test", err: errors.New("upstream down")}
	b := breaker.New("test", 3, time.Minute)
	client := NewResilientClient(src, ResilientOptions{Breaker: b, RateLimit: 100, RateBurst: 100})

	got := client.Lookup(context.Background(), pipeline.KindChef, "gordon")
	if got != nil {
		t.Errorf("Lookup() = %v, want nil on upstream error", got)
	}
	if b.FailureCount() != 1 {
		t.Errorf("breaker failure count = %d, want 1", b.FailureCount())
	}
}

func TestLookupOpenBreakerSkipsFetch(t *testing.T) {
	src := &spySource{name: "test", err: errors.New("upstream down")}
	b := breaker.New("test", 2, time.Minute)
	client := NewResilientClient(src, ResilientOptions{Breaker: b, RateLimit: 100, RateBurst: 100})

	client.Lookup(context.Background(), pipeline.KindChef, "a")
	client.Lookup(context.Background(), pipeline.KindChef, "b")

	if b.State() != breaker.StateOpen {
		t.Fatalf("breaker state = %v, want open after 2 failures", b.State())
	}

	// Third request must be short-circuited without touching the source.
	client.Lookup(context.Background(), pipeline.KindChef, "c")
	if src.calls != 2 {
		t.Errorf("source calls = %d, want 2", src.calls)
	}
}

func TestLookupRateLimitSkipsFetch(t *testing.T) {
	src := &spySource{name: "test", names: []string{"x"}}
	client := NewResilientClient(src, ResilientOptions{RateLimit: 0.001, RateBurst: 1})

	client.Lookup(context.Background(), pipeline.KindDish, "a")
	got := client.Lookup(context.Background(), pipeline.KindDish, "b")

	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1 (second blocked by limiter)", src.calls)
	}
	if got != nil {
		t.Errorf("rate-limited Lookup() = %v, want nil", got)
	}
}

func TestLookupStaticOnlyKindNeverFetches(t *testing.T) {
	src := &spySource{name: "test", names: []string{"x"}}
	client := NewResilientClient(src, ResilientOptions{RateLimit: 100, RateBurst: 100})

	got := client.Lookup(context.Background(), pipeline.KindRestaurant, "noma")
	if got != nil || src.calls != 0 {
		t.Errorf("restaurant lookup = %v with %d calls, want nil and 0 calls", got, src.calls)
	}
}

func TestLookupRecordsQuota(t *testing.T) {
	src := &spySource{name: "knowledge", names: []string{"x"}}
	rec := &spyRecorder{}
	client := NewResilientClient(src, ResilientOptions{Quota: rec, RateLimit: 100, RateBurst: 100})

	client.Lookup(context.Background(), pipeline.KindDish, "a")
	if len(rec.services) != 1 || rec.services[0] != "knowledge" {
		t.Errorf("recorded services = %v, want [knowledge]", rec.services)
	}
}
