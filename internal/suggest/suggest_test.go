// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package suggest

import (
	"context"
	"testing"

	"github.com/maubert/saporium/internal/pipeline"
)

// fakeSource is a Lookuper returning canned results per kind.
type fakeSource struct {
	service string
	names   []string
	calls   int
}

func (f *fakeSource) Service() string { return f.service }

func (f *fakeSource) Lookup(_ context.Context, _ pipeline.Kind, _ string) []string {
	f.calls++
	return f.names
}

func newOrchestrator(sources ...Lookuper) *Orchestrator {
	return NewOrchestrator(testIndex(), Options{Sources: sources})
}

func TestSuggestStaticMatch(t *testing.T) {
	o := newOrchestrator()

	res := o.Suggest(context.Background(), Request{Query: "Gordon", Kind: pipeline.KindChef})

	if len(res.Suggestions) != 1 || res.Suggestions[0] != "Gordon Ramsay" {
		t.Errorf("Suggestions = %v, want [Gordon Ramsay]", res.Suggestions)
	}
	if res.Source != SourceStaticMatch {
		t.Errorf("Source = %q, want %q", res.Source, SourceStaticMatch)
	}
}

func TestSuggestCuisineSuffixMatch(t *testing.T) {
	o := newOrchestrator()

	res := o.Suggest(context.Background(), Request{Query: "jam", Kind: pipeline.KindCuisine})

	found := false
	for _, s := range res.Suggestions {
		if s == "Japanese" {
			t.Errorf("Japanese should not match query jam: %v", res.Suggestions)
		}
		if s == "Jamaican" {
			found = true
		}
	}
	if !found {
		t.Errorf("Suggestions = %v, want Jamaican included", res.Suggestions)
	}
}

func TestSuggestEmptyQuery(t *testing.T) {
	o := newOrchestrator()

	res := o.Suggest(context.Background(), Request{Query: "  ", Kind: pipeline.KindDish})
	if len(res.Suggestions) != 0 {
		t.Errorf("Suggestions = %v, want empty", res.Suggestions)
	}
	if res.Source != SourceStaticFallback {
		t.Errorf("Source = %q, want %q", res.Source, SourceStaticFallback)
	}
}

func TestSuggestEnhancedMergesExternal(t *testing.T) {
	src := &fakeSource{service: "test", names: []string{"Jamaican patty", "Jamaican"}}
	o := newOrchestrator(src)

	res := o.Suggest(context.Background(), Request{Query: "jam", Kind: pipeline.KindCuisine, Enhanced: true})

	if src.calls != 1 {
		t.Fatalf("source calls = %d, want 1", src.calls)
	}
	if res.Source != SourceExternalEnhanced {
		t.Errorf("Source = %q, want %q", res.Source, SourceExternalEnhanced)
	}

	// "Jamaican" appears in both static and external; merged output holds
	// it exactly once.
	count := 0
	foundPatty := false
	for _, s := range res.Suggestions {
		if s == "Jamaican" {
			count++
		}
		if s == "Jamaican patty" {
			foundPatty = true
		}
	}
	if count != 1 {
		t.Errorf("Jamaican appears %d times in %v, want 1", count, res.Suggestions)
	}
	if !foundPatty {
		t.Errorf("Suggestions = %v, want Jamaican patty included", res.Suggestions)
	}
}

func TestSuggestGracefulDegrade(t *testing.T) {
	// A source that yields nothing stands in for a timed-out upstream:
	// the resilient client maps every failure to an empty list.
	src := &fakeSource{service: "test", names: nil}
	o := newOrchestrator(src)

	res := o.Suggest(context.Background(), Request{Query: "Gordon", Kind: pipeline.KindChef, Enhanced: true})

	if res.Source != SourceStaticFallback {
		t.Errorf("Source = %q, want %q", res.Source, SourceStaticFallback)
	}
	if len(res.Suggestions) != 1 || res.Suggestions[0] != "Gordon Ramsay" {
		t.Errorf("Suggestions = %v, want static [Gordon Ramsay]", res.Suggestions)
	}
}

func TestSuggestSparseKindQueriesExternal(t *testing.T) {
	src := &fakeSource{service: "test", names: []string{"Shakshouka with feta"}}
	o := newOrchestrator(src)

	res := o.Suggest(context.Background(), Request{Query: "shaksh", Kind: pipeline.KindDish})

	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1 for sparse kind with scarce static results", src.calls)
	}
	if res.Source != SourceExternalEnhanced {
		t.Errorf("Source = %q, want %q", res.Source, SourceExternalEnhanced)
	}
}

func TestSuggestCuisineNotEnhancedSkipsExternal(t *testing.T) {
	src := &fakeSource{service: "test", names: []string{"whatever"}}
	o := newOrchestrator(src)

	o.Suggest(context.Background(), Request{Query: "ita", Kind: pipeline.KindCuisine})

	if src.calls != 0 {
		t.Errorf("source calls = %d, want 0 when enhanced not requested", src.calls)
	}
}

func TestSuggestRestaurantNeverExternal(t *testing.T) {
	src := &fakeSource{service: "test", names: []string{"whatever"}}
	o := newOrchestrator(src)

	res := o.Suggest(context.Background(), Request{Query: "noma", Kind: pipeline.KindRestaurant, Enhanced: true})

	if src.calls != 0 {
		t.Errorf("source calls = %d, want 0 for restaurant kind", src.calls)
	}
	if res.Source != SourceStaticMatch {
		t.Errorf("Source = %q, want %q", res.Source, SourceStaticMatch)
	}
	if res.HasMoreResults {
		t.Error("HasMoreResults = true for restaurant kind, want false")
	}
}

func TestSuggestHasMoreResultsWhenScarce(t *testing.T) {
	o := newOrchestrator()

	res := o.Suggest(context.Background(), Request{Query: "Gordon", Kind: pipeline.KindChef})
	if !res.HasMoreResults {
		t.Error("HasMoreResults = false with a single static match, want true")
	}
}

func TestSuggestLimitApplied(t *testing.T) {
	o := newOrchestrator()

	res := o.Suggest(context.Background(), Request{Query: "a", Kind: pipeline.KindCuisine, Limit: 3})
	if len(res.Suggestions) > 3 {
		t.Errorf("len(Suggestions) = %d, want <= 3", len(res.Suggestions))
	}
}

func TestSuggestRankingExactFirst(t *testing.T) {
	src := &fakeSource{service: "test", names: []string{"Pho bo", "Pho"}}
	o := newOrchestrator(src)

	res := o.Suggest(context.Background(), Request{Query: "pho", Kind: pipeline.KindDish, Enhanced: true})

	if len(res.Suggestions) == 0 || res.Suggestions[0] != "Pho" {
		t.Errorf("Suggestions = %v, want exact match Pho first", res.Suggestions)
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe([]string{"Jamaican", "jamaican", "JAMAICAN", "Japanese", ""})
	if len(got) != 2 || got[0] != "Jamaican" || got[1] != "Japanese" {
		t.Errorf("dedupe() = %v, want [Jamaican Japanese]", got)
	}
}
