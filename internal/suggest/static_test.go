// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package suggest

import (
	"testing"

	"github.com/maubert/saporium/internal/pipeline"
)

func testIndex() *StaticIndex {
	return NewStaticIndex(DefaultStaticData(), nil)
}

func TestStaticIndexSuffixMatch(t *testing.T) {
	ix := testIndex()

	got := ix.Match(pipeline.KindCuisine, "jam", "")
	if len(got) != 1 || got[0] != "Jamaican" {
		t.Errorf(`Match(cuisine, "jam") = %v, want [Jamaican]`, got)
	}
}

func TestStaticIndexPrefixMatch(t *testing.T) {
	ix := testIndex()

	got := ix.Match(pipeline.KindChef, "Gordon", "")
	if len(got) != 1 || got[0] != "Gordon Ramsay" {
		t.Errorf(`Match(chef, "Gordon") = %v, want [Gordon Ramsay]`, got)
	}
}

func TestStaticIndexDiacriticInsensitive(t *testing.T) {
	ix := testIndex()

	got := ix.Match(pipeline.KindChef, "jose", "")
	if len(got) != 1 || got[0] != "José Andrés" {
		t.Errorf(`Match(chef, "jose") = %v, want [José Andrés]`, got)
	}
}

func TestStaticIndexEmptyQuery(t *testing.T) {
	ix := testIndex()

	if got := ix.Match(pipeline.KindCuisine, "   ", ""); got != nil {
		t.Errorf("Match with blank query = %v, want nil", got)
	}
}

func TestStaticIndexNoMatch(t *testing.T) {
	ix := testIndex()

	if got := ix.Match(pipeline.KindIngredient, "xyzzy", ""); len(got) != 0 {
		t.Errorf(`Match(ingredient, "xyzzy") = %v, want empty`, got)
	}
}

func TestStaticIndexRestaurantLocation(t *testing.T) {
	ix := testIndex()

	all := ix.Match(pipeline.KindRestaurant, "le", "")
	if len(all) < 2 {
		t.Fatalf(`Match(restaurant, "le") = %v, want at least 2`, all)
	}

	ny := ix.Match(pipeline.KindRestaurant, "le", "New York")
	for _, name := range ny {
		if name != "Eleven Madison Park" && name != "Le Bernardin" {
			t.Errorf("unexpected New York restaurant %q", name)
		}
	}
	if len(ny) == 0 {
		t.Error("location filter removed all matches")
	}
	if len(ny) >= len(all) {
		t.Errorf("location filter did not narrow results: %d vs %d", len(ny), len(all))
	}
}

func TestStaticIndexSkipsBlankEntries(t *testing.T) {
	ix := NewStaticIndex(StaticData{Cuisines: []string{"  ", "Italian", ""}}, nil)
	if ix.Size(pipeline.KindCuisine) != 1 {
		t.Errorf("Size(cuisine) = %d, want 1", ix.Size(pipeline.KindCuisine))
	}
}
