// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package suggest

import (
	"strings"

	"github.com/maubert/saporium/internal/normalize"
	"github.com/maubert/saporium/internal/pipeline"
)

// Restaurant is a static restaurant entry. Restaurants carry a city so
// they can be narrowed by location.
type Restaurant struct {
	Name string
	City string
}

// StaticData holds the reference lists the index is built from.
type StaticData struct {
	Chefs       []string
	Dishes      []string
	Cuisines    []string
	Ingredients []string
	Restaurants []Restaurant
}

// indexEntry pairs a display name with its precomputed comparison key.
type indexEntry struct {
	name string
	key  string
}

type restaurantEntry struct {
	indexEntry
	cityKey string
}

// StaticIndex answers substring and demonym-suffix matches over the static
// reference lists. Comparison keys are normalized once at construction;
// the index is immutable afterwards and safe for concurrent use.
type StaticIndex struct {
	entries     map[pipeline.Kind][]indexEntry
	restaurants []restaurantEntry
	suffixes    []string
}

// NewStaticIndex builds an index over the given reference data.
func NewStaticIndex(data StaticData, suffixes []string) *StaticIndex {
	if suffixes == nil {
		suffixes = pipeline.DefaultSuffixes
	}

	ix := &StaticIndex{
		entries:  make(map[pipeline.Kind][]indexEntry, 4),
		suffixes: suffixes,
	}
	ix.entries[pipeline.KindChef] = buildEntries(data.Chefs)
	ix.entries[pipeline.KindDish] = buildEntries(data.Dishes)
	ix.entries[pipeline.KindCuisine] = buildEntries(data.Cuisines)
	ix.entries[pipeline.KindIngredient] = buildEntries(data.Ingredients)

	ix.restaurants = make([]restaurantEntry, 0, len(data.Restaurants))
	for _, r := range data.Restaurants {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		ix.restaurants = append(ix.restaurants, restaurantEntry{
			indexEntry: indexEntry{name: name, key: normalize.Normalize(name)},
			cityKey:    normalize.Normalize(r.City),
		})
	}
	return ix
}

func buildEntries(names []string) []indexEntry {
	entries := make([]indexEntry, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		entries = append(entries, indexEntry{name: n, key: normalize.Normalize(n)})
	}
	return entries
}

// Match returns the names of the given kind matching the query. Location
// narrows restaurant results to a city and is ignored for other kinds.
// The returned slice is freshly allocated.
func (ix *StaticIndex) Match(kind pipeline.Kind, query, location string) []string {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	if kind == pipeline.KindRestaurant {
		return ix.matchRestaurants(query, location)
	}

	var out []string
	for _, e := range ix.entries[kind] {
		if pipeline.Matches(e.name, query, ix.suffixes) {
			out = append(out, e.name)
		}
	}
	return out
}

func (ix *StaticIndex) matchRestaurants(query, location string) []string {
	locKey := normalize.Normalize(location)

	var out []string
	for _, e := range ix.restaurants {
		if locKey != "" && !strings.Contains(e.cityKey, locKey) {
			continue
		}
		if pipeline.Matches(e.name, query, ix.suffixes) {
			out = append(out, e.name)
		}
	}
	return out
}

// Size returns the number of entries held for one kind.
func (ix *StaticIndex) Size(kind pipeline.Kind) int {
	if kind == pipeline.KindRestaurant {
		return len(ix.restaurants)
	}
	return len(ix.entries[kind])
}
