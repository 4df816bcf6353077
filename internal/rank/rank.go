// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

// Package rank orders suggestion candidates by relevance to the user's query.
// The ordering is a stable total order so identical inputs always produce
// identical output, which the suggestion tests rely on.
package rank

import (
	"sort"
	"strings"

	"github.com/maubert/saporium/internal/normalize"
)

// Rank returns names ordered by relevance to query. The comparator applies,
// in priority order:
//
//  1. exact match (case and diacritic insensitive)
//  2. prefix match
//  3. smaller index of first occurrence of the query substring
//  4. shorter name
//  5. lexicographic order
//
// An empty or whitespace-only query returns a copy of the input unchanged.
// The input slice is never mutated.
func Rank(names []string, query string) []string {
	ranked := make([]string, len(names))
	copy(ranked, names)

	q := normalize.Normalize(query)
	if q == "" {
		return ranked
	}

	keys := make(map[string]string, len(ranked))
	for _, n := range ranked {
		keys[n] = normalize.Normalize(n)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j], keys[ranked[i]], keys[ranked[j]], q)
	})
	return ranked
}

// less reports whether name a ranks strictly ahead of name b for query q.
// ka and kb are the precomputed normalized keys of a and b.
func less(a, b, ka, kb, q string) bool {
	aExact, bExact := ka == q, kb == q
	if aExact != bExact {
		return aExact
	}

	aPrefix, bPrefix := strings.HasPrefix(ka, q), strings.HasPrefix(kb, q)
	if aPrefix != bPrefix {
		return aPrefix
	}

	ai, bi := substringIndex(ka, q), substringIndex(kb, q)
	if ai != bi {
		return ai < bi
	}

	if len(a) != len(b) {
		return len(a) < len(b)
	}

	return a < b
}

// substringIndex returns the index of the first occurrence of q in s, with
// non-occurrence sorting after every occurrence.
func substringIndex(s, q string) int {
	if i := strings.Index(s, q); i >= 0 {
		return i
	}
	return len(s) + 1
}
