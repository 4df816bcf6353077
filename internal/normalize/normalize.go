// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

// Package normalize produces canonical comparison keys for user queries and
// entity names. Every matching stage in the engine compares normalized forms,
// so "Café" and "cafe" resolve to the same key.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the canonical comparison key for s: Unicode NFD
// decomposition with combining diacritical marks removed, lowercased and
// whitespace-trimmed. It is a pure, total function; malformed input falls
// back to lowercase/trim without diacritic folding. Idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	folded, err := foldDiacritics(s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Equal reports whether two strings normalize to the same key.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// foldDiacritics decomposes s to NFD and removes combining marks (Mn).
// The transformer chain carries internal buffers, so a fresh chain is built
// per call to stay safe under concurrent use.
func foldDiacritics(s string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	return folded, err
}
