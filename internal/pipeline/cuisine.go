// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package pipeline

import "strings"

// cuisineKeywords must appear in the title or snippet for a candidate to be
// structurally plausible as a cuisine.
var cuisineKeywords = []string{
	"cuisine",
	"culinary",
	"cooking",
	"gastronomy",
	"food",
	"dishes",
}

// cuisineSuffixes are trailing domain words removed during extraction, so
// "Italian cuisine" becomes "Italian".
var cuisineSuffixes = []string{" cuisine", " cooking", " gastronomy", " food"}

// genericCuisineTerms are single words too generic to stand as a cuisine.
var genericCuisineTerms = []string{
	"cuisine",
	"food",
	"cooking",
	"culinary",
	"gastronomy",
	"traditional",
	"regional",
	"national",
	"fusion",
}

// isLikelyCuisine is the structural filter for cuisine candidates.
func isLikelyCuisine(c Candidate) bool {
	return containsAny(c.Title+" "+c.Snippet, cuisineKeywords)
}

// extractCuisineName strips parenthetical qualifiers and a trailing domain
// suffix from the title.
func extractCuisineName(title string) string {
	name := stripParentheticals(title)
	lower := strings.ToLower(name)
	for _, suffix := range cuisineSuffixes {
		if strings.HasSuffix(lower, suffix) {
			name = strings.TrimSpace(name[:len(name)-len(suffix)])
			break
		}
	}
	return name
}

// isValidCuisineName applies cuisine-specific validity rules.
func isValidCuisineName(name string) bool {
	if len(name) < 3 || len(name) > 30 {
		return false
	}
	if hasNonDomainTerm(name) {
		return false
	}
	if personNameRe.MatchString(name) {
		return false
	}
	if wordCount(name) == 1 {
		return !isGenericTerm(name, genericCuisineTerms)
	}
	return true
}
