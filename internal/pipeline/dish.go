// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package pipeline

import "strings"

// dishKeywords must appear in the title or snippet for a candidate to be
// structurally plausible as a dish.
var dishKeywords = []string{
	"dish",
	"food",
	"cuisine",
	"recipe",
	"soup",
	"stew",
	"salad",
	"dessert",
	"bread",
	"cake",
	"noodle",
	"pasta",
	"sauce",
	"curry",
	"pastry",
	"meal",
	"cooked",
	"baked",
	"fried",
	"grilled",
	"steamed",
	"served",
	"eaten",
}

// genericDishTerms are single words too generic to be a useful dish
// suggestion on their own.
var genericDishTerms = []string{
	"food",
	"dish",
	"meal",
	"recipe",
	"cuisine",
	"cooking",
	"menu",
	"snack",
	"lunch",
	"dinner",
	"breakfast",
	"dessert",
	"restaurant",
}

// isLikelyDish is the structural filter for dish candidates.
func isLikelyDish(c Candidate) bool {
	return containsAny(c.Title+" "+c.Snippet, dishKeywords)
}

// extractDishName strips parenthetical qualifiers such as "(dish)" or
// "(food)" from the title.
func extractDishName(title string) string {
	return stripParentheticals(title)
}

// isValidDishName applies dish-specific validity rules: length bounds,
// no generic single-word terms, no person names, no non-domain titles.
// Multi-word names are accepted as likely specific dishes.
func isValidDishName(name string) bool {
	if len(name) < 3 || len(name) > 50 {
		return false
	}
	if hasNonDomainTerm(name) {
		return false
	}
	if personNameRe.MatchString(name) {
		return false
	}
	if wordCount(name) == 1 {
		return !isGenericTerm(name, genericDishTerms)
	}
	return true
}

// isGenericTerm reports whether name equals one of the generic terms,
// case-insensitively.
func isGenericTerm(name string, generics []string) bool {
	n := strings.ToLower(name)
	for _, g := range generics {
		if n == g {
			return true
		}
	}
	return false
}
