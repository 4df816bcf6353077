// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package pipeline

// ingredientKeywords must appear in the title or snippet for a candidate to
// be structurally plausible as an ingredient.
var ingredientKeywords = []string{
	"ingredient",
	"spice",
	"herb",
	"vegetable",
	"fruit",
	"plant",
	"seed",
	"oil",
	"grain",
	"meat",
	"fish",
	"cheese",
	"root",
	"leaf",
	"edible",
	"culinary",
	"nut",
	"berry",
	"legume",
	"flour",
	"flavor",
	"flavour",
	"food",
}

// genericIngredientTerms are single words too generic to stand as an
// ingredient suggestion.
var genericIngredientTerms = []string{
	"ingredient",
	"food",
	"plant",
	"produce",
	"spice",
	"meat",
	"vegetable",
	"fruit",
}

// isLikelyIngredient is the structural filter for ingredient candidates.
func isLikelyIngredient(c Candidate) bool {
	return containsAny(c.Title+" "+c.Snippet, ingredientKeywords)
}

// extractIngredientName strips parenthetical qualifiers such as
// "(ingredient)" or "(spice)" from the title.
func extractIngredientName(title string) string {
	return stripParentheticals(title)
}

// isValidIngredientName applies ingredient-specific validity rules.
func isValidIngredientName(name string) bool {
	if len(name) < 3 || len(name) > 25 {
		return false
	}
	if hasNonDomainTerm(name) {
		return false
	}
	if personNameRe.MatchString(name) {
		return false
	}
	if wordCount(name) == 1 {
		return !isGenericTerm(name, genericIngredientTerms)
	}
	return true
}
