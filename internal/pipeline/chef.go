// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package pipeline

import (
	"regexp"
	"strings"
)

// chefKeywords must appear in the title or snippet for a candidate to be
// structurally plausible as a chef.
var chefKeywords = []string{
	"chef",
	"culinary",
	"cook",
	"restaurateur",
	"michelin",
	"cuisine",
	"gastronom",
}

// personNameRe matches "Firstname [Middlename ...] Lastname" capitalization:
// two to four capitalized words, allowing apostrophes, periods and hyphens
// inside a word ("Paul O'Connell", "David J.-P. Chang").
var personNameRe = regexp.MustCompile(`^\p{Lu}[\p{Ll}'’.-]+(?: \p{Lu}[\p{Ll}'’.-]*){1,3}$`)

// isLikelyChef is the structural filter for chef candidates: the title must
// look like a person name and the hit must mention a culinary keyword.
func isLikelyChef(c Candidate) bool {
	base := stripParentheticals(c.Title)
	if !personNameRe.MatchString(base) {
		return false
	}
	return containsAny(c.Title+" "+c.Snippet, chefKeywords)
}

// extractChefName strips parenthetical qualifiers from the title.
func extractChefName(title string) string {
	return stripParentheticals(title)
}

// isValidChefName applies chef-specific validity rules.
func isValidChefName(name string) bool {
	if len(name) < 3 || len(name) > 60 {
		return false
	}
	if wordCount(name) < 2 {
		return false
	}
	if strings.ContainsAny(name, "0123456789") {
		return false
	}
	return !hasNonDomainTerm(name)
}

// chefBioRe matches the opening-sentence shape of a chef biography:
// "... is/was a(n) [nationality/honorific ...] chef/cook/restaurateur".
var chefBioRe = regexp.MustCompile(`(?i)\b(?:is|was)\s+(?:an?\s+)?(?:[\p{L}'’-]+\s+){0,4}(?:chef|cook|restaurateur)\b`)

// chefDisqualifiers reject pages about media productions or fictional
// characters that the biography pattern would otherwise accept.
var chefDisqualifiers = []string{"television", "fictional", "series"}

// verifyChefExtract accepts the opening sentence of a source page only when
// it reads like a real chef biography.
func verifyChefExtract(extract string) bool {
	if strings.TrimSpace(extract) == "" {
		return false
	}
	if containsAny(extract, chefDisqualifiers) {
		return false
	}
	return chefBioRe.MatchString(extract)
}
