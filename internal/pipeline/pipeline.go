// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

// Package pipeline turns raw external search hits into clean, validated
// entity names. Each entity kind runs the same ordered stages over the
// candidate list:
//
//	structural filter -> name extraction -> validity check -> query containment
//
// Every stage is a pure filter or map; a candidate that fails any stage is
// simply excluded. The pipeline never returns an error, so the orchestrator
// can always fall back to static matching. Chef candidates additionally get
// verified against the opening sentence of their source page, bounded to a
// small number of lookups per request.
package pipeline

import (
	"context"
	"strings"

	"github.com/maubert/saporium/internal/logging"
	"github.com/maubert/saporium/internal/normalize"
)

// Kind identifies the entity kind a query is about.
type Kind string

const (
	KindChef       Kind = "chef"
	KindDish       Kind = "dish"
	KindCuisine    Kind = "cuisine"
	KindIngredient Kind = "ingredient"

	// KindRestaurant is matched against static reference lists only and
	// never goes through the external pipeline.
	KindRestaurant Kind = "restaurant"
)

// Kinds returns all supported entity kinds.
func Kinds() []Kind {
	return []Kind{KindChef, KindDish, KindCuisine, KindIngredient, KindRestaurant}
}

// ParseKind maps a request string onto a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindChef:
		return KindChef, true
	case KindDish:
		return KindDish, true
	case KindCuisine:
		return KindCuisine, true
	case KindIngredient:
		return KindIngredient, true
	case KindRestaurant:
		return KindRestaurant, true
	}
	return "", false
}

// ExternalKinds reports whether the kind is eligible for external lookups.
func (k Kind) External() bool {
	return k != KindRestaurant
}

// Candidate is a raw external search hit. It lives only for the duration of
// one pipeline run.
type Candidate struct {
	Title   string
	Snippet string
	PageID  int64
}

// Verifier retrieves the opening sentence of a named source page. The
// encyclopedia client implements it; tests use stubs.
type Verifier interface {
	OpeningExtract(ctx context.Context, title string) (string, error)
}

// DefaultSuffixes are the language/demonym suffix patterns used by the
// query-containment stage so that progressive typing matches demonyms
// ("Jam" matching "Jamaican"). Hand-tuned for English; treated as
// configuration data, not algorithm.
var DefaultSuffixes = []string{"an", "ian", "ese", "ish", "ean", "ic", "i"}

// Options configures a Pipeline.
type Options struct {
	// Suffixes overrides DefaultSuffixes when non-nil.
	Suffixes []string

	// Verifier enables chef verification when set. Ignored for other kinds.
	Verifier Verifier

	// VerifyMax bounds the number of verification lookups per request.
	// Defaults to 3.
	VerifyMax int
}

// Pipeline is the per-kind candidate classification chain.
type Pipeline struct {
	kind      Kind
	suffixes  []string
	verifier  Verifier
	verifyMax int
}

// New creates the pipeline for one entity kind.
func New(kind Kind, opts Options) *Pipeline {
	suffixes := opts.Suffixes
	if suffixes == nil {
		suffixes = DefaultSuffixes
	}
	verifyMax := opts.VerifyMax
	if verifyMax <= 0 {
		verifyMax = 3
	}
	return &Pipeline{
		kind:      kind,
		suffixes:  suffixes,
		verifier:  opts.Verifier,
		verifyMax: verifyMax,
	}
}

// Kind returns the entity kind this pipeline classifies.
func (p *Pipeline) Kind() Kind {
	return p.kind
}

// Run applies the classification stages to cands and returns the cleaned
// entity names that match query, in candidate order, deduplicated. It never
// returns an error; every failure mode yields a shorter (possibly empty)
// list.
func (p *Pipeline) Run(ctx context.Context, cands []Candidate, query string) []string {
	type hit struct {
		cand Candidate
		name string
	}

	var hits []hit
	for _, c := range cands {
		if !p.likely(c) {
			continue
		}
		name := p.extract(c.Title)
		if name == "" {
			continue
		}
		if !p.valid(name) {
			continue
		}
		if !Matches(name, query, p.suffixes) {
			continue
		}
		hits = append(hits, hit{cand: c, name: name})
	}

	if p.kind == KindChef && p.verifier != nil {
		verified := hits[:0]
		for i, h := range hits {
			if i >= p.verifyMax {
				break
			}
			if p.verifyChef(ctx, h.cand.Title) {
				verified = append(verified, h)
			}
		}
		hits = verified
	}

	seen := make(map[string]struct{}, len(hits))
	names := make([]string, 0, len(hits))
	for _, h := range hits {
		key := normalize.Normalize(h.name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, h.name)
	}
	return names
}

// likely is the structural filter stage.
func (p *Pipeline) likely(c Candidate) bool {
	if isMetaPage(c.Title, c.Snippet) {
		return false
	}
	switch p.kind {
	case KindChef:
		return isLikelyChef(c)
	case KindDish:
		return isLikelyDish(c)
	case KindCuisine:
		return isLikelyCuisine(c)
	case KindIngredient:
		return isLikelyIngredient(c)
	default:
		return false
	}
}

// extract is the name extraction/cleanup stage. An empty result means the
// candidate could not be cleaned and is dropped.
func (p *Pipeline) extract(title string) string {
	switch p.kind {
	case KindChef:
		return extractChefName(title)
	case KindDish:
		return extractDishName(title)
	case KindCuisine:
		return extractCuisineName(title)
	case KindIngredient:
		return extractIngredientName(title)
	default:
		return ""
	}
}

// valid is the kind-specific validity stage.
func (p *Pipeline) valid(name string) bool {
	switch p.kind {
	case KindChef:
		return isValidChefName(name)
	case KindDish:
		return isValidDishName(name)
	case KindCuisine:
		return isValidCuisineName(name)
	case KindIngredient:
		return isValidIngredientName(name)
	default:
		return false
	}
}

// verifyChef fetches the opening sentence of the source page and accepts the
// candidate only when it reads like a chef biography. Lookup failures drop
// the candidate; the orchestrator degrades to static results.
func (p *Pipeline) verifyChef(ctx context.Context, title string) bool {
	extract, err := p.verifier.OpeningExtract(ctx, title)
	if err != nil {
		logging.Debug().Err(err).Str("title", title).Msg("chef verification lookup failed")
		return false
	}
	return verifyChefExtract(extract)
}

// Matches implements the query-containment stage: the normalized name
// contains the normalized query, or starts with it, or starts with the query
// plus one of the configured language suffixes. Deliberately trades precision
// for responsiveness while the user is still typing.
func Matches(name, query string, suffixes []string) bool {
	n := normalize.Normalize(name)
	q := normalize.Normalize(query)
	if q == "" {
		return false
	}
	if strings.Contains(n, q) {
		return true
	}
	if strings.HasPrefix(n, q) {
		return true
	}
	for _, suffix := range suffixes {
		if strings.HasPrefix(n, q+suffix) {
			return true
		}
	}
	return false
}

// metaMarkers flag encyclopedia meta pages: disambiguation pages, list
// articles, and non-article namespaces.
var metaMarkers = []string{
	"disambiguation",
	"list of",
	"lists of",
	"index of",
	"outline of",
	"glossary of",
	"category:",
	"talk:",
	"template:",
	"wikipedia:",
	"portal:",
	"help:",
	"draft:",
}

// isMetaPage rejects candidates whose title or snippet marks a meta page.
func isMetaPage(title, snippet string) bool {
	t := strings.ToLower(title)
	s := strings.ToLower(snippet)
	for _, m := range metaMarkers {
		if strings.Contains(t, m) || strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// stripParentheticals removes every "(...)" qualifier from a title, e.g.
// "Gordon Ramsay (chef)" -> "Gordon Ramsay".
func stripParentheticals(title string) string {
	var b strings.Builder
	depth := 0
	for _, r := range title {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// containsAny reports whether the lowercased haystack contains any keyword.
func containsAny(haystack string, keywords []string) bool {
	h := strings.ToLower(haystack)
	for _, kw := range keywords {
		if strings.Contains(h, kw) {
			return true
		}
	}
	return false
}

// wordCount counts whitespace-separated words.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// nonDomainTerms mark titles that belong to other domains entirely:
// media productions, brands and geography rather than culinary entities.
var nonDomainTerms = []string{
	"episode",
	"(film",
	"film)",
	"album",
	"song)",
	"band)",
	"tv series",
	"television series",
	"video game",
	"magazine",
	"franchise",
	"novel)",
	"character",
	"restaurant chain",
	"company)",
	"province",
	"county",
	"municipality",
	"district)",
	"river)",
	"mountain)",
}

// hasNonDomainTerm rejects names from non-culinary domains.
func hasNonDomainTerm(name string) bool {
	return containsAny(name, nonDomainTerms)
}
