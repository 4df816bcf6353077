// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

// Package suggest merges static reference-list matches with resilient
// external lookups into one ranked, deduplicated suggestion list. The
// contract is "static first, external on demand": the cheap static match
// always runs, external sources are consulted only when the caller asks
// for enhanced results or the kind's static list is known to be sparse,
// and every failure mode degrades to whatever the static lists produced.
package suggest

import (
	"context"
	"strings"
	"time"

	"github.com/maubert/saporium/internal/logging"
	"github.com/maubert/saporium/internal/metrics"
	"github.com/maubert/saporium/internal/normalize"
	"github.com/maubert/saporium/internal/pipeline"
	"github.com/maubert/saporium/internal/rank"
)

// Source tags returned to callers so the UI (and tests) can distinguish
// how a suggestion list was produced.
const (
	SourceStaticMatch      = "static_match"
	SourceStaticFallback   = "static_fallback"
	SourceExternalEnhanced = "external_enhanced"
)

// Request is one suggestion query.
type Request struct {
	Query    string
	Kind     pipeline.Kind
	Limit    int
	Enhanced bool

	// Location narrows restaurant suggestions to a city. Ignored for
	// other kinds.
	Location string
}

// Result is the ranked suggestion list with its provenance tag.
type Result struct {
	Suggestions    []string
	Source         string
	HasMoreResults bool
}

// Lookuper is the resilient external client consumed by the orchestrator.
type Lookuper interface {
	Service() string
	Lookup(ctx context.Context, kind pipeline.Kind, query string) []string
}

// sparseKinds are the kinds whose static lists cover only a sliver of the
// domain, so external lookups run even without an explicit enhanced
// request, provided static matching came up scarce.
var sparseKinds = map[pipeline.Kind]bool{
	pipeline.KindDish:       true,
	pipeline.KindIngredient: true,
}

// Orchestrator composes the static index with external sources.
type Orchestrator struct {
	static          *StaticIndex
	sources         []Lookuper
	scarceThreshold int
}

// Options configures an Orchestrator.
type Options struct {
	// Sources are consulted in order when external lookup runs.
	Sources []Lookuper

	// ScarceThreshold is the static result count below which more
	// results are assumed to exist externally. Defaults to 3.
	ScarceThreshold int
}

// NewOrchestrator creates the suggestion orchestrator over a static index.
func NewOrchestrator(static *StaticIndex, opts Options) *Orchestrator {
	threshold := opts.ScarceThreshold
	if threshold <= 0 {
		threshold = 3
	}
	return &Orchestrator{
		static:          static,
		sources:         opts.Sources,
		scarceThreshold: threshold,
	}
}

// Suggest runs one suggestion request end to end: static match, optional
// external lookups, case-insensitive dedup, ranking, and limit. It never
// returns an error; failed external lookups degrade to the static result.
func (o *Orchestrator) Suggest(ctx context.Context, req Request) Result {
	start := time.Now()
	res := o.suggest(ctx, req)

	metrics.SuggestionRequestsTotal.WithLabelValues(string(req.Kind), res.Source).Inc()
	metrics.SuggestionDuration.WithLabelValues(string(req.Kind)).Observe(time.Since(start).Seconds())
	return res
}

func (o *Orchestrator) suggest(ctx context.Context, req Request) Result {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return Result{Suggestions: []string{}, Source: SourceStaticFallback}
	}

	static := o.static.Match(req.Kind, query, req.Location)
	scarce := len(static) < o.scarceThreshold

	wantExternal := req.Kind.External() && (req.Enhanced || (sparseKinds[req.Kind] && scarce))
	if !wantExternal {
		return Result{
			Suggestions:    o.finish(static, query, req.Limit),
			Source:         staticSource(static),
			HasMoreResults: req.Kind.External() && scarce,
		}
	}

	merged := static
	externalCount := 0
	for _, src := range o.sources {
		names := src.Lookup(ctx, req.Kind, query)
		if len(names) > 0 {
			logging.Debug().
				Str("service", src.Service()).
				Str("kind", string(req.Kind)).
				Int("results", len(names)).
				Msg("External source contributed suggestions")
		}
		externalCount += len(names)
		merged = append(merged, names...)
	}

	source := SourceExternalEnhanced
	if externalCount == 0 {
		// All external sources degraded; report the weakest tag so the
		// caller knows enhancement did not happen.
		source = SourceStaticFallback
	}

	return Result{
		Suggestions: o.finish(merged, query, req.Limit),
		Source:      source,
	}
}

// finish deduplicates case-insensitively, ranks, and applies the limit.
func (o *Orchestrator) finish(names []string, query string, limit int) []string {
	deduped := dedupe(names)
	ranked := rank.Rank(deduped, query)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// dedupe removes duplicates by normalized key, keeping first occurrence
// order so static entries win the display form.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		key := normalize.Normalize(n)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}

func staticSource(static []string) string {
	if len(static) > 0 {
		return SourceStaticMatch
	}
	return SourceStaticFallback
}
