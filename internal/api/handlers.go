// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/maubert/saporium/internal/breaker"
	"github.com/maubert/saporium/internal/cache"
	"github.com/maubert/saporium/internal/pipeline"
	"github.com/maubert/saporium/internal/suggest"
	"github.com/maubert/saporium/internal/validation"
)

// Handler holds the dependencies of all HTTP handlers.
type Handler struct {
	orchestrator *suggest.Orchestrator
	cache        *cache.ResultCache
	breakers     []*breaker.Breaker
	defaultLimit int
	maxLimit     int
}

// NewHandler creates the API handler set.
func NewHandler(o *suggest.Orchestrator, c *cache.ResultCache, breakers []*breaker.Breaker, defaultLimit, maxLimit int) *Handler {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &Handler{
		orchestrator: o,
		cache:        c,
		breakers:     breakers,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// suggestParams is the validated query-parameter set of GET /suggest.
type suggestParams struct {
	Query    string `validate:"required,min=1,max=100"`
	Kind     string `validate:"required,entitykind"`
	Limit    int    `validate:"min=1"`
	Enhanced bool
	Location string `validate:"max=100"`
}

// suggestPayload is the data body of a suggestion response.
type suggestPayload struct {
	Suggestions    []string `json:"suggestions"`
	Source         string   `json:"source"`
	HasMoreResults bool     `json:"has_more_results"`
	Kind           string   `json:"kind"`
	Query          string   `json:"query"`
}

// Suggest handles GET /api/v1/suggest?q=&kind=&limit=&enhanced=&location=
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := suggestParams{
		Query:    strings.TrimSpace(q.Get("q")),
		Kind:     q.Get("kind"),
		Limit:    h.defaultLimit,
		Enhanced: parseBoolParam(q.Get("enhanced")),
		Location: strings.TrimSpace(q.Get("location")),
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "limit must be an integer", nil)
			return
		}
		params.Limit = n
	}

	if apiErr := validation.ValidateStruct(&params); apiErr != nil {
		e := apiErr.ToAPIError()
		respondError(w, r, http.StatusBadRequest, e.Code, e.Message, nil)
		return
	}

	kind, ok := pipeline.ParseKind(params.Kind)
	if !ok {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "kind must be a supported entity kind", nil)
		return
	}

	limit := params.Limit
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	res := h.orchestrator.Suggest(r.Context(), suggest.Request{
		Query:    params.Query,
		Kind:     kind,
		Limit:    limit,
		Enhanced: params.Enhanced,
		Location: params.Location,
	})

	respondSuccess(w, r, suggestPayload{
		Suggestions:    res.Suggestions,
		Source:         res.Source,
		HasMoreResults: res.HasMoreResults,
		Kind:           string(kind),
		Query:          params.Query,
	})
}

// Kinds handles GET /api/v1/suggest/kinds
func (h *Handler) Kinds(w http.ResponseWriter, r *http.Request) {
	kinds := pipeline.Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	respondSuccess(w, r, map[string]interface{}{"kinds": out})
}

// CacheClear handles POST /api/v1/suggest/cache/clear?service=
// Without a service parameter it clears the whole result cache.
func (h *Handler) CacheClear(w http.ResponseWriter, r *http.Request) {
	service := strings.TrimSpace(r.URL.Query().Get("service"))

	if service == "" {
		h.cache.ClearAll()
	} else {
		h.cache.Clear(service)
	}

	respondSuccess(w, r, map[string]interface{}{
		"cleared": true,
		"service": service,
		"entries": h.cache.Len(),
	})
}

// HealthLive handles GET /api/v1/health/live — process liveness only.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]interface{}{"status": "alive"})
}

// breakerStatus is one circuit breaker's introspection entry.
type breakerStatus struct {
	Service  string `json:"service"`
	State    string `json:"state"`
	Failures int    `json:"failures"`
}

// HealthReady handles GET /api/v1/health/ready. The service stays ready
// while breakers are open (it degrades to static suggestions), so breaker
// and cache state are reported for operators rather than gating readiness.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	statuses := make([]breakerStatus, 0, len(h.breakers))
	for _, b := range h.breakers {
		statuses = append(statuses, breakerStatus{
			Service:  b.Service(),
			State:    b.State().String(),
			Failures: b.FailureCount(),
		})
	}

	stats := h.cache.GetStats()
	respondSuccess(w, r, map[string]interface{}{
		"status":   "ready",
		"breakers": statuses,
		"cache": map[string]interface{}{
			"entries":  h.cache.Len(),
			"hits":     stats.Hits,
			"misses":   stats.Misses,
			"hit_rate": h.cache.HitRate(),
		},
	})
}

// parseBoolParam parses a query flag; unset or malformed means false.
func parseBoolParam(s string) bool {
	v, err := strconv.ParseBool(s)
	return err == nil && v
}
