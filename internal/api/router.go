// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds the HTTP-surface settings the router needs.
type RouterConfig struct {
	CORSOrigins       []string
	RateLimitReqs     int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// NewRouter assembles the chi router: tracing and recovery middleware,
// CORS, per-IP rate limiting, Prometheus instrumentation, the suggestion
// endpoints, health probes, and the /metrics scrape endpoint.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", requestIDHeader},
		AllowCredentials: false,
		MaxAge:           86400,
	}))

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1/suggest", func(r chi.Router) {
		if !cfg.RateLimitDisabled && cfg.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		}

		r.With(instrument("/api/v1/suggest")).Get("/", h.Suggest)
		r.With(instrument("/api/v1/suggest/kinds")).Get("/kinds", h.Kinds)
		r.With(instrument("/api/v1/suggest/cache/clear")).Post("/cache/clear", h.CacheClear)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
