// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/maubert/saporium/internal/logging"
	"github.com/maubert/saporium/internal/metrics"
)

// requestIDHeader carries the request ID in both directions.
const requestIDHeader = "X-Request-ID"

// requestID assigns every request a UUID unless the client sent one, and
// echoes it on the response for tracing.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// requestIDFrom returns the request's ID, if one was assigned.
func requestIDFrom(r *http.Request) string {
	return r.Header.Get(requestIDHeader)
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// instrument records per-route Prometheus metrics and an access log line.
func instrument(routePattern string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			metrics.RecordAPIRequest(r.Method, routePattern, rec.status, duration)
			logging.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Dur("duration", duration).
				Str("request_id", requestIDFrom(r)).
				Msg("Request handled")
		})
	}
}
