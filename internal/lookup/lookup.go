// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package lookup

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/maubert/saporium/internal/breaker"
	"github.com/maubert/saporium/internal/cache"
	"github.com/maubert/saporium/internal/logging"
	"github.com/maubert/saporium/internal/metrics"
	"github.com/maubert/saporium/internal/normalize"
	"github.com/maubert/saporium/internal/pipeline"
	"github.com/maubert/saporium/internal/quota"
)

// Source fetches cleaned entity names of one kind from an upstream
// service. Implementations return names ready for ranking; transient
// upstream failures surface as errors and are handled by the wrapper.
type Source interface {
	Name() string
	Fetch(ctx context.Context, kind pipeline.Kind, query string) ([]string, error)
}

// ResilientClient wraps a Source with the full degradation chain:
// result cache, windowed circuit breaker, client-side rate limiter, quota
// accounting, and a hard per-request timeout. Lookup never returns an
// error: every failure mode degrades to an empty result so the caller can
// fall back to static suggestions.
type ResilientClient struct {
	source  Source
	cache   *cache.ResultCache
	breaker *breaker.Breaker
	limiter *rate.Limiter
	quota   quota.Recorder
	timeout time.Duration
}

// ResilientOptions configures a ResilientClient.
type ResilientOptions struct {
	Cache   *cache.ResultCache
	Breaker *breaker.Breaker
	Quota   quota.Recorder

	// RateLimit is the sustained request rate to the upstream, in
	// requests per second. RateBurst is the burst allowance.
	RateLimit float64
	RateBurst int

	// Timeout bounds one upstream fetch. Defaults to 5s.
	Timeout time.Duration
}

// NewResilientClient wraps source with caching, circuit breaking, rate
// limiting, and quota accounting.
func NewResilientClient(source Source, opts ResilientOptions) *ResilientClient {
	limit := opts.RateLimit
	if limit <= 0 {
		limit = 2.0
	}
	burst := opts.RateBurst
	if burst < 1 {
		burst = 1
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	q := opts.Quota
	if q == nil {
		q = quota.NoopRecorder{}
	}
	return &ResilientClient{
		source:  source,
		cache:   opts.Cache,
		breaker: opts.Breaker,
		limiter: rate.NewLimiter(rate.Limit(limit), burst),
		quota:   q,
		timeout: timeout,
	}
}

// Service returns the wrapped source's service name.
func (c *ResilientClient) Service() string { return c.source.Name() }

// Lookup fetches names for the query from the upstream, going through the
// degradation chain in order. Failures trip the breaker and yield an
// empty result; an empty successful result is cached like any other.
func (c *ResilientClient) Lookup(ctx context.Context, kind pipeline.Kind, query string) []string {
	if !kind.External() {
		return nil
	}

	service := c.source.Name()
	cacheKey := string(kind) + ":" + normalize.Normalize(query)

	if c.cache != nil {
		if values, ok := c.cache.Get(service, cacheKey); ok {
			return values
		}
	}

	if c.breaker != nil && !c.breaker.Allow() {
		logging.Debug().
			Str("service", service).
			Str("kind", string(kind)).
			Msg("Circuit breaker open, skipping external lookup")
		metrics.RecordExternalRequest(service, "breaker_open", 0)
		return nil
	}

	if !c.limiter.Allow() {
		logging.Debug().
			Str("service", service).
			Str("kind", string(kind)).
			Msg("Client-side rate limit reached, skipping external lookup")
		metrics.RecordExternalRequest(service, "rate_limited", 0)
		return nil
	}

	c.quota.RecordExternalCall(service)

	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	names, err := c.source.Fetch(fetchCtx, kind, query)
	duration := time.Since(start)

	if err != nil {
		if c.breaker != nil {
			c.breaker.RecordFailure()
		}
		metrics.RecordExternalRequest(service, "error", duration)
		logging.Warn().
			Err(err).
			Str("service", service).
			Str("kind", string(kind)).
			Dur("duration", duration).
			Msg("External lookup failed, degrading to static suggestions")
		return nil
	}

	metrics.RecordExternalRequest(service, "success", duration)

	if c.cache != nil {
		c.cache.Set(service, cacheKey, names)
	}
	return names
}
