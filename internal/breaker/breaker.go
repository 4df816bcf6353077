// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

// Package breaker implements a per-service circuit breaker whose state is
// derived, not stored: the circuit is OPEN exactly when the number of failure
// timestamps inside the trailing window reaches the configured threshold.
//
// There is no half-open state and no background timer. The window is pruned
// lazily on every access, so the circuit self-heals as soon as old failures
// age out. External knowledge-base queries are read-only and idempotent, so a
// probing call after recovery costs nothing beyond latency.
package breaker

import (
	"errors"
	"sync"
	"time"

	"github.com/maubert/saporium/internal/metrics"
)

// ErrOpen is returned by Allow-style call sites when the circuit is open and
// the wrapped call was skipped without a network attempt.
var ErrOpen = errors.New("circuit breaker is open")

// State is the derived circuit state.
type State int

const (
	// StateClosed means calls may proceed.
	StateClosed State = iota
	// StateOpen means calls are skipped and callers receive a synthetic
	// failure immediately.
	StateOpen
)

// String returns the state name for logging.
func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// Breaker tracks recent failures of one external service in a sliding time
// window. Safe for concurrent use.
type Breaker struct {
	mu          sync.Mutex
	service     string
	maxFailures int
	window      time.Duration

	// failures holds timestamps in ascending order; entries older than the
	// trailing window are pruned on every access.
	failures []time.Time

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// New creates a breaker for the named service. The circuit opens once
// maxFailures failures have been recorded within the trailing window.
func New(service string, maxFailures int, window time.Duration) *Breaker {
	if maxFailures <= 0 {
		maxFailures = 3
	}
	if window <= 0 {
		window = time.Minute
	}
	metrics.CircuitBreakerState.WithLabelValues(service).Set(0)
	return &Breaker{
		service:     service,
		maxFailures: maxFailures,
		window:      window,
		now:         time.Now,
	}
}

// Allow reports whether a call to the wrapped service may proceed.
// It prunes aged-out failures first, so the circuit closes again once the
// window elapses without new failures.
func (b *Breaker) Allow() bool {
	return b.State() == StateClosed
}

// State derives the current circuit state from the pruned failure window.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.prune()
	state := StateClosed
	if len(b.failures) >= b.maxFailures {
		state = StateOpen
	}
	metrics.CircuitBreakerState.WithLabelValues(b.service).Set(float64(state))
	return state
}

// RecordFailure appends a failure timestamp. Call it on every timeout,
// connection error, non-success response or parse failure of the wrapped
// service.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.prune()
	b.failures = append(b.failures, b.now())
	metrics.CircuitBreakerFailures.WithLabelValues(b.service).Inc()

	if len(b.failures) == b.maxFailures {
		metrics.CircuitBreakerTrips.WithLabelValues(b.service).Inc()
		metrics.CircuitBreakerState.WithLabelValues(b.service).Set(float64(StateOpen))
	}
}

// FailureCount returns the number of failures currently inside the window.
func (b *Breaker) FailureCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.prune()
	return len(b.failures)
}

// Reset discards all recorded failures, forcing the circuit closed.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = b.failures[:0]
	metrics.CircuitBreakerState.WithLabelValues(b.service).Set(float64(StateClosed))
}

// Service returns the service name this breaker guards.
func (b *Breaker) Service() string {
	return b.service
}

// prune drops timestamps older than the trailing window.
// Must be called with mu held.
func (b *Breaker) prune() {
	cutoff := b.now().Add(-b.window)
	keep := 0
	for keep < len(b.failures) && !b.failures[keep].After(cutoff) {
		keep++
	}
	if keep > 0 {
		b.failures = append(b.failures[:0], b.failures[keep:]...)
	}
}
