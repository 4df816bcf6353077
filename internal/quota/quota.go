// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

// Package quota records external API usage against an optional accounting
// endpoint. Recording is fire-and-forget: failures are logged and counted
// but never surface to the caller, and recording never blocks a
// suggestion request.
package quota

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/maubert/saporium/internal/logging"
	"github.com/maubert/saporium/internal/metrics"
)

// Recorder records one external lookup against a named upstream service.
type Recorder interface {
	RecordExternalCall(service string)
}

// NoopRecorder discards all usage records. Used when quota accounting is
// not configured.
type NoopRecorder struct{}

func (NoopRecorder) RecordExternalCall(string) {}

// HTTPRecorder posts usage records to an accounting endpoint. Each record
// is delivered in its own goroutine with a short timeout.
type HTTPRecorder struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPRecorder creates a recorder that posts to the given endpoint.
func NewHTTPRecorder(url string, timeout time.Duration) *HTTPRecorder {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HTTPRecorder{
		url:     url,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

type usageRecord struct {
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordExternalCall posts a usage record asynchronously. Errors are
// logged at debug level and swallowed.
func (r *HTTPRecorder) RecordExternalCall(service string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := r.post(ctx, service); err != nil {
			metrics.QuotaNotifyTotal.WithLabelValues(service, "error").Inc()
			logging.Debug().
				Err(err).
				Str("service", service).
				Msg("Quota notification failed")
			return
		}
		metrics.QuotaNotifyTotal.WithLabelValues(service, "success").Inc()
	}()
}

func (r *HTTPRecorder) post(ctx context.Context, service string) error {
	body, err := json.Marshal(usageRecord{
		Service:   service,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode usage record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post usage record: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("accounting endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
