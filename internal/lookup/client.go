// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

// Package lookup implements the external entity sources: a structured
// knowledge base queried over SPARQL and an encyclopedia search API whose
// hits are run through the candidate classification pipeline. Both are
// wrapped in a ResilientClient that layers caching, circuit breaking,
// client-side rate limiting, and a hard timeout, and degrades to an empty
// result instead of returning an error.
package lookup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxErrorBodySize limits the maximum amount of response body read for error reporting
const maxErrorBodySize = 64 * 1024 // 64KB

// readBodyForError reads the response body for error reporting (max 64KB).
// Returns the body content or a placeholder message if reading fails.
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// doGetWithRetry performs a GET request with automatic rate limit handling.
// Implements exponential backoff for HTTP 429 responses (1s, 2s, 4s).
// The context is used for cancellation during backoff waits.
func doGetWithRetry(ctx context.Context, client *http.Client, reqURL, userAgent, accept string) (*http.Response, error) {
	const maxRetries = 3
	retryBaseDelay := 1 * time.Second

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if userAgent != "" {
			req.Header.Set("User-Agent", userAgent)
		}
		if accept != "" {
			req.Header.Set("Accept", accept)
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Rate limited (HTTP 429) - close body and retry with backoff
		_ = resp.Body.Close()

		if attempt == maxRetries {
			lastErr = fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", maxRetries)
			break
		}

		delay := retryBaseDelay * time.Duration(1<<uint(attempt))

		// Honor Retry-After if the upstream sends one (RFC 6585)
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
				delay = seconds
			}
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}
