// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package lookup

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/maubert/saporium/internal/pipeline"
)

// ServiceEncyclopedia is the service name used for cache keys, circuit
// breaker identity, and metrics labels.
const ServiceEncyclopedia = "encyclopedia"

// searchHints augment the raw query with a domain word so the full-text
// search surfaces culinary pages first.
var searchHints = map[pipeline.Kind]string{
	pipeline.KindChef:       "chef",
	pipeline.KindDish:       "dish",
	pipeline.KindCuisine:    "cuisine",
	pipeline.KindIngredient: "ingredient",
}

// htmlTagRe strips markup from search snippets, which arrive with
// highlight spans around matched terms.
var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// EncyclopediaClient searches the encyclopedia API for candidate pages and
// classifies them through the per-kind pipeline. It also implements
// pipeline.Verifier, serving opening extracts for chef verification.
//
// Thread Safety: all methods are safe for concurrent use.
type EncyclopediaClient struct {
	baseURL     string
	userAgent   string
	searchLimit int
	suffixes    []string
	verifyMax   int
	client      *http.Client
}

// EncyclopediaOptions configures an EncyclopediaClient.
type EncyclopediaOptions struct {
	UserAgent   string
	Timeout     time.Duration
	SearchLimit int
	Suffixes    []string
	VerifyMax   int
}

// NewEncyclopediaClient creates an encyclopedia client for the given API
// endpoint (e.g. https://en.wikipedia.org/w/api.php).
func NewEncyclopediaClient(baseURL string, opts EncyclopediaOptions) *EncyclopediaClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	searchLimit := opts.SearchLimit
	if searchLimit <= 0 {
		searchLimit = 10
	}
	return &EncyclopediaClient{
		baseURL:     baseURL,
		userAgent:   opts.UserAgent,
		searchLimit: searchLimit,
		suffixes:    opts.Suffixes,
		verifyMax:   opts.VerifyMax,
		client:      &http.Client{Timeout: timeout},
	}
}

// Name implements Source.
func (c *EncyclopediaClient) Name() string { return ServiceEncyclopedia }

// Fetch implements Source. It searches for candidate pages and runs them
// through the classification pipeline for the requested kind. Chef
// candidates are verified against their opening extract.
func (c *EncyclopediaClient) Fetch(ctx context.Context, kind pipeline.Kind, query string) ([]string, error) {
	cands, err := c.Search(ctx, kind, query)
	if err != nil {
		return nil, err
	}

	p := pipeline.New(kind, pipeline.Options{
		Suffixes:  c.suffixes,
		Verifier:  c,
		VerifyMax: c.verifyMax,
	})
	return p.Run(ctx, cands, query), nil
}

// searchResponse is the subset of the search API response we read.
type searchResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
			PageID  int64  `json:"pageid"`
		} `json:"search"`
	} `json:"query"`
}

// Search performs a full-text search and returns raw candidates with
// markup stripped from their snippets.
func (c *EncyclopediaClient) Search(ctx context.Context, kind pipeline.Kind, query string) ([]pipeline.Candidate, error) {
	term := strings.TrimSpace(query)
	if hint, ok := searchHints[kind]; ok {
		term = term + " " + hint
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", term)
	params.Set("srlimit", strconv.Itoa(c.searchLimit))
	params.Set("srprop", "snippet")
	params.Set("format", "json")
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	resp, err := doGetWithRetry(ctx, c.client, reqURL, c.userAgent, "application/json")
	if err != nil {
		return nil, fmt.Errorf("encyclopedia search failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return nil, fmt.Errorf("encyclopedia search returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode encyclopedia search response: %w", err)
	}

	cands := make([]pipeline.Candidate, 0, len(decoded.Query.Search))
	for _, hit := range decoded.Query.Search {
		cands = append(cands, pipeline.Candidate{
			Title:   hit.Title,
			Snippet: stripMarkup(hit.Snippet),
			PageID:  hit.PageID,
		})
	}
	return cands, nil
}

// extractResponse is the subset of the extracts API response we read.
// Pages are keyed by page ID.
type extractResponse struct {
	Query struct {
		Pages map[string]struct {
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// OpeningExtract implements pipeline.Verifier. It returns the first
// sentence of the named page in plain text.
func (c *EncyclopediaClient) OpeningExtract(ctx context.Context, title string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("exsentences", "1")
	params.Set("titles", title)
	params.Set("format", "json")
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	resp, err := doGetWithRetry(ctx, c.client, reqURL, c.userAgent, "application/json")
	if err != nil {
		return "", fmt.Errorf("extract request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return "", fmt.Errorf("extract request returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode extract response: %w", err)
	}

	for _, page := range decoded.Query.Pages {
		if extract := strings.TrimSpace(page.Extract); extract != "" {
			return extract, nil
		}
	}
	return "", fmt.Errorf("no extract found for %q", title)
}

// stripMarkup removes HTML tags and entities from a search snippet.
func stripMarkup(s string) string {
	return html.UnescapeString(htmlTagRe.ReplaceAllString(s, ""))
}
