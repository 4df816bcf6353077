// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package lookup

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/maubert/saporium/internal/normalize"
	"github.com/maubert/saporium/internal/pipeline"
)

// ServiceKnowledge is the service name used for cache keys, circuit
// breaker identity, and metrics labels.
const ServiceKnowledge = "knowledge"

// entityClasses maps each kind to the knowledge base class constraint used
// in the SPARQL pattern.
var entityClasses = map[pipeline.Kind]string{
	pipeline.KindChef:       "?item wdt:P106 wd:Q3499072 .",          // occupation: chef
	pipeline.KindDish:       "?item wdt:P31/wdt:P279* wd:Q746549 .",  // instance of: dish
	pipeline.KindCuisine:    "?item wdt:P31/wdt:P279* wd:Q1968435 .", // instance of: cuisine
	pipeline.KindIngredient: "?item wdt:P31/wdt:P279* wd:Q25403900 .", // instance of: food ingredient
}

// missingLabelRe matches entity identifiers returned in place of a label
// when no English label exists.
var missingLabelRe = regexp.MustCompile(`^Q\d+$`)

// KnowledgeClient queries the structured knowledge base over its SPARQL
// endpoint and returns entity labels matching the query text.
//
// Thread Safety: all methods are safe for concurrent use.
type KnowledgeClient struct {
	baseURL   string
	userAgent string
	limit     int
	client    *http.Client
}

// NewKnowledgeClient creates a knowledge base client for the given SPARQL
// endpoint.
func NewKnowledgeClient(baseURL, userAgent string, timeout time.Duration) *KnowledgeClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KnowledgeClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		limit:     20,
		client:    &http.Client{Timeout: timeout},
	}
}

// Name implements Source.
func (c *KnowledgeClient) Name() string { return ServiceKnowledge }

// sparqlResponse is the subset of the SPARQL JSON results format we read.
type sparqlResponse struct {
	Results struct {
		Bindings []struct {
			ItemLabel struct {
				Value string `json:"value"`
			} `json:"itemLabel"`
		} `json:"bindings"`
	} `json:"results"`
}

// Fetch implements Source. It returns entity labels whose lowercased form
// contains the query text. Labels are matched both against the raw query
// and its diacritic-folded form so "pho" finds "Phở".
func (c *KnowledgeClient) Fetch(ctx context.Context, kind pipeline.Kind, query string) ([]string, error) {
	classPattern, ok := entityClasses[kind]
	if !ok {
		return nil, fmt.Errorf("kind %q has no knowledge base mapping", kind)
	}

	sparql := buildLabelQuery(classPattern, query, c.limit)

	params := url.Values{}
	params.Set("query", sparql)
	params.Set("format", "json")
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	resp, err := doGetWithRetry(ctx, c.client, reqURL, c.userAgent, "application/sparql-results+json")
	if err != nil {
		return nil, fmt.Errorf("knowledge base request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return nil, fmt.Errorf("knowledge base returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded sparqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode knowledge base response: %w", err)
	}

	names := make([]string, 0, len(decoded.Results.Bindings))
	for _, b := range decoded.Results.Bindings {
		label := strings.TrimSpace(b.ItemLabel.Value)
		if label == "" || missingLabelRe.MatchString(label) {
			continue
		}
		names = append(names, label)
	}
	return names, nil
}

// buildLabelQuery assembles the SPARQL query for one entity class and
// query text.
func buildLabelQuery(classPattern, query string, limit int) string {
	raw := escapeSPARQLString(strings.ToLower(strings.TrimSpace(query)))
	folded := escapeSPARQLString(normalize.Normalize(query))

	filter := fmt.Sprintf(`CONTAINS(LCASE(STR(?itemLabel)), "%s")`, raw)
	if folded != "" && folded != raw {
		filter = fmt.Sprintf(`%s || CONTAINS(LCASE(STR(?itemLabel)), "%s")`, filter, folded)
	}

	return fmt.Sprintf(`SELECT DISTINCT ?itemLabel WHERE {
  %s
  ?item rdfs:label ?itemLabel .
  FILTER(LANG(?itemLabel) = "en")
  FILTER(%s)
} LIMIT %d`, classPattern, filter, limit)
}

// escapeSPARQLString escapes backslashes and quotes for embedding in a
// SPARQL string literal.
func escapeSPARQLString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
