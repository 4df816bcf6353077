// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package config

import "time"

// Config holds all application configuration loaded from defaults, an
// optional YAML config file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in sensible defaults for all settings
//  2. Config File: optional YAML config file (config.yaml)
//  3. Environment Variables: override any setting
//
// Config is immutable after Load() and safe for concurrent read access
// from multiple goroutines.
type Config struct {
	Server       ServerConfig       `koanf:"server"`
	API          APIConfig          `koanf:"api"`
	Knowledge    KnowledgeConfig    `koanf:"knowledge"`
	Encyclopedia EncyclopediaConfig `koanf:"encyclopedia"`
	Suggest      SuggestConfig      `koanf:"suggest"`
	Quota        QuotaConfig        `koanf:"quota"`
	Logging      LoggingConfig      `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// APIConfig holds API surface settings: pagination bounds, rate limiting,
// and CORS.
type APIConfig struct {
	DefaultLimit      int           `koanf:"default_limit"`
	MaxLimit          int           `koanf:"max_limit"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// KnowledgeConfig holds connection settings for the structured knowledge
// base (SPARQL query service). When disabled, suggestions are served from
// the static index alone.
type KnowledgeConfig struct {
	Enabled   bool          `koanf:"enabled"`
	URL       string        `koanf:"url"`
	Timeout   time.Duration `koanf:"timeout"`
	UserAgent string        `koanf:"user_agent"`
	RateLimit float64       `koanf:"rate_limit"` // requests per second to the upstream
	RateBurst int           `koanf:"rate_burst"`
}

// EncyclopediaConfig holds connection settings for the encyclopedia search
// API used for candidate discovery and chef verification.
type EncyclopediaConfig struct {
	Enabled     bool          `koanf:"enabled"`
	URL         string        `koanf:"url"`
	Timeout     time.Duration `koanf:"timeout"`
	UserAgent   string        `koanf:"user_agent"`
	SearchLimit int           `koanf:"search_limit"`
	RateLimit   float64       `koanf:"rate_limit"`
	RateBurst   int           `koanf:"rate_burst"`
}

// SuggestConfig holds the suggestion engine tunables: caching, circuit
// breaking, result scarcity, and the demonym suffixes used for
// query-to-name matching.
type SuggestConfig struct {
	ScarceThreshold    int           `koanf:"scarce_threshold"`
	VerifyMax          int           `koanf:"verify_max"`
	DemonymSuffixes    []string      `koanf:"demonym_suffixes"`
	CacheTTL           time.Duration `koanf:"cache_ttl"`
	CacheSweepInterval time.Duration `koanf:"cache_sweep_interval"`
	BreakerMaxFailures int           `koanf:"breaker_max_failures"`
	BreakerWindow      time.Duration `koanf:"breaker_window"`
}

// QuotaConfig holds settings for the optional external usage recorder.
// Notifications are fire-and-forget and never block a suggestion request.
type QuotaConfig struct {
	Enabled bool          `koanf:"enabled"`
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load loads and validates the full application configuration.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
