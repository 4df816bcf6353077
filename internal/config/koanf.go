// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/saporium/config.yaml",
	"/etc/saporium/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8462,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		API: APIConfig{
			DefaultLimit:      10,
			MaxLimit:          50,
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Knowledge: KnowledgeConfig{
			Enabled:   true,
			URL:       "https://query.wikidata.org/sparql",
			Timeout:   5 * time.Second,
			UserAgent: "Saporium/1.0 (https://github.com/maubert/saporium)",
			RateLimit: 2.0,
			RateBurst: 2,
		},
		Encyclopedia: EncyclopediaConfig{
			Enabled:     true,
			URL:         "https://en.wikipedia.org/w/api.php",
			Timeout:     5 * time.Second,
			UserAgent:   "Saporium/1.0 (https://github.com/maubert/saporium)",
			SearchLimit: 10,
			RateLimit:   2.0,
			RateBurst:   2,
		},
		Suggest: SuggestConfig{
			ScarceThreshold:    3,
			VerifyMax:          3,
			DemonymSuffixes:    []string{"an", "ian", "ese", "ish", "ean", "ic", "i"},
			CacheTTL:           15 * time.Minute,
			CacheSweepInterval: 5 * time.Minute,
			BreakerMaxFailures: 3,
			BreakerWindow:      1 * time.Minute,
		},
		Quota: QuotaConfig{
			Enabled: false,
			URL:     "",
			Timeout: 2 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config File: optional YAML config file (if exists)
//  3. Environment Variables: override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// HTTP_PORT -> server.port
	// KNOWLEDGE_URL -> knowledge.url
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"api.cors_origins",
	"suggest.demonym_suffixes",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - KNOWLEDGE_URL -> knowledge.url
//   - SUGGEST_CACHE_TTL -> suggest.cache_ttl
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_host":        "server.host",
		"http_port":        "server.port",
		"http_timeout":     "server.timeout",
		"shutdown_timeout": "server.shutdown_timeout",
		"environment":      "server.environment",

		// API mappings
		"api_default_limit":   "api.default_limit",
		"api_max_limit":       "api.max_limit",
		"rate_limit_requests": "api.rate_limit_reqs",
		"rate_limit_window":   "api.rate_limit_window",
		"disable_rate_limit":  "api.rate_limit_disabled",
		"cors_origins":        "api.cors_origins",

		// Knowledge base mappings
		"knowledge_enabled":    "knowledge.enabled",
		"knowledge_url":        "knowledge.url",
		"knowledge_timeout":    "knowledge.timeout",
		"knowledge_user_agent": "knowledge.user_agent",
		"knowledge_rate_limit": "knowledge.rate_limit",
		"knowledge_rate_burst": "knowledge.rate_burst",

		// Encyclopedia mappings
		"encyclopedia_enabled":      "encyclopedia.enabled",
		"encyclopedia_url":          "encyclopedia.url",
		"encyclopedia_timeout":      "encyclopedia.timeout",
		"encyclopedia_user_agent":   "encyclopedia.user_agent",
		"encyclopedia_search_limit": "encyclopedia.search_limit",
		"encyclopedia_rate_limit":   "encyclopedia.rate_limit",
		"encyclopedia_rate_burst":   "encyclopedia.rate_burst",

		// Suggestion engine mappings
		"suggest_scarce_threshold":     "suggest.scarce_threshold",
		"suggest_verify_max":           "suggest.verify_max",
		"suggest_demonym_suffixes":     "suggest.demonym_suffixes",
		"suggest_cache_ttl":            "suggest.cache_ttl",
		"suggest_cache_sweep_interval": "suggest.cache_sweep_interval",
		"suggest_breaker_max_failures": "suggest.breaker_max_failures",
		"suggest_breaker_window":       "suggest.breaker_window",

		// Quota recorder mappings
		"quota_enabled": "quota.enabled",
		"quota_url":     "quota.url",
		"quota_timeout": "quota.timeout",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them.
	// This prevents random environment variables from polluting config.
	return ""
}
