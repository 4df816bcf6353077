// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestLoadWithKoanfDefaults(t *testing.T) {
	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 8462 {
		t.Errorf("Server.Port = %d, want 8462", cfg.Server.Port)
	}
	if cfg.Suggest.CacheTTL != 15*time.Minute {
		t.Errorf("Suggest.CacheTTL = %s, want 15m", cfg.Suggest.CacheTTL)
	}
	if cfg.Suggest.BreakerMaxFailures != 3 {
		t.Errorf("Suggest.BreakerMaxFailures = %d, want 3", cfg.Suggest.BreakerMaxFailures)
	}
	if len(cfg.Suggest.DemonymSuffixes) == 0 {
		t.Error("Suggest.DemonymSuffixes is empty")
	}
	if cfg.API.DefaultLimit != 10 || cfg.API.MaxLimit != 50 {
		t.Errorf("API limits = %d/%d, want 10/50", cfg.API.DefaultLimit, cfg.API.MaxLimit)
	}
}

func TestLoadWithKoanfEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9001")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SUGGEST_CACHE_TTL", "30m")
	t.Setenv("KNOWLEDGE_ENABLED", "false")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9001 {
		t.Errorf("Server.Port = %d, want 9001", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Suggest.CacheTTL != 30*time.Minute {
		t.Errorf("Suggest.CacheTTL = %s, want 30m", cfg.Suggest.CacheTTL)
	}
	if cfg.Knowledge.Enabled {
		t.Error("Knowledge.Enabled = true, want false")
	}
}

func TestLoadWithKoanfSliceFromEnv(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SUGGEST_DEMONYM_SUFFIXES", "an,ese")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if len(cfg.API.CORSOrigins) != 2 || cfg.API.CORSOrigins[0] != "https://a.example" {
		t.Errorf("API.CORSOrigins = %v", cfg.API.CORSOrigins)
	}
	if len(cfg.Suggest.DemonymSuffixes) != 2 || cfg.Suggest.DemonymSuffixes[1] != "ese" {
		t.Errorf("Suggest.DemonymSuffixes = %v", cfg.Suggest.DemonymSuffixes)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("server:\n  port: 7777\nlogging:\n  level: warn\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want 7777", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 0 }},
		{"max limit below default", func(c *Config) { c.API.MaxLimit = 5 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"knowledge enabled without url", func(c *Config) { c.Knowledge.URL = "" }},
		{"knowledge bad scheme", func(c *Config) { c.Knowledge.URL = "ftp://example.org/sparql" }},
		{"breaker threshold zero", func(c *Config) { c.Suggest.BreakerMaxFailures = 0 }},
		{"negative cache ttl", func(c *Config) { c.Suggest.CacheTTL = -time.Second }},
		{"quota enabled without url", func(c *Config) { c.Quota.Enabled = true; c.Quota.URL = "" }},
		{"bad environment", func(c *Config) { c.Server.Environment = "staging" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestValidateEndpointURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://query.wikidata.org/sparql", false},
		{"https://en.wikipedia.org/w/api.php", false},
		{"http://localhost:8080", false},
		{"ftp://example.org", true},
		{"https://", true},
		{"https://example.org/api?key=1", true},
	}
	for _, tt := range tests {
		err := validateEndpointURL(tt.url, "TEST_URL")
		if (err != nil) != tt.wantErr {
			t.Errorf("validateEndpointURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}
