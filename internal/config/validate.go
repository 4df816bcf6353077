// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateKnowledge(); err != nil {
		return err
	}

	if err := c.validateEncyclopedia(); err != nil {
		return err
	}

	if err := c.validateSuggest(); err != nil {
		return err
	}

	if err := c.validateQuota(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got: %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got: %s", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got: %s", c.Server.ShutdownTimeout)
	}
	env := strings.ToLower(c.Server.Environment)
	if env != "development" && env != "production" && env != "test" {
		return fmt.Errorf("ENVIRONMENT must be development, production, or test, got: %s", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultLimit < 1 {
		return fmt.Errorf("API_DEFAULT_LIMIT must be at least 1, got: %d", c.API.DefaultLimit)
	}
	if c.API.MaxLimit < c.API.DefaultLimit {
		return fmt.Errorf("API_MAX_LIMIT (%d) must be >= API_DEFAULT_LIMIT (%d)", c.API.MaxLimit, c.API.DefaultLimit)
	}
	if !c.API.RateLimitDisabled {
		if c.API.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got: %d", c.API.RateLimitReqs)
		}
		if c.API.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got: %s", c.API.RateLimitWindow)
		}
	}
	return nil
}

// validateKnowledge validates knowledge base configuration (only if enabled)
func (c *Config) validateKnowledge() error {
	if !c.Knowledge.Enabled {
		return nil
	}
	if c.Knowledge.URL == "" {
		return fmt.Errorf("KNOWLEDGE_URL is required when KNOWLEDGE_ENABLED=true")
	}
	if err := validateEndpointURL(c.Knowledge.URL, "KNOWLEDGE_URL"); err != nil {
		return err
	}
	if c.Knowledge.Timeout <= 0 {
		return fmt.Errorf("KNOWLEDGE_TIMEOUT must be positive, got: %s", c.Knowledge.Timeout)
	}
	if c.Knowledge.RateLimit <= 0 {
		return fmt.Errorf("KNOWLEDGE_RATE_LIMIT must be positive, got: %f", c.Knowledge.RateLimit)
	}
	if c.Knowledge.RateBurst < 1 {
		return fmt.Errorf("KNOWLEDGE_RATE_BURST must be at least 1, got: %d", c.Knowledge.RateBurst)
	}
	return nil
}

// validateEncyclopedia validates encyclopedia configuration (only if enabled)
func (c *Config) validateEncyclopedia() error {
	if !c.Encyclopedia.Enabled {
		return nil
	}
	if c.Encyclopedia.URL == "" {
		return fmt.Errorf("ENCYCLOPEDIA_URL is required when ENCYCLOPEDIA_ENABLED=true")
	}
	if err := validateEndpointURL(c.Encyclopedia.URL, "ENCYCLOPEDIA_URL"); err != nil {
		return err
	}
	if c.Encyclopedia.Timeout <= 0 {
		return fmt.Errorf("ENCYCLOPEDIA_TIMEOUT must be positive, got: %s", c.Encyclopedia.Timeout)
	}
	if c.Encyclopedia.SearchLimit < 1 || c.Encyclopedia.SearchLimit > 50 {
		return fmt.Errorf("ENCYCLOPEDIA_SEARCH_LIMIT must be between 1 and 50, got: %d", c.Encyclopedia.SearchLimit)
	}
	if c.Encyclopedia.RateLimit <= 0 {
		return fmt.Errorf("ENCYCLOPEDIA_RATE_LIMIT must be positive, got: %f", c.Encyclopedia.RateLimit)
	}
	if c.Encyclopedia.RateBurst < 1 {
		return fmt.Errorf("ENCYCLOPEDIA_RATE_BURST must be at least 1, got: %d", c.Encyclopedia.RateBurst)
	}
	return nil
}

func (c *Config) validateSuggest() error {
	if c.Suggest.ScarceThreshold < 0 {
		return fmt.Errorf("SUGGEST_SCARCE_THRESHOLD must be non-negative, got: %d", c.Suggest.ScarceThreshold)
	}
	if c.Suggest.VerifyMax < 0 {
		return fmt.Errorf("SUGGEST_VERIFY_MAX must be non-negative, got: %d", c.Suggest.VerifyMax)
	}
	if c.Suggest.CacheTTL <= 0 {
		return fmt.Errorf("SUGGEST_CACHE_TTL must be positive, got: %s", c.Suggest.CacheTTL)
	}
	if c.Suggest.CacheSweepInterval < 0 {
		return fmt.Errorf("SUGGEST_CACHE_SWEEP_INTERVAL must be non-negative, got: %s", c.Suggest.CacheSweepInterval)
	}
	if c.Suggest.BreakerMaxFailures < 1 {
		return fmt.Errorf("SUGGEST_BREAKER_MAX_FAILURES must be at least 1, got: %d", c.Suggest.BreakerMaxFailures)
	}
	if c.Suggest.BreakerWindow <= 0 {
		return fmt.Errorf("SUGGEST_BREAKER_WINDOW must be positive, got: %s", c.Suggest.BreakerWindow)
	}
	for _, s := range c.Suggest.DemonymSuffixes {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("SUGGEST_DEMONYM_SUFFIXES must not contain empty entries")
		}
	}
	return nil
}

// validateQuota validates quota recorder configuration (only if enabled)
func (c *Config) validateQuota() error {
	if !c.Quota.Enabled {
		return nil
	}
	if c.Quota.URL == "" {
		return fmt.Errorf("QUOTA_URL is required when QUOTA_ENABLED=true")
	}
	if err := validateEndpointURL(c.Quota.URL, "QUOTA_URL"); err != nil {
		return err
	}
	if c.Quota.Timeout <= 0 {
		return fmt.Errorf("QUOTA_TIMEOUT must be positive, got: %s", c.Quota.Timeout)
	}
	return nil
}

func (c *Config) validateLogging() error {
	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, got: %s", c.Logging.Level)
	}

	format := strings.ToLower(c.Logging.Format)
	if format != "json" && format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got: %s", c.Logging.Format)
	}
	return nil
}

// validateEndpointURL validates that a URL is properly formatted for an
// HTTP/HTTPS API endpoint. Paths are allowed (e.g. /sparql, /w/api.php)
// but query parameters are not.
func validateEndpointURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
