// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateUpstream(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateUpstream() error {
	if err := validateHTTPURL(c.Upstream.BaseURL, "UPSTREAM_URL"); err != nil {
		return err
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	if c.Upstream.RetryAttempts < 1 {
		return fmt.Errorf("UPSTREAM_RETRY_ATTEMPTS must be at least 1, got %d", c.Upstream.RetryAttempts)
	}
	if c.Upstream.RetryDelay < 0 {
		return fmt.Errorf("UPSTREAM_RETRY_DELAY must not be negative")
	}
	if c.Upstream.RateLimitRPS < 0 {
		return fmt.Errorf("UPSTREAM_RATE_LIMIT_RPS must not be negative")
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case "redis":
		if c.Cache.RedisHost == "" {
			return fmt.Errorf("REDIS_HOST is required when CACHE_BACKEND=redis")
		}
		if c.Cache.RedisPort < 1 || c.Cache.RedisPort > 65535 {
			return fmt.Errorf("REDIS_PORT must be between 1 and 65535, got %d", c.Cache.RedisPort)
		}
	case "badger":
		if c.Cache.BadgerPath == "" {
			return fmt.Errorf("CACHE_BADGER_PATH is required when CACHE_BACKEND=badger")
		}
	case "memory":
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of redis, badger, memory, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.Neighbors < 1 {
		return fmt.Errorf("RECOMMEND_NEIGHBORS must be at least 1, got %d", c.Recommend.Neighbors)
	}
	if c.Recommend.DefaultPageSize < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_PAGE_SIZE must be at least 1, got %d", c.Recommend.DefaultPageSize)
	}
	if c.Recommend.RefreshInterval <= 0 {
		return fmt.Errorf("RECOMMEND_REFRESH_INTERVAL must be positive")
	}
	if c.Recommend.RefreshTimeout <= 0 || c.Recommend.RequestTimeout <= 0 {
		return fmt.Errorf("recommend timeouts must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

// validateHTTPURL accepts only http(s) base URLs without query strings.
func validateHTTPURL(rawURL, fieldName string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters", fieldName)
	}
	return nil
}
