// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

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

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/challengerec/config.yaml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8000,
			Timeout:     30 * time.Second,
			Title:       "Challengerec",
			Description: "Collaborative challenge recommendations",
		},
		Database: DatabaseConfig{
			Path:      "/data/challengerec.duckdb",
			MaxMemory: "1GB",
			Threads:   0,
		},
		Upstream: UpstreamConfig{
			BaseURL:       "http://localhost:8080",
			Timeout:       10 * time.Second,
			RetryAttempts: 3,
			RetryDelay:    500 * time.Millisecond,
			RateLimitRPS:  5,
		},
		Cache: CacheConfig{
			Backend:    "redis",
			TTL:        6 * time.Hour,
			RedisHost:  "localhost",
			RedisPort:  6379,
			RedisDB:    0,
			BadgerPath: "/data/cache",
		},
		Recommend: RecommendConfig{
			Neighbors:        5,
			DefaultPageSize:  10,
			RefreshInterval:  time.Hour,
			RefreshOnStartup: true,
			RefreshTimeout:   10 * time.Minute,
			RequestTimeout:   15 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf layers defaults, the optional YAML file and the environment
// (highest priority), then validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values for slice settings.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if err := k.Set(path, out); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// REDIS_HOST, REDIS_PORT, TITLE and DESCRIPTION keep the names operators
// already use for the previous deployment.
var envMappings = map[string]string{
	"http_host":      "server.host",
	"http_port":      "server.port",
	"http_timeout":   "server.timeout",
	"title":          "server.title",
	"description":    "server.description",
	"duckdb_path":    "database.path",
	"duckdb_memory":  "database.max_memory",
	"duckdb_threads": "database.threads",

	"upstream_url":            "upstream.base_url",
	"upstream_timeout":        "upstream.timeout",
	"upstream_retry_attempts": "upstream.retry_attempts",
	"upstream_retry_delay":    "upstream.retry_delay",
	"upstream_rate_limit_rps": "upstream.rate_limit_rps",

	"cache_backend":     "cache.backend",
	"cache_ttl":         "cache.ttl",
	"redis_host":        "cache.redis_host",
	"redis_port":        "cache.redis_port",
	"redis_db":          "cache.redis_db",
	"cache_badger_path": "cache.badger_path",

	"recommend_neighbors":          "recommend.neighbors",
	"recommend_default_page_size":  "recommend.default_page_size",
	"recommend_refresh_interval":   "recommend.refresh_interval",
	"recommend_refresh_on_startup": "recommend.refresh_on_startup",
	"recommend_refresh_timeout":    "recommend.refresh_timeout",
	"recommend_request_timeout":    "recommend.request_timeout",

	"cors_origins":       "security.cors_origins",
	"rate_limit_reqs":    "security.rate_limit_reqs",
	"rate_limit_window":  "security.rate_limit_window",
	"disable_rate_limit": "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc returns "" for unmapped variables so unrelated environment
// entries never leak into the config tree.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
