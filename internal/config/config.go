// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

// Package config loads challengerec settings with koanf: built-in defaults,
// then an optional YAML file, then environment variables.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Upstream  UpstreamConfig  `koanf:"upstream"`
	Cache     CacheConfig     `koanf:"cache"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Title       string        `koanf:"title"`
	Description string        `koanf:"description"`
}

// Addr returns host:port for http.Server.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DatabaseConfig configures the DuckDB file holding the action log and
// similarity graph. Path ":memory:" keeps everything in process.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
}

// UpstreamConfig points at the challenge service that owns the action log and
// the catalog.
type UpstreamConfig struct {
	BaseURL       string        `koanf:"base_url"`
	Timeout       time.Duration `koanf:"timeout"`
	RetryAttempts int           `koanf:"retry_attempts"`
	RetryDelay    time.Duration `koanf:"retry_delay"`
	RateLimitRPS  float64       `koanf:"rate_limit_rps"`
}

// CacheConfig selects the backend for cached recommendation lists.
type CacheConfig struct {
	// Backend is one of redis, badger, memory.
	Backend    string        `koanf:"backend"`
	TTL        time.Duration `koanf:"ttl"`
	RedisHost  string        `koanf:"redis_host"`
	RedisPort  int           `koanf:"redis_port"`
	RedisDB    int           `koanf:"redis_db"`
	BadgerPath string        `koanf:"badger_path"`
}

// RedisAddr returns host:port for the redis client.
func (c *CacheConfig) RedisAddr() string {
	return net.JoinHostPort(c.RedisHost, strconv.Itoa(c.RedisPort))
}

// RecommendConfig tunes neighbor selection and the refresh loop.
type RecommendConfig struct {
	Neighbors        int           `koanf:"neighbors"`
	DefaultPageSize  int           `koanf:"default_page_size"`
	RefreshInterval  time.Duration `koanf:"refresh_interval"`
	RefreshOnStartup bool          `koanf:"refresh_on_startup"`
	RefreshTimeout   time.Duration `koanf:"refresh_timeout"`
	RequestTimeout   time.Duration `koanf:"request_timeout"`
}

// SecurityConfig holds CORS and inbound rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load is the entry point used by main.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
