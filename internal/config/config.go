// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Storage drivers.
const (
	DriverDuckDB   = "duckdb"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Breaker  BreakerConfig  `koanf:"breaker"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging or production
	// APIPrefix mounts a second copy of every route, e.g. /api/recommendations.
	// Empty disables the alias.
	APIPrefix string `koanf:"api_prefix"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DatabaseConfig selects and tunes the storage backend.
type DatabaseConfig struct {
	Driver string `koanf:"driver"` // duckdb, postgres or sqlite

	// DuckDB settings
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = runtime.NumCPU()

	// DSN is the postgres connection string, or the sqlite file (":memory:" allowed).
	DSN string `koanf:"dsn"`

	SeedMockData    bool          `koanf:"seed_mock_data"`   // insert sample rows when the table is empty
	MonitorInterval time.Duration `koanf:"monitor_interval"` // store health/gauge refresh period
}

// SecurityConfig holds HTTP hardening settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// BreakerConfig tunes the circuit breaker placed in front of the store.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"` // probes allowed while half-open
	Interval     time.Duration `koanf:"interval"`     // closed-state counter reset period
	Timeout      time.Duration `koanf:"timeout"`      // open -> half-open delay
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// LoggingConfig holds zerolog settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from, in increasing precedence:
//
//  1. Built-in defaults
//  2. A YAML file (CONFIG_PATH, then config.yaml, config.yml, /etc/recommendations/config.yaml)
//  3. Environment variables
func Load() (*Config, error) {
	cfg, err := LoadWithKoanf()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
