// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

/*
Package config loads application configuration with Koanf v2.

Sources, lowest to highest precedence:

 1. Defaults from defaultConfig
 2. YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml, /etc/recommendations/config.yaml
 3. Environment variables listed in envMappings

Example config.yaml:

	server:
	  port: 5000
	  api_prefix: /api
	database:
	  driver: postgres
	  dsn: postgres://app:secret@db:5432/recommendations?sslmode=disable
	breaker:
	  failure_ratio: 0.5
	logging:
	  level: debug
	  format: console

Environment variables:

	HTTP_PORT, HTTP_HOST, SERVER_TIMEOUT, ENVIRONMENT, API_PREFIX
	DB_DRIVER (duckdb|postgres|sqlite), DUCKDB_PATH, DUCKDB_MAX_MEMORY,
	DUCKDB_THREADS, DATABASE_URL, SEED_MOCK_DATA, DB_MONITOR_INTERVAL
	CORS_ORIGINS (comma separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW,
	DISABLE_RATE_LIMIT
	BREAKER_ENABLED, BREAKER_MAX_REQUESTS, BREAKER_INTERVAL, BREAKER_TIMEOUT,
	BREAKER_MIN_REQUESTS, BREAKER_FAILURE_RATIO
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Durations accept Go syntax ("30s", "5m"). Load validates the merged result
and returns an error naming the offending variable.
*/
package config
