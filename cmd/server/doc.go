// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

/*
Package main is the entry point for the recommendation server.

The server exposes CRUD and like/unlike operations on product recommendation
records over a JSON REST API. Records pair two product SKUs with a
recommendation type (UP_SELL, CROSS_SELL, ACCESSORY or BUNDLE) and a like
counter.

# Application Architecture

Long-running components run under a Suture v4 tree:

	RootSupervisor ("recommendations")
	├── DataSupervisor ("data-layer")
	│   └── Store monitor (health gauge, record count)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Initialization order:

 1. Configuration: Koanf v2 with defaults, an optional YAML file and environment
 2. Logging: zerolog with JSON or console output
 3. Store: DuckDB (default), PostgreSQL or SQLite through GORM
 4. Circuit breaker around the store (optional, on by default)
 5. Mock data seeding (optional)
 6. Supervisor tree and HTTP server

# Configuration

Priority: Environment variables > Config file > Defaults

	# Server
	HTTP_PORT=5000               # listen port
	HTTP_HOST=0.0.0.0
	API_PREFIX=/api              # routes are served at the root and under this prefix
	ENVIRONMENT=development      # development, staging or production

	# Store
	DB_DRIVER=duckdb             # duckdb, postgres or sqlite
	DUCKDB_PATH=/data/recommendations.duckdb
	DATABASE_URL=                # DSN for postgres, file path for sqlite
	SEED_MOCK_DATA=false

	# Security
	CORS_ORIGINS=*               # comma-separated
	DISABLE_RATE_LIMIT=true
	RATE_LIMIT_REQUESTS=100
	RATE_LIMIT_WINDOW=1m

	# Logging
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

CONFIG_PATH points at a YAML file; otherwise ./config.yaml and
/etc/recommendations/config.yaml are tried.

# Graceful Shutdown

SIGINT or SIGTERM cancels the root context. The HTTP server drains in-flight
requests for up to 10 seconds, the supervisor reports any service that missed
its shutdown timeout, and the store is closed last.

# Usage

	DB_DRIVER=sqlite DATABASE_URL=./recommendations.db ./server

	curl -X POST localhost:5000/api/recommendations \
	    -H 'Content-Type: application/json' \
	    -d '{"product_a_sku":"A1","product_b_sku":"B1","recommendation_type":"UP_SELL"}'
*/
package main
