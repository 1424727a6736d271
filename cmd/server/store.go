// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package main

import (
	"fmt"

	"github.com/tomtom215/recommendations/internal/config"
	"github.com/tomtom215/recommendations/internal/database"
	"github.com/tomtom215/recommendations/internal/database/gormstore"
	"github.com/tomtom215/recommendations/internal/logging"
)

// openStore opens the backend selected by database.driver and, when enabled,
// wraps it in the circuit breaker.
func openStore(cfg *config.Config) (database.Store, error) {
	var (
		store database.Store
		err   error
	)

	switch cfg.Database.Driver {
	case "", config.DriverDuckDB:
		store, err = database.New(&cfg.Database)
	case config.DriverPostgres, config.DriverSQLite:
		store, err = gormstore.Open(&cfg.Database)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driverName(cfg.Database.Driver), err)
	}

	if cfg.Breaker.Enabled {
		logging.Info().
			Uint32("min_requests", cfg.Breaker.MinRequests).
			Float64("failure_ratio", cfg.Breaker.FailureRatio).
			Dur("timeout", cfg.Breaker.Timeout).
			Msg("Store circuit breaker enabled")
		store = database.NewCircuitBreakerStore(store, cfg.Breaker)
	}
	return store, nil
}

func driverName(driver string) string {
	if driver == "" {
		return config.DriverDuckDB
	}
	return driver
}
