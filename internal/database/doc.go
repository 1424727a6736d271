// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

// Package database persists Recommendation records.
//
// # Overview
//
// Store is the storage contract used by the HTTP layer. This package ships
// the default DuckDB implementation (DB) and a circuit breaker decorator
// (CircuitBreakerStore); gormstore provides PostgreSQL and SQLite.
//
// Files:
//   - store.go: Store interface and shared errors
//   - database.go: DuckDB connection lifecycle and helpers
//   - database_schema.go: table, sequence and index creation
//   - recommendations.go: CRUD, filtering and like counters
//   - circuit_breaker.go: sony/gobreaker decorator for any Store
//   - seed.go: sample data for local development
//
// # Error Contract
//
// Every implementation returns models.ErrNotFound for a missing id,
// *models.ConflictError when a write would duplicate the ordered
// (product_a_sku, product_b_sku, recommendation_type) triple and
// *models.DataValidationError when a record breaks the field contract.
// Anything else is an infrastructure failure.
//
// # Concurrency
//
// DB serializes writes with a mutex. The duplicate check and the write run
// in one transaction under that mutex, and like counters change in a single
// UPDATE statement, so concurrent likes are never lost.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	store := database.NewCircuitBreakerStore(db, cfg.Breaker)
//	defer store.Close()
//
//	rec, err := store.Insert(ctx, &models.Recommendation{
//	    ProductASKU:        "AA0001",
//	    ProductBSKU:        "AA0002",
//	    RecommendationType: models.CrossSell,
//	})
package database
