// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

// Package testinfra starts throwaway containers for integration tests.
//
// Everything except this file is behind the integration build tag, so a
// plain `go test ./...` never needs Docker.
//
// # PostgreSQL
//
//	func TestPostgresStore(t *testing.T) {
//	    pg := testinfra.StartPostgres(t)
//	    store, err := gormstore.Open(&config.DatabaseConfig{
//	        Driver: config.DriverPostgres,
//	        DSN:    pg.DSN,
//	    })
//	    ...
//	}
//
// Run with:
//
//	go test -tags integration ./internal/database/gormstore/
package testinfra
