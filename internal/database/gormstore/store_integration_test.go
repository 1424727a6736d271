// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

//go:build integration

package gormstore

import (
	"testing"

	"github.com/tomtom215/recommendations/internal/config"
	"github.com/tomtom215/recommendations/internal/database"
	"github.com/tomtom215/recommendations/internal/database/storetest"
	"github.com/tomtom215/recommendations/internal/testinfra"
)

func TestPostgresStoreContainer(t *testing.T) {
	pg := testinfra.StartPostgres(t)

	storetest.Run(t, func(t *testing.T) database.Store {
		s, err := Open(&config.DatabaseConfig{Driver: config.DriverPostgres, DSN: pg.DSN})
		if err != nil {
			t.Fatalf("Open(postgres) error = %v", err)
		}
		if err := s.db.Exec("TRUNCATE TABLE recommendations RESTART IDENTITY").Error; err != nil {
			t.Fatalf("truncate: %v", err)
		}
		return s
	})
}
