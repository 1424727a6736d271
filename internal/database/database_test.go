// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/recommendations/internal/config"
	"github.com/tomtom215/recommendations/internal/database"
	"github.com/tomtom215/recommendations/internal/database/storetest"
	"github.com/tomtom215/recommendations/internal/models"
)

// testDBSemaphore keeps a single DuckDB instance alive at a time. It is held
// for the whole test and released by t.Cleanup.
var testDBSemaphore = make(chan struct{}, 1)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	type result struct {
		db  *database.DB
		err error
	}
	resultCh := make(chan result, 1)
	go func() {
		db, err := database.New(&config.DatabaseConfig{
			Driver:    config.DriverDuckDB,
			Path:      ":memory:",
			MaxMemory: "256MB",
			Threads:   2,
		})
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		return res.db
	case <-time.After(60 * time.Second):
		t.Fatalf("Timeout: database creation took longer than 60s")
		return nil
	}
}

func TestDuckDBStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) database.Store {
		return setupTestDB(t)
	})
}

func TestCircuitBreakerStoreOverDuckDB(t *testing.T) {
	cfg := config.BreakerConfig{
		Enabled:      true,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Second,
		MinRequests:  5,
		FailureRatio: 0.5,
	}
	storetest.Run(t, func(t *testing.T) database.Store {
		return database.NewCircuitBreakerStore(setupTestDB(t), cfg)
	})
}

func TestNewCreatesDirectory(t *testing.T) {
	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	path := t.TempDir() + "/nested/dir/recs.duckdb"
	db, err := database.New(&config.DatabaseConfig{Path: path, Threads: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Checkpoint(ctx); err != nil {
		t.Errorf("Checkpoint() error = %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	cfg := &config.DatabaseConfig{Path: t.TempDir() + "/recs.duckdb", Threads: 1}
	ctx := context.Background()

	db, err := database.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	first := storetest.MustInsert(t, db, storetest.NewRecommendation("AA0001", "AA0002", models.Bundle, 2))
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	db, err = database.New(cfg)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer db.Close()

	got, err := db.FindByID(ctx, first.IDValue())
	if err != nil {
		t.Fatalf("FindByID() after reopen error = %v", err)
	}
	if got.Likes != 2 {
		t.Errorf("Likes = %d, want 2", got.Likes)
	}

	second := storetest.MustInsert(t, db, storetest.NewRecommendation("AA0001", "AA0003", models.Bundle, 0))
	if second.IDValue() <= first.IDValue() {
		t.Errorf("sequence restarted: new id %d <= %d", second.IDValue(), first.IDValue())
	}
}

func TestSeedMockData(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	n, err := database.SeedMockData(ctx, db)
	if err != nil {
		t.Fatalf("SeedMockData() error = %v", err)
	}
	if n == 0 {
		t.Fatal("SeedMockData() inserted nothing into an empty store")
	}

	count, err := db.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != int64(n) {
		t.Errorf("Count() = %d, want %d", count, n)
	}

	again, err := database.SeedMockData(ctx, db)
	if err != nil {
		t.Fatalf("second SeedMockData() error = %v", err)
	}
	if again != 0 {
		t.Errorf("second SeedMockData() inserted %d, want 0", again)
	}
}
