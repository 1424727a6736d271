// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package database

import (
	"context"
	"fmt"
	"time"
)

const tableRecommendations = "recommendations"

func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the id sequence and the recommendations table.
// The CHECK constraints mirror the field contract enforced by models.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE SEQUENCE IF NOT EXISTS seq_recommendations_id START 1`,
		`CREATE TABLE IF NOT EXISTS recommendations (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_recommendations_id'),
			product_a_sku VARCHAR NOT NULL CHECK (length(product_a_sku) BETWEEN 1 AND 10),
			product_b_sku VARCHAR NOT NULL CHECK (length(product_b_sku) BETWEEN 1 AND 10),
			recommendation_type VARCHAR NOT NULL
				CHECK (recommendation_type IN ('UP_SELL', 'CROSS_SELL', 'ACCESSORY', 'BUNDLE')),
			likes BIGINT NOT NULL DEFAULT 0 CHECK (likes >= 0)
		)`,
	}

	for _, q := range queries {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", q, err)
		}
	}
	return nil
}

// createIndexes adds lookup indexes. The triple index is not UNIQUE: DuckDB
// rewrites updated rows as delete+insert and can report false unique
// violations, so uniqueness is enforced under writeMu instead.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_recommendations_product_a ON recommendations(product_a_sku)`,
		`CREATE INDEX IF NOT EXISTS idx_recommendations_triple ON recommendations(product_a_sku, product_b_sku, recommendation_type)`,
	}

	for _, q := range indexes {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", q, err)
		}
	}
	return nil
}
