// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/recommendations/internal/database/query"
	"github.com/tomtom215/recommendations/internal/logging"
	"github.com/tomtom215/recommendations/internal/metrics"
	"github.com/tomtom215/recommendations/internal/models"
)

const recommendationColumns = query.Columns

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecommendation(row rowScanner) (*models.Recommendation, error) {
	var (
		rec     models.Recommendation
		id      int64
		recType string
	)
	if err := row.Scan(&id, &rec.ProductASKU, &rec.ProductBSKU, &recType, &rec.Likes); err != nil {
		return nil, err
	}
	rec.SetID(id)
	rec.RecommendationType = models.RecommendationType(recType)
	return &rec, nil
}

// observe records a store call. Domain outcomes (not found, conflict,
// validation) are not counted as query errors.
func observe(operation string, start time.Time, err error) {
	if models.IsDomainError(err) {
		err = nil
	}
	metrics.RecordDBQuery(operation, tableRecommendations, time.Since(start), err)
}

// Insert persists rec after checking the ordered triple is unused.
func (db *DB) Insert(ctx context.Context, rec *models.Recommendation) (out *models.Recommendation, err error) {
	defer func(start time.Time) { observe("insert", start, err) }(time.Now())

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin insert: %w", err)
	}
	defer rollbackQuietly(tx)

	if err := checkDuplicate(ctx, tx, rec, nil); err != nil {
		return nil, err
	}

	row := tx.QueryRowContext(ctx,
		`INSERT INTO recommendations (product_a_sku, product_b_sku, recommendation_type, likes)
		 VALUES (?, ?, ?, ?)
		 RETURNING `+recommendationColumns,
		rec.ProductASKU, rec.ProductBSKU, string(rec.RecommendationType), rec.Likes)

	out, err = scanRecommendation(row)
	if err != nil {
		return nil, db.writeError(ctx, "insert", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit insert: %w", err)
	}

	logging.Ctx(ctx).Debug().Int64("id", out.IDValue()).Str("rec", out.String()).Msg("Recommendation inserted")
	return out, nil
}

// Update overwrites the record identified by rec.ID.
func (db *DB) Update(ctx context.Context, rec *models.Recommendation) (out *models.Recommendation, err error) {
	defer func(start time.Time) { observe("update", start, err) }(time.Now())

	if !rec.HasID() {
		return nil, models.ErrPrimaryKeyNotSet
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer rollbackQuietly(tx)

	id := rec.IDValue()
	if err := checkDuplicate(ctx, tx, rec, &id); err != nil {
		return nil, err
	}

	row := tx.QueryRowContext(ctx,
		`UPDATE recommendations
		 SET product_a_sku = ?, product_b_sku = ?, recommendation_type = ?, likes = ?
		 WHERE id = ?
		 RETURNING `+recommendationColumns,
		rec.ProductASKU, rec.ProductBSKU, string(rec.RecommendationType), rec.Likes, id)

	out, err = scanRecommendation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, db.writeError(ctx, "update", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}
	return out, nil
}

// checkDuplicate returns a ConflictError when another row holds rec's triple.
// excludeID skips the row being updated.
func checkDuplicate(ctx context.Context, tx *sql.Tx, rec *models.Recommendation, excludeID *int64) error {
	q := query.From("id").Triple(rec.ProductASKU, rec.ProductBSKU, rec.RecommendationType)
	if excludeID != nil {
		q.ExcludeID(*excludeID)
	}
	stmt, args := q.Limit(1).Build()

	var existing int64
	err := tx.QueryRowContext(ctx, stmt, args...).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return fmt.Errorf("duplicate check: %w", err)
	default:
		return &models.ConflictError{
			ProductASKU: rec.ProductASKU,
			ProductBSKU: rec.ProductBSKU,
			Type:        rec.RecommendationType,
			ExistingID:  existing,
		}
	}
}

// writeError maps a failed write to a domain error when storage rejected the
// record, otherwise logs and wraps the driver error.
func (db *DB) writeError(ctx context.Context, op string, err error) error {
	if isConstraintViolation(err) {
		return &models.DataValidationError{
			Message: "Invalid Recommendation: " + err.Error(),
			Err:     err,
		}
	}
	logging.Ctx(ctx).Error().Err(err).Str("operation", op).Msg("Store write failed, rolled back")
	return fmt.Errorf("%s recommendation: %w", op, err)
}

// Delete removes the record with id. Deleting a missing id succeeds.
func (db *DB) Delete(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { observe("delete", start, err) }(time.Now())

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	if _, err := db.conn.ExecContext(ctx, "DELETE FROM recommendations WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete recommendation %d: %w", id, err)
	}
	return nil
}

// FindByID returns the record or models.ErrNotFound.
func (db *DB) FindByID(ctx context.Context, id int64) (out *models.Recommendation, err error) {
	defer func(start time.Time) { observe("find_by_id", start, err) }(time.Now())

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	stmt, args := query.From(recommendationColumns).ID(id).Build()
	row := db.conn.QueryRowContext(ctx, stmt, args...)
	out, err = scanRecommendation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find recommendation %d: %w", id, err)
	}
	return out, nil
}

// FindAll returns every record ordered by id.
func (db *DB) FindAll(ctx context.Context) ([]models.Recommendation, error) {
	return db.FindFiltered(ctx, models.RecommendationFilter{})
}

// FindFiltered returns the records matching every set filter, ordered by id.
func (db *DB) FindFiltered(ctx context.Context, filter models.RecommendationFilter) (out []models.Recommendation, err error) {
	op := "find_filtered"
	if filter.IsEmpty() {
		op = "find_all"
	}
	defer func(start time.Time) { observe(op, start, err) }(time.Now())

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	stmt, args := query.From(recommendationColumns).Filter(filter).OrderByID().Build()
	rows, err := db.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	defer closeWithLog(rows, "rows")

	out = []models.Recommendation{}
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommendations: %w", err)
	}
	return out, nil
}

// FindDuplicate returns the record holding the ordered triple, or models.ErrNotFound.
func (db *DB) FindDuplicate(ctx context.Context, skuA, skuB string, recType models.RecommendationType) (out *models.Recommendation, err error) {
	defer func(start time.Time) { observe("find_duplicate", start, err) }(time.Now())

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	stmt, args := query.From(recommendationColumns).Triple(skuA, skuB, recType).OrderByID().Limit(1).Build()
	row := db.conn.QueryRowContext(ctx, stmt, args...)
	out, err = scanRecommendation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find duplicate: %w", err)
	}
	return out, nil
}

// IncrementLikes adds one like in a single statement.
func (db *DB) IncrementLikes(ctx context.Context, id int64) (out *models.Recommendation, err error) {
	defer func(start time.Time) { observe("increment_likes", start, err) }(time.Now())

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	row := db.conn.QueryRowContext(ctx,
		"UPDATE recommendations SET likes = likes + 1 WHERE id = ? RETURNING "+recommendationColumns, id)
	out, err = scanRecommendation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("increment likes %d: %w", id, err)
	}
	return out, nil
}

// DecrementLikes removes one like. A counter already at zero is left
// unchanged and reported as a validation error.
func (db *DB) DecrementLikes(ctx context.Context, id int64) (out *models.Recommendation, err error) {
	defer func(start time.Time) { observe("decrement_likes", start, err) }(time.Now())

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	row := db.conn.QueryRowContext(ctx,
		"UPDATE recommendations SET likes = likes - 1 WHERE id = ? AND likes > 0 RETURNING "+recommendationColumns, id)
	out, err = scanRecommendation(row)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("decrement likes %d: %w", id, err)
	}

	var exists bool
	if err := db.conn.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM recommendations WHERE id = ?)", id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("decrement likes %d: %w", id, err)
	}
	if !exists {
		return nil, models.ErrNotFound
	}
	return nil, NoLikesError(id)
}

// Count returns the number of stored records.
func (db *DB) Count(ctx context.Context) (n int64, err error) {
	defer func(start time.Time) { observe("count", start, err) }(time.Now())

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM recommendations").Scan(&n); err != nil {
		return 0, fmt.Errorf("count recommendations: %w", err)
	}
	return n, nil
}
