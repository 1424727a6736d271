// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package database

import (
	"context"
	"errors"
	"strconv"

	"github.com/tomtom215/recommendations/internal/models"
)

// ErrStoreUnavailable is returned while the circuit breaker is open.
var ErrStoreUnavailable = errors.New("recommendation store temporarily unavailable")

// Store persists Recommendation records.
//
// Implementations return models.ErrNotFound for missing identifiers,
// *models.ConflictError for duplicate triples and *models.DataValidationError
// for records that violate the field contract. Other errors are
// infrastructure failures.
type Store interface {
	// Insert assigns an ID and persists rec. The returned record is a copy.
	Insert(ctx context.Context, rec *models.Recommendation) (*models.Recommendation, error)
	// Update overwrites every field of the record identified by rec.ID.
	Update(ctx context.Context, rec *models.Recommendation) (*models.Recommendation, error)
	// Delete removes the record; a missing id is not an error.
	Delete(ctx context.Context, id int64) error

	FindByID(ctx context.Context, id int64) (*models.Recommendation, error)
	FindAll(ctx context.Context) ([]models.Recommendation, error)
	FindFiltered(ctx context.Context, filter models.RecommendationFilter) ([]models.Recommendation, error)
	// FindDuplicate returns the record holding the ordered triple, or models.ErrNotFound.
	FindDuplicate(ctx context.Context, skuA, skuB string, recType models.RecommendationType) (*models.Recommendation, error)

	// IncrementLikes and DecrementLikes change the counter in one statement.
	IncrementLikes(ctx context.Context, id int64) (*models.Recommendation, error)
	DecrementLikes(ctx context.Context, id int64) (*models.Recommendation, error)

	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// NoLikesError builds the error returned when decrementing a zero counter.
func NoLikesError(id int64) error {
	return models.NewDataValidationError("likes", "Recommendation "+strconv.FormatInt(id, 10)+" has no likes to remove")
}
