// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record exists for an identifier.
	ErrNotFound = errors.New("recommendation not found")

	// ErrPrimaryKeyNotSet is returned when an update is attempted on a record
	// that was never persisted.
	ErrPrimaryKeyNotSet = errors.New("update called with empty ID field")
)

// DataValidationError reports a record that violates the field contract,
// either during deserialization or when storage rejects it.
type DataValidationError struct {
	// Field is the offending JSON key, empty when the whole body is bad.
	Field   string
	Message string
	Err     error
}

// NewDataValidationError creates a validation error for a field.
func NewDataValidationError(field, message string) *DataValidationError {
	return &DataValidationError{Field: field, Message: message}
}

func (e *DataValidationError) Error() string {
	return e.Message
}

func (e *DataValidationError) Unwrap() error {
	return e.Err
}

// ConflictError reports a create or update that would duplicate the
// (product_a_sku, product_b_sku, recommendation_type) triple of another record.
type ConflictError struct {
	ProductASKU string
	ProductBSKU string
	Type        RecommendationType
	// ExistingID is the identifier of the record already holding the triple.
	ExistingID int64
}

func (e *ConflictError) Error() string {
	return "Duplicate recommendation detected."
}

// Detail describes the clashing record for logs.
func (e *ConflictError) Detail() string {
	return fmt.Sprintf("%s -> %s (%s) already exists with id %d",
		e.ProductASKU, e.ProductBSKU, e.Type, e.ExistingID)
}

// IsDomainError reports whether err is a client-caused error rather than an
// infrastructure failure.
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}
	var dve *DataValidationError
	var ce *ConflictError
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrPrimaryKeyNotSet) ||
		errors.As(err, &dve) ||
		errors.As(err, &ce)
}
