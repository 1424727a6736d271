// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

// Package query builds parameterized SELECT statements over the
// recommendations table for the DuckDB store.
package query

import (
	"strconv"
	"strings"

	"github.com/tomtom215/recommendations/internal/models"
)

// Table is the table every statement reads from.
const Table = "recommendations"

// Columns is the column list scanned by the store, in scan order.
const Columns = "id, product_a_sku, product_b_sku, recommendation_type, likes"

// Select accumulates AND-joined conditions for one statement.
//
//	sql, args := query.From(query.Columns).
//	    Filter(filter).
//	    OrderByID().
//	    Build()
//	// SELECT ... FROM recommendations WHERE product_a_sku = ? ORDER BY id
type Select struct {
	columns string
	conds   []string
	args    []interface{}
	orderBy bool
	limit   int
}

// From starts a statement selecting columns.
func From(columns string) *Select {
	return &Select{columns: columns}
}

// where appends a condition with its arguments.
func (s *Select) where(cond string, args ...interface{}) *Select {
	s.conds = append(s.conds, cond)
	s.args = append(s.args, args...)
	return s
}

// ID restricts the statement to one primary key.
func (s *Select) ID(id int64) *Select {
	return s.where("id = ?", id)
}

// ExcludeID skips one primary key, e.g. the row being updated.
func (s *Select) ExcludeID(id int64) *Select {
	return s.where("id <> ?", id)
}

// Filter adds one equality per set field of f. Type holds the canonical
// upper-case name, so the comparison is exact.
func (s *Select) Filter(f models.RecommendationFilter) *Select {
	if f.ProductASKU != nil {
		s.where("product_a_sku = ?", *f.ProductASKU)
	}
	if f.ProductBSKU != nil {
		s.where("product_b_sku = ?", *f.ProductBSKU)
	}
	if f.Type != nil {
		s.where("recommendation_type = ?", string(*f.Type))
	}
	return s
}

// Triple matches the ordered (product_a_sku, product_b_sku, type) key used
// for duplicate detection.
func (s *Select) Triple(skuA, skuB string, recType models.RecommendationType) *Select {
	return s.where("product_a_sku = ? AND product_b_sku = ? AND recommendation_type = ?",
		skuA, skuB, string(recType))
}

// OrderByID sorts ascending by primary key.
func (s *Select) OrderByID() *Select {
	s.orderBy = true
	return s
}

// Limit caps the number of rows; n <= 0 means no limit.
func (s *Select) Limit(n int) *Select {
	s.limit = n
	return s
}

// Conditions returns the number of conditions added so far.
func (s *Select) Conditions() int {
	return len(s.conds)
}

// Build renders the statement and its positional arguments.
func (s *Select) Build() (string, []interface{}) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(s.columns)
	b.WriteString(" FROM ")
	b.WriteString(Table)
	if len(s.conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(s.conds, " AND "))
	}
	if s.orderBy {
		b.WriteString(" ORDER BY id")
	}
	if s.limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(s.limit))
	}

	args := s.args
	if args == nil {
		args = []interface{}{}
	}
	return b.String(), args
}
