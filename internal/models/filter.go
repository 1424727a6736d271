// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package models

import "net/url"

// RecommendationFilter selects records for list queries.
// Nil fields are not applied; set fields are combined with AND.
type RecommendationFilter struct {
	ProductASKU *string
	ProductBSKU *string
	Type        *RecommendationType
}

// IsEmpty reports whether no filter is set.
func (f RecommendationFilter) IsEmpty() bool {
	return f.ProductASKU == nil && f.ProductBSKU == nil && f.Type == nil
}

// Matches reports whether rec satisfies every set filter.
func (f RecommendationFilter) Matches(rec *Recommendation) bool {
	if f.ProductASKU != nil && rec.ProductASKU != *f.ProductASKU {
		return false
	}
	if f.ProductBSKU != nil && rec.ProductBSKU != *f.ProductBSKU {
		return false
	}
	if f.Type != nil && rec.RecommendationType != *f.Type {
		return false
	}
	return true
}

// FilterFromQuery builds a filter from URL query parameters.
// recommendation_type is matched case-insensitively; an unknown name is a
// DataValidationError. Empty parameters are treated as absent.
func FilterFromQuery(q url.Values) (RecommendationFilter, error) {
	var f RecommendationFilter

	if v := q.Get("product_a_sku"); v != "" {
		f.ProductASKU = &v
	}
	if v := q.Get("product_b_sku"); v != "" {
		f.ProductBSKU = &v
	}
	if v := q.Get("recommendation_type"); v != "" {
		t, err := ParseRecommendationTypeFold(v)
		if err != nil {
			return RecommendationFilter{}, err
		}
		f.Type = &t
	}

	return f, nil
}
