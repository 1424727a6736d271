// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

/*
Package models defines the Recommendation record and the rules that govern it.

A Recommendation is a directed relationship between two product SKUs carrying a
typed semantic (up-sell, cross-sell, accessory, bundle) and a popularity
counter. This package owns everything about the record that does not touch
storage or HTTP:

  - Recommendation: plain data value persisted by a database.Store
  - RecommendationType: closed enumeration with explicit name lookup
  - Deserialize / DecodeJSON: build a record from untrusted JSON
  - Serialize: flat map used for every response body
  - RecommendationFilter: optional AND-combined list filters
  - Error taxonomy: DataValidationError, ConflictError, ErrNotFound,
    ErrPrimaryKeyNotSet

Deserialization validates in a fixed order and stops at the first failure:

 1. input must be a JSON object
 2. product_a_sku, product_b_sku and recommendation_type must be present
 3. SKUs must be strings of 1 to 10 characters
 4. recommendation_type must name a member exactly (case-sensitive)
 5. likes, when present, must be a non-negative integer

Example:

	rec, err := models.DecodeJSON(body)
	if err != nil {
	    var dve *models.DataValidationError
	    if errors.As(err, &dve) {
	        // 400 Bad Request
	    }
	}
	created, err := store.Insert(ctx, rec)

All functions in this package are pure and safe for concurrent use.
*/
package models
