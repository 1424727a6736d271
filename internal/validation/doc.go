// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is created on first use and shared by every
// caller. Field names in errors are taken from `json` tags so messages read
// the same as the request body the client sent:
//
//	type Recommendation struct {
//	    ProductASKU string             `json:"product_a_sku" validate:"min=1,max=10"`
//	    Type        RecommendationType `json:"recommendation_type" validate:"rectype"`
//	    Likes       int64              `json:"likes" validate:"gte=0"`
//	}
//
//	if fe := validation.Struct(&rec).First(); fe != nil {
//	    // fe.Field == "product_a_sku", fe.Tag == "max"
//	    // fe.Message == "product_a_sku must be at most 10 characters"
//	}
//
// Enumerations register their own tag with RegisterEnum, once, before any
// struct using the tag is validated. String length tags (min, max) count
// Unicode characters, not bytes.
package validation
