// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

// Package metrics defines the Prometheus collectors for the service.
//
// Collectors are registered with the default registry through promauto and
// exposed by the API router at /metrics. Families:
//
//   - api_*: request count, latency and in-flight gauge, labelled by chi route pattern
//   - db_*: store call latency and errors by operation and table
//   - circuit_breaker_*: state and outcomes of the breaker in front of the store
//   - recommendations_created_total, recommendation_likes_total: domain counters
//   - store_up, recommendations_total: refreshed by the store monitor service
package metrics
