// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

/*
Package middleware provides infrastructure HTTP middleware shared by the API
router.

Key Components:

  - RequestID: accepts or generates X-Request-ID and threads it into the
    request context so logging.Ctx includes it
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - SlowRequests: warn-level log for requests above a latency threshold

All components use the func(http.Handler) http.Handler shape so they plug
directly into chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.SlowRequests(time.Second))

Route patterns are read after the handler returns, when chi has finished
matching. Requests that match no route are labelled "unmatched" so that
random probes cannot grow metric cardinality.
*/
package middleware
