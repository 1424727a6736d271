// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

/*
Package api provides the HTTP REST API layer for the recommendation service.

Key Components:

  - Router: Chi route configuration and the middleware stack
  - Handler: request handlers backed by a database.Store
  - Response formatting: JSON bodies encoded with goccy/go-json
  - Error mapping: store and model errors translated to HTTP status codes

Endpoints:

Every route below is served at the root and, when server.api_prefix is set,
again under that prefix (default /api).

	GET    /                              service name, version and paths
	GET    /health                        {"status":200,"message":"Healthy"}
	GET    /health/live                   liveness probe
	GET    /health/ready                  readiness probe, 503 when the store is down
	GET    /recommendations               list, filtered by product_a_sku, product_b_sku, recommendation_type
	POST   /recommendations               create, 201 with Location header
	GET    /recommendations/{id}          read
	PUT    /recommendations/{id}          replace
	DELETE /recommendations/{id}          delete, always 204
	PUT    /recommendations/{id}/like     likes + 1
	DELETE /recommendations/{id}/like     likes - 1, 400 at zero

/metrics exposes Prometheus metrics and /swagger/ serves the OpenAPI UI.

Errors:

Every error response has the same body:

	{"status": 404, "error": "Not Found", "message": "Recommendation with id '7' was not found."}

Status codes follow the error type returned by the store:

	*models.DataValidationError    400
	models.ErrPrimaryKeyNotSet     400
	models.ErrNotFound             404
	*models.ConflictError          409
	database.ErrStoreUnavailable   503
	anything else                  500

POST and PUT bodies must be sent with Content-Type application/json,
otherwise the request is rejected with 415.

Usage Example:

	store, _ := database.New(&cfg.Database)
	handler := api.NewHandler(store, cfg)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Security), cfg)
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
*/
package api
