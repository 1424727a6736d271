// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/recommendations/internal/config"
	"github.com/tomtom215/recommendations/internal/database"
)

// Version is reported by the index endpoint. It is overridden at build time
// with -ldflags "-X github.com/tomtom215/recommendations/internal/api.Version=...".
var Version = "1.0.0"

// maxBodyBytes bounds request bodies on write endpoints.
const maxBodyBytes = 64 << 10

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor and request helpers (this file)
//   - handlers_health.go: index and health endpoints
//   - handlers_recommendations.go: recommendation CRUD and like counters
type Handler struct {
	store     database.Store
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a handler serving records from store.
//
// Example:
//
//	handler := api.NewHandler(store, cfg)
//	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Security), cfg)
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
func NewHandler(store database.Store, cfg *config.Config) *Handler {
	return &Handler{
		store:     store,
		config:    cfg,
		startTime: time.Now(),
	}
}

// pathID reads the {id} URL parameter. The router only matches digits, so a
// parse failure means the value overflowed int64.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// readBody reads a bounded request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, err
	}
	return body, nil
}

// errBodyTooLarge is returned by readBody when the limit is exceeded.
var errBodyTooLarge = errors.New("request body too large")
