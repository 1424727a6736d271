// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/recommendations/internal/logging"
)

// readyTimeout bounds the store ping made by the readiness probe.
const readyTimeout = 2 * time.Second

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status  int    `json:"status" example:"200"`
	Message string `json:"message" example:"Healthy"`
}

// IndexResponse describes the service at the root URL.
type IndexResponse struct {
	Name    string `json:"name" example:"Recommendation REST API Service"`
	Version string `json:"version" example:"1.0.0"`
	Paths   string `json:"paths" example:"/recommendations"`
}

// Index handles the root URL
//
// @Summary Service information
// @Tags Core
// @Produce json
// @Success 200 {object} IndexResponse
// @Router / [get]
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	paths := "/recommendations"
	if h.config != nil && h.config.Server.APIPrefix != "" {
		paths = h.config.Server.APIPrefix + paths
	}
	respondJSON(w, http.StatusOK, IndexResponse{
		Name:    "Recommendation REST API Service",
		Version: Version,
		Paths:   paths,
	})
}

// Health handles health check requests
//
// @Summary Health check
// @Description Returns 200 while the process is serving requests.
// @Tags Core
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: http.StatusOK, Message: "Healthy"})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
//
// @Summary Liveness probe
// @Description Returns 200 if the process is alive, regardless of the store.
// @Tags Core
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 only when the store answers a ping.
//
// @Summary Readiness probe
// @Tags Core
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} ErrorResponse "Store unreachable"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if h.store == nil {
		respondError(w, r, http.StatusServiceUnavailable, "Store not configured")
		return
	}
	if err := h.store.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Readiness ping failed")
		respondError(w, r, http.StatusServiceUnavailable, "Store unreachable")
		return
	}
	respondJSON(w, http.StatusOK, HealthResponse{Status: http.StatusOK, Message: "Ready"})
}
