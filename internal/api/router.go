// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/recommendations/internal/config"
	"github.com/tomtom215/recommendations/internal/middleware"
)

// compressionLevel is the gzip level used by chi's Compress middleware.
const compressionLevel = 5

// Router sets up HTTP routes using Chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	apiPrefix     string
}

// NewRouter creates a router. cfg may be nil, in which case routes are only
// served at the root.
func NewRouter(handler *Handler, chiMiddleware *ChiMiddleware, cfg *config.Config) *Router {
	if chiMiddleware == nil {
		chiMiddleware = NewChiMiddleware(nil)
	}
	router := &Router{
		handler:       handler,
		chiMiddleware: chiMiddleware,
	}
	if cfg != nil {
		router.apiPrefix = strings.TrimSuffix(cfg.Server.APIPrefix, "/")
	}
	return router
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, outermost first
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight
	r.Use(APISecurityHeaders())
	r.Use(chimiddleware.Compress(compressionLevel, "application/json"))
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.SlowRequests(middleware.DefaultSlowThreshold))

	// Set before any Route call so that mounted subrouters inherit them.
	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Get("/", router.handler.Index)
	router.routes(r)
	if router.apiPrefix != "" {
		r.Route(router.apiPrefix, router.routes)
	}

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}

// routes registers the health and recommendation endpoints on r.
func (router *Router) routes(r chi.Router) {
	h := router.handler

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/recommendations", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())

		r.Get("/", h.ListRecommendations)
		r.With(RequireJSONContentType).Post("/", h.CreateRecommendation)

		// Non-numeric identifiers fall through to the 404 handler.
		r.Route("/{id:[0-9]+}", func(r chi.Router) {
			r.Get("/", h.GetRecommendation)
			r.With(RequireJSONContentType).Put("/", h.UpdateRecommendation)
			r.Delete("/", h.DeleteRecommendation)

			r.Put("/like", h.LikeRecommendation)
			r.Delete("/like", h.UnlikeRecommendation)
		})
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, "The requested URL was not found on the server.")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, "The method is not allowed for the requested URL.")
}
