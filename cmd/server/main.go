// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/recommendations/docs" // Import generated swagger docs
	"github.com/tomtom215/recommendations/internal/api"
	"github.com/tomtom215/recommendations/internal/config"
	"github.com/tomtom215/recommendations/internal/database"
	"github.com/tomtom215/recommendations/internal/logging"
	"github.com/tomtom215/recommendations/internal/supervisor"
	"github.com/tomtom215/recommendations/internal/supervisor/services"
)

const (
	httpShutdownTimeout = 10 * time.Second
	seedTimeout         = 30 * time.Second
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Str("driver", driverName(cfg.Database.Driver)).
		Msg("Starting recommendation service")

	if cfg.IsProduction() && cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin in production; set CORS_ORIGINS")
	}

	store, err := openStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()
	logging.Info().Msg("Store initialized successfully")

	if cfg.Database.SeedMockData {
		seedCtx, cancelSeed := context.WithTimeout(context.Background(), seedTimeout)
		n, err := database.SeedMockData(seedCtx, store)
		cancelSeed()
		if err != nil {
			logging.Error().Err(err).Msg("Failed to seed mock data")
		} else {
			logging.Info().Int("inserted", n).Msg("Mock data seeding complete")
		}
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	handler := api.NewHandler(store, cfg)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Security), cfg)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree.AddDataService(services.NewStoreMonitorService(store, cfg.Database.MonitorInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, httpShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Str("api_prefix", cfg.Server.APIPrefix).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// ServeBackground sends exactly one value.
	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	tree.LogUnstoppedServices()
	logging.Info().Msg("Application stopped gracefully")
}
