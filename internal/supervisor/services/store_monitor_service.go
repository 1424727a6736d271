// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recommendations/internal/logging"
	"github.com/tomtom215/recommendations/internal/metrics"
)

const (
	defaultMonitorInterval = 30 * time.Second
	monitorCheckTimeout    = 5 * time.Second
)

// MonitoredStore is the part of database.Store the monitor needs.
// Declared here to keep services free of a database import.
type MonitoredStore interface {
	Ping(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

// StoreMonitorService periodically checks the store and publishes the
// store_up and recommendations_total gauges.
type StoreMonitorService struct {
	store    MonitoredStore
	interval time.Duration
	logger   zerolog.Logger
	name     string

	// healthy holds the last result so transitions are logged once.
	healthy *bool
}

// NewStoreMonitorService creates a monitor checking store every interval.
func NewStoreMonitorService(store MonitoredStore, interval time.Duration) *StoreMonitorService {
	if interval <= 0 {
		interval = defaultMonitorInterval
	}
	return &StoreMonitorService{
		store:    store,
		interval: interval,
		logger:   logging.WithComponent("store-monitor"),
		name:     "store-monitor",
	}
}

// Serve implements suture.Service. It checks once at startup and then on
// every tick until ctx is canceled.
func (s *StoreMonitorService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("store monitor starting")

	s.Check(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("store monitor shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

// Check runs one health check and updates the gauges. It reports whether the
// store answered.
func (s *StoreMonitorService) Check(ctx context.Context) bool {
	checkCtx, cancel := context.WithTimeout(ctx, monitorCheckTimeout)
	defer cancel()

	err := s.store.Ping(checkCtx)
	var count int64
	if err == nil {
		count, err = s.store.Count(checkCtx)
	}

	healthy := err == nil
	metrics.SetStoreHealth(healthy, count)

	switch {
	case s.healthy == nil || *s.healthy != healthy:
		if healthy {
			s.logger.Info().Int64("recommendations", count).Msg("store is healthy")
		} else {
			s.logger.Error().Err(err).Msg("store health check failed")
		}
	case !healthy:
		s.logger.Debug().Err(err).Msg("store still unhealthy")
	}
	s.healthy = &healthy

	return healthy
}

// String names the service in supervisor events.
func (s *StoreMonitorService) String() string {
	return s.name
}
