// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package database

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/recommendations/internal/config"
	"github.com/tomtom215/recommendations/internal/logging"
	"github.com/tomtom215/recommendations/internal/metrics"
	"github.com/tomtom215/recommendations/internal/models"
)

// BreakerName labels the store breaker in metrics and logs.
const BreakerName = "recommendation-store"

// CircuitBreakerStore wraps a Store so that repeated infrastructure
// failures fail fast with ErrStoreUnavailable instead of piling up on a
// broken backend. Domain errors (not found, conflict, validation) pass
// through and count as successes.
//
// The breaker uses wall-clock time for its interval and timeout.
type CircuitBreakerStore struct {
	store Store
	cb    *gobreaker.CircuitBreaker[interface{}]
	name  string
}

var _ Store = (*CircuitBreakerStore)(nil)

// NewCircuitBreakerStore wraps store with a breaker tuned by cfg.
func NewCircuitBreakerStore(store Store, cfg config.BreakerConfig) *CircuitBreakerStore {
	name := BreakerName

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	minRequests := cfg.MinRequests
	ratio := cfg.FailureRatio

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= ratio
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening store circuit")
			}
			return shouldTrip
		},

		IsSuccessful: func(err error) bool {
			return err == nil || models.IsDomainError(err) || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).
				Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerStore{store: store, cb: cb, name: name}
}

// State returns the breaker state as "closed", "half-open" or "open".
func (s *CircuitBreakerStore) State() string {
	return stateToString(s.cb.State())
}

// Unwrap returns the protected store.
func (s *CircuitBreakerStore) Unwrap() Store {
	return s.store
}

func (s *CircuitBreakerStore) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := s.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Store request rejected")
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if !models.IsDomainError(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "failure").Inc()
			counts := s.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.name).Set(float64(counts.ConsecutiveFailures))
			return nil, err
		}
	}

	metrics.CircuitBreakerRequests.WithLabelValues(s.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.name).Set(0)
	return result, err
}

// castResult type-asserts a breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func (s *CircuitBreakerStore) Insert(ctx context.Context, rec *models.Recommendation) (*models.Recommendation, error) {
	return castResult[*models.Recommendation](s.execute(func() (interface{}, error) {
		return s.store.Insert(ctx, rec)
	}))
}

func (s *CircuitBreakerStore) Update(ctx context.Context, rec *models.Recommendation) (*models.Recommendation, error) {
	return castResult[*models.Recommendation](s.execute(func() (interface{}, error) {
		return s.store.Update(ctx, rec)
	}))
}

func (s *CircuitBreakerStore) Delete(ctx context.Context, id int64) error {
	_, err := s.execute(func() (interface{}, error) {
		return nil, s.store.Delete(ctx, id)
	})
	return err
}

func (s *CircuitBreakerStore) FindByID(ctx context.Context, id int64) (*models.Recommendation, error) {
	return castResult[*models.Recommendation](s.execute(func() (interface{}, error) {
		return s.store.FindByID(ctx, id)
	}))
}

func (s *CircuitBreakerStore) FindAll(ctx context.Context) ([]models.Recommendation, error) {
	return castResult[[]models.Recommendation](s.execute(func() (interface{}, error) {
		return s.store.FindAll(ctx)
	}))
}

func (s *CircuitBreakerStore) FindFiltered(ctx context.Context, filter models.RecommendationFilter) ([]models.Recommendation, error) {
	return castResult[[]models.Recommendation](s.execute(func() (interface{}, error) {
		return s.store.FindFiltered(ctx, filter)
	}))
}

func (s *CircuitBreakerStore) FindDuplicate(ctx context.Context, skuA, skuB string, recType models.RecommendationType) (*models.Recommendation, error) {
	return castResult[*models.Recommendation](s.execute(func() (interface{}, error) {
		return s.store.FindDuplicate(ctx, skuA, skuB, recType)
	}))
}

func (s *CircuitBreakerStore) IncrementLikes(ctx context.Context, id int64) (*models.Recommendation, error) {
	return castResult[*models.Recommendation](s.execute(func() (interface{}, error) {
		return s.store.IncrementLikes(ctx, id)
	}))
}

func (s *CircuitBreakerStore) DecrementLikes(ctx context.Context, id int64) (*models.Recommendation, error) {
	return castResult[*models.Recommendation](s.execute(func() (interface{}, error) {
		return s.store.DecrementLikes(ctx, id)
	}))
}

func (s *CircuitBreakerStore) Count(ctx context.Context) (int64, error) {
	return castResult[int64](s.execute(func() (interface{}, error) {
		return s.store.Count(ctx)
	}))
}

// Ping goes through the breaker so health checks observe an open circuit.
func (s *CircuitBreakerStore) Ping(ctx context.Context) error {
	_, err := s.execute(func() (interface{}, error) {
		return nil, s.store.Ping(ctx)
	})
	return err
}

// Close bypasses the breaker.
func (s *CircuitBreakerStore) Close() error {
	return s.store.Close()
}
