// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package database

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/recommendations/internal/config"
	"github.com/tomtom215/recommendations/internal/metrics"
	"github.com/tomtom215/recommendations/internal/models"
)

// fakeStore returns err from every call and counts calls.
type fakeStore struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *fakeStore) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeStore) result() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakeStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeStore) record() (*models.Recommendation, error) {
	if err := f.result(); err != nil {
		return nil, err
	}
	rec := &models.Recommendation{ProductASKU: "A", ProductBSKU: "B", RecommendationType: models.Bundle}
	rec.SetID(1)
	return rec, nil
}

func (f *fakeStore) Insert(context.Context, *models.Recommendation) (*models.Recommendation, error) {
	return f.record()
}

func (f *fakeStore) Update(context.Context, *models.Recommendation) (*models.Recommendation, error) {
	return f.record()
}

func (f *fakeStore) Delete(context.Context, int64) error { return f.result() }

func (f *fakeStore) FindByID(context.Context, int64) (*models.Recommendation, error) {
	return f.record()
}

func (f *fakeStore) FindAll(context.Context) ([]models.Recommendation, error) {
	if err := f.result(); err != nil {
		return nil, err
	}
	return []models.Recommendation{}, nil
}

func (f *fakeStore) FindFiltered(ctx context.Context, _ models.RecommendationFilter) ([]models.Recommendation, error) {
	return f.FindAll(ctx)
}

func (f *fakeStore) FindDuplicate(context.Context, string, string, models.RecommendationType) (*models.Recommendation, error) {
	return f.record()
}

func (f *fakeStore) IncrementLikes(context.Context, int64) (*models.Recommendation, error) {
	return f.record()
}

func (f *fakeStore) DecrementLikes(context.Context, int64) (*models.Recommendation, error) {
	return f.record()
}

func (f *fakeStore) Count(context.Context) (int64, error) {
	if err := f.result(); err != nil {
		return 0, err
	}
	return 7, nil
}

func (f *fakeStore) Ping(context.Context) error { return f.result() }
func (f *fakeStore) Close() error                { return nil }

func testBreakerConfig() config.BreakerConfig {
	return config.BreakerConfig{
		Enabled:      true,
		MaxRequests:  1,
		Interval:     0,
		Timeout:      100 * time.Millisecond,
		MinRequests:  4,
		FailureRatio: 0.5,
	}
}

func TestCircuitBreakerTripsOnInfrastructureErrors(t *testing.T) {
	fake := &fakeStore{err: errors.New("IO Error: disk unavailable")}
	cbs := NewCircuitBreakerStore(fake, testBreakerConfig())
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := cbs.FindAll(ctx); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	if cbs.State() != "open" {
		t.Fatalf("State() = %q, want open", cbs.State())
	}

	rejected := metrics.CircuitBreakerRequests.WithLabelValues(BreakerName, "rejected")
	before := testutil.ToFloat64(rejected)

	_, err := cbs.FindAll(ctx)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("open breaker error = %v, want ErrStoreUnavailable", err)
	}
	if fake.callCount() != 4 {
		t.Errorf("store calls = %d, want 4 (open breaker must not reach the store)", fake.callCount())
	}
	if got := testutil.ToFloat64(rejected) - before; got != 1 {
		t.Errorf("rejected delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues(BreakerName)); got != 2 {
		t.Errorf("state gauge = %v, want 2", got)
	}
}

func TestCircuitBreakerIgnoresDomainErrors(t *testing.T) {
	domainErrs := []error{
		models.ErrNotFound,
		models.ErrPrimaryKeyNotSet,
		&models.ConflictError{ProductASKU: "A", ProductBSKU: "B", Type: models.Bundle, ExistingID: 1},
		models.NewDataValidationError("likes", "Recommendation 1 has no likes to remove"),
	}

	for _, domainErr := range domainErrs {
		t.Run(domainErr.Error(), func(t *testing.T) {
			fake := &fakeStore{err: domainErr}
			cbs := NewCircuitBreakerStore(fake, testBreakerConfig())

			for i := 0; i < 10; i++ {
				_, err := cbs.FindByID(context.Background(), 1)
				if !errors.Is(err, domainErr) {
					t.Fatalf("error = %v, want %v passed through", err, domainErr)
				}
			}
			if cbs.State() != "closed" {
				t.Errorf("State() = %q, want closed", cbs.State())
			}
		})
	}
}

func TestCircuitBreakerRecovers(t *testing.T) {
	fake := &fakeStore{err: errors.New("connection reset")}
	cbs := NewCircuitBreakerStore(fake, testBreakerConfig())
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_ = cbs.Ping(ctx)
	}
	if cbs.State() != "open" {
		t.Fatalf("State() = %q, want open", cbs.State())
	}

	fake.setErr(nil)
	time.Sleep(150 * time.Millisecond)

	if cbs.State() != "half-open" {
		t.Fatalf("State() after timeout = %q, want half-open", cbs.State())
	}

	n, err := cbs.Count(ctx)
	if err != nil {
		t.Fatalf("Count() in half-open error = %v", err)
	}
	if n != 7 {
		t.Errorf("Count() = %d, want 7", n)
	}
	if cbs.State() != "closed" {
		t.Errorf("State() after probe = %q, want closed", cbs.State())
	}
}

func TestCircuitBreakerPassesResults(t *testing.T) {
	fake := &fakeStore{}
	cbs := NewCircuitBreakerStore(fake, testBreakerConfig())
	ctx := context.Background()

	rec, err := cbs.Insert(ctx, &models.Recommendation{})
	if err != nil || rec.IDValue() != 1 {
		t.Errorf("Insert() = %v, %v", rec, err)
	}
	all, err := cbs.FindFiltered(ctx, models.RecommendationFilter{})
	if err != nil || all == nil {
		t.Errorf("FindFiltered() = %v, %v", all, err)
	}
	if err := cbs.Delete(ctx, 1); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if cbs.Unwrap() != Store(fake) {
		t.Error("Unwrap() must return the wrapped store")
	}
}

func TestCastResult(t *testing.T) {
	if _, err := castResult[int64]("seven", nil); err == nil {
		t.Error("expected type mismatch error")
	}
	want := errors.New("boom")
	if _, err := castResult[int64](nil, want); !errors.Is(err, want) {
		t.Errorf("error = %v, want %v", err, want)
	}
	if v, err := castResult[int64](int64(3), nil); err != nil || v != 3 {
		t.Errorf("castResult() = %d, %v", v, err)
	}
}
