// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/recommendations/internal/metrics"
)

type fakeMonitoredStore struct {
	mu      sync.Mutex
	pingErr error
	count   int64
	pings   int
}

func (f *fakeMonitoredStore) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeMonitoredStore) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count, nil
}

func (f *fakeMonitoredStore) set(pingErr error, count int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = pingErr
	f.count = count
}

func (f *fakeMonitoredStore) pingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pings
}

func TestStoreMonitorCheckPublishesGauges(t *testing.T) {
	store := &fakeMonitoredStore{count: 12}
	svc := NewStoreMonitorService(store, time.Minute)
	ctx := context.Background()

	if !svc.Check(ctx) {
		t.Fatal("Check() = false for a healthy store")
	}
	if got := testutil.ToFloat64(metrics.StoreUp); got != 1 {
		t.Errorf("store_up = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.RecommendationsTotal); got != 12 {
		t.Errorf("recommendations_total = %v, want 12", got)
	}

	store.set(errors.New("connection refused"), 0)
	if svc.Check(ctx) {
		t.Fatal("Check() = true for a failing store")
	}
	if got := testutil.ToFloat64(metrics.StoreUp); got != 0 {
		t.Errorf("store_up = %v, want 0", got)
	}
	if got := testutil.ToFloat64(metrics.RecommendationsTotal); got != 12 {
		t.Errorf("recommendations_total changed on failure: %v", got)
	}
}

func TestStoreMonitorServeTicks(t *testing.T) {
	store := &fakeMonitoredStore{count: 1}
	svc := NewStoreMonitorService(store, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for store.pingCount() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if store.pingCount() < 3 {
		t.Errorf("pings = %d, want at least 3", store.pingCount())
	}
}

func TestNewStoreMonitorServiceDefaultInterval(t *testing.T) {
	svc := NewStoreMonitorService(&fakeMonitoredStore{}, 0)
	if svc.interval != defaultMonitorInterval {
		t.Errorf("interval = %v, want %v", svc.interval, defaultMonitorInterval)
	}
	if svc.String() != "store-monitor" {
		t.Errorf("String() = %q", svc.String())
	}
}
