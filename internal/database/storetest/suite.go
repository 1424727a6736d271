// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

// Package storetest holds the behavioural suite every database.Store
// implementation must pass. Backend packages call Run from their own tests.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/recommendations/internal/database"
	"github.com/tomtom215/recommendations/internal/models"
)

// Factory returns an empty store. The store is closed by the suite.
type Factory func(t *testing.T) database.Store

// Run executes every behaviour test against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, s database.Store)
	}{
		{"InsertAssignsID", testInsertAssignsID},
		{"InsertRejectsDuplicate", testInsertRejectsDuplicate},
		{"ReversedPairIsNotDuplicate", testReversedPairIsNotDuplicate},
		{"InsertRejectsInvalid", testInsertRejectsInvalid},
		{"FindByIDMissing", testFindByIDMissing},
		{"UpdateRoundTrip", testUpdateRoundTrip},
		{"UpdateErrors", testUpdateErrors},
		{"UpdateToDuplicate", testUpdateToDuplicate},
		{"DeleteIsIdempotent", testDeleteIsIdempotent},
		{"FindAllOrdered", testFindAllOrdered},
		{"FindFiltered", testFindFiltered},
		{"FindDuplicate", testFindDuplicate},
		{"LikesFromZero", testLikesFromZero},
		{"LikesMissingID", testLikesMissingID},
		{"ConcurrentLikes", testConcurrentLikes},
		{"CountAndPing", testCountAndPing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			t.Cleanup(func() {
				if err := s.Close(); err != nil {
					t.Logf("close store: %v", err)
				}
			})
			tt.fn(t, s)
		})
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// NewRecommendation builds an unsaved record.
func NewRecommendation(a, b string, typ models.RecommendationType, likes int64) *models.Recommendation {
	return &models.Recommendation{ProductASKU: a, ProductBSKU: b, RecommendationType: typ, Likes: likes}
}

// MustInsert inserts rec and fails the test on error.
func MustInsert(t *testing.T, s database.Store, rec *models.Recommendation) *models.Recommendation {
	t.Helper()
	out, err := s.Insert(testContext(t), rec)
	if err != nil {
		t.Fatalf("Insert(%s) error = %v", rec, err)
	}
	return out
}

func testInsertAssignsID(t *testing.T, s database.Store) {
	first := MustInsert(t, s, NewRecommendation("AA0001", "AA0002", models.CrossSell, 0))
	second := MustInsert(t, s, NewRecommendation("AA0001", "AA0003", models.UpSell, 5))

	if !first.HasID() || !second.HasID() {
		t.Fatal("inserted records must carry an ID")
	}
	if first.IDValue() == second.IDValue() {
		t.Errorf("IDs must be unique, both = %d", first.IDValue())
	}
	if second.Likes != 5 {
		t.Errorf("Likes = %d, want 5", second.Likes)
	}

	got, err := s.FindByID(testContext(t), first.IDValue())
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.ProductASKU != "AA0001" || got.ProductBSKU != "AA0002" || got.RecommendationType != models.CrossSell || got.Likes != 0 {
		t.Errorf("FindByID() = %+v", got)
	}
}

func testInsertRejectsDuplicate(t *testing.T, s database.Store) {
	existing := MustInsert(t, s, NewRecommendation("AA0001", "AA0002", models.CrossSell, 0))

	_, err := s.Insert(testContext(t), NewRecommendation("AA0001", "AA0002", models.CrossSell, 3))
	var ce *models.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("Insert duplicate error = %v, want *ConflictError", err)
	}
	if ce.ExistingID != existing.IDValue() {
		t.Errorf("ExistingID = %d, want %d", ce.ExistingID, existing.IDValue())
	}
	if ce.Error() != "Duplicate recommendation detected." {
		t.Errorf("Error() = %q", ce.Error())
	}

	// Same pair with another type is allowed.
	MustInsert(t, s, NewRecommendation("AA0001", "AA0002", models.Bundle, 0))

	n, err := s.Count(testContext(t))
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
}

func testReversedPairIsNotDuplicate(t *testing.T, s database.Store) {
	MustInsert(t, s, NewRecommendation("AA0001", "AA0002", models.Bundle, 0))
	MustInsert(t, s, NewRecommendation("AA0002", "AA0001", models.Bundle, 0))
}

func testInsertRejectsInvalid(t *testing.T, s database.Store) {
	tests := []struct {
		name string
		rec  *models.Recommendation
	}{
		{"long sku a", NewRecommendation("ABCDEFGHIJK", "B", models.Bundle, 0)},
		{"empty sku b", NewRecommendation("A", "", models.Bundle, 0)},
		{"bad type", NewRecommendation("A", "B", models.RecommendationType("bundle"), 0)},
		{"negative likes", NewRecommendation("A", "B", models.Bundle, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Insert(testContext(t), tt.rec)
			if _, ok := models.AsDataValidationError(err); !ok {
				t.Errorf("Insert() error = %v, want *DataValidationError", err)
			}
		})
	}
}

func testFindByIDMissing(t *testing.T, s database.Store) {
	_, err := s.FindByID(testContext(t), 424242)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("FindByID() error = %v, want ErrNotFound", err)
	}
}

func testUpdateRoundTrip(t *testing.T, s database.Store) {
	rec := MustInsert(t, s, NewRecommendation("AA0001", "AA0002", models.CrossSell, 1))

	rec.ProductBSKU = "ZZ9999"
	rec.RecommendationType = models.Accessory
	rec.Likes = 8
	updated, err := s.Update(testContext(t), rec)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.IDValue() != rec.IDValue() {
		t.Errorf("ID changed: %d -> %d", rec.IDValue(), updated.IDValue())
	}

	got, err := s.FindByID(testContext(t), rec.IDValue())
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.ProductBSKU != "ZZ9999" || got.RecommendationType != models.Accessory || got.Likes != 8 {
		t.Errorf("after update = %+v", got)
	}
}

func testUpdateErrors(t *testing.T, s database.Store) {
	_, err := s.Update(testContext(t), NewRecommendation("A", "B", models.Bundle, 0))
	if !errors.Is(err, models.ErrPrimaryKeyNotSet) {
		t.Errorf("Update(no id) error = %v, want ErrPrimaryKeyNotSet", err)
	}

	missing := NewRecommendation("A", "B", models.Bundle, 0)
	missing.SetID(987654)
	_, err = s.Update(testContext(t), missing)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}

	rec := MustInsert(t, s, NewRecommendation("A", "B", models.Bundle, 0))
	rec.ProductASKU = "ABCDEFGHIJK"
	_, err = s.Update(testContext(t), rec)
	if _, ok := models.AsDataValidationError(err); !ok {
		t.Errorf("Update(invalid) error = %v, want *DataValidationError", err)
	}
}

func testUpdateToDuplicate(t *testing.T, s database.Store) {
	MustInsert(t, s, NewRecommendation("A", "B", models.Bundle, 0))
	other := MustInsert(t, s, NewRecommendation("A", "C", models.Bundle, 0))

	// Saving a record unchanged is not a conflict with itself.
	if _, err := s.Update(testContext(t), other); err != nil {
		t.Fatalf("Update(unchanged) error = %v", err)
	}

	other.ProductBSKU = "B"
	_, err := s.Update(testContext(t), other)
	var ce *models.ConflictError
	if !errors.As(err, &ce) {
		t.Errorf("Update(duplicate) error = %v, want *ConflictError", err)
	}
}

func testDeleteIsIdempotent(t *testing.T, s database.Store) {
	rec := MustInsert(t, s, NewRecommendation("A", "B", models.UpSell, 0))

	for i := 0; i < 2; i++ {
		if err := s.Delete(testContext(t), rec.IDValue()); err != nil {
			t.Fatalf("Delete() #%d error = %v", i+1, err)
		}
	}
	if _, err := s.FindByID(testContext(t), rec.IDValue()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("FindByID after delete error = %v, want ErrNotFound", err)
	}
}

func testFindAllOrdered(t *testing.T, s database.Store) {
	all, err := s.FindAll(testContext(t))
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Errorf("FindAll() on empty store = %v, want empty non-nil slice", all)
	}

	for _, sku := range []string{"C", "A", "B"} {
		MustInsert(t, s, NewRecommendation(sku, "X", models.UpSell, 0))
	}

	all, err = s.FindAll(testContext(t))
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(FindAll()) = %d, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].IDValue() >= all[i].IDValue() {
			t.Errorf("FindAll() not ordered by id: %d before %d", all[i-1].IDValue(), all[i].IDValue())
		}
	}
}

func testFindFiltered(t *testing.T, s database.Store) {
	seed := []*models.Recommendation{
		NewRecommendation("AA0001", "AA0002", models.CrossSell, 0),
		NewRecommendation("AA0001", "AA0003", models.Bundle, 0),
		NewRecommendation("AA0001", "AA0002", models.Bundle, 0),
		NewRecommendation("BB0001", "AA0002", models.Bundle, 0),
	}
	var stored []models.Recommendation
	for _, rec := range seed {
		stored = append(stored, *MustInsert(t, s, rec))
	}

	str := func(v string) *string { return &v }
	typ := func(v models.RecommendationType) *models.RecommendationType { return &v }

	filters := []struct {
		name   string
		filter models.RecommendationFilter
	}{
		{"empty", models.RecommendationFilter{}},
		{"sku a", models.RecommendationFilter{ProductASKU: str("AA0001")}},
		{"sku b", models.RecommendationFilter{ProductBSKU: str("AA0002")}},
		{"type", models.RecommendationFilter{Type: typ(models.Bundle)}},
		{"sku a and type", models.RecommendationFilter{ProductASKU: str("AA0001"), Type: typ(models.Bundle)}},
		{"all three", models.RecommendationFilter{ProductASKU: str("AA0001"), ProductBSKU: str("AA0002"), Type: typ(models.Bundle)}},
		{"no match", models.RecommendationFilter{ProductASKU: str("NOPE")}},
	}

	for _, tt := range filters {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.FindFiltered(testContext(t), tt.filter)
			if err != nil {
				t.Fatalf("FindFiltered() error = %v", err)
			}

			var want []int64
			for i := range stored {
				if tt.filter.Matches(&stored[i]) {
					want = append(want, stored[i].IDValue())
				}
			}
			if len(got) != len(want) {
				t.Fatalf("FindFiltered() returned %d records, want %d", len(got), len(want))
			}
			for i := range got {
				if got[i].IDValue() != want[i] {
					t.Errorf("result[%d].ID = %d, want %d", i, got[i].IDValue(), want[i])
				}
			}
		})
	}
}

func testFindDuplicate(t *testing.T, s database.Store) {
	rec := MustInsert(t, s, NewRecommendation("AA0001", "AA0002", models.Accessory, 0))

	got, err := s.FindDuplicate(testContext(t), "AA0001", "AA0002", models.Accessory)
	if err != nil {
		t.Fatalf("FindDuplicate() error = %v", err)
	}
	if got.IDValue() != rec.IDValue() {
		t.Errorf("FindDuplicate() ID = %d, want %d", got.IDValue(), rec.IDValue())
	}

	if _, err := s.FindDuplicate(testContext(t), "AA0002", "AA0001", models.Accessory); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("FindDuplicate(reversed) error = %v, want ErrNotFound", err)
	}
}

func testLikesFromZero(t *testing.T, s database.Store) {
	rec := MustInsert(t, s, NewRecommendation("A", "B", models.UpSell, 0))
	id := rec.IDValue()

	_, err := s.DecrementLikes(testContext(t), id)
	dve, ok := models.AsDataValidationError(err)
	if !ok {
		t.Fatalf("DecrementLikes(0) error = %v, want *DataValidationError", err)
	}
	if dve.Field != "likes" {
		t.Errorf("Field = %q, want likes", dve.Field)
	}

	up, err := s.IncrementLikes(testContext(t), id)
	if err != nil {
		t.Fatalf("IncrementLikes() error = %v", err)
	}
	if up.Likes != 1 {
		t.Errorf("likes after increment = %d, want 1", up.Likes)
	}

	down, err := s.DecrementLikes(testContext(t), id)
	if err != nil {
		t.Fatalf("DecrementLikes() error = %v", err)
	}
	if down.Likes != 0 {
		t.Errorf("likes after decrement = %d, want 0", down.Likes)
	}
}

func testLikesMissingID(t *testing.T, s database.Store) {
	if _, err := s.IncrementLikes(testContext(t), 31337); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("IncrementLikes(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := s.DecrementLikes(testContext(t), 31337); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("DecrementLikes(missing) error = %v, want ErrNotFound", err)
	}
}

func testConcurrentLikes(t *testing.T, s database.Store) {
	rec := MustInsert(t, s, NewRecommendation("A", "B", models.Bundle, 0))
	id := rec.IDValue()

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.IncrementLikes(context.Background(), id); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("IncrementLikes() error = %v", err)
	}

	got, err := s.FindByID(testContext(t), id)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Likes != workers {
		t.Errorf("likes = %d, want %d", got.Likes, workers)
	}
}

func testCountAndPing(t *testing.T, s database.Store) {
	if err := s.Ping(testContext(t)); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	n, err := s.Count(testContext(t))
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Count() on empty store = %d", n)
	}

	MustInsert(t, s, NewRecommendation("A", "B", models.Bundle, 0))
	MustInsert(t, s, NewRecommendation("A", "C", models.Bundle, 0))

	if n, _ = s.Count(testContext(t)); n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
}
