// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package validation

import (
	"strings"
	"testing"
)

func init() {
	if err := RegisterEnum("testkind", "UP_SELL", "BUNDLE"); err != nil {
		panic(err)
	}
}

type skuRequest struct {
	SKU    string `json:"sku" validate:"min=1,max=10"`
	Likes  int    `json:"likes" validate:"gte=0"`
	Kind   string `json:"kind,omitempty" validate:"omitempty,testkind"`
	Hidden string `json:"-" validate:"omitempty,max=2"`
	Plain  string `validate:"omitempty,max=3"`
}

func TestValidatorSingleton(t *testing.T) {
	if Validator() == nil {
		t.Fatal("Validator() returned nil")
	}
	if Validator() != Validator() {
		t.Error("Validator() must return one shared instance")
	}
}

func TestStructValid(t *testing.T) {
	tests := []struct {
		name  string
		input skuRequest
	}{
		{"minimal", skuRequest{SKU: "A", Likes: 0}},
		{"max length sku", skuRequest{SKU: "ABCDEFGHIJ", Likes: 3}},
		{"multibyte sku within limit", skuRequest{SKU: "ÄÖÜäöüßéèê", Likes: 1}},
		{"enum member", skuRequest{SKU: "X1", Kind: "BUNDLE"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if errs := Struct(&tt.input); errs != nil {
				t.Errorf("Struct() = %v, want nil", errs)
			}
		})
	}
}

func TestStructInvalid(t *testing.T) {
	tests := []struct {
		name      string
		input     skuRequest
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"sku too long", skuRequest{SKU: "ABCDEFGHIJK"}, "sku", "max", "sku must be at most 10 characters"},
		{"sku empty", skuRequest{SKU: ""}, "sku", "min", "sku must be at least 1 characters"},
		{"negative likes", skuRequest{SKU: "A", Likes: -1}, "likes", "gte", "likes must be greater than or equal to 0"},
		{"enum is case-sensitive", skuRequest{SKU: "A", Kind: "bundle"}, "kind", "testkind", "kind must be one of: UP_SELL BUNDLE"},
		{"field without json tag keeps go name", skuRequest{SKU: "A", Plain: "abcd"}, "Plain", "max", "Plain must be at most 3 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Struct(&tt.input)
			first := errs.First()
			if first == nil {
				t.Fatal("Struct() = nil, want error")
			}
			if first.Field != tt.wantField || first.Tag != tt.wantTag {
				t.Errorf("first = %s/%s, want %s/%s", first.Field, first.Tag, tt.wantField, tt.wantTag)
			}
			if first.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", first.Error(), tt.wantMsg)
			}
		})
	}
}

func TestErrorsOnly(t *testing.T) {
	errs := Struct(&skuRequest{SKU: "ABCDEFGHIJKL", Likes: -5})
	if len(errs) != 2 {
		t.Fatalf("len(errs) = %d, want 2", len(errs))
	}

	if fe := errs.Only("likes"); fe == nil || fe.Tag != "gte" {
		t.Errorf("Only(likes) = %+v", fe)
	}
	if fe := errs.Only("kind", "sku"); fe == nil || fe.Field != "sku" {
		t.Errorf("Only(kind, sku) = %+v", fe)
	}
	if fe := errs.Only("kind"); fe != nil {
		t.Errorf("Only(kind) = %+v, want nil", fe)
	}
	if !strings.Contains(errs.Error(), "; ") {
		t.Errorf("Error() should join messages with '; ', got %q", errs.Error())
	}
}

func TestErrorsEmpty(t *testing.T) {
	var errs Errors
	if errs.Error() != "validation failed" {
		t.Errorf("Error() = %q", errs.Error())
	}
	if errs.First() != nil {
		t.Error("First() must be nil for an empty set")
	}
}

func TestStructNonStruct(t *testing.T) {
	errs := Struct("not a struct")
	if errs.First() == nil || errs.First().Field != "unknown" {
		t.Errorf("Struct(string) = %v", errs)
	}
}
