// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package models

import (
	"errors"
	"math"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func validBody() map[string]any {
	return map[string]any{
		"product_a_sku":       "AA0001",
		"product_b_sku":       "AA0002",
		"recommendation_type": "UP_SELL",
		"likes":               json.Number("4"),
	}
}

func TestParseRecommendationType(t *testing.T) {
	t.Parallel()

	for _, rt := range RecommendationTypes() {
		got, err := ParseRecommendationType(string(rt))
		if err != nil {
			t.Errorf("ParseRecommendationType(%q) error = %v", rt, err)
		}
		if got != rt {
			t.Errorf("ParseRecommendationType(%q) = %q", rt, got)
		}
	}

	for _, bad := range []string{"up_sell", "Bundle", "", "UPSELL", " BUNDLE"} {
		if _, err := ParseRecommendationType(bad); err == nil {
			t.Errorf("ParseRecommendationType(%q) should fail", bad)
		}
	}
}

func TestParseRecommendationTypeFold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  RecommendationType
	}{
		{"bundle", Bundle},
		{"Cross_Sell", CrossSell},
		{"ACCESSORY", Accessory},
		{" up_sell ", UpSell},
	}
	for _, tt := range tests {
		got, err := ParseRecommendationTypeFold(tt.input)
		if err != nil {
			t.Errorf("ParseRecommendationTypeFold(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRecommendationTypeFold(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if _, err := ParseRecommendationTypeFold("upsell"); err == nil {
		t.Error("ParseRecommendationTypeFold(upsell) should fail")
	}
}

func TestDeserialize_Valid(t *testing.T) {
	t.Parallel()

	rec, err := Deserialize(validBody())
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	if rec.ProductASKU != "AA0001" || rec.ProductBSKU != "AA0002" {
		t.Errorf("SKUs = %q/%q", rec.ProductASKU, rec.ProductBSKU)
	}
	if rec.RecommendationType != UpSell {
		t.Errorf("RecommendationType = %q, want UP_SELL", rec.RecommendationType)
	}
	if rec.Likes != 4 {
		t.Errorf("Likes = %d, want 4", rec.Likes)
	}
	if rec.HasID() {
		t.Error("deserialized record must not carry an id")
	}
}

func TestDeserialize_LikesDefaultsToZero(t *testing.T) {
	t.Parallel()

	body := validBody()
	delete(body, "likes")

	rec, err := Deserialize(body)
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	if rec.Likes != 0 {
		t.Errorf("Likes = %d, want 0", rec.Likes)
	}
}

func TestDeserialize_IgnoresClientID(t *testing.T) {
	t.Parallel()

	body := validBody()
	body["id"] = json.Number("999")

	rec, err := Deserialize(body)
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	if rec.ID != nil {
		t.Errorf("ID = %d, want nil", *rec.ID)
	}
}

func TestDeserialize_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(map[string]any) any
		wantField string
		wantMsg   string
	}{
		{
			name:    "not a mapping",
			mutate:  func(map[string]any) any { return []any{"x"} },
			wantMsg: "Invalid Recommendation: body of request contained bad or no data",
		},
		{
			name:    "nil body",
			mutate:  func(map[string]any) any { return nil },
			wantMsg: "Invalid Recommendation: body of request contained bad or no data",
		},
		{
			name:      "missing product_a_sku",
			mutate:    func(m map[string]any) any { delete(m, "product_a_sku"); return m },
			wantField: "product_a_sku",
			wantMsg:   "Invalid Recommendation: missing product_a_sku",
		},
		{
			name:      "missing product_b_sku",
			mutate:    func(m map[string]any) any { delete(m, "product_b_sku"); return m },
			wantField: "product_b_sku",
			wantMsg:   "Invalid Recommendation: missing product_b_sku",
		},
		{
			name:      "missing recommendation_type",
			mutate:    func(m map[string]any) any { delete(m, "recommendation_type"); return m },
			wantField: "recommendation_type",
			wantMsg:   "Invalid Recommendation: missing recommendation_type",
		},
		{
			name:      "product_a_sku too long",
			mutate:    func(m map[string]any) any { m["product_a_sku"] = "AAAAAAAAAAA"; return m },
			wantField: "product_a_sku",
			wantMsg:   "Invalid Recommendation: exceeded maximum character limit at column: product_a_sku",
		},
		{
			name:      "product_b_sku too long",
			mutate:    func(m map[string]any) any { m["product_b_sku"] = strings.Repeat("B", 25); return m },
			wantField: "product_b_sku",
			wantMsg:   "Invalid Recommendation: exceeded maximum character limit at column: product_b_sku",
		},
		{
			name:      "empty product_a_sku",
			mutate:    func(m map[string]any) any { m["product_a_sku"] = ""; return m },
			wantField: "product_a_sku",
			wantMsg:   "Invalid Recommendation: empty value at column: product_a_sku",
		},
		{
			name:      "sku not a string",
			mutate:    func(m map[string]any) any { m["product_a_sku"] = json.Number("12"); return m },
			wantField: "product_a_sku",
			wantMsg:   "Invalid type for string [product_a_sku]",
		},
		{
			name:      "lowercase type",
			mutate:    func(m map[string]any) any { m["recommendation_type"] = "up_sell"; return m },
			wantField: "recommendation_type",
			wantMsg:   "Invalid attribute: up_sell",
		},
		{
			name:      "unknown type",
			mutate:    func(m map[string]any) any { m["recommendation_type"] = "DOWN_SELL"; return m },
			wantField: "recommendation_type",
			wantMsg:   "Invalid attribute: DOWN_SELL",
		},
		{
			name:      "likes as string",
			mutate:    func(m map[string]any) any { m["likes"] = "3"; return m },
			wantField: "likes",
			wantMsg:   "Invalid type for integer [likes]",
		},
		{
			name:      "likes as fraction",
			mutate:    func(m map[string]any) any { m["likes"] = json.Number("3.5"); return m },
			wantField: "likes",
			wantMsg:   "Invalid type for integer [likes]",
		},
		{
			name:      "likes null",
			mutate:    func(m map[string]any) any { m["likes"] = nil; return m },
			wantField: "likes",
			wantMsg:   "Invalid type for integer [likes]",
		},
		{
			name:      "likes bool",
			mutate:    func(m map[string]any) any { m["likes"] = true; return m },
			wantField: "likes",
			wantMsg:   "Invalid type for integer [likes]",
		},
		{
			name:      "negative likes",
			mutate:    func(m map[string]any) any { m["likes"] = json.Number("-1"); return m },
			wantField: "likes",
			wantMsg:   "Invalid Recommendation: likes must be greater than or equal to 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Deserialize(tt.mutate(validBody()))
			if err == nil {
				t.Fatal("Deserialize() error = nil, want DataValidationError")
			}
			dve, ok := AsDataValidationError(err)
			if !ok {
				t.Fatalf("error %T is not *DataValidationError", err)
			}
			if dve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", dve.Field, tt.wantField)
			}
			if dve.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", dve.Message, tt.wantMsg)
			}
		})
	}
}

func TestDeserialize_ValidationOrder(t *testing.T) {
	t.Parallel()

	// A missing key is reported before an oversized SKU or a bad type.
	body := map[string]any{
		"product_a_sku":       "WAY-TOO-LONG-SKU",
		"recommendation_type": "nope",
	}
	_, err := Deserialize(body)
	dve, ok := AsDataValidationError(err)
	if !ok || dve.Field != "product_b_sku" {
		t.Fatalf("expected missing product_b_sku first, got %v", err)
	}

	// An oversized SKU is reported before a bad type.
	body["product_b_sku"] = "B1"
	_, err = Deserialize(body)
	dve, ok = AsDataValidationError(err)
	if !ok || dve.Field != "product_a_sku" {
		t.Fatalf("expected product_a_sku length failure, got %v", err)
	}

	// product_a_sku is checked completely before product_b_sku.
	body["product_a_sku"] = "ELEVEN-CHARS"
	body["product_b_sku"] = json.Number("7")
	_, err = Deserialize(body)
	dve, ok = AsDataValidationError(err)
	if !ok || dve.Field != "product_a_sku" || !strings.Contains(dve.Message, "maximum character limit") {
		t.Fatalf("expected product_a_sku length failure before product_b_sku type, got %v", err)
	}
	body["product_b_sku"] = "B1"

	// A bad type is reported before bad likes.
	body["product_a_sku"] = "A1"
	body["likes"] = json.Number("-3")
	_, err = Deserialize(body)
	dve, ok = AsDataValidationError(err)
	if !ok || dve.Field != "recommendation_type" {
		t.Fatalf("expected recommendation_type failure, got %v", err)
	}
}

func TestDeserialize_SKULengthBoundary(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 15; n++ {
		body := validBody()
		body["product_a_sku"] = strings.Repeat("x", n)
		_, err := Deserialize(body)
		if n <= SKUCharLimit && err != nil {
			t.Errorf("len %d: unexpected error %v", n, err)
		}
		if n > SKUCharLimit && err == nil {
			t.Errorf("len %d: expected error", n)
		}
	}
}

func TestDeserialize_LikesAcceptsNumericKinds(t *testing.T) {
	t.Parallel()

	for _, v := range []any{float64(7), 7, int64(7), json.Number("7")} {
		body := validBody()
		body["likes"] = v
		rec, err := Deserialize(body)
		if err != nil {
			t.Errorf("likes %T(%v): error = %v", v, v, err)
			continue
		}
		if rec.Likes != 7 {
			t.Errorf("likes %T(%v): got %d", v, v, rec.Likes)
		}
	}

	body := validBody()
	body["likes"] = float64(7.25)
	if _, err := Deserialize(body); err == nil {
		t.Error("fractional float64 likes should fail")
	}

	for _, v := range []float64{math.MaxInt64, math.Inf(1), 1e19} {
		body := validBody()
		body["likes"] = v
		_, err := Deserialize(body)
		dve, ok := AsDataValidationError(err)
		if !ok || dve.Message != "Invalid type for integer [likes]" {
			t.Errorf("likes %v: error = %v, want integer type error", v, err)
		}
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, rt := range RecommendationTypes() {
		for _, likes := range []int64{0, 1, 42, 1 << 40} {
			in := &Recommendation{
				ProductASKU:        "SKU-1",
				ProductBSKU:        "SKU-2",
				RecommendationType: rt,
				Likes:              likes,
			}

			data, err := json.Marshal(in.Serialize())
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			out, err := DecodeJSON(data)
			if err != nil {
				t.Fatalf("DecodeJSON(%s) error = %v", data, err)
			}
			if out.ProductASKU != in.ProductASKU || out.ProductBSKU != in.ProductBSKU ||
				out.RecommendationType != in.RecommendationType || out.Likes != in.Likes {
				t.Errorf("round trip mismatch: in=%+v out=%+v", in, out)
			}
		}
	}
}

func TestSerialize(t *testing.T) {
	t.Parallel()

	rec := &Recommendation{ProductASKU: "A", ProductBSKU: "B", RecommendationType: Bundle, Likes: 2}

	m := rec.Serialize()
	if m["id"] != nil {
		t.Errorf("id = %v, want nil before persistence", m["id"])
	}
	if m["recommendation_type"] != "BUNDLE" {
		t.Errorf("recommendation_type = %v, want BUNDLE", m["recommendation_type"])
	}

	rec.SetID(12)
	m = rec.Serialize()
	if m["id"] != int64(12) {
		t.Errorf("id = %v (%T), want int64 12", m["id"], m["id"])
	}
	if len(m) != 5 {
		t.Errorf("serialized keys = %d, want 5", len(m))
	}

	if got := rec.String(); got != "<Recommendation A-B id=[12]>" {
		t.Errorf("String() = %q", got)
	}
}

func TestSerializeAll_NeverNil(t *testing.T) {
	t.Parallel()

	out := SerializeAll(nil)
	if out == nil {
		t.Fatal("SerializeAll(nil) returned nil")
	}
	data, _ := json.Marshal(out)
	if string(data) != "[]" {
		t.Errorf("marshal = %s, want []", data)
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	t.Parallel()

	valid := `{"product_a_sku":"AA0001","product_b_sku":"AA0002","recommendation_type":"UP_SELL"}`
	bodies := []string{"", "{", "not json", "[1,2]", "null", `"str"`,
		valid + " junk", valid + " {}", valid + "}", valid + ",", valid + valid}
	for _, body := range bodies {
		_, err := DecodeJSON([]byte(body))
		if _, ok := AsDataValidationError(err); !ok {
			t.Errorf("DecodeJSON(%q) error = %v, want DataValidationError", body, err)
		}
	}
}

func TestDecodeJSON_TrailingWhitespace(t *testing.T) {
	t.Parallel()

	body := "{\"product_a_sku\":\"A\",\"product_b_sku\":\"B\",\"recommendation_type\":\"BUNDLE\"}\n\t "
	rec, err := DecodeJSON([]byte(body))
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	if rec.RecommendationType != Bundle {
		t.Errorf("type = %q, want BUNDLE", rec.RecommendationType)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	rec := &Recommendation{ProductASKU: "A", ProductBSKU: "B", RecommendationType: CrossSell}
	if err := rec.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	rec.Likes = -1
	if err := rec.Validate(); err == nil {
		t.Error("negative likes should fail Validate()")
	}

	rec.Likes = 0
	rec.RecommendationType = "nope"
	if err := rec.Validate(); err == nil {
		t.Error("unknown type should fail Validate()")
	}
}

func TestIsDomainError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"not found", ErrNotFound, true},
		{"wrapped not found", errors.Join(errors.New("ctx"), ErrNotFound), true},
		{"pk not set", ErrPrimaryKeyNotSet, true},
		{"validation", NewDataValidationError("likes", "bad"), true},
		{"conflict", &ConflictError{}, true},
		{"infra", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		if got := IsDomainError(tt.err); got != tt.want {
			t.Errorf("%s: IsDomainError() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFilterFromQuery(t *testing.T) {
	t.Parallel()

	f, err := FilterFromQuery(url.Values{})
	if err != nil || !f.IsEmpty() {
		t.Fatalf("empty query: filter=%+v err=%v", f, err)
	}

	f, err = FilterFromQuery(url.Values{
		"product_a_sku":       {"AA0001"},
		"recommendation_type": {"bundle"},
	})
	if err != nil {
		t.Fatalf("FilterFromQuery() error = %v", err)
	}
	if f.ProductASKU == nil || *f.ProductASKU != "AA0001" {
		t.Errorf("ProductASKU = %v", f.ProductASKU)
	}
	if f.Type == nil || *f.Type != Bundle {
		t.Errorf("Type = %v, want BUNDLE", f.Type)
	}
	if f.ProductBSKU != nil {
		t.Errorf("ProductBSKU should be nil")
	}

	if _, err := FilterFromQuery(url.Values{"recommendation_type": {"bogus"}}); err == nil {
		t.Error("unknown type should fail")
	}
}

func TestFilterMatches(t *testing.T) {
	t.Parallel()

	a := "AA0001"
	b := "BB0001"
	bundle := Bundle

	recs := []Recommendation{
		{ProductASKU: "AA0001", ProductBSKU: "BB0001", RecommendationType: Bundle},
		{ProductASKU: "AA0001", ProductBSKU: "BB0002", RecommendationType: UpSell},
		{ProductASKU: "AA0002", ProductBSKU: "BB0001", RecommendationType: Bundle},
	}

	tests := []struct {
		name   string
		filter RecommendationFilter
		want   int
	}{
		{"empty", RecommendationFilter{}, 3},
		{"sku a", RecommendationFilter{ProductASKU: &a}, 2},
		{"sku b", RecommendationFilter{ProductBSKU: &b}, 2},
		{"type", RecommendationFilter{Type: &bundle}, 2},
		{"sku a and type", RecommendationFilter{ProductASKU: &a, Type: &bundle}, 1},
		{"all three", RecommendationFilter{ProductASKU: &a, ProductBSKU: &b, Type: &bundle}, 1},
	}
	for _, tt := range tests {
		got := 0
		for i := range recs {
			if tt.filter.Matches(&recs[i]) {
				got++
			}
		}
		if got != tt.want {
			t.Errorf("%s: matched %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestConflictError(t *testing.T) {
	t.Parallel()

	err := &ConflictError{ProductASKU: "A", ProductBSKU: "B", Type: UpSell, ExistingID: 3}
	if err.Error() != "Duplicate recommendation detected." {
		t.Errorf("Error() = %q", err.Error())
	}
	if !strings.Contains(err.Detail(), "id 3") {
		t.Errorf("Detail() = %q", err.Detail())
	}
}
