// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package models

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/recommendations/internal/validation"
)

// SKUCharLimit is the maximum length of a product SKU in characters.
const SKUCharLimit = 10

// RecommendationType is the relationship between the two products.
type RecommendationType string

// Recommendation types. The member name is also the stored and wire value.
const (
	UpSell    RecommendationType = "UP_SELL"
	CrossSell RecommendationType = "CROSS_SELL"
	Accessory RecommendationType = "ACCESSORY"
	Bundle    RecommendationType = "BUNDLE"
)

// recommendationTypes maps member names to members.
var recommendationTypes = map[string]RecommendationType{
	string(UpSell):    UpSell,
	string(CrossSell): CrossSell,
	string(Accessory): Accessory,
	string(Bundle):    Bundle,
}

func init() {
	names := make([]string, 0, len(recommendationTypes))
	for _, t := range RecommendationTypes() {
		names = append(names, string(t))
	}
	if err := validation.RegisterEnum("rectype", names...); err != nil {
		panic(err)
	}
}

// RecommendationTypes returns all members in declaration order.
func RecommendationTypes() []RecommendationType {
	return []RecommendationType{UpSell, CrossSell, Accessory, Bundle}
}

// ParseRecommendationType resolves an exact, case-sensitive member name.
func ParseRecommendationType(name string) (RecommendationType, error) {
	if t, ok := recommendationTypes[name]; ok {
		return t, nil
	}
	return "", NewDataValidationError("recommendation_type", "Invalid attribute: "+name)
}

// ParseRecommendationTypeFold resolves a member name ignoring case.
// Used for query parameters, where "bundle" selects BUNDLE.
func ParseRecommendationTypeFold(name string) (RecommendationType, error) {
	return ParseRecommendationType(strings.ToUpper(strings.TrimSpace(name)))
}

func (t RecommendationType) String() string {
	return string(t)
}

// Recommendation links product A to product B.
// ID is nil until storage assigns one.
type Recommendation struct {
	ID                 *int64             `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductASKU        string             `json:"product_a_sku" gorm:"column:product_a_sku;size:10;not null;check:length(product_a_sku) BETWEEN 1 AND 10;index:idx_recommendations_product_a;index:idx_recommendations_triple,priority:1" validate:"min=1,max=10"`
	ProductBSKU        string             `json:"product_b_sku" gorm:"column:product_b_sku;size:10;not null;check:length(product_b_sku) BETWEEN 1 AND 10;index:idx_recommendations_triple,priority:2" validate:"min=1,max=10"`
	RecommendationType RecommendationType `json:"recommendation_type" gorm:"column:recommendation_type;size:16;not null;check:recommendation_type IN ('UP_SELL', 'CROSS_SELL', 'ACCESSORY', 'BUNDLE');index:idx_recommendations_triple,priority:3" validate:"rectype"`
	Likes              int64              `json:"likes" gorm:"column:likes;not null;default:0;check:likes >= 0" validate:"gte=0"`
}

// TableName pins the table name for ORM-backed stores.
func (Recommendation) TableName() string {
	return "recommendations"
}

// HasID reports whether the record has been persisted.
func (r *Recommendation) HasID() bool {
	return r.ID != nil
}

// IDValue returns the identifier or 0 when unset.
func (r *Recommendation) IDValue() int64 {
	if r.ID == nil {
		return 0
	}
	return *r.ID
}

// SetID assigns the storage identifier.
func (r *Recommendation) SetID(id int64) {
	r.ID = &id
}

func (r *Recommendation) String() string {
	return fmt.Sprintf("<Recommendation %s-%s id=[%s]>", r.ProductASKU, r.ProductBSKU, r.idString())
}

func (r *Recommendation) idString() string {
	if r.ID == nil {
		return "None"
	}
	return strconv.FormatInt(*r.ID, 10)
}

// Serialize returns the flat wire representation of the record.
func (r *Recommendation) Serialize() map[string]any {
	var id any
	if r.ID != nil {
		id = *r.ID
	}
	return map[string]any{
		"id":                  id,
		"product_a_sku":       r.ProductASKU,
		"product_b_sku":       r.ProductBSKU,
		"recommendation_type": string(r.RecommendationType),
		"likes":               r.Likes,
	}
}

// SerializeAll serializes a slice of records, never returning nil.
func SerializeAll(recs []Recommendation) []map[string]any {
	out := make([]map[string]any, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].Serialize())
	}
	return out
}

// requiredKeys are checked in this order so the first missing key is reported.
var requiredKeys = []string{"product_a_sku", "product_b_sku", "recommendation_type"}

// Deserialize builds a Recommendation from a decoded JSON value.
// Any "id" key is ignored; identifiers are assigned by storage.
func Deserialize(data any) (*Recommendation, error) {
	m, ok := data.(map[string]any)
	if !ok || m == nil {
		return nil, NewDataValidationError("", "Invalid Recommendation: body of request contained bad or no data")
	}

	for _, key := range requiredKeys {
		if _, present := m[key]; !present {
			return nil, NewDataValidationError(key, "Invalid Recommendation: missing "+key)
		}
	}

	rec := &Recommendation{}

	var err error
	if rec.ProductASKU, err = skuField(rec, m, "product_a_sku"); err != nil {
		return nil, err
	}
	if rec.ProductBSKU, err = skuField(rec, m, "product_b_sku"); err != nil {
		return nil, err
	}

	typeName, ok := m["recommendation_type"].(string)
	if !ok {
		return nil, NewDataValidationError("recommendation_type",
			fmt.Sprintf("Invalid attribute: %v", m["recommendation_type"]))
	}
	t, err := ParseRecommendationType(typeName)
	if err != nil {
		return nil, err
	}
	rec.RecommendationType = t

	if raw, present := m["likes"]; present {
		likes, err := integerField(raw)
		if err != nil {
			return nil, err
		}
		rec.Likes = likes
	}
	if err := validateLikes(rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// DecodeJSON decodes a request body and deserializes it.
// Numbers are kept as json.Number so that 3 and 3.5 stay distinguishable.
func DecodeJSON(body []byte) (*Recommendation, error) {
	// Unmarshal rejects anything after the top-level value; the decoder
	// alone stops at the first value.
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, badBody(err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, badBody(err)
	}
	return Deserialize(data)
}

func badBody(err error) *DataValidationError {
	return &DataValidationError{
		Message: "Invalid Recommendation: body of request contained bad or no data",
		Err:     err,
	}
}

// Validate re-checks the field contract on an already built record.
// Stores call this before writing.
func (r *Recommendation) Validate() error {
	return firstViolation(r, "product_a_sku", "product_b_sku", "recommendation_type", "likes")
}

// skuField type-checks one SKU and then its length, so product_a_sku is
// fully checked before product_b_sku.
func skuField(rec *Recommendation, m map[string]any, key string) (string, error) {
	s, err := stringField(m, key)
	if err != nil {
		return "", err
	}
	candidate := *rec
	if key == "product_a_sku" {
		candidate.ProductASKU = s
	} else {
		candidate.ProductBSKU = s
	}
	if err := firstViolation(&candidate, key); err != nil {
		return "", err
	}
	return s, nil
}

func stringField(m map[string]any, key string) (string, error) {
	s, ok := m[key].(string)
	if !ok {
		return "", NewDataValidationError(key, "Invalid type for string ["+key+"]")
	}
	return s, nil
}

func integerField(raw any) (int64, error) {
	invalid := NewDataValidationError("likes", "Invalid type for integer [likes]")

	switch v := raw.(type) {
	case json.Number:
		n, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return 0, invalid
		}
		return n, nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || v >= math.MaxInt64 || v < math.MinInt64 {
			return 0, invalid
		}
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, invalid
	}
}

func validateLikes(r *Recommendation) error {
	return firstViolation(r, "likes")
}

// firstViolation validates r and reports the first failure among fields as
// a *DataValidationError. Failures on other fields are ignored.
func firstViolation(r *Recommendation, fields ...string) error {
	fe := validation.Struct(r).Only(fields...)
	if fe == nil {
		return nil
	}

	msg := "Invalid Recommendation: " + fe.Message
	switch {
	case fe.Field == "recommendation_type":
		msg = "Invalid attribute: " + string(r.RecommendationType)
	case fe.Tag == "min":
		msg = "Invalid Recommendation: empty value at column: " + fe.Field
	case fe.Tag == "max":
		msg = "Invalid Recommendation: exceeded maximum character limit at column: " + fe.Field
	}
	return &DataValidationError{Field: fe.Field, Message: msg, Err: fe}
}

// AsDataValidationError extracts a *DataValidationError from err.
func AsDataValidationError(err error) (*DataValidationError, bool) {
	var dve *DataValidationError
	if errors.As(err, &dve) {
		return dve, true
	}
	return nil, false
}
