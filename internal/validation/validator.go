// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one failed constraint. Field is the JSON name when the
// struct carries json tags.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Errors holds every failure of one struct, in field declaration order.
// A nil Errors means the struct is valid.
type Errors []FieldError

func (es Errors) Error() string {
	if len(es) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(es))
	for i := range es {
		messages[i] = es[i].Message
	}
	return strings.Join(messages, "; ")
}

// First returns the first failure, or nil.
func (es Errors) First() *FieldError {
	if len(es) == 0 {
		return nil
	}
	return &es[0]
}

// Only returns the first failure among fields, or nil when none of them
// failed.
func (es Errors) Only(fields ...string) *FieldError {
	for i := range es {
		for _, f := range fields {
			if es[i].Field == f {
				return &es[i]
			}
		}
	}
	return nil
}

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonTagName)
	})
	return validate
}

// jsonTagName reports fields under their JSON names ("product_a_sku"
// rather than "ProductASKU").
func jsonTagName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	default:
		return name
	}
}

// RegisterEnum adds a tag that accepts exactly the given members. Matching
// is case-sensitive. The field must be string-kinded.
func RegisterEnum(tag string, members ...string) error {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	enumMembers.Store(tag, strings.Join(members, " "))

	return Validator().RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		_, ok := set[fl.Field().String()]
		return ok
	})
}

// enumMembers remembers member lists for error messages, keyed by tag.
var enumMembers sync.Map

// Struct validates s against its `validate` tags and returns nil when s is
// valid.
func Struct(s interface{}) Errors {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{{Field: "unknown", Tag: "unknown", Message: err.Error()}}
	}

	out := make(Errors, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: message(fe),
		}
	}
	return out
}

// message renders a field error for API responses.
func message(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	}
	if members, ok := enumMembers.Load(fe.Tag()); ok {
		return fmt.Sprintf("%s must be one of: %s", field, members)
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
