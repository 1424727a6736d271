// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/recommendations/internal/database"
	"github.com/tomtom215/recommendations/internal/logging"
	"github.com/tomtom215/recommendations/internal/models"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status  int    `json:"status" example:"404"`
	Error   string `json:"error" example:"Not Found"`
	Message string `json:"message" example:"Recommendation with id '7' was not found."`
}

// reasons overrides http.StatusText where clients expect a different phrase.
var reasons = map[int]string{
	http.StatusMethodNotAllowed:     "Method not Allowed",
	http.StatusUnsupportedMediaType: "Unsupported media type",
}

// reasonPhrase returns the error field value for a status code.
func reasonPhrase(status int) string {
	if reason, ok := reasons[status]; ok {
		return reason
	}
	return http.StatusText(status)
}

// writeJSON encodes v with goccy/go-json and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondJSON writes a success body.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	writeJSON(w, status, v)
}

// respondError logs the failure at a level matching its class and writes an
// ErrorResponse. 4xx is logged at warn, 5xx at error.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logger := logging.Ctx(r.Context())
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Int("status", status).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg(message)

	writeJSON(w, status, ErrorResponse{
		Status:  status,
		Error:   reasonPhrase(status),
		Message: message,
	})
}

// errorStatus maps a store or model error onto an HTTP status and the
// message returned to the client. Driver details never reach the client.
func errorStatus(err error) (int, string) {
	var dve *models.DataValidationError
	var conflict *models.ConflictError

	switch {
	case errors.As(err, &dve):
		return http.StatusBadRequest, dve.Message
	case errors.As(err, &conflict):
		return http.StatusConflict, conflict.Error()
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "Recommendation was not found."
	case errors.Is(err, models.ErrPrimaryKeyNotSet):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, database.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "Recommendation store is temporarily unavailable"
	default:
		return http.StatusInternalServerError, "An internal error occurred"
	}
}

// respondStoreError writes the response for an error returned by the store.
// Infrastructure errors are logged with their cause before being hidden.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Store operation failed")
	}
	var conflict *models.ConflictError
	if errors.As(err, &conflict) {
		logging.Ctx(r.Context()).Warn().Str("detail", conflict.Detail()).Msg("Duplicate recommendation rejected")
	}
	respondError(w, r, status, message)
}
