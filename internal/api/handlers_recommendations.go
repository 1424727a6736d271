// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/recommendations/internal/logging"
	"github.com/tomtom215/recommendations/internal/metrics"
	"github.com/tomtom215/recommendations/internal/models"
)

// RecommendationDoc documents the record shape for swag. Handlers serialize
// with models.Recommendation.Serialize.
type RecommendationDoc struct {
	ID                 int64  `json:"id" example:"1"`
	ProductASKU        string `json:"product_a_sku" example:"AA0001" maxLength:"10" minLength:"1"`
	ProductBSKU        string `json:"product_b_sku" example:"AA0002" maxLength:"10" minLength:"1"`
	RecommendationType string `json:"recommendation_type" example:"CROSS_SELL" enums:"UP_SELL,CROSS_SELL,ACCESSORY,BUNDLE"`
	Likes              int64  `json:"likes" example:"0" minimum:"0"`
}

// respondIDError writes a store error for a request addressing one record.
// Not found includes the identifier in the message.
func respondIDError(w http.ResponseWriter, r *http.Request, id int64, err error) {
	if errors.Is(err, models.ErrNotFound) {
		respondError(w, r, http.StatusNotFound, fmt.Sprintf("Recommendation with id '%d' was not found.", id))
		return
	}
	respondStoreError(w, r, err)
}

// decodeRecommendation reads and deserializes the request body.
func decodeRecommendation(w http.ResponseWriter, r *http.Request) (*models.Recommendation, bool) {
	body, err := readBody(w, r)
	if err != nil {
		if errors.Is(err, errBodyTooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		respondError(w, r, http.StatusBadRequest, "Invalid Recommendation: body of request contained bad or no data")
		return nil, false
	}

	rec, err := models.DecodeJSON(body)
	if err != nil {
		respondStoreError(w, r, err)
		return nil, false
	}
	return rec, true
}

// ListRecommendations returns all recommendations matching the query filters.
//
// @Summary List recommendations
// @Description Returns every recommendation, optionally filtered. Filters combine with AND. recommendation_type is matched case-insensitively.
// @Tags Recommendations
// @Produce json
// @Param product_a_sku query string false "Exact source product SKU"
// @Param product_b_sku query string false "Exact target product SKU"
// @Param recommendation_type query string false "UP_SELL, CROSS_SELL, ACCESSORY or BUNDLE"
// @Success 200 {array} RecommendationDoc
// @Failure 400 {object} ErrorResponse "Unknown recommendation_type"
// @Router /recommendations [get]
func (h *Handler) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	filter, err := models.FilterFromQuery(r.URL.Query())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Bool("filtered", !filter.IsEmpty()).Msg("Request to list recommendations")

	recs, err := h.store.FindFiltered(r.Context(), filter)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.SerializeAll(recs))
}

// CreateRecommendation stores a new recommendation.
//
// @Summary Create a recommendation
// @Description Creates a recommendation. Any id in the body is ignored. A second record with the same (product_a_sku, product_b_sku, recommendation_type) is rejected with 409.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param recommendation body RecommendationDoc true "Recommendation to create"
// @Success 201 {object} RecommendationDoc
// @Header 201 {string} Location "URL of the new recommendation"
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 415 {object} ErrorResponse
// @Router /recommendations [post]
func (h *Handler) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	rec, ok := decodeRecommendation(w, r)
	if !ok {
		return
	}

	created, err := h.store.Insert(r.Context(), rec)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	metrics.RecordRecommendationCreated(created.RecommendationType.String())
	logging.Ctx(r.Context()).Info().Int64("id", created.IDValue()).Msg("Recommendation created")

	location := strings.TrimSuffix(r.URL.Path, "/") + "/" + strconv.FormatInt(created.IDValue(), 10)
	w.Header().Set("Location", location)
	respondJSON(w, http.StatusCreated, created.Serialize())
}

// GetRecommendation returns one recommendation.
//
// @Summary Get a recommendation
// @Tags Recommendations
// @Produce json
// @Param id path int true "Recommendation ID"
// @Success 200 {object} RecommendationDoc
// @Failure 404 {object} ErrorResponse
// @Router /recommendations/{id} [get]
func (h *Handler) GetRecommendation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, r, http.StatusNotFound, "Recommendation was not found.")
		return
	}

	rec, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		respondIDError(w, r, id, err)
		return
	}

	respondJSON(w, http.StatusOK, rec.Serialize())
}

// UpdateRecommendation replaces the fields of an existing recommendation.
//
// @Summary Update a recommendation
// @Description Replaces every field of the recommendation. likes defaults to 0 when omitted. Any id in the body is ignored.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param id path int true "Recommendation ID"
// @Param recommendation body RecommendationDoc true "New field values"
// @Success 200 {object} RecommendationDoc
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 415 {object} ErrorResponse
// @Router /recommendations/{id} [put]
func (h *Handler) UpdateRecommendation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, r, http.StatusNotFound, "Recommendation was not found.")
		return
	}

	if _, err := h.store.FindByID(r.Context(), id); err != nil {
		respondIDError(w, r, id, err)
		return
	}

	rec, ok := decodeRecommendation(w, r)
	if !ok {
		return
	}
	rec.SetID(id)

	updated, err := h.store.Update(r.Context(), rec)
	if err != nil {
		respondIDError(w, r, id, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("id", id).Msg("Recommendation updated")
	respondJSON(w, http.StatusOK, updated.Serialize())
}

// DeleteRecommendation removes a recommendation. Deleting a missing record succeeds.
//
// @Summary Delete a recommendation
// @Tags Recommendations
// @Param id path int true "Recommendation ID"
// @Success 204 "Deleted, or never existed"
// @Router /recommendations/{id} [delete]
func (h *Handler) DeleteRecommendation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("id", id).Msg("Recommendation deleted")
	w.WriteHeader(http.StatusNoContent)
}

// LikeRecommendation increments the likes counter.
//
// @Summary Like a recommendation
// @Tags Recommendations
// @Produce json
// @Param id path int true "Recommendation ID"
// @Success 200 {object} RecommendationDoc
// @Failure 404 {object} ErrorResponse
// @Router /recommendations/{id}/like [put]
func (h *Handler) LikeRecommendation(w http.ResponseWriter, r *http.Request) {
	h.changeLikes(w, r, true)
}

// UnlikeRecommendation decrements the likes counter. The counter never goes below zero.
//
// @Summary Unlike a recommendation
// @Tags Recommendations
// @Produce json
// @Param id path int true "Recommendation ID"
// @Success 200 {object} RecommendationDoc
// @Failure 400 {object} ErrorResponse "likes is already 0"
// @Failure 404 {object} ErrorResponse
// @Router /recommendations/{id}/like [delete]
func (h *Handler) UnlikeRecommendation(w http.ResponseWriter, r *http.Request) {
	h.changeLikes(w, r, false)
}

func (h *Handler) changeLikes(w http.ResponseWriter, r *http.Request, up bool) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, r, http.StatusNotFound, "Recommendation was not found.")
		return
	}

	var (
		rec *models.Recommendation
		err error
	)
	if up {
		rec, err = h.store.IncrementLikes(r.Context(), id)
	} else {
		rec, err = h.store.DecrementLikes(r.Context(), id)
	}
	if err != nil {
		respondIDError(w, r, id, err)
		return
	}

	metrics.RecordLike(up)
	respondJSON(w, http.StatusOK, rec.Serialize())
}
