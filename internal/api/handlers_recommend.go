// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/challengerec/internal/logging"
	"github.com/tomtom215/challengerec/internal/models"
)

// PostRecommendations handles POST /recommendations and answers with the
// bare {"roomIds": [...]} body.
func (h *Handler) PostRecommendations(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendationsRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.CodeValidation, err.Error(), nil)
		return
	}
	req.ApplyDefaults(h.defaultPageSize)

	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	page, err := h.engine.Recommend(r.Context(), req.UserEmail, req.PageNum(), req.PageSize())
	if err != nil {
		respondEngineError(w, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("user_id", sanitizeLogValue(req.UserEmail)).
		Int("page", req.PageNum()).
		Int("size", req.PageSize()).
		Int("returned", len(page.RoomIDs)).
		Bool("cached", page.Cached).
		Msg("recommendations served")

	writeJSON(w, http.StatusOK, models.RecommendationsResponse{RoomIDs: page.RoomIDs})
}

// GetRecommendations handles GET /api/v1/recommendations/{userID}.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	pageNum, err := intParam(r, "page", models.DefaultPage)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.CodeValidation, err.Error(), nil)
		return
	}
	size, err := intParam(r, "size", h.defaultPageSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.CodeValidation, err.Error(), nil)
		return
	}

	req := models.RecommendationsRequest{
		UserEmail: chi.URLParam(r, "userID"),
		Page:      &pageNum,
		Size:      &size,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	page, err := h.engine.Recommend(r.Context(), req.UserEmail, req.PageNum(), req.PageSize())
	if err != nil {
		respondEngineError(w, err)
		return
	}

	resp := &models.APIResponse{
		Status: "success",
		Data: models.RecommendationPage{
			UserID:  page.UserID,
			Page:    page.Page,
			Size:    page.Size,
			Total:   page.Total,
			RoomIDs: page.RoomIDs,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      page.Cached,
			RequestID:   logging.RequestIDFromContext(r.Context()),
		},
	}
	respondJSON(w, http.StatusOK, resp)
}
