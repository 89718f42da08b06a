// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/challengerec/internal/logging"
	"github.com/tomtom215/challengerec/internal/models"
)

// AdminRefresh starts a background refresh. The refresh outlives the request
// but keeps its request and correlation IDs for logging.
func (h *Handler) AdminRefresh(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := h.engine.RefreshAsync(context.WithoutCancel(r.Context())); err != nil {
		respondEngineError(w, err)
		return
	}

	logging.Ctx(r.Context()).Info().Msg("manual refresh started")
	respondSuccess(w, r, http.StatusAccepted, models.RefreshAccepted{
		Accepted:     true,
		GraphVersion: h.engine.Status().GraphVersion,
	}, start)
}

// AdminStatus reports refresh state, request counters and store totals.
func (h *Handler) AdminStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	actions, edges, err := h.engine.StoreCounts(r.Context())
	if err != nil {
		respondEngineError(w, err)
		return
	}

	requests, hits, misses, errs := h.engine.Counters()
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"status":         h.engine.Status(),
		"requests":       requests,
		"cache_hits":     hits,
		"cache_misses":   misses,
		"errors":         errs,
		"stored_actions": actions,
		"active_edges":   edges,
		"description":    h.description,
	}, start)
}
