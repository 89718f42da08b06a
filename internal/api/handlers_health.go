// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/challengerec/internal/models"
)

// Root handles GET / with the service banner.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.RootMessage{Message: h.title + " is running!"})
}

// HealthLive reports that the process is up, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Now())
}

// HealthReady returns 200 once a similarity graph exists and 503 before.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	health := h.healthStatus()
	if !health.Ready {
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   "error",
			Data:     health,
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error: &models.APIError{
				Code:    models.CodeNotReady,
				Message: "No similarity graph has been built yet",
			},
		})
		return
	}
	respondSuccess(w, r, http.StatusOK, health, time.Now())
}

func (h *Handler) healthStatus() models.HealthStatus {
	st := h.engine.Status()
	health := models.HealthStatus{
		Status:       "healthy",
		Ready:        h.engine.Ready(),
		GraphVersion: st.GraphVersion,
		Refreshing:   st.Refreshing,
		LastError:    st.LastError,
		Uptime:       time.Since(h.startTime).Seconds(),
	}
	if !st.LastRefreshAt.IsZero() {
		t := st.LastRefreshAt
		health.LastRefreshAt = &t
	}
	switch {
	case !health.Ready:
		health.Status = "starting"
	case st.LastError != "":
		health.Status = "degraded"
	}
	return health
}
