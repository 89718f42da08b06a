// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/challengerec/internal/logging"
	"github.com/tomtom215/challengerec/internal/models"
	"github.com/tomtom215/challengerec/internal/recommend"
	"github.com/tomtom215/challengerec/internal/validation"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 * 1024

// sanitizeLogValue escapes control characters so client input cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// writeJSON marshals v with go-json and writes it with status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondJSON writes an APIResponse envelope.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	writeJSON(w, status, response)
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}, start time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			RequestID:   logging.RequestIDFromContext(r.Context()),
		},
	})
}

// respondError writes an error envelope and logs err when it is non-nil.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	respondErrorDetails(w, status, &models.APIError{Code: code, Message: message}, err)
}

func respondErrorDetails(w http.ResponseWriter, status int, apiErr *models.APIError, err error) {
	if err != nil {
		logging.Error().
			Str("code", sanitizeLogValue(apiErr.Code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API Error")
	}
	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    apiErr,
	})
}

// respondEngineError maps an engine failure to its HTTP status and code.
func respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrUpstreamFetch):
		respondError(w, http.StatusBadGateway, models.CodeUpstream, "Challenge service unavailable", err)
	case errors.Is(err, recommend.ErrPersistence):
		respondError(w, http.StatusInternalServerError, models.CodeDatabase, "Storage failure", err)
	case errors.Is(err, recommend.ErrRefreshInProgress):
		respondError(w, http.StatusConflict, models.CodeRefreshInProgress, "A refresh is already running", nil)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, models.CodeTimeout, "Request timed out", err)
	default:
		respondError(w, http.StatusInternalServerError, models.CodeInternal, "Internal error", err)
	}
}

// validateRequest returns nil when v passes its validate tags.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}
	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// intParam parses an optional integer query parameter. A present but
// non-numeric value is an error rather than a silent default.
func intParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

// decodeJSONBody decodes a bounded JSON body into dst, rejecting unknown
// trailing data.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON body: trailing data")
	}
	return nil
}
