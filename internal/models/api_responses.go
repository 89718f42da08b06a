// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package models

import "time"

// APIResponse is the envelope for /api/v1 endpoints.
//
//	{
//	  "status": "success",
//	  "data": {...},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 4}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is a machine-readable failure.
//
// Codes:
//   - VALIDATION_ERROR (400)
//   - NOT_READY (503)
//   - REFRESH_IN_PROGRESS (409)
//   - UPSTREAM_ERROR (502)
//   - DATABASE_ERROR (500)
//   - INTERNAL_ERROR (500)
//   - TIMEOUT (504)
//   - RATE_LIMIT_EXCEEDED (429)
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes used in APIError.Code.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotReady          = "NOT_READY"
	CodeRefreshInProgress = "REFRESH_IN_PROGRESS"
	CodeUpstream          = "UPSTREAM_ERROR"
	CodeDatabase          = "DATABASE_ERROR"
	CodeInternal          = "INTERNAL_ERROR"
	CodeTimeout           = "TIMEOUT"
	CodeRateLimited       = "RATE_LIMIT_EXCEEDED"
)

// RootMessage is returned by GET /.
type RootMessage struct {
	Message string `json:"message"`
}

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status        string     `json:"status"`
	Ready         bool       `json:"ready"`
	GraphVersion  int64      `json:"graph_version"`
	Refreshing    bool       `json:"refreshing"`
	LastRefreshAt *time.Time `json:"last_refresh_at,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
	Uptime        float64    `json:"uptime_seconds"`
}
