// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

// Package middleware holds net/http middleware shared by the API router:
// request ID propagation and Prometheus request instrumentation.
package middleware
