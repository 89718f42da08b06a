// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

// Package models defines the JSON shapes exchanged over HTTP.
//
// Two response styles coexist:
//   - POST /recommendations answers with the bare {"roomIds": [...]} body that
//     existing clients already parse.
//   - Every /api/v1 endpoint wraps its payload in APIResponse.
package models
