// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

// Package validation validates request structs with go-playground/validator
// and converts failures to the VALIDATION_ERROR API shape.
//
// Field names in messages come from the json tag, so clients see the names
// they sent:
//
//	type RecommendationsRequest struct {
//	    UserEmail string `json:"user_email" validate:"required,userid"`
//	    Size      *int   `json:"size" validate:"required,gte=1"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    apiErr := err.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// Custom tags:
//   - userid: a non-blank identifier of at most 320 bytes with no control
//     characters or surrounding whitespace.
package validation
