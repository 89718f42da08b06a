// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package models

// Pagination defaults for recommendation requests. Size has no upper bound.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// RecommendationsRequest is the body of POST /recommendations. Page and Size
// are pointers so an omitted field can be told apart from an explicit 0:
// omitted fields take their defaults, explicit values are validated as sent.
type RecommendationsRequest struct {
	UserEmail string `json:"user_email" validate:"required,userid"`
	Page      *int   `json:"page" validate:"required,gte=1"`
	Size      *int   `json:"size" validate:"required,gte=1"`
}

// ApplyDefaults fills omitted pagination fields.
func (r *RecommendationsRequest) ApplyDefaults(defaultSize int) {
	if r.Page == nil {
		page := DefaultPage
		r.Page = &page
	}
	if r.Size == nil {
		r.Size = &defaultSize
	}
}

// PageNum returns the requested page, or 0 if unset.
func (r *RecommendationsRequest) PageNum() int {
	if r.Page == nil {
		return 0
	}
	return *r.Page
}

// PageSize returns the requested page size, or 0 if unset.
func (r *RecommendationsRequest) PageSize() int {
	if r.Size == nil {
		return 0
	}
	return *r.Size
}

// RecommendationsResponse is the bare response of POST /recommendations.
type RecommendationsResponse struct {
	RoomIDs []int64 `json:"roomIds"`
}

// RecommendationPage is the data payload of
// GET /api/v1/recommendations/{userID}.
type RecommendationPage struct {
	UserID  string  `json:"user_id"`
	Page    int     `json:"page"`
	Size    int     `json:"size"`
	Total   int     `json:"total"`
	RoomIDs []int64 `json:"room_ids"`
}

// RefreshAccepted is returned by POST /api/v1/admin/refresh.
type RefreshAccepted struct {
	Accepted     bool  `json:"accepted"`
	GraphVersion int64 `json:"graph_version"`
}
