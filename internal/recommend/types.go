// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package recommend

import (
	"strings"
	"time"
)

// Category is one of the fixed behavior categories a challenge belongs to.
type Category string

const (
	CategoryTravel   Category = "TRAVEL"
	CategoryDigital  Category = "DIGITAL"
	CategoryFashion  Category = "FASHION"
	CategoryToys     Category = "TOYS"
	CategoryInterior Category = "INTERIOR"
	CategoryEtc      Category = "ETC"
)

// NumCategories is the dimensionality of a CategoryVector.
const NumCategories = 6

// Categories lists every category in axis order. The order must never change:
// vectors built with different orders are not comparable.
var Categories = [NumCategories]Category{
	CategoryTravel,
	CategoryDigital,
	CategoryFashion,
	CategoryToys,
	CategoryInterior,
	CategoryEtc,
}

// ParseCategory matches s case-insensitively against the known categories.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.Axis() >= 0
}

// Axis returns the vector index for c, or -1 if c is not a known category.
func (c Category) Axis() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return -1
}

// UserAction is one row of the upstream action log: a user started a challenge.
type UserAction struct {
	UserID      string    `json:"user_id"`
	ChallengeID int64     `json:"challenge_id"`
	Category    Category  `json:"category"`
	StartedAt   time.Time `json:"started_at"`
}

// CategoryVector counts a user's actions per category, indexed by Category.Axis.
type CategoryVector [NumCategories]int

// IsZero reports whether the user has no counted actions.
func (v CategoryVector) IsZero() bool {
	for _, n := range v {
		if n != 0 {
			return false
		}
	}
	return true
}

// SimilarityEdge is a directed, scored relation between two users.
// Score is in (0, 1]; UserA != UserB.
type SimilarityEdge struct {
	UserA string  `json:"user_a"`
	UserB string  `json:"user_b"`
	Score float64 `json:"score"`
}

// Page is one window of a user's ranked recommendation list.
type Page struct {
	UserID  string  `json:"user_id"`
	Page    int     `json:"page"`
	Size    int     `json:"size"`
	RoomIDs []int64 `json:"room_ids"`

	// Total is the length of the full merged list the page was cut from.
	Total int `json:"total"`

	// Cached is true when the full list came from the cache.
	Cached bool `json:"cached"`
}

// RefreshResult summarizes one completed refresh cycle.
type RefreshResult struct {
	Actions      int           `json:"actions"`
	Users        int           `json:"users"`
	Edges        int           `json:"edges"`
	GraphVersion int64         `json:"graph_version"`
	Duration     time.Duration `json:"duration"`
}

// Status is a point-in-time view of the engine's refresh state.
type Status struct {
	GraphVersion  int64     `json:"graph_version"`
	Refreshing    bool      `json:"refreshing"`
	LastRefreshAt time.Time `json:"last_refresh_at,omitempty"`
	LastError     string    `json:"last_error,omitempty"`
	Users         int       `json:"users"`
	Edges         int       `json:"edges"`
}
