// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package api

import (
	"context"
	"time"

	"github.com/tomtom215/challengerec/internal/config"
	"github.com/tomtom215/challengerec/internal/recommend"
)

// Recommender is the engine surface the handlers use.
type Recommender interface {
	Recommend(ctx context.Context, userID string, page, size int) (*recommend.Page, error)
	RefreshAsync(ctx context.Context) error
	Status() recommend.Status
	Ready() bool
	Counters() (requests, hits, misses, errs int64)
	StoreCounts(ctx context.Context) (actions, edges int64, err error)
}

var _ Recommender = (*recommend.Engine)(nil)

// Handler holds dependencies shared by every endpoint.
type Handler struct {
	engine          Recommender
	title           string
	description     string
	defaultPageSize int
	startTime       time.Time
}

// NewHandler builds handlers over engine.
func NewHandler(engine Recommender, cfg *config.Config) *Handler {
	size := cfg.Recommend.DefaultPageSize
	if size <= 0 {
		size = 10
	}
	return &Handler{
		engine:          engine,
		title:           cfg.Server.Title,
		description:     cfg.Server.Description,
		defaultPageSize: size,
		startTime:       time.Now(),
	}
}
