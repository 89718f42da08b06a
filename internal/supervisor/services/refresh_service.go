// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/challengerec/internal/recommend"
)

// Refresher runs one refresh cycle.
type Refresher interface {
	Refresh(ctx context.Context) (*recommend.RefreshResult, error)
}

// RefreshServiceConfig controls scheduling.
type RefreshServiceConfig struct {
	RefreshOnStartup bool
	Interval         time.Duration
}

// RefreshService rebuilds the similarity graph on startup and on a fixed
// interval. A failed cycle is logged and retried at the next tick; the last
// committed graph keeps serving in the meantime.
type RefreshService struct {
	engine Refresher
	config RefreshServiceConfig
	logger zerolog.Logger
	name   string
}

// NewRefreshService creates the scheduler. A non-positive interval means one
// hour.
//
//nolint:gocritic // zerolog loggers are passed by value
func NewRefreshService(engine Refresher, cfg RefreshServiceConfig, logger zerolog.Logger) *RefreshService {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return &RefreshService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "refresh").Logger(),
		name:   "refresh-service",
	}
}

// Serve implements suture.Service.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("refresh_on_startup", s.config.RefreshOnStartup).
		Dur("interval", s.config.Interval).
		Msg("refresh service starting")

	if s.config.RefreshOnStartup {
		s.runOnce(ctx, "startup")
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("refresh service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx, "scheduled")
		}
	}
}

func (s *RefreshService) runOnce(ctx context.Context, trigger string) {
	result, err := s.engine.Refresh(ctx)
	switch {
	case errors.Is(err, recommend.ErrRefreshInProgress):
		s.logger.Info().Str("trigger", trigger).Msg("refresh already running, skipping")
	case err != nil:
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn().Err(err).Str("trigger", trigger).Msg("refresh failed, keeping previous graph")
	default:
		s.logger.Debug().
			Str("trigger", trigger).
			Int64("graph_version", result.GraphVersion).
			Dur("duration", result.Duration).
			Msg("refresh finished")
	}
}

// String implements fmt.Stringer for suture logging.
func (s *RefreshService) String() string {
	return s.name
}
