// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector reclaims space from a log-structured store.
// Satisfied by *cache.BadgerStore.
type GarbageCollector interface {
	RunGC(discardRatio float64) (int, error)
}

const (
	defaultGCInterval     = 10 * time.Minute
	defaultGCDiscardRatio = 0.5
)

// CacheGCService periodically runs value log GC on the badger cache.
// Expired recommendation lists otherwise keep their disk space.
type CacheGCService struct {
	gc           GarbageCollector
	interval     time.Duration
	discardRatio float64
	logger       zerolog.Logger
}

// NewCacheGCService creates the GC loop; zero interval uses ten minutes.
//
//nolint:gocritic // zerolog loggers are passed by value
func NewCacheGCService(gc GarbageCollector, interval time.Duration, logger zerolog.Logger) *CacheGCService {
	if interval <= 0 {
		interval = defaultGCInterval
	}
	return &CacheGCService{
		gc:           gc,
		interval:     interval,
		discardRatio: defaultGCDiscardRatio,
		logger:       logger.With().Str("service", "cache-gc").Logger(),
	}
}

// Serve implements suture.Service. GC errors are logged, never returned,
// so a bad cycle does not count as a crash.
func (s *CacheGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n, err := s.gc.RunGC(s.discardRatio)
			if err != nil {
				s.logger.Warn().Err(err).Msg("cache gc failed")
				continue
			}
			if n > 0 {
				s.logger.Debug().Int("rewritten", n).Msg("cache gc reclaimed value log files")
			}
		}
	}
}

func (s *CacheGCService) String() string {
	return "cache-gc"
}
