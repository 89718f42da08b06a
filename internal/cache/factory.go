// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/challengerec/internal/config"
)

// Backend names accepted in CacheConfig.Backend.
const (
	BackendRedis  = "redis"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// NewStore builds the backend selected by cfg.
func NewStore(ctx context.Context, cfg *config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case BackendRedis:
		return NewRedisStore(ctx, cfg.RedisAddr(), cfg.RedisDB)
	case BackendBadger:
		return OpenBadgerStore(cfg.BadgerPath)
	case BackendMemory:
		return NewMemoryStore(5 * time.Minute), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
