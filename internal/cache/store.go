// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

// Package cache stores each user's full ranked recommendation list behind a
// fixed TTL.
//
// Three byte-level backends implement Store:
//
//   - RedisStore: shared cache for multi-instance deployments (default)
//   - BadgerStore: embedded on-disk cache for single-node deployments
//   - MemoryStore: process-local map, used in development and tests
//
// ListCache layers the versioned list codec, key naming and metrics on top of
// any Store.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store.Get for missing or expired keys.
var ErrNotFound = errors.New("cache: key not found")

// Store is a byte-level key/value store with per-entry expiry.
type Store interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// Get returns ErrNotFound when key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites key. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Close() error
}
