// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/challengerec/internal/metrics"
	"github.com/tomtom215/challengerec/internal/recommend"
)

// KeyPrefix namespaces cached lists. The v1 segment tracks the list codec
// version so a format change never reads old entries.
const KeyPrefix = "challengerec:recs:v1:"

// DefaultTTL is how long a computed list is served before recomputation.
const DefaultTTL = 6 * time.Hour

// ListCache stores full ranked lists keyed by user id.
type ListCache struct {
	store  Store
	ttl    time.Duration
	logger zerolog.Logger
}

// NewListCache wraps store. ttl <= 0 uses DefaultTTL.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewListCache(store Store, ttl time.Duration, logger zerolog.Logger) *ListCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ListCache{
		store:  store,
		ttl:    ttl,
		logger: logger.With().Str("component", "cache").Str("backend", store.Name()).Logger(),
	}
}

// Key returns the store key for userID.
func Key(userID string) string {
	return KeyPrefix + userID
}

// Get returns the cached list. Backend failures are wrapped in
// recommend.ErrCacheUnavailable. An entry that cannot be decoded is reported
// as a miss so the caller recomputes and overwrites it.
func (c *ListCache) Get(ctx context.Context, userID string) ([]int64, bool, error) {
	backend := c.store.Name()

	raw, err := c.store.Get(ctx, Key(userID))
	if errors.Is(err, ErrNotFound) {
		metrics.RecordCacheLookup(backend, false)
		return nil, false, nil
	}
	if err != nil {
		metrics.RecordCacheError(backend, "get")
		return nil, false, fmt.Errorf("%w: %w", recommend.ErrCacheUnavailable, err)
	}

	ids, err := DecodeList(raw)
	if err != nil {
		metrics.RecordCacheError(backend, "decode")
		metrics.RecordCacheLookup(backend, false)
		c.logger.Debug().Err(err).Str("user_id", userID).Msg("discarding undecodable cache entry")
		return nil, false, nil
	}

	metrics.RecordCacheLookup(backend, true)
	return ids, true, nil
}

// Set overwrites the user's list with the configured TTL.
func (c *ListCache) Set(ctx context.Context, userID string, ids []int64) error {
	if err := c.store.Set(ctx, Key(userID), EncodeList(ids), c.ttl); err != nil {
		metrics.RecordCacheError(c.store.Name(), "set")
		return fmt.Errorf("%w: %w", recommend.ErrCacheUnavailable, err)
	}
	return nil
}

// TTL returns the expiry applied to every entry.
func (c *ListCache) TTL() time.Duration {
	return c.ttl
}

var _ recommend.ListCache = (*ListCache)(nil)
