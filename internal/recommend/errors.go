// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package recommend

import "errors"

var (
	// ErrUpstreamFetch means the challenge service could not be reached or
	// answered with a non-success status. Callers never substitute stale data.
	ErrUpstreamFetch = errors.New("upstream fetch failed")

	// ErrPersistence means a store transaction failed and was rolled back.
	ErrPersistence = errors.New("persistence failed")

	// ErrCacheUnavailable wraps cache backend failures. The engine treats it
	// as a miss on read and ignores it on write.
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrRefreshInProgress is returned when a refresh is requested while
	// another one is still running.
	ErrRefreshInProgress = errors.New("refresh already in progress")
)
