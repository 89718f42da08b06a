// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/challengerec/internal/logging"
	"github.com/tomtom215/challengerec/internal/metrics"
)

// BehaviorStore owns the raw action log.
type BehaviorStore interface {
	// ReplaceActions swaps the whole action log for actions in one
	// transaction and returns the number of rows stored.
	ReplaceActions(ctx context.Context, actions []UserAction) (int, error)
}

// Store is everything the engine needs from persistence.
type Store interface {
	BehaviorStore
	GraphStore
	NeighborStore

	// CurrentGraphVersion returns the active graph version, 0 if none.
	CurrentGraphVersion(ctx context.Context) (int64, error)

	// ActionCount and EdgeCount size the stored action log and the active
	// graph.
	ActionCount(ctx context.Context) (int64, error)
	EdgeCount(ctx context.Context) (int64, error)
}

// Upstream is the challenge service owning the action log and the catalog.
type Upstream interface {
	FetchActions(ctx context.Context) ([]UserAction, error)
	FetchCatalog(ctx context.Context) ([]int64, error)
}

// ListCache stores each user's full merged ranking.
type ListCache interface {
	Get(ctx context.Context, userID string) ([]int64, bool, error)
	Set(ctx context.Context, userID string, ids []int64) error
}

// Engine serves paginated recommendations and runs refresh cycles.
// It is safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	store    Store
	upstream Upstream
	cache    ListCache

	aggregator *CandidateAggregator
	similarity *SimilarityEngine

	// refreshMu serializes refresh cycles; requests never take it.
	refreshMu sync.Mutex

	statusMu sync.RWMutex
	status   Status

	refreshing   atomic.Bool
	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64
}

// NewEngine wires an engine. cache may be nil, which disables caching.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, store Store, upstream Upstream, cache ListCache, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil || upstream == nil {
		return nil, errors.New("store and upstream are required")
	}

	return &Engine{
		config:     cfg,
		logger:     logger.With().Str("component", "recommend").Logger(),
		store:      store,
		upstream:   upstream,
		cache:      cache,
		aggregator: NewCandidateAggregator(store, cfg.Neighbors),
		similarity: NewSimilarityEngine(store, cfg.Workers, logger),
	}, nil
}

// LoadState picks up a graph left by a previous process so the engine is
// ready before its first refresh.
func (e *Engine) LoadState(ctx context.Context) error {
	version, err := e.store.CurrentGraphVersion(ctx)
	if err != nil {
		return fmt.Errorf("load graph version: %w", err)
	}
	e.statusMu.Lock()
	e.status.GraphVersion = version
	e.statusMu.Unlock()
	metrics.GraphVersion.Set(float64(version))
	return nil
}

// Recommend returns one page of the user's ranked list. The full list is
// cached per user and re-paginated on every call.
func (e *Engine) Recommend(ctx context.Context, userID string, page, size int) (*Page, error) {
	e.requestCount.Add(1)

	if ids, ok := e.cachedList(ctx, userID); ok {
		e.cacheHits.Add(1)
		metrics.RecommendRequests.WithLabelValues("cache").Inc()
		return &Page{
			UserID:  userID,
			Page:    page,
			Size:    size,
			RoomIDs: Paginate(ids, page, size),
			Total:   len(ids),
			Cached:  true,
		}, nil
	}
	e.cacheMisses.Add(1)

	ids, err := e.computeList(ctx, userID)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecommendRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.RecommendRequests.WithLabelValues("computed").Inc()

	e.storeList(ctx, userID, ids)

	return &Page{
		UserID:  userID,
		Page:    page,
		Size:    size,
		RoomIDs: Paginate(ids, page, size),
		Total:   len(ids),
	}, nil
}

func (e *Engine) cachedList(ctx context.Context, userID string) ([]int64, bool) {
	if e.cache == nil {
		return nil, false
	}
	ids, ok, err := e.cache.Get(ctx, userID)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("cache read failed, computing")
		return nil, false
	}
	return ids, ok
}

func (e *Engine) storeList(ctx context.Context, userID string, ids []int64) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Set(ctx, userID, ids); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("cache write failed")
	}
}

// computeList fetches the catalog while ranking neighbor candidates, then
// merges the two. A catalog failure fails the whole computation.
func (e *Engine) computeList(ctx context.Context, userID string) ([]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, e.config.RequestTimeout)
	defer cancel()

	var candidates, catalog []int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candidates, err = e.aggregator.Candidates(gctx, userID)
		if err != nil {
			return fmt.Errorf("get candidates: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		catalog, err = e.upstream.FetchCatalog(gctx)
		if err != nil {
			return fmt.Errorf("fetch catalog: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Str("user_id", userID).
		Int("candidates", len(candidates)).
		Int("catalog", len(catalog)).
		Msg("recommendation list computed")

	return MergeWithCatalog(candidates, catalog), nil
}

// Refresh fetches the action log, replaces the behavior store and recomputes
// the similarity graph. Concurrent calls return ErrRefreshInProgress.
func (e *Engine) Refresh(ctx context.Context) (*RefreshResult, error) {
	if !e.refreshMu.TryLock() {
		return nil, ErrRefreshInProgress
	}
	defer e.refreshMu.Unlock()
	return e.runRefresh(ctx)
}

// RefreshAsync starts a refresh in the background and returns immediately.
// It returns ErrRefreshInProgress, without starting anything, when a refresh
// is already running. Failures are logged and recorded in Status.
func (e *Engine) RefreshAsync(ctx context.Context) error {
	if !e.refreshMu.TryLock() {
		return ErrRefreshInProgress
	}
	e.refreshing.Store(true)

	go func() {
		defer e.refreshMu.Unlock()
		if _, err := e.runRefresh(ctx); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("background refresh failed")
		}
	}()
	return nil
}

// runRefresh does one cycle. The caller holds refreshMu.
func (e *Engine) runRefresh(ctx context.Context) (*RefreshResult, error) {
	e.refreshing.Store(true)
	defer e.refreshing.Store(false)

	ctx, cancel := context.WithTimeout(logging.ContextWithNewCorrelationID(ctx), e.config.RefreshTimeout)
	defer cancel()

	start := time.Now()
	result, err := e.refresh(ctx)
	elapsed := time.Since(start)

	if err != nil {
		metrics.RecordRefresh("error", elapsed)
		e.statusMu.Lock()
		e.status.LastError = err.Error()
		e.statusMu.Unlock()
		return nil, err
	}

	result.Duration = elapsed
	metrics.RecordRefresh("success", elapsed)
	metrics.GraphUsers.Set(float64(result.Users))
	metrics.GraphEdges.Set(float64(result.Edges))
	metrics.GraphVersion.Set(float64(result.GraphVersion))

	e.statusMu.Lock()
	e.status.GraphVersion = result.GraphVersion
	e.status.LastRefreshAt = time.Now()
	e.status.LastError = ""
	e.status.Users = result.Users
	e.status.Edges = result.Edges
	e.statusMu.Unlock()

	logging.Ctx(ctx).Info().
		Int("actions", result.Actions).
		Int("users", result.Users).
		Int("edges", result.Edges).
		Int64("graph_version", result.GraphVersion).
		Dur("duration", elapsed).
		Msg("refresh completed")

	return result, nil
}

func (e *Engine) refresh(ctx context.Context) (*RefreshResult, error) {
	actions, err := e.upstream.FetchActions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch actions: %w", err)
	}

	stored, err := e.store.ReplaceActions(ctx, actions)
	if err != nil {
		return nil, fmt.Errorf("replace actions: %w", err)
	}

	stats, err := e.similarity.Recompute(ctx)
	if err != nil {
		return nil, err
	}

	return &RefreshResult{
		Actions:      stored,
		Users:        stats.Users,
		Edges:        stats.Edges,
		GraphVersion: stats.Version,
	}, nil
}

// Status returns a snapshot of the refresh state.
func (e *Engine) Status() Status {
	e.statusMu.RLock()
	s := e.status
	e.statusMu.RUnlock()
	s.Refreshing = e.refreshing.Load()
	return s
}

// Ready reports whether a similarity graph has been built.
func (e *Engine) Ready() bool {
	return e.Status().GraphVersion > 0
}

// Counters returns request, cache hit, cache miss and error totals.
func (e *Engine) Counters() (requests, hits, misses, errs int64) {
	return e.requestCount.Load(), e.cacheHits.Load(), e.cacheMisses.Load(), e.errorCount.Load()
}

// StoreCounts reads the persisted action and active edge totals.
func (e *Engine) StoreCounts(ctx context.Context) (actions, edges int64, err error) {
	if actions, err = e.store.ActionCount(ctx); err != nil {
		return 0, 0, err
	}
	if edges, err = e.store.EdgeCount(ctx); err != nil {
		return 0, 0, err
	}
	return actions, edges, nil
}
