// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package api

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/challengerec/internal/config"
	"github.com/tomtom215/challengerec/internal/recommend"
)

// fakeRecommender serves a fixed list per user.
type fakeRecommender struct {
	mu         sync.Mutex
	lists      map[string][]int64
	err        error
	refreshErr error
	countErr   error
	ready      bool
	status     recommend.Status
	refreshes  int
	lastCalled struct {
		userID     string
		page, size int
	}
}

func newFakeRecommender() *fakeRecommender {
	return &fakeRecommender{
		lists:  map[string][]int64{},
		ready:  true,
		status: recommend.Status{GraphVersion: 3, LastRefreshAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
}

func (f *fakeRecommender) Recommend(_ context.Context, userID string, page, size int) (*recommend.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCalled.userID = userID
	f.lastCalled.page = page
	f.lastCalled.size = size
	if f.err != nil {
		return nil, f.err
	}
	ids := f.lists[userID]
	return &recommend.Page{
		UserID:  userID,
		Page:    page,
		Size:    size,
		RoomIDs: recommend.Paginate(ids, page, size),
		Total:   len(ids),
		Cached:  true,
	}, nil
}

func (f *fakeRecommender) RefreshAsync(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refreshErr != nil {
		return f.refreshErr
	}
	f.refreshes++
	return nil
}

func (f *fakeRecommender) Status() recommend.Status { return f.status }
func (f *fakeRecommender) Ready() bool              { return f.ready }
func (f *fakeRecommender) Counters() (requests, hits, misses, errs int64) {
	return 7, 5, 2, 0
}

func (f *fakeRecommender) StoreCounts(context.Context) (actions, edges int64, err error) {
	if f.countErr != nil {
		return 0, 0, f.countErr
	}
	return 42, 12, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Title: "Challengerec", Description: "test"},
		Recommend: config.RecommendConfig{DefaultPageSize: 10},
	}
}

// newTestRouter builds the full route tree with rate limiting disabled.
func newTestRouter(t *testing.T, engine Recommender) http.Handler {
	t.Helper()
	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true
	return NewRouter(NewHandler(engine, testConfig()), NewChiMiddleware(mwCfg)).SetupChi()
}
