// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package recommend

import (
	"context"
	"sort"
	"sync"
)

// memoryStore is an in-memory Store used across the package tests.
type memoryStore struct {
	mu      sync.Mutex
	actions []UserAction
	edges   []SimilarityEdge
	version int64

	replaceErr error
	graphErr   error
	countErr   error

	similarCalls    int
	challengesCalls int

	// block, when set, is waited on inside ReplaceActions.
	block chan struct{}
}

func (m *memoryStore) ReplaceActions(_ context.Context, actions []UserAction) (int, error) {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replaceErr != nil {
		return 0, m.replaceErr
	}
	m.actions = append([]UserAction(nil), actions...)
	return len(actions), nil
}

func (m *memoryStore) CategoryVectors(_ context.Context) (map[string]CategoryVector, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return BuildVectors(m.actions), nil
}

func (m *memoryStore) ReplaceSimilarityGraph(_ context.Context, edges []SimilarityEdge) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.graphErr != nil {
		return 0, m.graphErr
	}
	m.edges = append([]SimilarityEdge(nil), edges...)
	m.version++
	return m.version, nil
}

func (m *memoryStore) CurrentGraphVersion(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version, nil
}

func (m *memoryStore) ActionCount(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return 0, m.countErr
	}
	return int64(len(m.actions)), nil
}

func (m *memoryStore) EdgeCount(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return 0, m.countErr
	}
	return int64(len(m.edges)), nil
}

func (m *memoryStore) SimilarUsers(_ context.Context, userID string, k int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.similarCalls++

	var out []SimilarityEdge
	for _, e := range m.edges {
		if e.UserA == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].UserB < out[j].UserB
	})
	users := make([]string, 0, k)
	for i := 0; i < len(out) && i < k; i++ {
		users = append(users, out[i].UserB)
	}
	return users, nil
}

func (m *memoryStore) ChallengesOf(_ context.Context, userIDs []string) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.challengesCalls++

	want := make(map[string]bool, len(userIDs))
	for _, u := range userIDs {
		want[u] = true
	}
	var ids []int64
	for _, a := range m.actions {
		if want[a.UserID] {
			ids = append(ids, a.ChallengeID)
		}
	}
	return ids, nil
}

func (m *memoryStore) calls() (similar, challenges int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.similarCalls, m.challengesCalls
}

type fakeUpstream struct {
	mu         sync.Mutex
	actions    []UserAction
	catalog    []int64
	actionsErr error
	catalogErr error

	catalogCalls int
	actionCalls  int
}

func (f *fakeUpstream) FetchActions(_ context.Context) ([]UserAction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actionCalls++
	if f.actionsErr != nil {
		return nil, f.actionsErr
	}
	return f.actions, nil
}

func (f *fakeUpstream) FetchCatalog(_ context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catalogCalls++
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	return f.catalog, nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]int64
	getErr  error
	setErr  error
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]int64)}
}

func (c *fakeCache) Get(_ context.Context, userID string) ([]int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	ids, ok := c.entries[userID]
	return ids, ok, nil
}

func (c *fakeCache) Set(_ context.Context, userID string, ids []int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[userID] = append([]int64(nil), ids...)
	return nil
}

func action(user string, challenge int64, c Category) UserAction {
	return UserAction{UserID: user, ChallengeID: challenge, Category: c}
}
