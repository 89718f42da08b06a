// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package recommend

import (
	"context"
	"fmt"
	"sort"
)

// DefaultNeighbors is the number of similar users consulted per request.
const DefaultNeighbors = 5

// NeighborStore reads the current similarity graph and action log.
type NeighborStore interface {
	// SimilarUsers returns up to k user_b values for edges from userID,
	// ordered by score descending then user id ascending.
	SimilarUsers(ctx context.Context, userID string, k int) ([]string, error)

	// ChallengesOf returns the challenge id of every action by any of the
	// given users. Duplicates are kept.
	ChallengesOf(ctx context.Context, userIDs []string) ([]int64, error)
}

// CandidateAggregator ranks challenges by how often a user's nearest
// neighbors took them.
type CandidateAggregator struct {
	store NeighborStore
	k     int
}

// NewCandidateAggregator returns an aggregator consulting k neighbors
// (DefaultNeighbors when k < 1).
func NewCandidateAggregator(store NeighborStore, k int) *CandidateAggregator {
	if k < 1 {
		k = DefaultNeighbors
	}
	return &CandidateAggregator{store: store, k: k}
}

// SimilarUsers returns the user's nearest neighbors. A user without edges
// gets an empty slice and no error.
func (a *CandidateAggregator) SimilarUsers(ctx context.Context, userID string) ([]string, error) {
	users, err := a.store.SimilarUsers(ctx, userID, a.k)
	if err != nil {
		return nil, fmt.Errorf("similar users: %w", err)
	}
	return users, nil
}

// AggregateCandidates ranks every challenge the neighbors took by occurrence
// count.
func (a *CandidateAggregator) AggregateCandidates(ctx context.Context, neighbors []string) ([]int64, error) {
	if len(neighbors) == 0 {
		return nil, nil
	}
	ids, err := a.store.ChallengesOf(ctx, neighbors)
	if err != nil {
		return nil, fmt.Errorf("neighbor challenges: %w", err)
	}
	return RankByFrequency(ids), nil
}

// Candidates runs SimilarUsers then AggregateCandidates.
func (a *CandidateAggregator) Candidates(ctx context.Context, userID string) ([]int64, error) {
	neighbors, err := a.SimilarUsers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return a.AggregateCandidates(ctx, neighbors)
}

// RankByFrequency returns the distinct ids sorted by occurrence count
// descending, ties broken by ascending id.
func RankByFrequency(ids []int64) []int64 {
	counts := make(map[int64]int, len(ids))
	for _, id := range ids {
		counts[id]++
	}

	ranked := make([]int64, 0, len(counts))
	for id := range counts {
		ranked = append(ranked, id)
	}
	sort.Slice(ranked, func(i, j int) bool {
		ci, cj := counts[ranked[i]], counts[ranked[j]]
		if ci != cj {
			return ci > cj
		}
		return ranked[i] < ranked[j]
	})
	return ranked
}
