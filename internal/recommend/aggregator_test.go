// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package recommend

import (
	"context"
	"reflect"
	"testing"
)

func TestRankByFrequency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ids  []int64
		want []int64
	}{
		{"counts 3,2,1", []int64{5, 3, 5, 2, 3, 5}, []int64{5, 3, 2}},
		{"ties ascending", []int64{9, 4, 7, 4, 9, 7}, []int64{4, 7, 9}},
		{"mixed ties", []int64{8, 1, 8, 6, 2}, []int64{8, 1, 2, 6}},
		{"empty", nil, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RankByFrequency(tt.ids); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RankByFrequency(%v) = %v, want %v", tt.ids, got, tt.want)
			}
		})
	}
}

func TestCandidateAggregator_SimilarUsers(t *testing.T) {
	t.Parallel()

	store := &memoryStore{edges: []SimilarityEdge{
		{UserA: "u", UserB: "z", Score: 0.9},
		{UserA: "u", UserB: "b", Score: 0.5},
		{UserA: "u", UserB: "a", Score: 0.5},
		{UserA: "u", UserB: "c", Score: 0.7},
		{UserA: "u", UserB: "d", Score: 0.1},
		{UserA: "u", UserB: "e", Score: 0.05},
		{UserA: "x", UserB: "u", Score: 1},
	}}
	agg := NewCandidateAggregator(store, 0)

	got, err := agg.SimilarUsers(context.Background(), "u")
	if err != nil {
		t.Fatalf("SimilarUsers() error = %v", err)
	}
	want := []string{"z", "c", "a", "b", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SimilarUsers() = %v, want %v", got, want)
	}

	none, err := agg.SimilarUsers(context.Background(), "stranger")
	if err != nil {
		t.Fatalf("SimilarUsers(stranger) error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no neighbors, got %v", none)
	}
}

func TestCandidateAggregator_Candidates(t *testing.T) {
	t.Parallel()

	store := &memoryStore{
		edges: []SimilarityEdge{
			{UserA: "me", UserB: "n1", Score: 0.9},
			{UserA: "me", UserB: "n2", Score: 0.8},
		},
		actions: []UserAction{
			action("n1", 5, CategoryTravel),
			action("n1", 3, CategoryTravel),
			action("n1", 5, CategoryTravel),
			action("n2", 2, CategoryTravel),
			action("n2", 3, CategoryTravel),
			action("n2", 5, CategoryTravel),
			action("me", 99, CategoryTravel),
		},
	}
	agg := NewCandidateAggregator(store, 5)

	got, err := agg.Candidates(context.Background(), "me")
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if want := []int64{5, 3, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates() = %v, want %v", got, want)
	}
}

func TestCandidateAggregator_NoNeighborsSkipsLookup(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	agg := NewCandidateAggregator(store, 5)

	got, err := agg.Candidates(context.Background(), "lonely")
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %v", got)
	}
	if _, challenges := store.calls(); challenges != 0 {
		t.Errorf("ChallengesOf called %d times, want 0", challenges)
	}
}
