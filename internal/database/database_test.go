// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package database

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/challengerec/internal/config"
	"github.com/tomtom215/challengerec/internal/recommend"
)

// testDBSemaphore serializes DuckDB use across parallel tests. Concurrent
// CGO connections from many tests can stall under CI load.
var testDBSemaphore = make(chan struct{}, 1)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := New(&config.DatabaseConfig{Path: MemoryPath, MaxMemory: "256MB", Threads: 1})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

func act(user string, challenge int64, c recommend.Category) recommend.UserAction {
	return recommend.UserAction{
		UserID:      user,
		ChallengeID: challenge,
		Category:    c,
		StartedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNew_CreatesSchema(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	v, err := db.CurrentGraphVersion(ctx)
	if err != nil {
		t.Fatalf("CurrentGraphVersion() error = %v", err)
	}
	if v != 0 {
		t.Errorf("initial version = %d, want 0", v)
	}

	// Schema creation is idempotent.
	if err := db.createSchema(); err != nil {
		t.Fatalf("second createSchema() error = %v", err)
	}
}

func TestNew_FileBacked(t *testing.T) {
	t.Parallel()

	testDBSemaphore <- struct{}{}
	defer func() { <-testDBSemaphore }()

	path := filepath.Join(t.TempDir(), "nested", "recs.duckdb")
	cfg := &config.DatabaseConfig{Path: path, Threads: 1}
	ctx := context.Background()

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := db.ReplaceActions(ctx, []recommend.UserAction{act("a", 1, recommend.CategoryTravel)}); err != nil {
		t.Fatalf("ReplaceActions() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := New(cfg)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	n, err := reopened.ActionCount(ctx)
	if err != nil || n != 1 {
		t.Errorf("ActionCount() after reopen = %d, %v; want 1", n, err)
	}
}

func TestReplaceActions(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	first := []recommend.UserAction{
		act("a", 1, recommend.CategoryTravel),
		act("a", 2, recommend.CategoryTravel),
		act("b", 3, recommend.CategoryDigital),
	}
	n, err := db.ReplaceActions(ctx, first)
	if err != nil || n != 3 {
		t.Fatalf("ReplaceActions() = %d, %v", n, err)
	}

	second := []recommend.UserAction{act("c", 9, recommend.CategoryToys)}
	if _, err := db.ReplaceActions(ctx, second); err != nil {
		t.Fatalf("second ReplaceActions() error = %v", err)
	}

	count, _ := db.ActionCount(ctx)
	if count != 1 {
		t.Errorf("ActionCount() = %d, want 1 after replace", count)
	}

	if _, err := db.ReplaceActions(ctx, nil); err != nil {
		t.Fatalf("empty ReplaceActions() error = %v", err)
	}
	count, _ = db.ActionCount(ctx)
	if count != 0 {
		t.Errorf("ActionCount() = %d, want 0", count)
	}
}

func TestReplaceActions_CanceledKeepsPrevious(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.ReplaceActions(ctx, []recommend.UserAction{act("a", 1, recommend.CategoryTravel)}); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err := db.ReplaceActions(canceled, []recommend.UserAction{act("z", 2, recommend.CategoryEtc)})
	if !errors.Is(err, recommend.ErrPersistence) {
		t.Fatalf("ReplaceActions(canceled) error = %v, want ErrPersistence", err)
	}

	count, _ := db.ActionCount(ctx)
	if count != 1 {
		t.Errorf("ActionCount() = %d, want previous log of 1", count)
	}
}

func TestCategoryVectors(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	actions := []recommend.UserAction{
		act("me", 1, recommend.CategoryTravel),
		act("me", 2, recommend.CategoryDigital),
		act("me", 2, recommend.CategoryDigital),
		act("n1", 3, recommend.CategoryEtc),
		act("n1", 4, recommend.Category("GARDENING")),
	}
	if _, err := db.ReplaceActions(ctx, actions); err != nil {
		t.Fatalf("ReplaceActions() error = %v", err)
	}

	vectors, err := db.CategoryVectors(ctx)
	if err != nil {
		t.Fatalf("CategoryVectors() error = %v", err)
	}

	want := map[string]recommend.CategoryVector{
		"me": {1, 2, 0, 0, 0, 0},
		"n1": {0, 0, 0, 0, 0, 2},
	}
	if len(vectors) != len(want) {
		t.Fatalf("got %d vectors, want %d", len(vectors), len(want))
	}
	for user, w := range want {
		if vectors[user] != w {
			t.Errorf("vector[%s] = %v, want %v", user, vectors[user], w)
		}
	}
}

func TestChallengesOf(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	actions := []recommend.UserAction{
		act("a", 10, recommend.CategoryTravel),
		act("b", 20, recommend.CategoryTravel),
		act("b", 10, recommend.CategoryTravel),
		act("c", 30, recommend.CategoryTravel),
	}
	if _, err := db.ReplaceActions(ctx, actions); err != nil {
		t.Fatalf("ReplaceActions() error = %v", err)
	}

	got, err := db.ChallengesOf(ctx, []string{"a", "b"})
	if err != nil {
		t.Fatalf("ChallengesOf() error = %v", err)
	}
	if !slices.Equal(got, []int64{10, 20, 10}) {
		t.Errorf("ChallengesOf() = %v, want [10 20 10]", got)
	}

	empty, err := db.ChallengesOf(ctx, nil)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("ChallengesOf(nil) = %v, %v", empty, err)
	}
}

func TestReplaceSimilarityGraph_Versions(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	v1, err := db.ReplaceSimilarityGraph(ctx, []recommend.SimilarityEdge{
		{UserA: "me", UserB: "n2", Score: 0.5},
		{UserA: "me", UserB: "n1", Score: 0.9},
		{UserA: "me", UserB: "n3", Score: 0.5},
		{UserA: "n1", UserB: "me", Score: 0.9},
	})
	if err != nil {
		t.Fatalf("ReplaceSimilarityGraph() error = %v", err)
	}
	if v1 != 1 {
		t.Errorf("first version = %d, want 1", v1)
	}

	got, err := db.SimilarUsers(ctx, "me", 5)
	if err != nil {
		t.Fatalf("SimilarUsers() error = %v", err)
	}
	if !slices.Equal(got, []string{"n1", "n2", "n3"}) {
		t.Errorf("SimilarUsers() = %v, want [n1 n2 n3]", got)
	}

	limited, _ := db.SimilarUsers(ctx, "me", 2)
	if !slices.Equal(limited, []string{"n1", "n2"}) {
		t.Errorf("SimilarUsers(k=2) = %v", limited)
	}

	v2, err := db.ReplaceSimilarityGraph(ctx, []recommend.SimilarityEdge{
		{UserA: "x", UserB: "y", Score: 1},
	})
	if err != nil {
		t.Fatalf("second ReplaceSimilarityGraph() error = %v", err)
	}
	if v2 != 2 {
		t.Errorf("second version = %d, want 2", v2)
	}

	if old, _ := db.SimilarUsers(ctx, "me", 5); len(old) != 0 {
		t.Errorf("edges from replaced graph still visible: %v", old)
	}
	if n, _ := db.EdgeCount(ctx); n != 1 {
		t.Errorf("EdgeCount() = %d, want 1", n)
	}

	var stored int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM similarity_edges`).Scan(&stored); err != nil {
		t.Fatal(err)
	}
	if stored != 1 {
		t.Errorf("old versions not pruned: %d rows", stored)
	}

	cur, _ := db.CurrentGraphVersion(ctx)
	if cur != 2 {
		t.Errorf("CurrentGraphVersion() = %d, want 2", cur)
	}
}

func TestReplaceSimilarityGraph_FailureKeepsActive(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.ReplaceSimilarityGraph(ctx, []recommend.SimilarityEdge{{UserA: "a", UserB: "b", Score: 1}}); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := db.ReplaceSimilarityGraph(canceled, []recommend.SimilarityEdge{{UserA: "c", UserB: "d", Score: 1}}); !errors.Is(err, recommend.ErrPersistence) {
		t.Fatalf("error = %v, want ErrPersistence", err)
	}

	got, _ := db.SimilarUsers(ctx, "a", 5)
	if !slices.Equal(got, []string{"b"}) {
		t.Errorf("active graph lost after failed replace: %v", got)
	}
	if v, _ := db.CurrentGraphVersion(ctx); v != 1 {
		t.Errorf("version = %d, want 1", v)
	}
}

func TestSimilarUsers_EmptyGraph(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)

	got, err := db.SimilarUsers(context.Background(), "nobody", 5)
	if err != nil {
		t.Fatalf("SimilarUsers() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("SimilarUsers() = %v, want empty", got)
	}
}

func TestStoreDrivesSimilarityEngine(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	actions := []recommend.UserAction{
		act("me", 1, recommend.CategoryTravel),
		act("n1", 2, recommend.CategoryTravel),
		act("n2", 3, recommend.CategoryDigital),
	}
	if _, err := db.ReplaceActions(ctx, actions); err != nil {
		t.Fatalf("ReplaceActions() error = %v", err)
	}

	stats, err := recommend.NewSimilarityEngine(db, 2, zerolog.Nop()).Recompute(ctx)
	if err != nil {
		t.Fatalf("Recompute() error = %v", err)
	}
	if stats.Edges != 2 || stats.Version != 1 {
		t.Errorf("stats = %+v, want 2 edges at version 1", stats)
	}

	got, _ := db.SimilarUsers(ctx, "me", 5)
	if !slices.Equal(got, []string{"n1"}) {
		t.Errorf("SimilarUsers(me) = %v, want [n1]", got)
	}
}

func TestSimilarUsers_EqualProfilesOrderByUserID(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	// me, a and z share one profile at different magnitudes; b is weaker.
	actions := []recommend.UserAction{
		act("me", 1, recommend.CategoryTravel),
		act("me", 2, recommend.CategoryDigital),
		act("z", 10, recommend.CategoryTravel),
		act("z", 11, recommend.CategoryTravel),
		act("z", 12, recommend.CategoryTravel),
		act("z", 13, recommend.CategoryDigital),
		act("z", 14, recommend.CategoryDigital),
		act("z", 15, recommend.CategoryDigital),
		act("b", 20, recommend.CategoryTravel),
		act("a", 30, recommend.CategoryTravel),
		act("a", 31, recommend.CategoryDigital),
	}
	if _, err := db.ReplaceActions(ctx, actions); err != nil {
		t.Fatalf("ReplaceActions() error = %v", err)
	}
	if _, err := recommend.NewSimilarityEngine(db, 2, zerolog.Nop()).Recompute(ctx); err != nil {
		t.Fatalf("Recompute() error = %v", err)
	}

	got, err := db.SimilarUsers(ctx, "me", 3)
	if err != nil {
		t.Fatalf("SimilarUsers() error = %v", err)
	}
	if !slices.Equal(got, []string{"a", "z", "b"}) {
		t.Errorf("SimilarUsers(me) = %v, want [a z b]", got)
	}
}
