// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package recommend

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// GraphStore is the persistence side of the similarity engine. It is
// implemented by the database package.
type GraphStore interface {
	// CategoryVectors returns one vector per user in the current action log.
	CategoryVectors(ctx context.Context) (map[string]CategoryVector, error)

	// ReplaceSimilarityGraph stores edges under a new graph version and makes
	// that version current in one transaction. It returns the new version.
	ReplaceSimilarityGraph(ctx context.Context, edges []SimilarityEdge) (int64, error)
}

// GraphStats describes a recomputed graph.
type GraphStats struct {
	Users   int
	Edges   int
	Version int64
}

// SimilarityEngine turns per-user category counts into a directed similarity graph.
type SimilarityEngine struct {
	store   GraphStore
	workers int
	logger  zerolog.Logger
}

// NewSimilarityEngine creates an engine. workers <= 0 uses runtime.NumCPU().
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSimilarityEngine(store GraphStore, workers int, logger zerolog.Logger) *SimilarityEngine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &SimilarityEngine{
		store:   store,
		workers: workers,
		logger:  logger.With().Str("component", "similarity").Logger(),
	}
}

// Recompute rebuilds the similarity graph from the current action log.
// On any persistence error the previous graph stays current.
func (s *SimilarityEngine) Recompute(ctx context.Context) (GraphStats, error) {
	start := time.Now()

	vectors, err := s.store.CategoryVectors(ctx)
	if err != nil {
		return GraphStats{}, fmt.Errorf("load category vectors: %w", err)
	}

	edges, err := ComputeEdges(ctx, vectors, s.workers)
	if err != nil {
		return GraphStats{}, fmt.Errorf("compute edges: %w", err)
	}

	version, err := s.store.ReplaceSimilarityGraph(ctx, edges)
	if err != nil {
		return GraphStats{}, fmt.Errorf("replace similarity graph: %w", err)
	}

	s.logger.Info().
		Int("users", len(vectors)).
		Int("edges", len(edges)).
		Int64("graph_version", version).
		Dur("duration", time.Since(start)).
		Msg("similarity graph recomputed")

	return GraphStats{Users: len(vectors), Edges: len(edges), Version: version}, nil
}

// BuildVectors counts actions per user and category. Actions with an unknown
// category are not counted.
//
//nolint:gocritic // rangeValCopy: UserAction is small
func BuildVectors(actions []UserAction) map[string]CategoryVector {
	vectors := make(map[string]CategoryVector)
	for _, a := range actions {
		v := vectors[a.UserID]
		if axis := a.Category.Axis(); axis >= 0 {
			v[axis]++
		}
		vectors[a.UserID] = v
	}
	return vectors
}

// Cosine returns the cosine similarity of a and b, or 0 when either is the
// zero vector.
func Cosine(a, b CategoryVector) float64 {
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Equal profiles must score equally so ties fall through to user id.
	sim = math.Round(sim*scoreScale) / scoreScale
	if sim > 1 {
		sim = 1
	}
	return sim
}

// scoreScale quantizes scores to 12 decimal places.
const scoreScale = 1e12

// ComputeEdges emits an edge for every ordered pair (u, v), u != v, whose
// cosine similarity is positive. Output is ordered by UserA then UserB so
// repeated runs over the same input produce identical graphs.
//
// The result has O(n²) edges for n users.
func ComputeEdges(ctx context.Context, vectors map[string]CategoryVector, workers int) ([]SimilarityEdge, error) {
	users := make([]string, 0, len(vectors))
	for id := range vectors {
		users = append(users, id)
	}
	sort.Strings(users)

	if workers <= 0 {
		workers = 1
	}
	rows := make([][]SimilarityEdge, len(users))
	chunk := (len(users) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, len(users))
		if start >= end {
			break
		}

		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				rows[i] = edgesFrom(users[i], users, vectors)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range rows {
		total += len(r)
	}
	edges := make([]SimilarityEdge, 0, total)
	for _, r := range rows {
		edges = append(edges, r...)
	}
	return edges, nil
}

func edgesFrom(user string, users []string, vectors map[string]CategoryVector) []SimilarityEdge {
	src := vectors[user]
	if src.IsZero() {
		return nil
	}

	var out []SimilarityEdge
	for _, other := range users {
		if other == user {
			continue
		}
		if score := Cosine(src, vectors[other]); score > 0 {
			out = append(out, SimilarityEdge{UserA: user, UserB: other, Score: score})
		}
	}
	return out
}
