// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

// Package recommend ranks challenges for a user from the behavior of similar
// users.
//
// # Similarity graph
//
// Every user is reduced to a CategoryVector: six action counts in the fixed
// order TRAVEL, DIGITAL, FASHION, TOYS, INTERIOR, ETC. SimilarityEngine
// computes the cosine similarity of every ordered pair of users and keeps a
// directed edge for each positive score. Zero vectors produce no edges. The
// graph is written under a new version and switched in atomically by the
// GraphStore, so readers never see a half-built graph. Edge count grows as
// O(n²) in the number of active users.
//
// # Request path
//
//	cache hit  -> Paginate(cached full list)
//	cache miss -> SimilarUsers -> AggregateCandidates ┐
//	              FetchCatalog (concurrently) ────────┴-> MergeWithCatalog -> cache -> Paginate
//
// Ranking is deterministic: neighbors order by score descending then user id,
// candidates by occurrence count descending then challenge id.
//
// # Refresh
//
// Engine.Refresh fetches the action log, replaces the BehaviorStore and
// recomputes the graph. Cycles never overlap and a failed cycle leaves the
// previous graph current.
package recommend
