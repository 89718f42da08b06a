// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

// Package database persists the user action log and the similarity graph in
// DuckDB.
//
// # Tables
//
//   - user_actions: the latest full snapshot of the upstream action log.
//     Every refresh replaces it in one transaction.
//   - similarity_edges: directed user-to-user scores, tagged with the graph
//     version that produced them.
//   - graph_version: a single row naming the version readers should use.
//
// # Graph versioning
//
// ReplaceSimilarityGraph writes the new edges under version N+1, points
// graph_version at N+1 and prunes older versions, all inside one
// transaction. Readers join through graph_version, so they observe either
// the complete old graph or the complete new one.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	engine, err := recommend.NewEngine(recCfg, db, upstream, lists, logger)
package database
