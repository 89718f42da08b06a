// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package database

import (
	"context"
	"time"

	"github.com/tomtom215/challengerec/internal/logging"
	"github.com/tomtom215/challengerec/internal/recommend"
)

// ReplaceSimilarityGraph stores edges as version current+1, makes it the
// active version and deletes older versions. Everything happens in one
// transaction; on failure the previous graph stays active.
func (db *DB) ReplaceSimilarityGraph(ctx context.Context, edges []recommend.SimilarityEdge) (version int64, err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, persistenceError("begin transaction", err)
	}
	defer rollbackOnError(tx, &err)

	var current int64
	if err = tx.QueryRowContext(ctx, `SELECT version FROM graph_version WHERE id = 1`).Scan(&current); err != nil {
		return 0, persistenceError("read graph version", err)
	}
	next := current + 1

	if len(edges) > 0 {
		stmt, prepErr := tx.PrepareContext(ctx,
			`INSERT INTO similarity_edges (version, user_a, user_b, score) VALUES (?, ?, ?, ?)`)
		if prepErr != nil {
			err = prepErr
			return 0, persistenceError("prepare insert", err)
		}
		defer func() {
			if closeErr := stmt.Close(); closeErr != nil {
				logging.Warn().Err(closeErr).Msg("Failed to close prepared statement")
			}
		}()

		for _, e := range edges {
			if _, err = stmt.ExecContext(ctx, next, e.UserA, e.UserB, e.Score); err != nil {
				return 0, persistenceError("insert edge", err)
			}
		}
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE graph_version SET version = ?, updated_at = ? WHERE id = 1`, next, time.Now().UTC()); err != nil {
		return 0, persistenceError("advance graph version", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM similarity_edges WHERE version < ?`, next); err != nil {
		return 0, persistenceError("prune old graph", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, persistenceError("commit", err)
	}
	return next, nil
}

// CurrentGraphVersion returns the active graph version, 0 before the first
// successful refresh.
func (db *DB) CurrentGraphVersion(ctx context.Context) (int64, error) {
	var v int64
	if err := db.conn.QueryRowContext(ctx, `SELECT version FROM graph_version WHERE id = 1`).Scan(&v); err != nil {
		return 0, persistenceError("read graph version", err)
	}
	return v, nil
}

// SimilarUsers returns up to k neighbors of userID from the active graph,
// best score first and ties broken by ascending user id.
func (db *DB) SimilarUsers(ctx context.Context, userID string, k int) ([]string, error) {
	if k <= 0 {
		return []string{}, nil
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT e.user_b
		FROM similarity_edges e
		JOIN graph_version g ON g.id = 1 AND e.version = g.version
		WHERE e.user_a = ?
		ORDER BY e.score DESC, e.user_b ASC
		LIMIT ?`, userID, k)
	if err != nil {
		return nil, persistenceError("query similar users", err)
	}
	defer rows.Close()

	users := make([]string, 0, k)
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, persistenceError("scan similar user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("iterate similar users", err)
	}
	return users, nil
}

// EdgeCount returns the number of edges in the active graph.
func (db *DB) EdgeCount(ctx context.Context) (int64, error) {
	var n int64
	err := db.conn.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM similarity_edges e
		JOIN graph_version g ON g.id = 1 AND e.version = g.version`).Scan(&n)
	if err != nil {
		return 0, persistenceError("count edges", err)
	}
	return n, nil
}
