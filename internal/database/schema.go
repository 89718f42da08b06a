// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package database

import (
	"context"
	"fmt"
	"time"
)

// user_actions has no primary key: DuckDB checks unique indexes eagerly, so
// deleting and re-inserting the same ids in one transaction would fail.
var schemaQueries = []string{
	`CREATE TABLE IF NOT EXISTS user_actions (
		id BIGINT NOT NULL,
		user_id VARCHAR NOT NULL,
		challenge_id BIGINT NOT NULL,
		category VARCHAR NOT NULL,
		started_at TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_actions_user ON user_actions(user_id)`,

	`CREATE TABLE IF NOT EXISTS similarity_edges (
		version BIGINT NOT NULL,
		user_a VARCHAR NOT NULL,
		user_b VARCHAR NOT NULL,
		score DOUBLE NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_similarity_edges_lookup ON similarity_edges(version, user_a)`,

	`CREATE TABLE IF NOT EXISTS graph_version (
		id INTEGER PRIMARY KEY,
		version BIGINT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
}

func (db *DB) createSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	for _, q := range schemaQueries {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}

	// Version 0 means no graph has been built yet.
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO graph_version (id, version, updated_at) VALUES (1, 0, ?) ON CONFLICT DO NOTHING`,
		time.Now().UTC())
	if err != nil {
		return fmt.Errorf("seed graph_version: %w", err)
	}
	return nil
}
