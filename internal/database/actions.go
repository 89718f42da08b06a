// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/challengerec/internal/logging"
	"github.com/tomtom215/challengerec/internal/recommend"
)

// ReplaceActions deletes the stored action log and inserts actions in one
// transaction. On any failure the previous log is kept. Categories outside
// the known set are stored as ETC.
func (db *DB) ReplaceActions(ctx context.Context, actions []recommend.UserAction) (n int, err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, persistenceError("begin transaction", err)
	}
	defer rollbackOnError(tx, &err)

	if _, err = tx.ExecContext(ctx, `DELETE FROM user_actions`); err != nil {
		return 0, persistenceError("clear user_actions", err)
	}

	if len(actions) > 0 {
		stmt, prepErr := tx.PrepareContext(ctx,
			`INSERT INTO user_actions (id, user_id, challenge_id, category, started_at) VALUES (?, ?, ?, ?, ?)`)
		if prepErr != nil {
			err = prepErr
			return 0, persistenceError("prepare insert", err)
		}
		defer func() {
			if closeErr := stmt.Close(); closeErr != nil {
				logging.Warn().Err(closeErr).Msg("Failed to close prepared statement")
			}
		}()

		for i := range actions {
			a := &actions[i]
			category := a.Category
			if category.Axis() < 0 {
				category = recommend.CategoryEtc
			}
			var startedAt any
			if !a.StartedAt.IsZero() {
				startedAt = a.StartedAt.UTC()
			}
			if _, err = stmt.ExecContext(ctx, int64(i+1), a.UserID, a.ChallengeID, string(category), startedAt); err != nil {
				return 0, persistenceError(fmt.Sprintf("insert action %d", i), err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, persistenceError("commit", err)
	}
	return len(actions), nil
}

// CategoryVectors counts each user's actions per category in axis order.
func (db *DB) CategoryVectors(ctx context.Context) (map[string]recommend.CategoryVector, error) {
	rows, err := db.conn.QueryContext(ctx, categoryVectorQuery)
	if err != nil {
		return nil, persistenceError("query category vectors", err)
	}
	defer rows.Close()

	vectors := make(map[string]recommend.CategoryVector)
	for rows.Next() {
		var (
			userID string
			counts [recommend.NumCategories]int64
		)
		dest := make([]any, 0, recommend.NumCategories+1)
		dest = append(dest, &userID)
		for i := range counts {
			dest = append(dest, &counts[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, persistenceError("scan category vector", err)
		}

		var v recommend.CategoryVector
		for i, c := range counts {
			v[i] = int(c)
		}
		vectors[userID] = v
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("iterate category vectors", err)
	}
	return vectors, nil
}

// categoryVectorQuery pivots user_actions into one column per category,
// following recommend.Categories so the column order is the axis order.
var categoryVectorQuery = buildCategoryVectorQuery()

func buildCategoryVectorQuery() string {
	var b strings.Builder
	b.WriteString("SELECT user_id")
	for _, c := range recommend.Categories {
		fmt.Fprintf(&b, ", COUNT(*) FILTER (WHERE category = '%s')", c)
	}
	b.WriteString(" FROM user_actions GROUP BY user_id ORDER BY user_id")
	return b.String()
}

// ChallengesOf returns every challenge id started by any of userIDs,
// duplicates included.
func (db *DB) ChallengesOf(ctx context.Context, userIDs []string) ([]int64, error) {
	if len(userIDs) == 0 {
		return []int64{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(userIDs)), ", ")
	query := `SELECT challenge_id FROM user_actions WHERE user_id IN (` + placeholders + `) ORDER BY id`

	args := make([]any, len(userIDs))
	for i, u := range userIDs {
		args[i] = u
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistenceError("query challenges", err)
	}
	defer rows.Close()

	ids := make([]int64, 0, len(userIDs)*4)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, persistenceError("scan challenge id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("iterate challenges", err)
	}
	return ids, nil
}

// ActionCount returns the number of stored actions.
func (db *DB) ActionCount(ctx context.Context) (int64, error) {
	var n int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_actions`).Scan(&n); err != nil {
		return 0, persistenceError("count actions", err)
	}
	return n, nil
}
