// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/challengerec/internal/config"
	"github.com/tomtom215/challengerec/internal/logging"
	"github.com/tomtom215/challengerec/internal/recommend"
)

// MemoryPath opens a process-local database that disappears on Close.
const MemoryPath = ":memory:"

// DB wraps the DuckDB connection and implements recommend.Store.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

var _ recommend.Store = (*DB)(nil)

// New opens (or creates) the database at cfg.Path and ensures the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	path := cfg.Path
	if path == MemoryPath {
		path = ""
	}
	if path != "" {
		dbDir := filepath.Dir(path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	connStr := fmt.Sprintf("%s?threads=%d", path, numThreads)
	if cfg.MaxMemory != "" {
		connStr += "&max_memory=" + cfg.MaxMemory
	}

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg}
	db.configureConnectionPool()

	if err := db.createSchema(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Int("threads", numThreads).
		Str("max_memory", cfg.MaxMemory).
		Msg("Database opened")
	return db, nil
}

func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

func (db *DB) inMemory() bool {
	return db.cfg.Path == MemoryPath || db.cfg.Path == ""
}

// Ping checks the connection is usable.
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	return db.conn.PingContext(ctx)
}

// Close checkpoints file-backed databases and closes the connection.
func (db *DB) Close() error {
	if !db.inMemory() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
			logging.Warn().Err(err).Msg("Checkpoint before close failed")
		}
		cancel()
	}
	return db.conn.Close()
}

// ensureContext applies a 30-second ceiling when ctx has no deadline.
func ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}
	if _, ok := ctx.Deadline(); !ok {
		return context.WithTimeout(ctx, 30*time.Second)
	}
	return ctx, func() {}
}

// closeQuietly is for error paths where a Close failure is not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// rollbackOnError is deferred by every write transaction. It does nothing
// when *errp is nil.
func rollbackOnError(tx *sql.Tx, errp *error) {
	if *errp == nil {
		return
	}
	if rbErr := tx.Rollback(); rbErr != nil {
		logging.Error().
			Err(rbErr).
			AnErr("original_error", *errp).
			Msg("Transaction rollback failed")
	}
}

// persistenceError tags err so callers can map it to a storage failure.
func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", recommend.ErrPersistence, op, err)
}
