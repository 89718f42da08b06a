// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore keeps cached lists in an embedded BadgerDB. Expiry uses
// Badger's native entry TTL.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a Badger directory at path. An empty
// path opens an in-memory instance.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (b *BadgerStore) Name() string { return "badger" }

func (b *BadgerStore) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("badger get: %w", err)
	}
	return out, nil
}

func (b *BadgerStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := badger.NewEntry([]byte(key), value)
	if ttl > 0 {
		entry = entry.WithTTL(ttl)
	}
	if err := b.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(entry)
	}); err != nil {
		return fmt.Errorf("badger set: %w", err)
	}
	return nil
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}

// RunGC rewrites value log files until Badger reports nothing left to
// reclaim and returns how many files were rewritten. In-memory stores have
// no value log and report zero.
func (b *BadgerStore) RunGC(discardRatio float64) (int, error) {
	rewritten := 0
	for {
		err := b.db.RunValueLogGC(discardRatio)
		switch {
		case err == nil:
			rewritten++
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			return rewritten, nil
		default:
			return rewritten, fmt.Errorf("badger value log gc: %w", err)
		}
	}
}
