// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package cache

import (
	"context"
	"errors"
	"io"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/challengerec/internal/config"
	"github.com/tomtom215/challengerec/internal/recommend"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// failingStore returns err from every operation.
type failingStore struct{ err error }

func (f failingStore) Name() string { return "failing" }
func (f failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, f.err
}
func (f failingStore) Set(context.Context, string, []byte, time.Duration) error { return f.err }
func (f failingStore) Close() error                                            { return nil }

func TestKey(t *testing.T) {
	t.Parallel()
	if got := Key("me@example.com"); got != "challengerec:recs:v1:me@example.com" {
		t.Errorf("Key() = %q", got)
	}
}

func TestListCache_RoundTripAndExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := newFakeClock()

	store := NewMemoryStore(0, WithClock(clock.Now))
	defer store.Close()
	lc := NewListCache(store, 6*time.Hour, newTestLogger())

	if _, ok, err := lc.Get(ctx, "me"); ok || err != nil {
		t.Fatalf("Get() on empty cache = ok %v, err %v", ok, err)
	}

	want := []int64{5, 3, 2, 1, 4, 6}
	if err := lc.Set(ctx, "me", want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := lc.Get(ctx, "me")
	if err != nil || !ok || !slices.Equal(got, want) {
		t.Fatalf("Get() = %v, %v, %v; want %v", got, ok, err, want)
	}

	clock.Advance(6*time.Hour - time.Second)
	if _, ok, _ := lc.Get(ctx, "me"); !ok {
		t.Error("entry expired before TTL")
	}

	clock.Advance(time.Second)
	if _, ok, _ := lc.Get(ctx, "me"); ok {
		t.Error("entry still served at TTL")
	}
}

func TestListCache_Overwrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewMemoryStore(0)
	defer store.Close()
	lc := NewListCache(store, 0, newTestLogger())

	if lc.TTL() != DefaultTTL {
		t.Errorf("TTL() = %v, want %v", lc.TTL(), DefaultTTL)
	}

	_ = lc.Set(ctx, "me", []int64{1, 2})
	_ = lc.Set(ctx, "me", []int64{9})

	got, _, _ := lc.Get(ctx, "me")
	if !slices.Equal(got, []int64{9}) {
		t.Errorf("Get() = %v, want [9]", got)
	}
}

func TestListCache_CorruptEntryIsMiss(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewMemoryStore(0)
	defer store.Close()
	_ = store.Set(ctx, Key("me"), []byte("not a list"), time.Hour)

	lc := NewListCache(store, time.Hour, newTestLogger())
	ids, ok, err := lc.Get(ctx, "me")
	if err != nil || ok || ids != nil {
		t.Errorf("Get() = %v, %v, %v; want miss", ids, ok, err)
	}
}

func TestListCache_BackendErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	lc := NewListCache(failingStore{err: errors.New("connection refused")}, time.Hour, newTestLogger())

	if _, _, err := lc.Get(ctx, "me"); !errors.Is(err, recommend.ErrCacheUnavailable) {
		t.Errorf("Get() error = %v, want ErrCacheUnavailable", err)
	}
	if err := lc.Set(ctx, "me", []int64{1}); !errors.Is(err, recommend.ErrCacheUnavailable) {
		t.Errorf("Set() error = %v, want ErrCacheUnavailable", err)
	}
}

func TestNewStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mem, err := NewStore(ctx, &config.CacheConfig{Backend: BackendMemory})
	if err != nil {
		t.Fatalf("NewStore(memory) error = %v", err)
	}
	defer mem.Close()
	if mem.Name() != BackendMemory {
		t.Errorf("Name() = %q", mem.Name())
	}

	bdg, err := NewStore(ctx, &config.CacheConfig{Backend: BackendBadger, BadgerPath: t.TempDir()})
	if err != nil {
		t.Fatalf("NewStore(badger) error = %v", err)
	}
	defer bdg.Close()

	if _, err := NewStore(ctx, &config.CacheConfig{Backend: "memcached"}); err == nil {
		t.Error("NewStore(memcached) expected error")
	}
}
