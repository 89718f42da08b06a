// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time // zero means no expiry
}

// Stats tracks MemoryStore activity.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// MemoryStore is a thread-safe in-process Store. Expired entries are removed
// lazily on Get and by a periodic sweep.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	stats   Stats
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock replaces time.Now, letting tests move time forward.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) { m.now = now }
}

// NewMemoryStore starts a store sweeping expired entries every cleanupEvery.
// cleanupEvery <= 0 disables the sweep.
func NewMemoryStore(cleanupEvery time.Duration, opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	if cleanupEvery > 0 {
		go m.cleanupLoop(cleanupEvery)
	}
	return m
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		m.record(func(s *Stats) { s.Misses++ })
		return nil, ErrNotFound
	}

	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		m.mu.Lock()
		// Re-check: a concurrent Set may have refreshed the entry.
		if cur, ok := m.entries[key]; ok && cur.expiresAt.Equal(entry.expiresAt) {
			delete(m.entries, key)
			m.stats.Evictions++
			m.stats.TotalKeys = int64(len(m.entries))
		}
		m.stats.Misses++
		m.mu.Unlock()
		return nil, ErrNotFound
	}

	m.record(func(s *Stats) { s.Hits++ })
	out := make([]byte, len(entry.data))
	copy(out, entry.data)
	return out, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{data: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.stats.TotalKeys = int64(len(m.entries))
	m.mu.Unlock()
	return nil
}

// Close stops the cleanup sweep. The store stays usable.
func (m *MemoryStore) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	return nil
}

// GetStats returns a copy of the counters.
func (m *MemoryStore) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

func (m *MemoryStore) record(fn func(*Stats)) {
	m.mu.Lock()
	fn(&m.stats)
	m.mu.Unlock()
}

func (m *MemoryStore) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.cleanup()
		}
	}
}

func (m *MemoryStore) cleanup() {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	var evicted int64
	for key, e := range m.entries {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(m.entries, key)
			evicted++
		}
	}
	m.stats.Evictions += evicted
	m.stats.TotalKeys = int64(len(m.entries))
	m.stats.LastCleanup = now
}
