// Package cache provides the in-memory result cache for the analytics
// pipeline. Results live in isolated namespaces so that invalidating one
// derived dataset never disturbs another, and every entry carries its own
// expiry so the cache is always rebuildable from the transaction store.
package cache

import (
	"sync"
	"time"
)

// Namespace isolates a key space with its own TTL and invalidation scope.
type Namespace string

const (
	// NamespaceClassification holds classified transaction batches, keyed by user ID.
	NamespaceClassification Namespace = "classification"
	// NamespaceForecast holds forecast series, keyed by user ID + horizon.
	NamespaceForecast Namespace = "forecast"
	// NamespaceFingerprint holds the last observed transaction-set digest per user.
	NamespaceFingerprint Namespace = "fingerprint"
)

const (
	// DefaultTTL applies to all three namespaces.
	DefaultTTL = 24 * time.Hour
	// SweepInterval is how often the background sweeper reclaims expired entries.
	// Expiry is enforced lazily on Get regardless, the sweep only frees memory.
	SweepInterval = 60 * time.Second
)

// Stats reports per-namespace cache effectiveness counters.
type Stats struct {
	Hits     uint64
	Misses   uint64
	KeyCount int
}

type entry struct {
	value     any
	expiresAt time.Time
}

type shard struct {
	mu      sync.RWMutex
	entries map[string]entry
	hits    uint64
	misses  uint64
}

// Store is a namespaced in-memory key-value store with per-entry TTL.
// It is constructed once at process start and injected into the services
// that need it; there is no package-level instance.
type Store struct {
	shards   map[Namespace]*shard
	stop     chan struct{}
	stopOnce sync.Once

	now func() time.Time
}

// NewStore creates a Store with the three pipeline namespaces.
func NewStore() *Store {
	shards := make(map[Namespace]*shard)
	for _, ns := range []Namespace{NamespaceClassification, NamespaceForecast, NamespaceFingerprint} {
		shards[ns] = &shard{entries: make(map[string]entry)}
	}
	return &Store{
		shards: shards,
		stop:   make(chan struct{}),
		now:    time.Now,
	}
}

// Get returns the live value for key, or false when the key is absent or
// expired. An expired entry counts as a miss even before the sweeper runs.
func (s *Store) Get(ns Namespace, key string) (any, bool) {
	sh := s.shards[ns]
	if sh == nil {
		return nil, false
	}

	sh.mu.RLock()
	e, ok := sh.entries[key]
	sh.mu.RUnlock()

	if !ok || s.now().After(e.expiresAt) {
		sh.mu.Lock()
		sh.misses++
		sh.mu.Unlock()
		return nil, false
	}

	sh.mu.Lock()
	sh.hits++
	sh.mu.Unlock()
	return e.value, true
}

// Set stores value under key with the given TTL, overwriting any previous entry.
// A non-positive TTL falls back to DefaultTTL.
func (s *Store) Set(ns Namespace, key string, value any, ttl time.Duration) {
	sh := s.shards[ns]
	if sh == nil {
		return
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	sh.mu.Lock()
	sh.entries[key] = entry{value: value, expiresAt: s.now().Add(ttl)}
	sh.mu.Unlock()
}

// Delete removes key from the namespace. Deleting an absent key is a no-op.
func (s *Store) Delete(ns Namespace, key string) {
	sh := s.shards[ns]
	if sh == nil {
		return
	}

	sh.mu.Lock()
	delete(sh.entries, key)
	sh.mu.Unlock()
}

// DeleteWhere removes every key in the namespace matched by pred and returns
// the number of entries removed.
func (s *Store) DeleteWhere(ns Namespace, pred func(key string) bool) int {
	sh := s.shards[ns]
	if sh == nil {
		return 0
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()

	removed := 0
	for key := range sh.entries {
		if pred(key) {
			delete(sh.entries, key)
			removed++
		}
	}
	return removed
}

// ClearAll drops every entry in every namespace. Counters are kept so that
// hit rates remain meaningful across administrative resets.
func (s *Store) ClearAll() {
	for _, sh := range s.shards {
		sh.mu.Lock()
		sh.entries = make(map[string]entry)
		sh.mu.Unlock()
	}
}

// Stats returns the counters for one namespace.
func (s *Store) Stats(ns Namespace) Stats {
	sh := s.shards[ns]
	if sh == nil {
		return Stats{}
	}

	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return Stats{Hits: sh.hits, Misses: sh.misses, KeyCount: len(sh.entries)}
}

// StatsAll returns the counters for every namespace.
func (s *Store) StatsAll() map[Namespace]Stats {
	all := make(map[Namespace]Stats, len(s.shards))
	for ns := range s.shards {
		all[ns] = s.Stats(ns)
	}
	return all
}

// StartSweeper launches the background goroutine that evicts expired entries
// every interval until Stop is called. A non-positive interval uses SweepInterval.
func (s *Store) StartSweeper(interval time.Duration) {
	if interval <= 0 {
		interval = SweepInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweeper goroutine. Safe to call more than once.
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

func (s *Store) sweep() {
	cutoff := s.now()
	for _, sh := range s.shards {
		sh.mu.Lock()
		for key, e := range sh.entries {
			if cutoff.After(e.expiresAt) {
				delete(sh.entries, key)
			}
		}
		sh.mu.Unlock()
	}
}
