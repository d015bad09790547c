package faqstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yanqian/faq-autoreply/internal/domain/faq"
)

type snapshotRecord struct {
	entries   []faq.Entry
	expiresAt time.Time
}

// MemoryStore keeps snapshots and counters in process memory. It backs
// single-instance deployments and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]snapshotRecord
	gens      map[string]int64
	hits      map[int64]int64
	displays  map[int64]string
	now       func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return newMemoryStore(time.Now)
}

func newMemoryStore(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]snapshotRecord),
		gens:      make(map[string]int64),
		hits:      make(map[int64]int64),
		displays:  make(map[int64]string),
		now:       now,
	}
}

// GetSnapshot implements faq.Store.
func (s *MemoryStore) GetSnapshot(_ context.Context, language string) ([]faq.Entry, bool, error) {
	s.mu.RLock()
	record, ok := s.snapshots[language]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if s.expired(record.expiresAt) {
		s.mu.Lock()
		delete(s.snapshots, language)
		s.mu.Unlock()
		return nil, false, nil
	}
	return append([]faq.Entry(nil), record.entries...), true, nil
}

// SnapshotGeneration returns the current snapshot generation for language.
func (s *MemoryStore) SnapshotGeneration(_ context.Context, language string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gens[language], nil
}

// SaveSnapshot caches the entries with optional TTL unless language was
// invalidated after generation was read.
func (s *MemoryStore) SaveSnapshot(_ context.Context, language string, generation int64, entries []faq.Entry, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[language] != generation {
		return false, nil
	}
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.snapshots[language] = snapshotRecord{
		entries:   append([]faq.Entry(nil), entries...),
		expiresAt: exp,
	}
	return true, nil
}

// InvalidateSnapshot drops the cached entries for language and bumps its generation.
func (s *MemoryStore) InvalidateSnapshot(_ context.Context, language string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens[language]++
	delete(s.snapshots, language)
	return nil
}

// IncrementHit bumps the counter for an entry and records a display string.
func (s *MemoryStore) IncrementHit(_ context.Context, entryID int64, display string) error {
	if entryID <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hits[entryID]++
	if _, exists := s.displays[entryID]; !exists {
		s.displays[entryID] = display
	}
	return nil
}

// ForgetEntry drops the counter and display string of a deleted entry.
func (s *MemoryStore) ForgetEntry(_ context.Context, entryID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hits, entryID)
	delete(s.displays, entryID)
	return nil
}

// TopMatches returns the most frequently matched entries.
func (s *MemoryStore) TopMatches(_ context.Context, limit int) ([]faq.MatchStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = defaultTopMatches
	}
	items := make([]faq.MatchStat, 0, len(s.hits))
	for id, count := range s.hits {
		items = append(items, faq.MatchStat{EntryID: id, Question: s.displays[id], Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].EntryID < items[j].EntryID
		}
		return items[i].Count > items[j].Count
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *MemoryStore) expired(at time.Time) bool {
	return !at.IsZero() && !s.now().Before(at)
}

var _ faq.Store = (*MemoryStore)(nil)
