package faqrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yanqian/faq-autoreply/internal/domain/faq"
	"github.com/yanqian/faq-autoreply/pkg/util"
)

// MemoryRepository is an in-memory faq.Repository used for tests/dev.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64

	records map[int64]faq.Entry
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID:  1,
		records: make(map[int64]faq.Entry),
	}
}

// Get implements faq.Repository.
func (r *MemoryRepository) Get(_ context.Context, id int64) (faq.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return faq.Entry{}, false, nil
	}
	return cloneEntry(rec), true, nil
}

// List implements faq.Repository.
func (r *MemoryRepository) List(_ context.Context, filter faq.ListFilter) ([]faq.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]faq.Entry, 0, len(r.records))
	for _, rec := range r.records {
		if filter.Language != "" && rec.Language != filter.Language {
			continue
		}
		if filter.Active != nil && rec.IsActive != *filter.Active {
			continue
		}
		out = append(out, cloneEntry(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Insert implements faq.Repository.
func (r *MemoryRepository) Insert(_ context.Context, entry faq.NewEntry) (faq.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++

	record := faq.Entry{
		ID:        id,
		Question:  entry.Question,
		Answer:    entry.Answer,
		Keywords:  append(faq.Keywords(nil), entry.Keywords...),
		Language:  entry.Language,
		IsActive:  entry.IsActive,
		CreatedAt: util.NowUTC(),
	}
	r.records[id] = record
	return cloneEntry(record), nil
}

// Delete implements faq.Repository.
func (r *MemoryRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return false, nil
	}
	delete(r.records, id)
	return true, nil
}

// Toggle implements faq.Repository.
func (r *MemoryRepository) Toggle(_ context.Context, id int64, at time.Time) (faq.Entry, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return faq.Entry{}, false, nil
	}
	rec.IsActive = !rec.IsActive
	updated := at
	rec.UpdatedAt = &updated
	r.records[id] = rec
	return cloneEntry(rec), true, nil
}

func cloneEntry(e faq.Entry) faq.Entry {
	e.Keywords = append(faq.Keywords(nil), e.Keywords...)
	if e.UpdatedAt != nil {
		ts := *e.UpdatedAt
		e.UpdatedAt = &ts
	}
	return e
}

var _ faq.Repository = (*MemoryRepository)(nil)
