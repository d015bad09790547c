package faq

import (
	"context"
	"time"
)

// Repository encapsulates persistence of FAQ entries.
type Repository interface {
	Get(ctx context.Context, id int64) (Entry, bool, error)
	List(ctx context.Context, filter ListFilter) ([]Entry, error)
	Insert(ctx context.Context, entry NewEntry) (Entry, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Toggle(ctx context.Context, id int64, at time.Time) (Entry, bool, error)
}
