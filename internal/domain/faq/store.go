package faq

import (
	"context"
	"time"
)

// Store caches per-language snapshots of active entries and counts matches.
//
// Snapshots are versioned by a per-language generation. InvalidateSnapshot
// bumps it, and SaveSnapshot only writes when the generation read before
// loading the entries is still current, so a slow reader cannot restore a
// snapshot that a concurrent write has already invalidated.
type Store interface {
	GetSnapshot(ctx context.Context, language string) ([]Entry, bool, error)
	SnapshotGeneration(ctx context.Context, language string) (int64, error)
	SaveSnapshot(ctx context.Context, language string, generation int64, entries []Entry, ttl time.Duration) (bool, error)
	InvalidateSnapshot(ctx context.Context, language string) error
	IncrementHit(ctx context.Context, entryID int64, display string) error
	ForgetEntry(ctx context.Context, entryID int64) error
	TopMatches(ctx context.Context, limit int) ([]MatchStat, error)
}
