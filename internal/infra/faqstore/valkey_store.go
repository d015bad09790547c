package faqstore

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/faq-autoreply/internal/domain/faq"
)

const defaultTopMatches = 10

// saveIfCurrent sets KEYS[2] to ARGV[2] (with ARGV[3] seconds of expiry when
// positive) only if KEYS[1] still holds generation ARGV[1].
var saveIfCurrent = valkey.NewLuaScript(`
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
  return 0
end
if tonumber(ARGV[3]) > 0 then
  redis.call('SET', KEYS[2], ARGV[2], 'EX', ARGV[3])
else
  redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

// ValkeyStore persists FAQ snapshots and match counters using a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "faq"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// GetSnapshot returns the cached active entries for language; a miss is not an error.
func (s *ValkeyStore) GetSnapshot(ctx context.Context, language string) ([]faq.Entry, bool, error) {
	cmd := s.client.B().Get().Key(s.snapshotKey(language)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var entries []faq.Entry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

// SnapshotGeneration returns the invalidation counter for language; a missing key is generation 0.
func (s *ValkeyStore) SnapshotGeneration(ctx context.Context, language string) (int64, error) {
	generation, err := s.client.Do(ctx, s.client.B().Get().Key(s.generationKey(language)).Build()).AsInt64()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return 0, nil
		}
		return 0, err
	}
	return generation, nil
}

// SaveSnapshot writes the snapshot only while the language generation still
// equals generation. The compare and the SET run in one script.
func (s *ValkeyStore) SaveSnapshot(ctx context.Context, language string, generation int64, entries []faq.Entry, ttl time.Duration) (bool, error) {
	if entries == nil {
		entries = []faq.Entry{}
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return false, err
	}
	seconds := int64(0)
	if ttl > 0 {
		seconds = int64(math.Ceil(ttl.Seconds()))
	}
	keys := []string{s.generationKey(language), s.snapshotKey(language)}
	args := []string{strconv.FormatInt(generation, 10), string(payload), strconv.FormatInt(seconds, 10)}
	written, err := saveIfCurrent.Exec(ctx, s.client, keys, args).AsInt64()
	if err != nil {
		return false, err
	}
	return written == 1, nil
}

// InvalidateSnapshot bumps the generation before dropping the snapshot so an
// in-flight save cannot land between the two.
func (s *ValkeyStore) InvalidateSnapshot(ctx context.Context, language string) error {
	results := s.client.DoMulti(ctx,
		s.client.B().Incr().Key(s.generationKey(language)).Build(),
		s.client.B().Del().Key(s.snapshotKey(language)).Build(),
	)
	for _, result := range results {
		if err := result.Error(); err != nil {
			return err
		}
	}
	return nil
}

// IncrementHit bumps the leaderboard and remembers the first display string
// seen for the entry, in one round trip.
func (s *ValkeyStore) IncrementHit(ctx context.Context, entryID int64, display string) error {
	if entryID <= 0 {
		return nil
	}
	member := strconv.FormatInt(entryID, 10)
	cmds := valkey.Commands{
		s.client.B().Zincrby().Key(s.hitsKey()).Increment(1).Member(member).Build(),
	}
	if display != "" {
		cmds = append(cmds, s.client.B().Set().Key(s.displayKey(member)).Value(display).Nx().Build())
	}
	results := s.client.DoMulti(ctx, cmds...)
	return results[0].Error()
}

// ForgetEntry removes a deleted entry from the leaderboard together with its display string.
func (s *ValkeyStore) ForgetEntry(ctx context.Context, entryID int64) error {
	member := strconv.FormatInt(entryID, 10)
	results := s.client.DoMulti(ctx,
		s.client.B().Zrem().Key(s.hitsKey()).Member(member).Build(),
		s.client.B().Del().Key(s.displayKey(member)).Build(),
	)
	for _, result := range results {
		if err := result.Error(); err != nil {
			return err
		}
	}
	return nil
}

// TopMatches reads the hit leaderboard and resolves display strings in a
// single MGET.
func (s *ValkeyStore) TopMatches(ctx context.Context, limit int) ([]faq.MatchStat, error) {
	if limit <= 0 {
		limit = defaultTopMatches
	}
	cmd := s.client.B().Zrevrange().Key(s.hitsKey()).Start(0).Stop(int64(limit - 1)).Withscores().Build()
	scores, err := s.client.Do(ctx, cmd).AsZScores()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(scores) == 0 {
		return nil, nil
	}

	out := make([]faq.MatchStat, 0, len(scores))
	keys := make([]string, 0, len(scores))
	for _, score := range scores {
		id, err := strconv.ParseInt(score.Member, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, faq.MatchStat{EntryID: id, Count: int64(score.Score)})
		keys = append(keys, s.displayKey(score.Member))
	}
	if len(keys) == 0 {
		return out, nil
	}

	displays, err := s.client.Do(ctx, s.client.B().Mget().Key(keys...).Build()).ToArray()
	if err != nil {
		return out, nil
	}
	for i := range out {
		if i < len(displays) {
			if text, err := displays[i].ToString(); err == nil {
				out[i].Question = text
			}
		}
	}
	return out, nil
}

func (s *ValkeyStore) snapshotKey(language string) string {
	return fmt.Sprintf("%s:snapshot:%s", s.prefix, language)
}

func (s *ValkeyStore) generationKey(language string) string {
	return fmt.Sprintf("%s:snapshot-gen:%s", s.prefix, language)
}

func (s *ValkeyStore) hitsKey() string {
	return fmt.Sprintf("%s:hits", s.prefix)
}

func (s *ValkeyStore) displayKey(member string) string {
	return fmt.Sprintf("%s:display:%s", s.prefix, member)
}

var _ faq.Store = (*ValkeyStore)(nil)
