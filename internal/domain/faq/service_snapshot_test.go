package faq_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faq-autoreply/internal/domain/faq"
	"github.com/yanqian/faq-autoreply/internal/infra/faqrepo"
	"github.com/yanqian/faq-autoreply/internal/infra/faqstore"
)

// pausingRepository parks the next List call after it has read its rows,
// until release is closed.
type pausingRepository struct {
	*faqrepo.MemoryRepository
	pauseNext atomic.Bool
	listed    chan struct{}
	release   chan struct{}
}

func (r *pausingRepository) List(ctx context.Context, filter faq.ListFilter) ([]faq.Entry, error) {
	entries, err := r.MemoryRepository.List(ctx, filter)
	if r.pauseNext.CompareAndSwap(true, false) {
		close(r.listed)
		<-r.release
	}
	return entries, err
}

type replyResult struct {
	resp faq.ReplyResponse
	err  error
}

func TestService_ToggleDuringSnapshotLoadIsNotCached(t *testing.T) {
	repo := &pausingRepository{
		MemoryRepository: faqrepo.NewMemoryRepository(),
		listed:           make(chan struct{}),
		release:          make(chan struct{}),
	}
	cfg := faq.Config{DefaultLanguage: "en", Languages: []string{"en"}, SnapshotTTL: time.Hour, TopMatches: 5}
	svc := faq.NewService(cfg, repo, faqstore.NewMemoryStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	entry, err := svc.Create(ctx, faq.CreateRequest{Question: "How to reach you?", Answer: "Call us!", Keywords: faq.Keywords{"contact"}, Language: "en"})
	require.NoError(t, err)

	repo.pauseNext.Store(true)
	inflight := make(chan replyResult, 1)
	go func() {
		resp, err := svc.Reply(ctx, faq.ReplyRequest{Message: "contact please", Language: "en"})
		inflight <- replyResult{resp: resp, err: err}
	}()

	select {
	case <-repo.listed:
	case <-time.After(2 * time.Second):
		t.Fatal("reply never loaded candidates")
	}
	toggled, err := svc.Toggle(ctx, entry.ID)
	require.NoError(t, err)
	require.False(t, toggled.IsActive)
	close(repo.release)

	first := <-inflight
	require.NoError(t, first.err)
	require.True(t, first.resp.Matched, "the in-flight reply read rows before the toggle")

	after, err := svc.Reply(ctx, faq.ReplyRequest{Message: "contact please", Language: "en"})
	require.NoError(t, err)
	require.False(t, after.Matched, "toggled-off entry answered from a stale snapshot")
}

func TestService_DeleteDuringSnapshotLoadIsNotCached(t *testing.T) {
	repo := &pausingRepository{
		MemoryRepository: faqrepo.NewMemoryRepository(),
		listed:           make(chan struct{}),
		release:          make(chan struct{}),
	}
	cfg := faq.Config{DefaultLanguage: "en", Languages: []string{"en"}, SnapshotTTL: time.Hour, TopMatches: 5}
	svc := faq.NewService(cfg, repo, faqstore.NewMemoryStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	entry, err := svc.Create(ctx, faq.CreateRequest{Question: "Hours?", Answer: "9 to 5", Keywords: faq.Keywords{"hours"}, Language: "en"})
	require.NoError(t, err)

	repo.pauseNext.Store(true)
	inflight := make(chan replyResult, 1)
	go func() {
		resp, err := svc.Reply(ctx, faq.ReplyRequest{Message: "opening hours", Language: "en"})
		inflight <- replyResult{resp: resp, err: err}
	}()

	select {
	case <-repo.listed:
	case <-time.After(2 * time.Second):
		t.Fatal("reply never loaded candidates")
	}
	require.NoError(t, svc.Delete(ctx, entry.ID))
	close(repo.release)
	require.NoError(t, (<-inflight).err)

	after, err := svc.Reply(ctx, faq.ReplyRequest{Message: "opening hours", Language: "en"})
	require.NoError(t, err)
	require.False(t, after.Matched)

	stats, err := svc.TopMatches(ctx)
	require.NoError(t, err)
	for _, stat := range stats {
		require.NotEqual(t, entry.ID, stat.EntryID)
	}
}
