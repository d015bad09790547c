package faq

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/faq-autoreply/pkg/errors"
	"github.com/yanqian/faq-autoreply/pkg/util"
)

// Service exposes FAQ management and keyword auto-replies.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (Entry, error)
	Get(ctx context.Context, id int64) (Entry, error)
	List(ctx context.Context, filter ListFilter) ([]Entry, error)
	Delete(ctx context.Context, id int64) error
	Toggle(ctx context.Context, id int64) (Entry, error)
	Reply(ctx context.Context, req ReplyRequest) (ReplyResponse, error)
	TopMatches(ctx context.Context) ([]MatchStat, error)
}

type service struct {
	cfg    Config
	repo   Repository
	store  Store
	logger *slog.Logger
}

// NewService wires up the FAQ domain.
func NewService(cfg Config, repo Repository, store Store, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		store:  store,
		logger: logger.With("component", "faq.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (Entry, error) {
	entry, err := s.validateCreate(req)
	if err != nil {
		return Entry{}, err
	}
	created, err := s.repo.Insert(ctx, entry)
	if err != nil {
		return Entry{}, apperrors.Wrap(apperrors.CodeFAQ, "failed to insert entry", err)
	}
	s.invalidate(ctx, created.Language)
	s.logger.Info("faq entry created", "id", created.ID, "language", created.Language, "keywords", len(created.Keywords))
	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (Entry, error) {
	if id <= 0 {
		return Entry{}, apperrors.Invalid("id must be positive")
	}
	entry, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return Entry{}, apperrors.Wrap(apperrors.CodeFAQ, "entry lookup failed", err)
	}
	if !found {
		return Entry{}, apperrors.NotFound("faq entry not found")
	}
	return entry, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	filter.Language = strings.TrimSpace(filter.Language)
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFAQ, "failed to list entries", err)
	}
	return entries, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeFAQ, "failed to delete entry", err)
	}
	if !deleted {
		return apperrors.NotFound("faq entry not found")
	}
	s.invalidate(ctx, entry.Language)
	if err := s.store.ForgetEntry(ctx, id); err != nil {
		s.logger.Warn("faq match statistics cleanup failed", "id", id, "error", err)
	}
	s.logger.Info("faq entry deleted", "id", id)
	return nil
}

func (s *service) Toggle(ctx context.Context, id int64) (Entry, error) {
	if id <= 0 {
		return Entry{}, apperrors.Invalid("id must be positive")
	}
	entry, found, err := s.repo.Toggle(ctx, id, util.NowUTC())
	if err != nil {
		return Entry{}, apperrors.Wrap(apperrors.CodeFAQ, "failed to toggle entry", err)
	}
	if !found {
		return Entry{}, apperrors.NotFound("faq entry not found")
	}
	s.invalidate(ctx, entry.Language)
	s.logger.Info("faq entry toggled", "id", id, "active", entry.IsActive)
	return entry, nil
}

func (s *service) Reply(ctx context.Context, req ReplyRequest) (ReplyResponse, error) {
	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = s.cfg.defaultLanguage()
	}
	resp := ReplyResponse{Language: language}
	if strings.TrimSpace(req.Message) == "" {
		return resp, nil
	}

	candidates, err := s.snapshot(ctx, language)
	if err != nil {
		return ReplyResponse{}, err
	}

	result, ok := BestMatch(req.Message, language, candidates)
	if !ok {
		s.logger.Debug("faq reply no match", "language", language, "candidates", len(candidates))
		return resp, nil
	}

	if err := s.store.IncrementHit(ctx, result.Entry.ID, result.Entry.Question); err != nil {
		s.logger.Warn("faq hit increment failed", "error", err)
	}
	s.logger.Debug("faq reply matched", "id", result.Entry.ID, "term", result.Term, "language", language)

	resp.Matched = true
	resp.Answer = result.Entry.Answer
	resp.EntryID = result.Entry.ID
	return resp, nil
}

func (s *service) TopMatches(ctx context.Context) ([]MatchStat, error) {
	stats, err := s.store.TopMatches(ctx, s.cfg.TopMatches)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFAQ, "failed to load match statistics", err)
	}
	// a reply in flight during Delete can still record a hit after ForgetEntry
	live := stats[:0]
	for _, stat := range stats {
		_, found, err := s.repo.Get(ctx, stat.EntryID)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeFAQ, "failed to resolve matched entry", err)
		}
		if !found {
			if err := s.store.ForgetEntry(ctx, stat.EntryID); err != nil {
				s.logger.Warn("faq match statistics cleanup failed", "id", stat.EntryID, "error", err)
			}
			continue
		}
		live = append(live, stat)
	}
	return live, nil
}

// snapshot returns the active entries for language, preferring the cache.
func (s *service) snapshot(ctx context.Context, language string) ([]Entry, error) {
	cached, ok, err := s.store.GetSnapshot(ctx, language)
	if err != nil {
		s.logger.Warn("faq snapshot lookup failed", "language", language, "error", err)
	}
	if ok {
		return cached, nil
	}

	generation, err := s.store.SnapshotGeneration(ctx, language)
	cacheable := err == nil
	if err != nil {
		s.logger.Warn("faq snapshot generation lookup failed", "language", language, "error", err)
	}

	active := true
	entries, err := s.repo.List(ctx, ListFilter{Language: language, Active: &active})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFAQ, "failed to load candidates", err)
	}
	if !cacheable {
		return entries, nil
	}
	saved, err := s.store.SaveSnapshot(ctx, language, generation, entries, s.cfg.SnapshotTTL)
	switch {
	case err != nil:
		s.logger.Warn("faq snapshot save failed", "language", language, "error", err)
	case !saved:
		s.logger.Debug("faq snapshot superseded by concurrent write", "language", language)
	}
	return entries, nil
}

func (s *service) invalidate(ctx context.Context, language string) {
	if err := s.store.InvalidateSnapshot(ctx, language); err != nil {
		s.logger.Warn("faq snapshot invalidation failed", "language", language, "error", err)
	}
}

func (s *service) validateCreate(req CreateRequest) (NewEntry, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return NewEntry{}, apperrors.Invalid("question cannot be empty")
	}
	answer := req.Answer
	if strings.TrimSpace(answer) == "" {
		return NewEntry{}, apperrors.Invalid("answer cannot be empty")
	}
	keywords := ParseKeywords(req.Keywords.String())
	if len(keywords) == 0 {
		return NewEntry{}, apperrors.Invalid("keywords cannot be empty")
	}
	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = s.cfg.defaultLanguage()
	}
	if !s.cfg.supports(language) {
		return NewEntry{}, apperrors.Invalid("unsupported language " + language)
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return NewEntry{
		Question: question,
		Answer:   answer,
		Keywords: keywords,
		Language: language,
		IsActive: active,
	}, nil
}
