package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/faq-autoreply/internal/domain/faq"
	"github.com/yanqian/faq-autoreply/internal/infra/config"
	"github.com/yanqian/faq-autoreply/internal/infra/faqrepo"
	"github.com/yanqian/faq-autoreply/internal/infra/faqstore"
	"github.com/yanqian/faq-autoreply/pkg/logger"
)

func provideLogger(cfg *config.Config) *slog.Logger {
	return logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
}

func provideFAQConfig(cfg *config.Config) faq.Config {
	return faq.Config{
		DefaultLanguage: cfg.FAQ.DefaultLanguage,
		Languages:       append([]string(nil), cfg.FAQ.Languages...),
		SnapshotTTL:     cfg.FAQ.SnapshotTTL,
		TopMatches:      cfg.FAQ.TopMatches,
	}
}

func provideFAQRepository(cfg *config.Config, logger *slog.Logger) (faq.Repository, func()) {
	noop := func() {}
	fallback := faqrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.FAQ.Postgres.DSN)
	if dsn == "" {
		logger.Info("faq postgres dsn not set, using memory repository")
		return fallback, noop
	}
	if cfg.FAQ.Postgres.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		applied, err := faqrepo.Migrate(ctx, dsn)
		cancel()
		if err != nil {
			logger.Error("faq migrations failed, using memory repository", "error", err)
			return fallback, noop
		}
		logger.Info("faq migrations applied", "count", applied)
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback, noop
	}
	if cfg.FAQ.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.FAQ.Postgres.MaxConns
	}
	if cfg.FAQ.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.FAQ.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback, noop
	}
	logger.Info("faq postgres repository enabled")
	return faqrepo.NewPostgresRepository(pool), pool.Close
}

func provideFAQStore(cfg *config.Config, logger *slog.Logger) (faq.Store, func()) {
	noop := func() {}
	if !cfg.FAQ.Redis.Enabled {
		return faqstore.NewMemoryStore(), noop
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return faqstore.NewMemoryStore(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return faqstore.NewMemoryStore(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return faqstore.NewMemoryStore(), noop
	}
	logger.Info("faq valkey store enabled", "addr", cfg.FAQ.Redis.Addr, "prefix", cfg.FAQ.Redis.Prefix)
	return faqstore.NewValkeyStore(client, cfg.FAQ.Redis.Prefix), client.Close
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.FAQ.Redis.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.FAQ.Redis.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.FAQ.Redis.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
