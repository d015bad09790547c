//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/faq-autoreply/internal/bootstrap"
	"github.com/yanqian/faq-autoreply/internal/domain/faq"
	"github.com/yanqian/faq-autoreply/internal/infra/config"
	httpiface "github.com/yanqian/faq-autoreply/internal/interface/http"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		provideLogger,
		provideFAQConfig,
		provideFAQRepository,
		provideFAQStore,
		faq.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
