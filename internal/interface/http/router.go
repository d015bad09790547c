package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/faq-autoreply/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	logger = logger.With("component", "http.router")
	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(logger),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	api.Use(rateLimitMiddleware(cfg.HTTP.RateLimit, logger))
	{
		api.POST("/faq/reply", handler.Reply)
		api.GET("/faq/top", handler.TopMatches)
	}

	if cfg.Admin.Enabled {
		admin := api.Group("/admin", adminAuthMiddleware(cfg.Admin))
		{
			admin.GET("/faq", handler.ListEntries)
			admin.POST("/faq", handler.CreateEntry)
			admin.GET("/faq/:id", handler.GetEntry)
			admin.DELETE("/faq/:id", handler.DeleteEntry)
			admin.POST("/faq/:id/toggle", handler.ToggleEntry)
		}
	} else {
		logger.Info("admin api disabled")
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
