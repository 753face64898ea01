package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harshaakurathi/newMCQ-backend/internal/execution"
	"github.com/harshaakurathi/newMCQ-backend/internal/genai"
	"github.com/harshaakurathi/newMCQ-backend/internal/httpapi"
	"github.com/harshaakurathi/newMCQ-backend/internal/platform/cache"
	"github.com/harshaakurathi/newMCQ-backend/internal/platform/config"
	"github.com/harshaakurathi/newMCQ-backend/internal/platform/database"
	"github.com/harshaakurathi/newMCQ-backend/internal/qbank"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := database.New(ctx, cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(closeCtx); err != nil {
			slog.Error("database close error", "error", err)
		}
	}()

	store, err := qbank.NewMongoStore(ctx, db.Database())
	if err != nil {
		return fmt.Errorf("initializing subject store: %w", err)
	}

	router := genai.NewRouter()
	if cfg.AI.Google.APIKey != "" {
		router.Register("google", genai.NewGeminiProvider(cfg.AI.Google.APIKey))
		slog.Info("generation provider registered", "provider", "google")
	}
	if cfg.AI.OpenAI.APIKey != "" {
		router.Register("openai", genai.NewOpenAIProvider(cfg.AI.OpenAI.APIKey))
		slog.Info("generation provider registered", "provider", "openai")
	}
	generator := genai.NewService(router, cfg.AI.Model)

	lifecycle := qbank.NewLifecycle(store, generator)

	exec := execution.NewClient(cfg.Execution.BaseURL, cfg.Execution.APIKey,
		execution.WithPollInterval(time.Duration(cfg.Execution.PollIntervalMS)*time.Millisecond),
		execution.WithMaxPolls(cfg.Execution.MaxPolls),
	)

	apiOpts := []httpapi.Option{
		httpapi.WithHealthChecker("database", db),
		httpapi.WithHealthChecker("generation", generator),
	}
	if cfg.Cache.Enabled {
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			return fmt.Errorf("connecting to cache: %w", err)
		}
		defer func() {
			if err := c.Close(); err != nil {
				slog.Error("cache close error", "error", err)
			}
		}()
		apiOpts = append(apiOpts, httpapi.WithCache(c), httpapi.WithHealthChecker("cache", c))
		slog.Info("subject list cache enabled")
	}

	api := httpapi.New(lifecycle, exec, apiOpts...)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
