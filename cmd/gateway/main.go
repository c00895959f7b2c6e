package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/curatorhq/social-admin-gateway/internal/auth"
	"github.com/curatorhq/social-admin-gateway/internal/config"
	"github.com/curatorhq/social-admin-gateway/internal/dashboard"
	"github.com/curatorhq/social-admin-gateway/internal/server"
	"github.com/curatorhq/social-admin-gateway/internal/storage"
	"github.com/curatorhq/social-admin-gateway/internal/storage/sqlite"
	"github.com/curatorhq/social-admin-gateway/internal/telemetry"
	"github.com/curatorhq/social-admin-gateway/internal/upstream"
)

const configPath = "config.yaml"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	shutdownTracer, err := telemetry.InitTracer("social-admin-gateway", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	watcher, err := config.NewWatcher(configPath, logger)
	if err != nil {
		log.Fatalf("Failed to create config watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := watcher.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	upstreamTimeout, err := time.ParseDuration(cfg.Upstream.Timeout)
	if err != nil {
		log.Fatalf("Invalid upstream timeout %q: %v", cfg.Upstream.Timeout, err)
	}

	fetcher := upstream.NewClient(cfg.Upstream.APIKey,
		upstream.WithBaseURL(cfg.Upstream.BaseURL),
		upstream.WithHTTPClient(&http.Client{
			Timeout:   upstreamTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}),
	)

	var store storage.ScheduleStore
	if cfg.Storage.Type == "sqlite" {
		s, err := sqlite.New(cfg.Storage.SQLite.Path)
		if err != nil {
			log.Fatalf("Failed to open schedule store: %v", err)
		}
		defer s.Close()
		store = s
	} else {
		logger.Warn("schedule storage disabled", slog.String("type", cfg.Storage.Type))
	}

	var authenticator *auth.Authenticator
	if len(cfg.Auth.APIKeys) > 0 {
		keys := make([]auth.Key, 0, len(cfg.Auth.APIKeys))
		for _, k := range cfg.Auth.APIKeys {
			keys = append(keys, auth.Key{Hash: k.KeyHash, Description: k.Description})
		}
		authenticator = auth.NewAuthenticator(keys)
	} else {
		logger.Warn("no API keys configured, dashboard API is unauthenticated")
	}

	handler := dashboard.NewHandler(fetcher, store, logger,
		cfg.Dashboard.DefaultPageSize, cfg.Dashboard.MaxPageSize)

	srv := server.New(cfg.Server.Port, logger, authenticator)
	srv.Router.Route("/api", handler.Routes)
	srv.Router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Page-size limits apply on reload; server, upstream, and auth changes
	// need a restart.
	if err := watcher.Watch(ctx, func(updated *config.Config) {
		handler.SetPageSizes(updated.Dashboard.DefaultPageSize, updated.Dashboard.MaxPageSize)
		logger.Info("config reloaded",
			slog.Int("default_page_size", updated.Dashboard.DefaultPageSize),
			slog.Int("max_page_size", updated.Dashboard.MaxPageSize))
	}); err != nil {
		logger.Warn("config hot-reload unavailable", slog.String("error", err.Error()))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case <-sigChan:
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server shutdown complete")
}
