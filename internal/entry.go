// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/minsukim/tripdeck/internal/api"
	"github.com/minsukim/tripdeck/internal/gallery"
	"github.com/minsukim/tripdeck/internal/interpreter"
	"github.com/minsukim/tripdeck/internal/planner"
	"github.com/minsukim/tripdeck/internal/sse"
	"github.com/minsukim/tripdeck/internal/store"
	"github.com/minsukim/tripdeck/internal/weather"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("data_dir", cfg.Data.Dir),
		slog.Int("trip_year", cfg.Trip.Year),
		slog.Bool("interpreter_enabled", cfg.OpenAI.APIKey != ""),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure data directory exists.
	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	svc, err := NewService(cfg)
	if err != nil {
		return err
	}

	photos, err := gallery.NewStore(filepath.Join(cfg.Data.Dir, "photos"))
	if err != nil {
		return fmt.Errorf("init photo gallery: %w", err)
	}

	interp := interpreter.NewClient(nil, interpreter.Config{
		APIKey:         cfg.OpenAI.APIKey,
		BaseURL:        cfg.OpenAI.BaseURL,
		TranslateModel: cfg.OpenAI.TranslateModel,
		STTModel:       cfg.OpenAI.STTModel,
		TTSModel:       cfg.OpenAI.TTSModel,
		TTSVoice:       cfg.OpenAI.TTSVoice,
		OCRModel:       cfg.OpenAI.OCRModel,
	})
	cooldown := interpreter.NewCooldown(time.Duration(cfg.OpenAI.CooldownMS) * time.Millisecond)
	forecast := weather.NewClient(cfg.Weather.Latitude, cfg.Weather.Longitude)

	// SSE broker.
	broker := sse.NewBroker()
	defer broker.Close()

	// Build API handler and router.
	h := api.NewHandler(svc, interp, cooldown, forecast, photos, broker)
	apiRouter := api.NewRouter(h, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	// Photo file serving.
	r.Get("/photos/{name}", h.ServePhoto)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start file watcher with SSE callback.
	g.Go(func() error {
		if err := store.Watch(gCtx, cfg.Data.Dir, logger, broker.PublishChange); err != nil {
			logger.Warn("watcher failed", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// NewService builds a planner service over the configured data directory.
// The MCP entrypoint uses it directly without starting the HTTP server.
func NewService(cfg *Config) (*planner.Service, error) {
	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return planner.NewService(
		store.NewSchedule(cfg.Data.Dir),
		store.NewCandidates(cfg.Data.Dir),
		store.NewExpenses(cfg.Data.Dir),
		cfg.Trip.Year,
		cfg.Maps.APIKey,
	), nil
}
