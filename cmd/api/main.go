package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ewilliams-labs/deepcut/backend/internal/adapters/gemini"
	"github.com/ewilliams-labs/deepcut/backend/internal/adapters/itunes"
	"github.com/ewilliams-labs/deepcut/backend/internal/adapters/lastfm"
	"github.com/ewilliams-labs/deepcut/backend/internal/adapters/ollama"
	"github.com/ewilliams-labs/deepcut/backend/internal/adapters/rest"
	"github.com/ewilliams-labs/deepcut/backend/internal/adapters/sqlite"
	"github.com/ewilliams-labs/deepcut/backend/internal/config"
	"github.com/ewilliams-labs/deepcut/backend/internal/core/ports"
	"github.com/ewilliams-labs/deepcut/backend/internal/core/services"
	"github.com/ewilliams-labs/deepcut/backend/internal/logging"
	"github.com/ewilliams-labs/deepcut/backend/internal/worker"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		// Logger is not configured yet; the default JSON logger still works.
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	// 2. Initialize "Driven" Adapters
	// -- Language model
	var model ports.LanguageModel
	switch cfg.LLM.Provider {
	case "gemini":
		model = gemini.NewClient(cfg.LLM.GeminiBaseURL, cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiModel, cfg.LLM.Timeout)
	case "ollama":
		model = ollama.NewClient(cfg.LLM.OllamaHost, cfg.LLM.OllamaModel, cfg.LLM.Timeout)
	default:
		logging.Fatal().Str("provider", cfg.LLM.Provider).Msg("unknown language model provider")
	}

	// -- Catalog lookups
	catalog := itunes.NewClient(cfg.Catalog.ITunesBaseURL, cfg.Catalog.LookupTimeout,
		itunes.WithRateLimit(cfg.Catalog.ITunesRateLimit))

	opts := []services.EnricherOption{services.WithLookupTimeout(cfg.Catalog.LookupTimeout)}
	if cfg.Catalog.ImageFallbackEnabled() {
		opts = append(opts, services.WithImageFallback(lastfm.NewClient(
			cfg.Catalog.LastFMBaseURL,
			cfg.Catalog.LastFMAPIKey,
			cfg.Catalog.LastFMRateLimit,
			cfg.Catalog.LookupTimeout,
		)))
	} else {
		logging.Info().Msg("LASTFM_API_KEY not set; image fallback disabled")
	}

	// -- Enrichment cache
	if cfg.Cache.Enabled() {
		cache, err := sqlite.NewAdapter(cfg.Cache.Path, cfg.Cache.TTL)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Cache.Path).Msg("failed to open enrichment cache")
		}
		defer cache.Close()
		if n, err := cache.Purge(context.Background()); err != nil {
			logging.Warn().Err(err).Msg("failed to purge stale cache entries")
		} else if n > 0 {
			logging.Info().Int64("removed", n).Msg("purged stale cache entries")
		}
		opts = append(opts, services.WithCache(cache))
	}

	// 3. Initialize Core Logic
	enricher := services.NewEnricher(catalog, opts...)
	pool := worker.NewPool(enricher, cfg.Enrich.QueueSize)
	pool.Start(cfg.Enrich.Workers)
	defer pool.Stop()

	svc := services.NewOrchestrator(services.NewGenerator(model), pool)

	// 4. Initialize "Driving" Adapter
	handler := rest.NewHandler(svc, cfg.Server.CORSOrigins)

	// 5. Start the Server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	logging.Info().
		Str("addr", srv.Addr).
		Str("llm_provider", cfg.LLM.Provider).
		Int("workers", cfg.Enrich.Workers).
		Bool("image_fallback", cfg.Catalog.ImageFallbackEnabled()).
		Bool("cache", cfg.Cache.Enabled()).
		Msg("deepcut API starting")

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			logging.Error().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		logging.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("shutdown error")
		}
	}
}
