package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexiqai/voice-studio/internal/api"
	"github.com/lexiqai/voice-studio/internal/catalog"
	"github.com/lexiqai/voice-studio/internal/config"
	"github.com/lexiqai/voice-studio/internal/observability"
	"github.com/lexiqai/voice-studio/internal/synthesis"
	"github.com/lexiqai/voice-studio/internal/tts"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use fmt for fatal errors before logger is initialized
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	observability.InitLogger(cfg.LogLevel, cfg.LogPretty)
	logger := observability.GetLogger()

	logger.Info().
		Str("port", cfg.Port).
		Str("region", cfg.AzureServiceRegion).
		Str("voices_file", cfg.VoicesFile).
		Str("log_level", cfg.LogLevel).
		Bool("metrics_enabled", cfg.MetricsEnabled).
		Bool("synthesis_cache", cfg.RedisURL != "").
		Msg("Voice Studio starting")

	if cfg.AzureSubscriptionKey == "" || cfg.AzureServiceRegion == "" {
		logger.Warn().Msg("Azure credentials are not set; provider calls will fail until AZURE_SUBSCRIPTION_KEY and AZURE_SERVICE_REGION are configured")
	}

	client := tts.NewAzureClient(cfg)
	store := catalog.NewFileStore(cfg.VoicesFile)
	fetcher := catalog.NewFetcher(client, store, catalog.Normalizer{
		FlagBaseURL: cfg.FlagBaseURL,
		Engine:      cfg.CatalogEngine,
	})

	var (
		opts   []synthesis.Option
		checks []observability.NamedCheck
	)
	if cfg.RedisURL != "" {
		cache, err := synthesis.NewRedisCache(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("Invalid REDIS_URL")
		}
		defer cache.Close()

		opts = append(opts, synthesis.WithCache(cache, cfg.SynthesisCacheTTLDuration()))
		checks = append(checks, observability.NamedCheck{Name: "redis", Check: func(ctx context.Context) (bool, error) {
			if err := cache.Ping(ctx); err != nil {
				return false, err
			}
			return true, nil
		}})
	}

	// Seed the catalog on first run; failures are only logged
	if !store.Exists() {
		logger.Info().Msg("Voice catalog not found, fetching in background")
		fetcher.RefreshAsync(catalog.TriggerStartup)
	}

	handler := api.NewRouter(api.Deps{
		Store:          store,
		Refresher:      fetcher,
		Synthesizer:    synthesis.NewService(client, opts...),
		Breaker:        client.Breaker(),
		PublicDir:      cfg.PublicDir,
		AllowedOrigins: cfg.AllowedOrigins(),
		MetricsEnabled: cfg.MetricsEnabled,
		ExtraChecks:    checks,
	})

	// Write timeout leaves room for a full upstream call
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeoutDuration() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("url", fmt.Sprintf("http://localhost:%s", cfg.Port)).
			Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	logger.Info().Msg("Server exited gracefully")
}
