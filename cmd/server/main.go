// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/challengerec/internal/api"
	"github.com/tomtom215/challengerec/internal/cache"
	"github.com/tomtom215/challengerec/internal/config"
	"github.com/tomtom215/challengerec/internal/database"
	"github.com/tomtom215/challengerec/internal/logging"
	"github.com/tomtom215/challengerec/internal/recommend"
	"github.com/tomtom215/challengerec/internal/supervisor"
	"github.com/tomtom215/challengerec/internal/supervisor/services"
	"github.com/tomtom215/challengerec/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("title", cfg.Server.Title).
		Str("db_path", cfg.Database.Path).
		Str("cache_backend", cfg.Cache.Backend).
		Str("upstream", cfg.Upstream.BaseURL).
		Msg("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	store := openCacheStore(ctx, &cfg.Cache)
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing cache")
		}
	}()
	lists := cache.NewListCache(store, cfg.Cache.TTL, logging.WithComponent("cache"))

	client := upstream.New(&cfg.Upstream, logging.WithComponent("upstream"))

	engine, err := recommend.NewEngine(engineConfig(cfg), db, client, lists, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	if err := engine.LoadState(ctx); err != nil {
		logging.Fatal().Err(err).Msg("Failed to load graph state")
	}
	if !engine.Ready() {
		logging.Info().Msg("No similarity graph yet; recommendations fall back to the catalog until the first refresh")
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	handler := api.NewHandler(engine, cfg)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.Timeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewRefreshService(engine, services.RefreshServiceConfig{
		RefreshOnStartup: cfg.Recommend.RefreshOnStartup,
		Interval:         cfg.Recommend.RefreshInterval,
	}, logging.WithComponent("supervisor")))

	if gc, ok := store.(services.GarbageCollector); ok {
		tree.AddMaintenanceService(services.NewCacheGCService(gc, 0, logging.WithComponent("supervisor")))
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Timeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// openCacheStore falls back to the in-process store when the configured
// backend is unreachable at startup.
func openCacheStore(ctx context.Context, cfg *config.CacheConfig) cache.Store {
	store, err := cache.NewStore(ctx, cfg)
	if err == nil {
		logging.Info().Str("backend", store.Name()).Msg("Cache initialized")
		return store
	}
	logging.Warn().Err(err).Str("backend", cfg.Backend).Msg("Cache backend unavailable, using in-memory cache")
	return cache.NewMemoryStore(5 * time.Minute)
}

func engineConfig(cfg *config.Config) *recommend.Config {
	rc := recommend.DefaultConfig()
	rc.Neighbors = cfg.Recommend.Neighbors
	if cfg.Recommend.RefreshTimeout > 0 {
		rc.RefreshTimeout = cfg.Recommend.RefreshTimeout
	}
	if cfg.Recommend.RequestTimeout > 0 {
		rc.RequestTimeout = cfg.Recommend.RequestTimeout
	}
	return rc
}
