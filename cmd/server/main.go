package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcoot/mixplugin-go/internal/api"
	"github.com/mcoot/mixplugin-go/internal/config"
	"github.com/mcoot/mixplugin-go/internal/factory"
	"github.com/mcoot/mixplugin-go/internal/host/httphost"
	"github.com/mcoot/mixplugin-go/internal/services/auth"
	redisstorage "github.com/mcoot/mixplugin-go/internal/storage/redis"
)

// authSweepInterval is how often expired verified-key entries are dropped
const authSweepInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.Storage,
		DataDir:     cfg.DataDir,
		HostConfig: httphost.Config{
			BaseURL: cfg.HostURL,
			Token:   cfg.HostToken,
			Timeout: cfg.HostTimeout,
		},
		AuthConfig: auth.Config{KeyHash: cfg.APIKeyHash},
	}
	if cfg.Storage == config.StorageRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.KeyPrefix = cfg.RedisKeyPrefix
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(ctx, factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	logger.Info("state loaded",
		slog.String("storage", cfg.Storage),
		slog.Int("bans", len(app.Bans.List(ctx))),
		slog.Int("world_spawns", len(app.Spawns.WorldSpawns())),
		slog.Bool("auth", app.AuthService.Enabled()),
	)

	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		Listener:    app.Listener,
		Commands:    app.Commands,
		Bans:        app.Bans,
		Spawns:      app.Spawns,
		Host:        app.Host,
		Effects:     app.Effects,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	go sweepAuthCache(ctx, app.AuthService)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

func sweepAuthCache(ctx context.Context, authService *auth.Service) {
	ticker := time.NewTicker(authSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			authService.CleanExpired()
		}
	}
}
