package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/mixplugin-go/internal/dependencies/clock"
	"github.com/mcoot/mixplugin-go/internal/host"
	"github.com/mcoot/mixplugin-go/internal/host/httphost"
	"github.com/mcoot/mixplugin-go/internal/services/auth"
	"github.com/mcoot/mixplugin-go/internal/services/bans"
	"github.com/mcoot/mixplugin-go/internal/services/commands"
	"github.com/mcoot/mixplugin-go/internal/services/death"
	"github.com/mcoot/mixplugin-go/internal/services/listener"
	"github.com/mcoot/mixplugin-go/internal/services/spawn"
	"github.com/mcoot/mixplugin-go/internal/services/teleport"
	"github.com/mcoot/mixplugin-go/internal/storage"
	"github.com/mcoot/mixplugin-go/internal/storage/memory"
	redisstorage "github.com/mcoot/mixplugin-go/internal/storage/redis"
	"github.com/mcoot/mixplugin-go/internal/storage/yamlfile"
)

// Storage type constants
const (
	StorageTypeFile   = "file"
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// fileExt is appended to document names by the file backend
const fileExt = ".yml"

// App contains all wired application components
type App struct {
	// Persisted documents
	BanStore   *storage.Store
	SpawnStore *storage.Store

	// External dependencies
	Clock   clock.Clock
	Host    host.Host
	Effects host.Effects

	// Services
	Bans        *bans.Registry
	Teleports   *teleport.Table
	Deaths      *death.Table
	Spawns      *spawn.Registry
	Listener    *listener.Listener
	Commands    *commands.Router
	AuthService *auth.Service

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("file", "memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// DataDir holds the document files (required if StorageType is "file")
	DataDir string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// HostConfig points at the game server bridge
	// If zero value, defaults to httphost.DefaultConfig()
	HostConfig httphost.Config
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, auth is disabled
	AuthConfig auth.Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	var (
		banBackend, spawnBackend storage.Backend
		closers                  []io.Closer
	)
	switch storageType {
	case StorageTypeMemory:
		banBackend, spawnBackend = memory.New(), memory.New()
	case StorageTypeFile:
		if cfg.DataDir == "" {
			return nil, errors.New("DataDir required when StorageType is file")
		}
		b, err := yamlfile.New(cfg.DataDir, bans.DocumentName+fileExt)
		if err != nil {
			return nil, err
		}
		s, err := yamlfile.New(cfg.DataDir, spawn.DocumentName+fileExt)
		if err != nil {
			return nil, err
		}
		banBackend, spawnBackend = b, s
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		client, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		banBackend, spawnBackend = client.Document(bans.DocumentName), client.Document(spawn.DocumentName)
		closers = append(closers, client)
	default:
		return nil, errors.New("invalid StorageType: must be 'file', 'memory' or 'redis'")
	}

	hostCfg := cfg.HostConfig
	if hostCfg.BaseURL == "" {
		hostCfg = httphost.DefaultConfig()
	}
	bridge := httphost.New(hostCfg)

	clk := clock.New()
	authService, err := auth.New(clk, cfg.AuthConfig, logger)
	if err != nil {
		closeAll(closers)
		return nil, err
	}

	app, err := newWithDependencies(ctx, banBackend, spawnBackend, clk, bridge, bridge, authService, logger)
	if err != nil {
		closeAll(closers)
		return nil, err
	}
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	ctx context.Context,
	banBackend, spawnBackend storage.Backend,
	clk clock.Clock,
	gameHost host.Host,
	effects host.Effects,
	authService *auth.Service,
	logger *slog.Logger,
) (*App, error) {
	banStore, err := storage.Open(ctx, bans.DocumentName, banBackend, logger)
	if err != nil {
		return nil, err
	}
	spawnStore, err := storage.Open(ctx, spawn.DocumentName, spawnBackend, logger)
	if err != nil {
		return nil, err
	}

	// Create services
	banRegistry := bans.New(banStore, clk, gameHost, logger)
	teleports := teleport.New(clk, gameHost)
	deaths := death.New()
	spawns := spawn.New(ctx, spawnStore, logger)

	return &App{
		BanStore:    banStore,
		SpawnStore:  spawnStore,
		Clock:       clk,
		Host:        gameHost,
		Effects:     effects,
		Bans:        banRegistry,
		Teleports:   teleports,
		Deaths:      deaths,
		Spawns:      spawns,
		Listener:    listener.New(deaths, banRegistry, spawns, gameHost, clk, logger),
		Commands:    commands.NewRouter(gameHost, banRegistry, teleports, deaths, spawns, clk, logger),
		AuthService: authService,
	}, nil
}

// Close releases connections held by the storage backends
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		_ = c.Close()
	}
}
