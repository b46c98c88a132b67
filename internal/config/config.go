package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backends
const (
	StorageFile   = "file"
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config is the server configuration, read from MIXPLUGIN_* variables
type Config struct {
	Port    int    `env:"PORT"     envDefault:"8080"`
	Storage string `env:"STORAGE"  envDefault:"file"`
	DataDir string `env:"DATA_DIR" envDefault:"data"`

	RedisURL       string `env:"REDIS_URL"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"mixplugin"`

	// HostURL is the game server's REST bridge
	HostURL     string        `env:"HOST_URL"     envDefault:"http://localhost:8081"`
	HostToken   string        `env:"HOST_TOKEN"`
	HostTimeout time.Duration `env:"HOST_TIMEOUT" envDefault:"5s"`

	// APIKeyHash is the bcrypt hash of the API key; empty disables auth
	APIKeyHash string `env:"API_KEY_HASH"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the process environment
func Load() (Config, error) {
	return parse(env.Options{Prefix: "MIXPLUGIN_"})
}

// LoadFrom reads the configuration from vars instead of the environment
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Prefix: "MIXPLUGIN_", Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that depend on each other
func (c Config) Validate() error {
	switch c.Storage {
	case StorageFile:
		if c.DataDir == "" {
			return errors.New("MIXPLUGIN_DATA_DIR is required for file storage")
		}
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return errors.New("MIXPLUGIN_REDIS_URL is required for redis storage")
		}
	default:
		return fmt.Errorf("invalid MIXPLUGIN_STORAGE %q: must be file, memory or redis", c.Storage)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid MIXPLUGIN_PORT %d", c.Port)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
