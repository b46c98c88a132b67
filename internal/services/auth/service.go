package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/mixplugin-go/internal/dependencies/clock"
)

// Errors
var (
	ErrInvalidAPIKey = errors.New("invalid api key")
	ErrInvalidHash   = errors.New("api key hash is not a bcrypt hash")
)

// Config holds configuration for the auth service
type Config struct {
	// KeyHash is the bcrypt hash of the accepted API key. Empty disables
	// authentication.
	KeyHash string
	// CacheDuration is how long a verified key is trusted before bcrypt
	// runs again
	CacheDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		CacheDuration: 5 * time.Minute,
	}
}

// Service checks API keys presented by the game server bridge and admins
type Service struct {
	hash   []byte
	clock  clock.Clock
	logger *slog.Logger

	mu       sync.RWMutex
	verified map[string]time.Time // key digest -> expiry

	cacheDuration time.Duration
}

// New creates an auth Service
func New(clock clock.Clock, cfg Config, logger *slog.Logger) (*Service, error) {
	if cfg.CacheDuration == 0 {
		cfg.CacheDuration = DefaultConfig().CacheDuration
	}
	if cfg.KeyHash != "" {
		if _, err := bcrypt.Cost([]byte(cfg.KeyHash)); err != nil {
			return nil, ErrInvalidHash
		}
	} else {
		logger.Warn("no api key hash configured, authentication disabled")
	}
	return &Service{
		hash:          []byte(cfg.KeyHash),
		clock:         clock,
		logger:        logger,
		verified:      make(map[string]time.Time),
		cacheDuration: cfg.CacheDuration,
	}, nil
}

// Enabled reports whether requests must carry an API key
func (s *Service) Enabled() bool {
	return len(s.hash) > 0
}

// Validate checks key against the configured hash
func (s *Service) Validate(key string) error {
	if !s.Enabled() {
		return nil
	}
	if key == "" {
		return ErrInvalidAPIKey
	}

	digest := digestKey(key)
	now := s.clock.Now()

	s.mu.RLock()
	expires, ok := s.verified[digest]
	s.mu.RUnlock()
	if ok && now.Before(expires) {
		return nil
	}

	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(key)); err != nil {
		return ErrInvalidAPIKey
	}

	s.mu.Lock()
	s.verified[digest] = now.Add(s.cacheDuration)
	s.mu.Unlock()
	return nil
}

// CleanExpired drops cached verifications past their expiry
func (s *Service) CleanExpired() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for digest, expires := range s.verified {
		if !now.Before(expires) {
			delete(s.verified, digest)
		}
	}
}

// HashKey returns the bcrypt hash to configure for key
func HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateKey returns a new random API key
func GenerateKey() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return "mpk_" + base64.RawURLEncoding.EncodeToString(b)
}

func digestKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
