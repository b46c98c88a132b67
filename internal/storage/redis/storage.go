package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/mixplugin-go/internal/storage"
)

// Client is a shared Redis connection. Each document gets its own Backend
// from Document.
type Client struct {
	client *redis.Client
	cfg    Config
}

// New connects to Redis and verifies the connection
func New(cfg Config) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Client{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient wraps an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Client {
	return &Client{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.client.Close()
}

// Document returns the backend for the named document
func (c *Client) Document(name string) *Backend {
	return &Backend{
		client: c.client,
		key:    documentKey(c.cfg.KeyPrefix, name),
	}
}

// Backend stores one document as a single Redis string
type Backend struct {
	client *redis.Client
	key    string
}

// Ensure Backend implements the interface
var _ storage.Backend = (*Backend)(nil)

// Key returns the Redis key the document lives under
func (b *Backend) Key() string {
	return b.key
}

func (b *Backend) Load(ctx context.Context) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Save replaces the document in one SET, which Redis applies atomically
func (b *Backend) Save(ctx context.Context, data []byte) error {
	return b.client.Set(ctx, b.key, data, 0).Err()
}
