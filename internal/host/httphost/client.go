// Package httphost implements host.Host against the game server's REST
// bridge
package httphost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcoot/mixplugin-go/internal/host"
	"github.com/mcoot/mixplugin-go/internal/model"
)

// errNotFound marks a 404 from the bridge; callers translate it
var errNotFound = errors.New("not found")

// Config holds settings for the bridge client
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// DefaultConfig returns default client settings
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8081",
		Timeout: 5 * time.Second,
	}
}

// Client talks to the game server bridge
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Ensure Client implements the interfaces
var (
	_ host.Host    = (*Client)(nil)
	_ host.Effects = (*Client)(nil)
)

// New creates a bridge client
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *Client) IsOnline(ctx context.Context, id model.PlayerID) (bool, error) {
	var p playerInfo
	err := c.do(ctx, http.MethodGet, "/players/"+url.PathEscape(string(id)), nil, &p)
	if errors.Is(err, errNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.Online, nil
}

func (c *Client) PlayerName(ctx context.Context, id model.PlayerID) (string, error) {
	var p playerInfo
	err := c.do(ctx, http.MethodGet, "/players/"+url.PathEscape(string(id)), nil, &p)
	if errors.Is(err, errNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

func (c *Client) FindOnlinePlayer(ctx context.Context, name string) (model.Player, error) {
	var p playerInfo
	err := c.do(ctx, http.MethodGet, "/players/online/"+url.PathEscape(name), nil, &p)
	if errors.Is(err, errNotFound) {
		return model.Player{}, model.ErrPlayerNotFound
	}
	if err != nil {
		return model.Player{}, err
	}
	return p.toModel(), nil
}

func (c *Client) OnlinePlayers(ctx context.Context) ([]model.Player, error) {
	var list []playerInfo
	if err := c.do(ctx, http.MethodGet, "/players/online", nil, &list); err != nil {
		return nil, err
	}
	players := make([]model.Player, len(list))
	for i, p := range list {
		players[i] = p.toModel()
	}
	return players, nil
}

func (c *Client) WorldExists(ctx context.Context, world string) (bool, error) {
	err := c.do(ctx, http.MethodGet, "/worlds/"+url.PathEscape(world), nil, nil)
	if errors.Is(err, errNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) WorldSpawn(ctx context.Context, world string) (model.Location, error) {
	var loc location
	err := c.do(ctx, http.MethodGet, "/worlds/"+url.PathEscape(world)+"/spawn", nil, &loc)
	if errors.Is(err, errNotFound) {
		return model.Location{}, model.ErrWorldNotFound
	}
	if err != nil {
		return model.Location{}, err
	}
	out := loc.toModel()
	if out.World == "" {
		out.World = world
	}
	return out, nil
}

// Apply pushes effects to the bridge
func (c *Client) Apply(ctx context.Context, effects []model.Effect) error {
	if len(effects) == 0 {
		return nil
	}
	body := effectsRequest{Effects: make([]effect, len(effects))}
	for i, e := range effects {
		body.Effects[i] = effectFromModel(e)
	}
	return c.do(ctx, http.MethodPost, "/effects", body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s: HTTP %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}
