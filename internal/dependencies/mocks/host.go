package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/mcoot/mixplugin-go/internal/host"
	"github.com/mcoot/mixplugin-go/internal/model"
)

// MockHost is an in-memory game server for testing
type MockHost struct {
	mu sync.RWMutex

	// known accounts, online or offline
	names  map[model.PlayerID]string
	online map[model.PlayerID]bool
	worlds map[string]model.Location

	applied []model.Effect

	gate *nameGate

	// Err, if set, is returned from every query
	Err error
}

type nameGate struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

// Ensure MockHost implements the host interfaces
var (
	_ host.Host    = (*MockHost)(nil)
	_ host.Effects = (*MockHost)(nil)
)

// NewMockHost creates an empty MockHost
func NewMockHost() *MockHost {
	return &MockHost{
		names:  make(map[model.PlayerID]string),
		online: make(map[model.PlayerID]bool),
		worlds: make(map[string]model.Location),
	}
}

// AddPlayer registers an account and marks it online
func (h *MockHost) AddPlayer(id model.PlayerID, name string) model.Player {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.names[id] = name
	h.online[id] = true
	return model.Player{ID: id, Name: name}
}

// SetOnline changes a known account's presence
func (h *MockHost) SetOnline(id model.PlayerID, online bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.online[id] = online
}

// AddWorld registers a world with its default spawn point
func (h *MockHost) AddWorld(name string, spawn model.Location) {
	h.mu.Lock()
	defer h.mu.Unlock()
	spawn.World = name
	h.worlds[name] = spawn
}

// RemoveWorld unloads a world
func (h *MockHost) RemoveWorld(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.worlds, name)
}

func (h *MockHost) IsOnline(ctx context.Context, id model.PlayerID) (bool, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.Err != nil {
		return false, h.Err
	}
	return h.online[id], nil
}

// BlockNameLookups makes PlayerName wait until release is called. entered
// receives once a lookup is waiting.
func (h *MockHost) BlockNameLookups() (entered <-chan struct{}, release func()) {
	g := &nameGate{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	h.mu.Lock()
	h.gate = g
	h.mu.Unlock()
	return g.entered, func() { g.once.Do(func() { close(g.release) }) }
}

func (h *MockHost) PlayerName(ctx context.Context, id model.PlayerID) (string, error) {
	h.mu.RLock()
	g := h.gate
	h.mu.RUnlock()
	if g != nil {
		select {
		case g.entered <- struct{}{}:
		default:
		}
		select {
		case <-g.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.Err != nil {
		return "", h.Err
	}
	return h.names[id], nil
}

func (h *MockHost) WorldExists(ctx context.Context, world string) (bool, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.Err != nil {
		return false, h.Err
	}
	_, ok := h.worlds[world]
	return ok, nil
}

func (h *MockHost) WorldSpawn(ctx context.Context, world string) (model.Location, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.Err != nil {
		return model.Location{}, h.Err
	}
	loc, ok := h.worlds[world]
	if !ok {
		return model.Location{}, model.ErrWorldNotFound
	}
	return loc, nil
}

func (h *MockHost) FindOnlinePlayer(ctx context.Context, name string) (model.Player, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.Err != nil {
		return model.Player{}, h.Err
	}
	for id, n := range h.names {
		if h.online[id] && strings.EqualFold(n, name) {
			return model.Player{ID: id, Name: n}, nil
		}
	}
	return model.Player{}, model.ErrPlayerNotFound
}

func (h *MockHost) OnlinePlayers(ctx context.Context) ([]model.Player, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.Err != nil {
		return nil, h.Err
	}
	var players []model.Player
	for id, n := range h.names {
		if h.online[id] {
			players = append(players, model.Player{ID: id, Name: n})
		}
	}
	return players, nil
}

func (h *MockHost) Apply(ctx context.Context, effects []model.Effect) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Err != nil {
		return h.Err
	}
	h.applied = append(h.applied, effects...)
	return nil
}

// Applied returns every effect pushed through Apply
func (h *MockHost) Applied() []model.Effect {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]model.Effect, len(h.applied))
	copy(out, h.applied)
	return out
}
