package spawn

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcoot/mixplugin-go/internal/model"
	"github.com/mcoot/mixplugin-go/internal/storage"
)

// DocumentName is the name of the persisted spawn document
const DocumentName = "spawns"

var (
	firstSpawnPath  = storage.P("first-spawn")
	worldSpawnsPath = storage.P("world-spawns")
)

// Registry holds the first-join spawn and per-world spawn overrides
type Registry struct {
	store  *storage.Store
	logger *slog.Logger

	mu sync.Mutex
}

// New creates a Registry over a loaded store. A document without the
// expected sections gets them created and saved.
func New(ctx context.Context, store *storage.Store, logger *slog.Logger) *Registry {
	r := &Registry{store: store, logger: logger}

	changed := false
	for _, path := range []storage.Path{firstSpawnPath, worldSpawnsPath} {
		if !store.Contains(path) {
			store.Set(path, storage.NewSection())
			changed = true
		}
	}
	if changed {
		r.persist(ctx)
	}
	return r
}

// SetFirstJoinSpawn stores where players appear on their first join
func (r *Registry) SetFirstJoinSpawn(ctx context.Context, loc model.Location) error {
	if loc.World == "" {
		return model.ErrInvalidLocation
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store.Set(firstSpawnPath, storage.EncodeLocation(loc))
	r.persist(ctx)
	r.logger.Info("first-join spawn set", slog.String("world", loc.World))
	return nil
}

// FirstJoinSpawn returns the first-join spawn. An unset or unreadable
// entry reads as absent.
func (r *Registry) FirstJoinSpawn() (model.Location, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sec, ok := r.store.Section(firstSpawnPath)
	if !ok {
		return model.Location{}, false
	}
	return storage.DecodeLocation(sec)
}

// SetWorldSpawn stores the spawn for world. The location's own world is
// set to world when empty.
func (r *Registry) SetWorldSpawn(ctx context.Context, world string, loc model.Location) error {
	if world == "" {
		return model.ErrInvalidLocation
	}
	if loc.World == "" {
		loc.World = world
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store.Set(worldSpawnsPath.Child(world), storage.EncodeLocation(loc))
	r.persist(ctx)
	r.logger.Info("world spawn set", slog.String("world", world))
	return nil
}

// WorldSpawn returns the stored spawn for world
func (r *Registry) WorldSpawn(world string) (model.Location, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sec, ok := r.store.Section(worldSpawnsPath.Child(world))
	if !ok {
		return model.Location{}, false
	}
	return storage.DecodeLocation(sec)
}

// WorldSpawns returns every readable world spawn
func (r *Registry) WorldSpawns() map[string]model.Location {
	r.mu.Lock()
	defer r.mu.Unlock()

	spawns := make(map[string]model.Location)
	sec, ok := r.store.Section(worldSpawnsPath)
	if !ok {
		return spawns
	}
	for _, world := range sec.Keys() {
		child, ok := sec.Child(world)
		if !ok {
			continue
		}
		if loc, ok := storage.DecodeLocation(child); ok {
			spawns[world] = loc
		}
	}
	return spawns
}

// Config returns the whole spawn state
func (r *Registry) Config() model.SpawnConfig {
	cfg := model.SpawnConfig{WorldSpawns: r.WorldSpawns()}
	if loc, ok := r.FirstJoinSpawn(); ok {
		cfg.FirstJoinSpawn = &loc
	}
	return cfg
}

func (r *Registry) persist(ctx context.Context) {
	if err := r.store.Save(ctx); err != nil {
		r.logger.Error("failed to save spawns", slog.String("error", err.Error()))
	}
}
