package spawn

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/mixplugin-go/internal/model"
	"github.com/mcoot/mixplugin-go/internal/storage"
	"github.com/mcoot/mixplugin-go/internal/storage/memory"
	"github.com/mcoot/mixplugin-go/internal/testutil"
)

type RegistrySuite struct {
	suite.Suite
	backend  *memory.Backend
	registry *Registry
	ctx      context.Context
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.ctx = context.Background()
	s.backend = memory.New()
	s.registry = s.open()
}

func (s *RegistrySuite) open() *Registry {
	store, err := storage.Open(s.ctx, DocumentName, s.backend, testutil.NopLogger())
	s.Require().NoError(err)
	return New(s.ctx, store, testutil.NopLogger())
}

func (s *RegistrySuite) TestFirstRunCreatesEmptySections() {
	s.Equal(1, s.backend.Saves())
	s.Contains(string(s.backend.Bytes()), "first-spawn:")
	s.Contains(string(s.backend.Bytes()), "world-spawns:")

	_, ok := s.registry.FirstJoinSpawn()
	s.False(ok)
	s.Empty(s.registry.WorldSpawns())
}

func (s *RegistrySuite) TestExistingDocumentIsNotRewritten() {
	_ = s.open()
	s.Equal(1, s.backend.Saves())
}

func (s *RegistrySuite) TestSetFirstJoinSpawn() {
	loc := model.Location{World: "world", X: 0.5, Y: 64, Z: -0.5, Yaw: 90, Pitch: 10}
	s.Require().NoError(s.registry.SetFirstJoinSpawn(s.ctx, loc))

	got, ok := s.open().FirstJoinSpawn()
	s.Require().True(ok)
	s.Equal(loc, got)
}

func (s *RegistrySuite) TestSetFirstJoinSpawnRequiresWorld() {
	err := s.registry.SetFirstJoinSpawn(s.ctx, model.Location{X: 1})
	s.ErrorIs(err, model.ErrInvalidLocation)
}

func (s *RegistrySuite) TestSetWorldSpawn() {
	loc := model.Location{World: "world_nether", X: 8, Y: 70, Z: 8}
	s.Require().NoError(s.registry.SetWorldSpawn(s.ctx, "world_nether", loc))

	registry := s.open()
	got, ok := registry.WorldSpawn("world_nether")
	s.Require().True(ok)
	s.Equal(loc, got)

	_, ok = registry.WorldSpawn("world")
	s.False(ok)
}

func (s *RegistrySuite) TestSetWorldSpawnFillsWorld() {
	s.Require().NoError(s.registry.SetWorldSpawn(s.ctx, "world", model.Location{X: 1, Y: 2, Z: 3}))

	got, _ := s.registry.WorldSpawn("world")
	s.Equal("world", got.World)
}

func (s *RegistrySuite) TestSetWorldSpawnRequiresWorld() {
	err := s.registry.SetWorldSpawn(s.ctx, "", model.Location{World: "world"})
	s.ErrorIs(err, model.ErrInvalidLocation)
}

func (s *RegistrySuite) TestWorldSpawns() {
	_ = s.registry.SetWorldSpawn(s.ctx, "world", model.Location{World: "world", Y: 64})
	_ = s.registry.SetWorldSpawn(s.ctx, "world_the_end", model.Location{World: "world_the_end", Y: 50})

	spawns := s.registry.WorldSpawns()
	s.Len(spawns, 2)
	s.Equal(64.0, spawns["world"].Y)
	s.Equal(50.0, spawns["world_the_end"].Y)
}

func (s *RegistrySuite) TestGarbledEntryReadsAsAbsent() {
	s.backend.SetBytes([]byte(`first-spawn:
  world: world
  x: not-a-number
  y: 64
  z: 0
world-spawns:
  world:
    x: 1
    y: 2
    z: 3
  world_nether:
    world: world_nether
    x: 1
    y: 2
    z: 3
`))
	registry := s.open()

	_, ok := registry.FirstJoinSpawn()
	s.False(ok)
	_, ok = registry.WorldSpawn("world")
	s.False(ok)
	s.Len(registry.WorldSpawns(), 1)
}

func (s *RegistrySuite) TestConfig() {
	_ = s.registry.SetFirstJoinSpawn(s.ctx, model.Location{World: "world", Y: 70})

	cfg := s.registry.Config()
	s.Require().NotNil(cfg.FirstJoinSpawn)
	s.Equal(70.0, cfg.FirstJoinSpawn.Y)
	s.Empty(cfg.WorldSpawns)
}

func (s *RegistrySuite) TestSaveFailureKeepsValue() {
	s.backend.FailSaves(errors.New("read-only file system"))

	loc := model.Location{World: "world", Y: 64}
	s.Require().NoError(s.registry.SetFirstJoinSpawn(s.ctx, loc))

	got, ok := s.registry.FirstJoinSpawn()
	s.Require().True(ok)
	s.Equal(loc, got)
}
