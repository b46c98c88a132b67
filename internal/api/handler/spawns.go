package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/mixplugin-go/internal/api/request"
	"github.com/mcoot/mixplugin-go/internal/api/response"
	"github.com/mcoot/mixplugin-go/internal/host"
	"github.com/mcoot/mixplugin-go/internal/model"
	"github.com/mcoot/mixplugin-go/internal/services/spawn"
)

// SpawnHandler exposes stored spawn points to administrators
type SpawnHandler struct {
	spawns  *spawn.Registry
	effects host.Effects
	logger  *slog.Logger
}

// NewSpawnHandler creates a new spawn handler
func NewSpawnHandler(spawns *spawn.Registry, effects host.Effects, logger *slog.Logger) *SpawnHandler {
	return &SpawnHandler{
		spawns:  spawns,
		effects: effects,
		logger:  logger,
	}
}

// Get handles GET /api/v1/spawns
func (h *SpawnHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.SpawnsFromModel(h.spawns.Config()))
}

// SetFirst handles PUT /api/v1/spawns/first
func (h *SpawnHandler) SetFirst(w http.ResponseWriter, r *http.Request) {
	var req request.Location
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	loc := req.ToModel()
	if err := h.spawns.SetFirstJoinSpawn(r.Context(), loc); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LocationFromModel(loc))
}

// SetWorld handles PUT /api/v1/spawns/worlds/{world}
func (h *SpawnHandler) SetWorld(w http.ResponseWriter, r *http.Request) {
	world := mux.Vars(r)["world"]

	var req request.Location
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	loc := req.ToModel()
	if loc.World == "" {
		loc.World = world
	}
	if err := h.spawns.SetWorldSpawn(r.Context(), world, loc); err != nil {
		WriteError(w, err)
		return
	}

	if err := h.effects.Apply(r.Context(), []model.Effect{model.SetWorldSpawn(loc)}); err != nil {
		h.logger.Warn("failed to update host world spawn",
			slog.String("world", world),
			slog.String("error", err.Error()),
		)
	}

	response.JSON(w, http.StatusOK, response.LocationFromModel(loc))
}
