package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/mixplugin-go/internal/api/request"
	"github.com/mcoot/mixplugin-go/internal/api/response"
	"github.com/mcoot/mixplugin-go/internal/model"
	"github.com/mcoot/mixplugin-go/internal/services/listener"
)

// EventHandler receives player lifecycle events from the game server
type EventHandler struct {
	listener *listener.Listener
}

// NewEventHandler creates a new event handler
func NewEventHandler(listener *listener.Listener) *EventHandler {
	return &EventHandler{
		listener: listener,
	}
}

// Death handles POST /api/v1/events/death
func (h *EventHandler) Death(w http.ResponseWriter, r *http.Request) {
	var req request.DeathEvent
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, ok := model.ParsePlayerID(req.PlayerID)
	if !ok {
		WriteError(w, NewInvalidRequestError("player_id must be a UUID"))
		return
	}
	if req.Location.World == "" {
		WriteError(w, NewInvalidRequestError("location.world is required"))
		return
	}

	effects := h.listener.OnDeath(player, req.Location.ToModel())
	response.Effects(w, effects)
}

// Login handles POST /api/v1/events/login
func (h *EventHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginEvent
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, ok := model.ParsePlayerID(req.PlayerID)
	if !ok {
		WriteError(w, NewInvalidRequestError("player_id must be a UUID"))
		return
	}

	decision := h.listener.OnLogin(r.Context(), player)
	response.JSON(w, http.StatusOK, response.LoginFromModel(decision))
}

// Join handles POST /api/v1/events/join
func (h *EventHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinEvent
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, ok := model.ParsePlayerID(req.PlayerID)
	if !ok {
		WriteError(w, NewInvalidRequestError("player_id must be a UUID"))
		return
	}

	effects := h.listener.OnJoin(r.Context(), player, req.FirstJoin)
	response.Effects(w, effects)
}
