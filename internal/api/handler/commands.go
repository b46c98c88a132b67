package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/mixplugin-go/internal/api/request"
	"github.com/mcoot/mixplugin-go/internal/api/response"
	"github.com/mcoot/mixplugin-go/internal/services/commands"
)

// CommandHandler runs /mp commands forwarded by the game server
type CommandHandler struct {
	router *commands.Router
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(router *commands.Router) *CommandHandler {
	return &CommandHandler{
		router: router,
	}
}

// Dispatch handles POST /api/v1/commands
func (h *CommandHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req request.CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Sender.IsPlayer && req.Sender.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("sender.player_id is required for players"))
		return
	}

	effects := h.router.Dispatch(r.Context(), req.Sender.ToModel(), req.Args)
	response.Effects(w, effects)
}

// Complete handles POST /api/v1/commands/complete
func (h *CommandHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req request.CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	completions := h.router.Complete(r.Context(), req.Sender.ToModel(), req.Args)
	if completions == nil {
		completions = []string{}
	}
	response.JSON(w, http.StatusOK, response.CompletionsResponse{Completions: completions})
}
