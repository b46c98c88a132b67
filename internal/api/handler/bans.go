package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/mixplugin-go/internal/api/apierr"
	"github.com/mcoot/mixplugin-go/internal/api/request"
	"github.com/mcoot/mixplugin-go/internal/api/response"
	"github.com/mcoot/mixplugin-go/internal/host"
	"github.com/mcoot/mixplugin-go/internal/model"
	"github.com/mcoot/mixplugin-go/internal/services/bans"
	"github.com/mcoot/mixplugin-go/internal/services/commands"
)

// BanHandler exposes the ban list to administrators
type BanHandler struct {
	bans    *bans.Registry
	host    host.Host
	effects host.Effects
	logger  *slog.Logger
}

// NewBanHandler creates a new ban handler
func NewBanHandler(bans *bans.Registry, host host.Host, effects host.Effects, logger *slog.Logger) *BanHandler {
	return &BanHandler{
		bans:    bans,
		host:    host,
		effects: effects,
		logger:  logger,
	}
}

// List handles GET /api/v1/bans
func (h *BanHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.bans.List(r.Context())

	resp := response.BansResponse{Bans: make([]response.Ban, len(list))}
	for i, ban := range list {
		resp.Bans[i] = response.BanFromModel(ban, h.bans.DisplayName(r.Context(), ban))
	}
	response.JSON(w, http.StatusOK, resp)
}

// Create handles POST /api/v1/bans
func (h *BanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Player == "" {
		WriteError(w, NewInvalidRequestError("player is required"))
		return
	}
	if req.Reason == "" {
		WriteError(w, NewInvalidRequestError("reason is required"))
		return
	}
	if req.Days > math.MaxInt32 || req.Days < math.MinInt32 {
		WriteError(w, model.ErrInvalidDays)
		return
	}

	target, err := h.resolve(r.Context(), req.Player)
	if err != nil {
		WriteError(w, err)
		return
	}

	operator := req.Operator
	if operator == "" {
		operator = "Console"
	}

	ban, err := h.bans.Ban(r.Context(), target.ID, target.Name, req.Days, req.Reason, operator)
	if err != nil {
		WriteError(w, err)
		return
	}

	// kick if online and announce; the ban stands either way
	if err := h.effects.Apply(r.Context(), commands.BanEffects(target, req.Days, req.Reason, operator)); err != nil {
		h.logger.Warn("failed to deliver ban effects",
			slog.String("player", string(target.ID)),
			slog.String("error", err.Error()),
		)
	}

	response.JSON(w, http.StatusCreated, response.BanFromModel(ban, target.Name))
}

// Delete handles DELETE /api/v1/bans/{player}
func (h *BanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	player := mux.Vars(r)["player"]

	id, err := h.bans.Unban(r.Context(), player)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UnbanResponse{PlayerID: string(id)})
}

// resolve turns a UUID or an online player's name into a player
func (h *BanHandler) resolve(ctx context.Context, input string) (model.Player, error) {
	if id, ok := model.ParsePlayerID(input); ok {
		name, err := h.host.PlayerName(ctx, id)
		if err != nil {
			h.logger.Warn("failed to resolve player name",
				slog.String("player", string(id)),
				slog.String("error", err.Error()),
			)
		}
		return model.Player{ID: id, Name: name}, nil
	}

	p, err := h.host.FindOnlinePlayer(ctx, input)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return model.Player{}, err
		}
		h.logger.Error("failed to look up player", slog.String("error", err.Error()))
		return model.Player{}, apierr.NewHostUnavailableError()
	}
	return p, nil
}
