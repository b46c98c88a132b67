package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mcoot/mixplugin-go/internal/model"
)

func (r *Router) tpa(ctx context.Context, sender model.Sender, args []string) []model.Effect {
	if !sender.IsPlayer {
		return reply(msgPlayersOnly)
	}
	if len(args) < 2 {
		return reply(msgTpaUsage)
	}

	switch strings.ToLower(args[1]) {
	case "accept":
		return r.tpaAccept(ctx, sender)
	case "deny":
		return r.tpaDeny(ctx, sender)
	default:
		return r.tpaRequest(ctx, sender, args[1])
	}
}

func (r *Router) tpaRequest(ctx context.Context, sender model.Sender, name string) []model.Effect {
	if refusal := guard(sender, true, PermUse); refusal != nil {
		return refusal
	}

	target, err := r.host.FindOnlinePlayer(ctx, name)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return reply(fmt.Sprintf("Player %s is not online or does not exist!", name))
		}
		return r.hostFailure("tpa", err)
	}

	if err := r.teleports.Request(sender.Player.ID, target.ID); err != nil {
		return reply(msgTpaSelf)
	}

	return append(reply(fmt.Sprintf("Teleport request sent to %s", target.Name)),
		tell(target.ID, fmt.Sprintf("%s wants to teleport to you", sender.Player.Name)),
		tell(target.ID, msgTpaHowToRespond),
	)
}

func (r *Router) tpaAccept(ctx context.Context, sender model.Sender) []model.Effect {
	if refusal := guard(sender, true, PermUse); refusal != nil {
		return refusal
	}

	requester, err := r.teleports.Accept(ctx, sender.Player.ID)
	switch {
	case errors.Is(err, model.ErrNoPendingRequest):
		return reply(msgTpaNoPending)
	case errors.Is(err, model.ErrRequestExpired):
		return reply(msgTpaExpired)
	case errors.Is(err, model.ErrRequesterOffline):
		return reply(msgTpaOffline)
	case err != nil:
		return r.hostFailure("tpa accept", err)
	}

	name := r.playerName(ctx, requester)
	return append([]model.Effect{
		model.Teleport(requester, sender.Location),
		tell(requester, fmt.Sprintf("%s accepted your teleport request", sender.Player.Name)),
	}, reply(fmt.Sprintf("Accepted %s's teleport request", name))...)
}

func (r *Router) tpaDeny(ctx context.Context, sender model.Sender) []model.Effect {
	if refusal := guard(sender, true, PermUse); refusal != nil {
		return refusal
	}

	requester, err := r.teleports.Deny(sender.Player.ID)
	if err != nil {
		return reply(msgTpaNoPending)
	}

	var effects []model.Effect
	if online, err := r.host.IsOnline(ctx, requester); err == nil && online {
		effects = append(effects, tell(requester, fmt.Sprintf("%s denied your teleport request", sender.Player.Name)))
	}
	return append(effects, reply(msgTpaDenied)...)
}

// playerName resolves a display name, falling back to the short id
func (r *Router) playerName(ctx context.Context, id model.PlayerID) string {
	name, err := r.host.PlayerName(ctx, id)
	if err != nil || name == "" {
		return id.Short()
	}
	return name
}
