package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/mixplugin-go/internal/model"
)

func (r *Router) back(ctx context.Context, sender model.Sender) []model.Effect {
	if refusal := guard(sender, true, PermBack); refusal != nil {
		return refusal
	}
	player := sender.Player.ID

	loc, ok := r.deaths.Consume(player)
	if !ok {
		return reply(msgNoDeathLocation)
	}

	exists, err := r.host.WorldExists(ctx, loc.World)
	if err != nil {
		// put it back so the player can retry
		r.deaths.Record(player, loc)
		return r.hostFailure("back", err)
	}
	if !exists {
		return reply(msgDeathWorldGone)
	}

	return append([]model.Effect{model.Teleport(player, loc)}, reply(msgBackDone)...)
}

func (r *Router) spawn(ctx context.Context, sender model.Sender) []model.Effect {
	if refusal := guard(sender, true, PermSpawn); refusal != nil {
		return refusal
	}
	player := sender.Player.ID
	world := sender.Location.World

	if loc, ok := r.spawns.WorldSpawn(world); ok {
		exists, err := r.host.WorldExists(ctx, loc.World)
		if err != nil {
			return r.hostFailure("spawn", err)
		}
		if exists {
			return append([]model.Effect{model.Teleport(player, loc)}, reply(msgSpawnStored)...)
		}
	}

	loc, err := r.host.WorldSpawn(ctx, world)
	if err != nil {
		if errors.Is(err, model.ErrWorldNotFound) {
			return reply(msgNoWorld)
		}
		return r.hostFailure("spawn", err)
	}
	return append([]model.Effect{model.Teleport(player, loc)}, reply(msgSpawnDefault)...)
}

func (r *Router) setFirstSpawn(ctx context.Context, sender model.Sender) []model.Effect {
	if refusal := guard(sender, true, PermSetFirstSpawn); refusal != nil {
		return refusal
	}
	if err := r.spawns.SetFirstJoinSpawn(ctx, sender.Location); err != nil {
		return reply(msgNoWorld)
	}
	r.logger.Info("first-join spawn updated", slog.String("by", sender.Player.Name))
	return reply(msgFirstSpawnSet)
}

func (r *Router) setWorldSpawn(ctx context.Context, sender model.Sender) []model.Effect {
	if refusal := guard(sender, true, PermSetWorldSpawn); refusal != nil {
		return refusal
	}
	loc := sender.Location
	if err := r.spawns.SetWorldSpawn(ctx, loc.World, loc); err != nil {
		return reply(msgNoWorld)
	}
	r.logger.Info("world spawn updated",
		slog.String("world", loc.World),
		slog.String("by", sender.Player.Name),
	)
	return append([]model.Effect{model.SetWorldSpawn(loc)}, reply(msgWorldSpawnSet)...)
}
