package listener

import (
	"context"
	"log/slog"

	"github.com/mcoot/mixplugin-go/internal/chat"
	"github.com/mcoot/mixplugin-go/internal/dependencies/clock"
	"github.com/mcoot/mixplugin-go/internal/host"
	"github.com/mcoot/mixplugin-go/internal/model"
	"github.com/mcoot/mixplugin-go/internal/services/bans"
	"github.com/mcoot/mixplugin-go/internal/services/death"
	"github.com/mcoot/mixplugin-go/internal/services/spawn"
)

// Listener reacts to player lifecycle events from the host
type Listener struct {
	deaths *death.Table
	bans   *bans.Registry
	spawns *spawn.Registry
	worlds host.Worlds
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a Listener
func New(
	deaths *death.Table,
	bans *bans.Registry,
	spawns *spawn.Registry,
	worlds host.Worlds,
	clock clock.Clock,
	logger *slog.Logger,
) *Listener {
	return &Listener{
		deaths: deaths,
		bans:   bans,
		spawns: spawns,
		worlds: worlds,
		clock:  clock,
		logger: logger,
	}
}

// OnDeath records where player died
func (l *Listener) OnDeath(player model.PlayerID, loc model.Location) []model.Effect {
	l.deaths.Record(player, loc)
	return []model.Effect{
		model.Message(player, chat.Prefixed("Your death location has been recorded, use /mp back to return to it")),
	}
}

// OnLogin decides whether player may connect. Expired bans are cleared and
// the player is let in.
func (l *Listener) OnLogin(ctx context.Context, player model.PlayerID) model.LoginDecision {
	status, ban := l.bans.CheckAndConsumeIfExpired(ctx, player)
	if status != model.ActiveBan {
		return model.LoginDecision{Allowed: true}
	}

	timeLeft := "permanent"
	if !ban.IsPermanent() {
		timeLeft = chat.TimeLeft(ban.RemainingMillis(l.clock.Now()))
	}
	l.logger.Info("banned player refused", slog.String("player", string(player)))
	return model.LoginDecision{
		Allowed: false,
		Message: chat.BanScreen(ban.Reason, ban.Operator, "Time left", timeLeft),
	}
}

// OnJoin moves a first-time player to the first-join spawn, if one is set
// and its world is loaded
func (l *Listener) OnJoin(ctx context.Context, player model.PlayerID, firstJoin bool) []model.Effect {
	if !firstJoin {
		return nil
	}
	loc, ok := l.spawns.FirstJoinSpawn()
	if !ok {
		return nil
	}

	exists, err := l.worlds.WorldExists(ctx, loc.World)
	if err != nil {
		l.logger.Error("failed to check first-join spawn world",
			slog.String("world", loc.World),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if !exists {
		return nil
	}
	return []model.Effect{model.Teleport(player, loc)}
}
