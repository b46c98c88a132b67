package commands

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mcoot/mixplugin-go/internal/chat"
	"github.com/mcoot/mixplugin-go/internal/dependencies/clock"
	"github.com/mcoot/mixplugin-go/internal/host"
	"github.com/mcoot/mixplugin-go/internal/model"
	"github.com/mcoot/mixplugin-go/internal/services/bans"
	"github.com/mcoot/mixplugin-go/internal/services/death"
	"github.com/mcoot/mixplugin-go/internal/services/spawn"
	"github.com/mcoot/mixplugin-go/internal/services/teleport"
)

// Permission nodes checked by the router
const (
	PermUse           = "mixplugin.use"
	PermBack          = "mixplugin.back"
	PermTpa           = "mixplugin.tpa"
	PermTpaAccept     = "mixplugin.tpa.accept"
	PermTpaDeny       = "mixplugin.tpa.deny"
	PermBan           = "mixplugin.ban"
	PermUnban         = "mixplugin.unban"
	PermBans          = "mixplugin.bans"
	PermSpawn         = "mixplugin.spawn"
	PermSetFirstSpawn = "mixplugin.setfirstspawn"
	PermSetWorldSpawn = "mixplugin.setworldspawn"
)

// Verbs of the /mp command
const (
	VerbBack          = "back"
	VerbTpa           = "tpa"
	VerbBan           = "ban"
	VerbUnban         = "unban"
	VerbBans          = "bans"
	VerbSpawn         = "spawn"
	VerbSetFirstSpawn = "setfirstspawn"
	VerbSetWorldSpawn = "setworldspawn"
)

// verbPermissions maps each verb to the permission that lists it in tab
// completion. Dispatch of tpa needs only PermUse.
var verbPermissions = map[string]string{
	VerbBack:          PermBack,
	VerbTpa:           PermTpa,
	VerbBan:           PermBan,
	VerbUnban:         PermUnban,
	VerbBans:          PermBans,
	VerbSpawn:         PermSpawn,
	VerbSetFirstSpawn: PermSetFirstSpawn,
	VerbSetWorldSpawn: PermSetWorldSpawn,
}

// Router turns /mp invocations into effects for the host
type Router struct {
	host      host.Host
	bans      *bans.Registry
	teleports *teleport.Table
	deaths    *death.Table
	spawns    *spawn.Registry
	clock     clock.Clock
	logger    *slog.Logger
}

// NewRouter creates a Router
func NewRouter(
	host host.Host,
	bans *bans.Registry,
	teleports *teleport.Table,
	deaths *death.Table,
	spawns *spawn.Registry,
	clock clock.Clock,
	logger *slog.Logger,
) *Router {
	return &Router{
		host:      host,
		bans:      bans,
		teleports: teleports,
		deaths:    deaths,
		spawns:    spawns,
		clock:     clock,
		logger:    logger,
	}
}

// Dispatch runs the command described by args (the words after /mp) on
// behalf of sender. Every outcome, failures included, is reported as
// effects; nothing here is fatal.
func (r *Router) Dispatch(ctx context.Context, sender model.Sender, args []string) []model.Effect {
	if len(args) == 0 {
		return help()
	}
	if !sender.HasPermission(PermUse) {
		return reply(msgNoPermissionUse)
	}

	switch strings.ToLower(args[0]) {
	case VerbBack:
		return r.back(ctx, sender)
	case VerbTpa:
		return r.tpa(ctx, sender, args)
	case VerbBan:
		return r.ban(ctx, sender, args)
	case VerbUnban:
		return r.unban(ctx, sender, args)
	case VerbBans:
		return r.listBans(ctx, sender)
	case VerbSpawn:
		return r.spawn(ctx, sender)
	case VerbSetFirstSpawn:
		return r.setFirstSpawn(ctx, sender)
	case VerbSetWorldSpawn:
		return r.setWorldSpawn(ctx, sender)
	default:
		return reply(msgUnknownCommand)
	}
}

// guard checks the sender may run a verb. A non-nil result is the refusal.
func guard(sender model.Sender, playerOnly bool, perm string) []model.Effect {
	if playerOnly && !sender.IsPlayer {
		return reply(msgPlayersOnly)
	}
	if !sender.HasPermission(perm) {
		return reply(msgNoPermission)
	}
	return nil
}

// operatorName is the name recorded as the issuer of a ban
func operatorName(sender model.Sender) string {
	if !sender.IsPlayer || sender.Player.Name == "" {
		return "Console"
	}
	return sender.Player.Name
}

// hostFailure logs a failed host query and tells the sender
func (r *Router) hostFailure(action string, err error) []model.Effect {
	r.logger.Error("host query failed",
		slog.String("action", action),
		slog.String("error", err.Error()),
	)
	return reply(msgHostUnavailable)
}

// reply builds prefixed messages to the command sender
func reply(lines ...string) []model.Effect {
	effects := make([]model.Effect, 0, len(lines))
	for _, line := range lines {
		effects = append(effects, model.Message("", chat.Prefixed(line)))
	}
	return effects
}

// tell builds a prefixed message to another player
func tell(target model.PlayerID, text string) model.Effect {
	return model.Message(target, chat.Prefixed(text))
}
