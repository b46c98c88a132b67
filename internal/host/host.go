// Package host defines what the plugin needs to know about the game server
// it is attached to. The game server itself is out of scope; everything here
// is a query, and actions flow back to it as model.Effect values.
package host

import (
	"context"

	"github.com/mcoot/mixplugin-go/internal/model"
)

// Presence reports whether a player is currently connected
type Presence interface {
	IsOnline(ctx context.Context, id model.PlayerID) (bool, error)
}

// Directory resolves display names for accounts, online or not
type Directory interface {
	// PlayerName returns the last known name for id, or "" if the host
	// has never seen the account
	PlayerName(ctx context.Context, id model.PlayerID) (string, error)
}

// Worlds answers questions about the host's loaded worlds
type Worlds interface {
	WorldExists(ctx context.Context, world string) (bool, error)
	// WorldSpawn returns the host's own spawn point for world
	WorldSpawn(ctx context.Context, world string) (model.Location, error)
}

// Effects delivers actions to the game server outside of a request the
// server made, e.g. a ban issued through the admin API
type Effects interface {
	Apply(ctx context.Context, effects []model.Effect) error
}

// Host is the full query surface of the game server
type Host interface {
	Presence
	Directory
	Worlds

	// FindOnlinePlayer looks up an online player by exact name
	// (case-insensitive). Returns model.ErrPlayerNotFound if nobody matches.
	FindOnlinePlayer(ctx context.Context, name string) (model.Player, error)
	OnlinePlayers(ctx context.Context) ([]model.Player, error)
}
