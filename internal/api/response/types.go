package response

import (
	"time"

	"github.com/mcoot/mixplugin-go/internal/model"
)

// Location represents a position in API responses
type Location struct {
	World string  `json:"world"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Yaw   float32 `json:"yaw"`
	Pitch float32 `json:"pitch"`
}

// LocationFromModel converts a model.Location
func LocationFromModel(l model.Location) Location {
	return Location{World: l.World, X: l.X, Y: l.Y, Z: l.Z, Yaw: l.Yaw, Pitch: l.Pitch}
}

// Effect is an action the game server must carry out
type Effect struct {
	Kind     string    `json:"kind"`
	Target   string    `json:"target,omitempty"`
	Message  string    `json:"message,omitempty"`
	Location *Location `json:"location,omitempty"`
}

// EffectFromModel converts a model.Effect
func EffectFromModel(e model.Effect) Effect {
	out := Effect{
		Kind:    string(e.Kind),
		Target:  string(e.Target),
		Message: e.Message,
	}
	if e.Location != nil {
		loc := LocationFromModel(*e.Location)
		out.Location = &loc
	}
	return out
}

// EffectsResponse is returned by event and command endpoints
type EffectsResponse struct {
	Effects []Effect `json:"effects"`
}

// EffectsFromModel converts a list of effects; the result is never nil
func EffectsFromModel(effects []model.Effect) EffectsResponse {
	out := make([]Effect, len(effects))
	for i, e := range effects {
		out[i] = EffectFromModel(e)
	}
	return EffectsResponse{Effects: out}
}

// LoginResponse tells the game server whether to let a player in
type LoginResponse struct {
	Allowed bool   `json:"allowed"`
	Message string `json:"message,omitempty"`
}

// LoginFromModel converts a model.LoginDecision
func LoginFromModel(d model.LoginDecision) LoginResponse {
	return LoginResponse{Allowed: d.Allowed, Message: d.Message}
}

// CompletionsResponse lists tab completions
type CompletionsResponse struct {
	Completions []string `json:"completions"`
}

// Ban represents a ban record
type Ban struct {
	PlayerID  string     `json:"player_id"`
	Name      string     `json:"name,omitempty"`
	Reason    string     `json:"reason"`
	Operator  string     `json:"operator"`
	IssuedAt  time.Time  `json:"issued_at"`
	Until     *time.Time `json:"until"`
	UntilMS   int64      `json:"until_ms,omitempty"`
	Permanent bool       `json:"permanent"`
}

// BanFromModel converts a model.Ban. name overrides the stored name when set.
func BanFromModel(b *model.Ban, name string) Ban {
	if name == "" {
		name = b.Name
	}
	out := Ban{
		PlayerID:  string(b.PlayerID),
		Name:      name,
		Reason:    b.Reason,
		Operator:  b.Operator,
		IssuedAt:  b.IssuedAt.UTC(),
		Permanent: b.IsPermanent(),
	}
	if !b.IsPermanent() {
		out.UntilMS = b.Until.UnixMilli()
		// RFC 3339 stops at year 9999
		if until := b.Until.UTC(); until.Year() <= 9999 {
			out.Until = &until
		}
	}
	return out
}

// BansResponse lists active bans
type BansResponse struct {
	Bans []Ban `json:"bans"`
}

// UnbanResponse names the player whose ban was lifted
type UnbanResponse struct {
	PlayerID string `json:"player_id"`
}

// Spawns is the stored spawn configuration
type Spawns struct {
	FirstJoinSpawn *Location           `json:"first_join_spawn"`
	WorldSpawns    map[string]Location `json:"world_spawns"`
}

// SpawnsFromModel converts a model.SpawnConfig
func SpawnsFromModel(c model.SpawnConfig) Spawns {
	out := Spawns{WorldSpawns: make(map[string]Location, len(c.WorldSpawns))}
	if c.FirstJoinSpawn != nil {
		loc := LocationFromModel(*c.FirstJoinSpawn)
		out.FirstJoinSpawn = &loc
	}
	for world, loc := range c.WorldSpawns {
		out.WorldSpawns[world] = LocationFromModel(loc)
	}
	return out
}

// HealthResponse reports server status
type HealthResponse struct {
	Status string `json:"status"`
}
