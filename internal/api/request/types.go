package request

import (
	"github.com/mcoot/mixplugin-go/internal/model"
)

// Location is a position in a world
type Location struct {
	World string  `json:"world"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Yaw   float32 `json:"yaw"`
	Pitch float32 `json:"pitch"`
}

// ToModel converts to a model.Location
func (l Location) ToModel() model.Location {
	return model.Location{World: l.World, X: l.X, Y: l.Y, Z: l.Z, Yaw: l.Yaw, Pitch: l.Pitch}
}

// DeathEvent is sent when a player dies
type DeathEvent struct {
	PlayerID string   `json:"player_id"`
	Location Location `json:"location"`
}

// LoginEvent is sent before a player is allowed to connect
type LoginEvent struct {
	PlayerID string `json:"player_id"`
}

// JoinEvent is sent once a player has connected
type JoinEvent struct {
	PlayerID  string `json:"player_id"`
	FirstJoin bool   `json:"first_join"`
}

// Sender describes who ran a command
type Sender struct {
	PlayerID    string    `json:"player_id,omitempty"`
	Name        string    `json:"name,omitempty"`
	IsPlayer    bool      `json:"is_player"`
	IsOp        bool      `json:"is_op"`
	Permissions []string  `json:"permissions,omitempty"`
	Location    *Location `json:"location,omitempty"`
}

// ToModel converts to a model.Sender
func (s Sender) ToModel() model.Sender {
	id := model.PlayerID(s.PlayerID)
	if parsed, ok := model.ParsePlayerID(s.PlayerID); ok {
		id = parsed
	}
	sender := model.Sender{
		Player:      model.Player{ID: id, Name: s.Name},
		IsPlayer:    s.IsPlayer,
		IsOp:        s.IsOp,
		Permissions: s.Permissions,
	}
	if s.Location != nil {
		sender.Location = s.Location.ToModel()
	}
	return sender
}

// CommandRequest is a /mp invocation; Args are the words after the command
type CommandRequest struct {
	Sender Sender   `json:"sender"`
	Args   []string `json:"args"`
}

// CreateBanRequest is the request body for banning a player. Player is a
// UUID or the name of an online player.
type CreateBanRequest struct {
	Player   string `json:"player"`
	Days     int    `json:"days"`
	Reason   string `json:"reason"`
	Operator string `json:"operator,omitempty"`
}
