package httphost

import "github.com/mcoot/mixplugin-go/internal/model"

// playerInfo is a player as reported by the bridge
type playerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Online bool   `json:"online"`
}

func (p playerInfo) toModel() model.Player {
	id := model.PlayerID(p.ID)
	if parsed, ok := model.ParsePlayerID(p.ID); ok {
		id = parsed
	}
	return model.Player{ID: id, Name: p.Name}
}

type location struct {
	World string  `json:"world"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Yaw   float32 `json:"yaw"`
	Pitch float32 `json:"pitch"`
}

func (l location) toModel() model.Location {
	return model.Location{World: l.World, X: l.X, Y: l.Y, Z: l.Z, Yaw: l.Yaw, Pitch: l.Pitch}
}

func locationFromModel(l model.Location) *location {
	return &location{World: l.World, X: l.X, Y: l.Y, Z: l.Z, Yaw: l.Yaw, Pitch: l.Pitch}
}

type effect struct {
	Kind     string    `json:"kind"`
	Target   string    `json:"target,omitempty"`
	Message  string    `json:"message,omitempty"`
	Location *location `json:"location,omitempty"`
}

func effectFromModel(e model.Effect) effect {
	out := effect{
		Kind:    string(e.Kind),
		Target:  string(e.Target),
		Message: e.Message,
	}
	if e.Location != nil {
		out.Location = locationFromModel(*e.Location)
	}
	return out
}

type effectsRequest struct {
	Effects []effect `json:"effects"`
}
