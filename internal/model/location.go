package model

// Location is a position in a named world. A Location whose world no longer
// exists is still a valid value; callers check the world resolves before use.
type Location struct {
	World string
	X     float64
	Y     float64
	Z     float64
	Yaw   float32
	Pitch float32
}

// IsZero reports whether the location is unset
func (l Location) IsZero() bool {
	return l == Location{}
}

// SpawnConfig is the persisted spawn state
type SpawnConfig struct {
	FirstJoinSpawn *Location
	WorldSpawns    map[string]Location
}
