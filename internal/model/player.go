package model

import (
	"strings"

	"github.com/google/uuid"
)

// PlayerID is the stable per-account identifier (not the display name)
type PlayerID string

// ParsePlayerID normalises a textual id. UUIDs are returned in canonical
// lower-case hyphenated form; anything else is rejected.
func ParsePlayerID(s string) (PlayerID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return PlayerID(id.String()), true
}

// Short returns the first eight characters of the id for display
func (id PlayerID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// Player is an account as seen by the host at a point in time
type Player struct {
	ID   PlayerID
	Name string
}

// Sender is whoever invoked a command: an in-game player or the console
type Sender struct {
	Player      Player
	IsPlayer    bool // false for console / remote admin
	IsOp        bool
	Permissions []string
	Location    Location // current position, only meaningful for players
}

// HasPermission reports whether the sender holds perm. Operators hold all.
func (s Sender) HasPermission(perm string) bool {
	if s.IsOp {
		return true
	}
	for _, p := range s.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}
