package death

import (
	"sync"

	"github.com/mcoot/mixplugin-go/internal/model"
)

// Table remembers where each player last died, until they go back there
type Table struct {
	mu        sync.Mutex
	locations map[model.PlayerID]model.Location
}

// New creates an empty Table
func New() *Table {
	return &Table{locations: make(map[model.PlayerID]model.Location)}
}

// Record stores player's death location, replacing any earlier one
func (t *Table) Record(player model.PlayerID, loc model.Location) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.locations[player] = loc
}

// Consume returns and forgets player's death location
func (t *Table) Consume(player model.PlayerID) (model.Location, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	loc, ok := t.locations[player]
	if ok {
		delete(t.locations, player)
	}
	return loc, ok
}

// Len returns the number of recorded locations
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.locations)
}
