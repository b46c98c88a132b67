package teleport

import (
	"context"
	"fmt"
	"sync"

	"github.com/mcoot/mixplugin-go/internal/dependencies/clock"
	"github.com/mcoot/mixplugin-go/internal/host"
	"github.com/mcoot/mixplugin-go/internal/model"
)

// Table holds at most one pending teleport request per target. Requests are
// not persisted and stale ones are only noticed on accept.
type Table struct {
	clock    clock.Clock
	presence host.Presence

	mu       sync.Mutex
	requests map[model.PlayerID]model.TeleportRequest
}

// New creates an empty Table
func New(clock clock.Clock, presence host.Presence) *Table {
	return &Table{
		clock:    clock,
		presence: presence,
		requests: make(map[model.PlayerID]model.TeleportRequest),
	}
}

// Request records that requester wants to be moved to target. A newer
// request to the same target replaces the older one.
func (t *Table) Request(requester, target model.PlayerID) error {
	if requester == target {
		return model.ErrSelfTeleport
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.requests[target] = model.TeleportRequest{
		Requester: requester,
		CreatedAt: t.clock.Now(),
	}
	return nil
}

// Accept consumes target's pending request and returns the requester.
// The entry is cleared whatever the outcome. An offline requester is
// returned together with model.ErrRequesterOffline.
func (t *Table) Accept(ctx context.Context, target model.PlayerID) (model.PlayerID, error) {
	t.mu.Lock()
	req, ok := t.requests[target]
	delete(t.requests, target)
	t.mu.Unlock()

	if !ok {
		return "", model.ErrNoPendingRequest
	}
	if !req.ValidAt(t.clock.Now()) {
		return "", model.ErrRequestExpired
	}

	online, err := t.presence.IsOnline(ctx, req.Requester)
	if err != nil {
		return req.Requester, fmt.Errorf("check requester presence: %w", err)
	}
	if !online {
		return req.Requester, model.ErrRequesterOffline
	}
	return req.Requester, nil
}

// Deny clears target's pending request and returns the requester.
// Unlike Accept, the request's age is not checked.
func (t *Table) Deny(target model.PlayerID) (model.PlayerID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	req, ok := t.requests[target]
	if !ok {
		return "", model.ErrNoPendingRequest
	}
	delete(t.requests, target)
	return req.Requester, nil
}

// Pending returns target's pending request, expired or not
func (t *Table) Pending(target model.PlayerID) (model.TeleportRequest, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	req, ok := t.requests[target]
	return req, ok
}

// Clear drops target's pending request, if any
func (t *Table) Clear(target model.PlayerID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.requests, target)
}

// Len returns the number of pending requests
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.requests)
}
