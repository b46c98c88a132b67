package bans

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/mixplugin-go/internal/dependencies/clock"
	"github.com/mcoot/mixplugin-go/internal/host"
	"github.com/mcoot/mixplugin-go/internal/model"
	"github.com/mcoot/mixplugin-go/internal/storage"
)

// DocumentName is the name of the persisted ban document
const DocumentName = "bans"

const dayMillis int64 = 86_400_000

// Records live under bans.<player-id>
var bansPath = storage.P("bans")

// Registry is the persisted set of banned players. Expiry is lazy: an
// expired ban stays in the document until a login check or a listing
// notices it.
type Registry struct {
	store  *storage.Store
	clock  clock.Clock
	names  host.Directory
	logger *slog.Logger

	mu sync.Mutex
}

// New creates a Registry over a loaded store
func New(store *storage.Store, clock clock.Clock, names host.Directory, logger *slog.Logger) *Registry {
	return &Registry{
		store:  store,
		clock:  clock,
		names:  names,
		logger: logger,
	}
}

// Ban records a ban for player, replacing any existing one. A duration of
// zero or fewer days is permanent.
func (r *Registry) Ban(ctx context.Context, player model.PlayerID, name string, durationDays int, reason, operator string) (*model.Ban, error) {
	if player == "" {
		return nil, model.ErrPlayerNotFound
	}
	if reason == "" {
		reason = storage.DefaultBanReason
	}
	if operator == "" {
		operator = storage.DefaultBanOperator
	}

	now := r.clock.Now()
	ban := &model.Ban{
		PlayerID: player,
		Name:     name,
		Reason:   reason,
		Operator: operator,
		IssuedAt: now,
	}
	if durationDays > 0 {
		ban.Until = expiry(now, durationDays)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store.Set(bansPath.Child(string(player)), storage.EncodeBan(ban))
	r.persist(ctx)

	r.logger.Info("player banned",
		slog.String("player", string(player)),
		slog.String("operator", operator),
		slog.Int("days", durationDays),
	)
	return ban, nil
}

// CheckAndConsumeIfExpired reports the ban state of player. An expired ban
// is deleted as a side effect and reported once as ExpiredAndCleared.
func (r *Registry) CheckAndConsumeIfExpired(ctx context.Context, player model.PlayerID) (model.BanStatus, *model.Ban) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ban, ok := r.get(player)
	if !ok {
		return model.NotBanned, nil
	}
	if !ban.ExpiredAt(r.clock.Now()) {
		return model.ActiveBan, ban
	}

	r.store.Remove(bansPath.Child(string(player)))
	r.persist(ctx)
	r.logger.Info("expired ban cleared", slog.String("player", string(player)))
	return model.ExpiredAndCleared, ban
}

// Get returns the stored ban for player without checking expiry
func (r *Registry) Get(player model.PlayerID) (*model.Ban, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(player)
}

// Unban removes the ban matching input and returns the unbanned player.
// Input is tried as a stored id, then as a UUID in any accepted form, then
// as a display name (case-insensitive). Returns model.ErrBanNotFound if
// nothing matches.
//
// Name lookups go to the host without holding the lock, so a slow host
// does not stall login checks.
func (r *Registry) Unban(ctx context.Context, input string) (model.PlayerID, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", model.ErrBanNotFound
	}

	r.mu.Lock()
	id, ok := r.matchID(input)
	if ok {
		defer r.mu.Unlock()
		r.remove(ctx, id)
		return id, nil
	}
	bans := r.snapshot()
	r.mu.Unlock()

	id, ok = r.matchName(ctx, bans, input)
	if !ok {
		return "", model.ErrBanNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// unbanned by someone else while names were resolving
	if _, ok := r.get(id); !ok {
		return "", model.ErrBanNotFound
	}
	r.remove(ctx, id)
	return id, nil
}

// List returns all active bans in document order. Expired bans found on
// the way are removed.
func (r *Registry) List(ctx context.Context) []*model.Ban {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	var (
		bans    []*model.Ban
		expired int
	)
	for _, key := range r.store.Keys(bansPath) {
		ban, ok := r.get(model.PlayerID(key))
		if !ok {
			continue
		}
		if ban.ExpiredAt(now) {
			r.store.Remove(bansPath.Child(key))
			expired++
			continue
		}
		bans = append(bans, ban)
	}

	if expired > 0 {
		r.persist(ctx)
		r.logger.Info("expired bans cleared", slog.Int("count", expired))
	}
	return bans
}

// Names returns the display names of banned players in document order.
// Players the host has never named fall back to their stored name, then
// to their id.
func (r *Registry) Names(ctx context.Context) []string {
	r.mu.Lock()
	bans := r.snapshot()
	r.mu.Unlock()

	names := make([]string, 0, len(bans))
	for _, ban := range bans {
		name := r.displayName(ctx, ban)
		if name == "" {
			name = string(ban.PlayerID)
		}
		names = append(names, name)
	}
	return names
}

// DisplayName resolves the name to show for a ban
func (r *Registry) DisplayName(ctx context.Context, ban *model.Ban) string {
	return r.displayName(ctx, ban)
}

func (r *Registry) get(player model.PlayerID) (*model.Ban, bool) {
	sec, ok := r.store.Section(bansPath.Child(string(player)))
	if !ok {
		return nil, false
	}
	return storage.DecodeBan(player, sec)
}

// snapshot decodes every stored ban in document order. Callers hold mu.
func (r *Registry) snapshot() []*model.Ban {
	keys := r.store.Keys(bansPath)
	bans := make([]*model.Ban, 0, len(keys))
	for _, key := range keys {
		if ban, ok := r.get(model.PlayerID(key)); ok {
			bans = append(bans, ban)
		}
	}
	return bans
}

// matchID finds a stored key equal to input, raw or as a canonical UUID.
// Callers hold mu.
func (r *Registry) matchID(input string) (model.PlayerID, bool) {
	keys := r.store.Keys(bansPath)

	for _, key := range keys {
		if key == input {
			return model.PlayerID(key), true
		}
	}

	if id, ok := model.ParsePlayerID(input); ok {
		for _, key := range keys {
			if keyID, ok := model.ParsePlayerID(key); ok && keyID == id {
				return model.PlayerID(key), true
			}
		}
	}
	return "", false
}

func (r *Registry) matchName(ctx context.Context, bans []*model.Ban, input string) (model.PlayerID, bool) {
	for _, ban := range bans {
		if strings.EqualFold(r.displayName(ctx, ban), input) {
			return ban.PlayerID, true
		}
	}
	return "", false
}

// remove deletes a ban and saves. Callers hold mu.
func (r *Registry) remove(ctx context.Context, id model.PlayerID) {
	r.store.Remove(bansPath.Child(string(id)))
	r.persist(ctx)
	r.logger.Info("player unbanned", slog.String("player", string(id)))
}

func (r *Registry) displayName(ctx context.Context, ban *model.Ban) string {
	name, err := r.names.PlayerName(ctx, ban.PlayerID)
	if err != nil {
		r.logger.Warn("failed to resolve player name",
			slog.String("player", string(ban.PlayerID)),
			slog.String("error", err.Error()),
		)
	}
	if name == "" {
		name = ban.Name
	}
	return name
}

// expiry returns now plus days, computed in epoch milliseconds. Durations
// past the millisecond range saturate instead of wrapping.
func expiry(now time.Time, days int) time.Time {
	start := now.UnixMilli()
	if int64(days) > math.MaxInt64/dayMillis {
		return time.UnixMilli(math.MaxInt64).In(now.Location())
	}
	span := int64(days) * dayMillis
	if start > 0 && span > math.MaxInt64-start {
		return time.UnixMilli(math.MaxInt64).In(now.Location())
	}
	return time.UnixMilli(start + span).In(now.Location())
}

// persist saves the document. Failures are logged and the in-memory
// change stands.
func (r *Registry) persist(ctx context.Context) {
	if err := r.store.Save(ctx); err != nil {
		r.logger.Error("failed to save ban list", slog.String("error", err.Error()))
	}
}
