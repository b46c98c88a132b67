package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mcoot/mixplugin-go/internal/chat"
	"github.com/mcoot/mixplugin-go/internal/model"
)

func (r *Router) ban(ctx context.Context, sender model.Sender, args []string) []model.Effect {
	if refusal := guard(sender, false, PermBan); refusal != nil {
		return refusal
	}
	if len(args) < 3 {
		return reply(msgBanUsage, msgBanExampleDays, msgBanExamplePerm)
	}

	target, err := r.host.FindOnlinePlayer(ctx, args[1])
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return reply(msgBanTargetOffline)
		}
		return r.hostFailure("ban", err)
	}

	days, err := ParseDays(args[2])
	if err != nil {
		return reply(msgBanDaysNotNumber)
	}
	if len(args) < 4 {
		return reply(msgBanReasonRequired)
	}
	reason := strings.Join(args[3:], " ")
	operator := operatorName(sender)

	if _, err := r.bans.Ban(ctx, target.ID, target.Name, days, reason, operator); err != nil {
		return reply(msgBanTargetOffline)
	}

	return BanEffects(target, days, reason, operator)
}

// ParseDays reads a ban duration in whole days within the 32-bit range.
// Zero or fewer means permanent.
func ParseDays(s string) (int, error) {
	days, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, model.ErrInvalidDays)
	}
	return int(days), nil
}

// BanEffects disconnects a freshly banned player and tells everyone else
func BanEffects(target model.Player, days int, reason, operator string) []model.Effect {
	announcement := fmt.Sprintf("Player %s has been banned\nReason: %s\nDuration: %s\nBanned by: %s",
		target.Name, reason, chat.Days(days), operator)
	return []model.Effect{
		model.Kick(target.ID, chat.BanScreen(reason, operator, "Unbanned", durationLabel(days))),
		model.Broadcast(chat.Prefixed(announcement)),
	}
}

func (r *Router) unban(ctx context.Context, sender model.Sender, args []string) []model.Effect {
	if refusal := guard(sender, false, PermUnban); refusal != nil {
		return refusal
	}
	if len(args) < 2 {
		return reply(msgUnbanUsage)
	}

	id, err := r.bans.Unban(ctx, args[1])
	if err != nil {
		return reply(msgUnbanNotFound)
	}

	name, err := r.host.PlayerName(ctx, id)
	if err != nil || name == "" {
		name = string(id)
	}
	return reply(fmt.Sprintf("Lifted the ban on %s", name))
}

func (r *Router) listBans(ctx context.Context, sender model.Sender) []model.Effect {
	if refusal := guard(sender, false, PermBans); refusal != nil {
		return refusal
	}

	list := r.bans.List(ctx)
	if len(list) == 0 {
		return reply(msgNoBans)
	}

	now := r.clock.Now()
	effects := []model.Effect{model.Message("", msgBansHeader)}
	for _, ban := range list {
		name := r.bans.DisplayName(ctx, ban)
		if name == "" {
			name = unknownPlayer
		}
		status := "Permanent"
		if !ban.IsPermanent() {
			status = "Unbanned in " + chat.TimeLeft(ban.RemainingMillis(now))
		}
		entry := fmt.Sprintf("%s (%s)\nReason: %s\nBanned by: %s\nBanned on: %s\nStatus: %s",
			name,
			ban.PlayerID.Short(),
			ban.Reason,
			ban.Operator,
			ban.IssuedAt.Format(model.BanDateLayout),
			status,
		)
		effects = append(effects, model.Message("", entry), model.Message("", msgBansRule))
	}
	return effects
}
