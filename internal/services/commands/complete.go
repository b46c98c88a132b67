package commands

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/mcoot/mixplugin-go/internal/model"
)

var verbs = []string{
	VerbBack,
	VerbTpa,
	VerbBan,
	VerbUnban,
	VerbBans,
	VerbSpawn,
	VerbSetFirstSpawn,
	VerbSetWorldSpawn,
}

// banDaySuggestions are offered for the ban duration argument
var banDaySuggestions = []string{"0", "7", "30"}

// Complete returns sorted suggestions for the last word in args
func (r *Router) Complete(ctx context.Context, sender model.Sender, args []string) []string {
	var completions []string

	switch len(args) {
	case 1:
		for _, verb := range verbs {
			if sender.HasPermission(verbPermissions[verb]) && hasPrefixFold(verb, args[0]) {
				completions = append(completions, verb)
			}
		}
	case 2:
		partial := args[1]
		switch strings.ToLower(args[0]) {
		case VerbTpa:
			if sender.HasPermission(PermTpa) {
				completions = append(completions, r.onlineNames(ctx, partial)...)
				for word, perm := range map[string]string{"accept": PermTpaAccept, "deny": PermTpaDeny} {
					if sender.HasPermission(perm) && hasPrefixFold(word, partial) {
						completions = append(completions, word)
					}
				}
			}
		case VerbBan:
			if sender.HasPermission(PermBan) {
				completions = append(completions, r.onlineNames(ctx, partial)...)
			}
		case VerbUnban:
			if sender.HasPermission(PermUnban) {
				for _, name := range r.bans.Names(ctx) {
					if hasPrefixFold(name, partial) {
						completions = append(completions, name)
					}
				}
			}
		}
	case 3:
		if strings.EqualFold(args[0], VerbBan) && sender.HasPermission(PermBan) {
			completions = append(completions, banDaySuggestions...)
		}
	case 4:
		if strings.EqualFold(args[0], VerbBan) && sender.HasPermission(PermBan) {
			completions = append(completions, "<reason>")
		}
	}

	sort.Strings(completions)
	return completions
}

func (r *Router) onlineNames(ctx context.Context, partial string) []string {
	players, err := r.host.OnlinePlayers(ctx)
	if err != nil {
		r.logger.Warn("failed to list online players", slog.String("error", err.Error()))
		return nil
	}
	var names []string
	for _, p := range players {
		if hasPrefixFold(p.Name, partial) {
			names = append(names, p.Name)
		}
	}
	return names
}

func hasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}
