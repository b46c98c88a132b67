// Package chat formats the text the plugin sends to players
package chat

import (
	"fmt"
	"strings"
)

// Prefix marks every line the plugin sends to a player
const Prefix = "[MixPlugin] "

// Prefixed prepends Prefix to text
func Prefixed(text string) string {
	return Prefix + text
}

// TimeLeft renders a remaining time in milliseconds as whole days and
// hours, e.g. "6d 23h"
func TimeLeft(ms int64) string {
	ms = max(ms, 0)
	days := ms / 86_400_000
	hours := (ms % 86_400_000) / 3_600_000
	return fmt.Sprintf("%dd %dh", days, hours)
}

// Days renders a ban duration in days, "permanent" for zero or fewer
func Days(days int) string {
	switch {
	case days <= 0:
		return "permanent"
	case days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

// BanScreen is the disconnect text shown to a banned player. label names
// the last line's value, which is time left on login or the ban length
// when the ban is issued.
func BanScreen(reason, operator, label, value string) string {
	var b strings.Builder
	b.WriteString("You are banned from this server\n\n")
	fmt.Fprintf(&b, "Reason: %s\n", reason)
	fmt.Fprintf(&b, "Banned by: %s\n", operator)
	fmt.Fprintf(&b, "%s: %s\n\n", label, value)
	b.WriteString("Contact an administrator if you have questions")
	return b.String()
}
