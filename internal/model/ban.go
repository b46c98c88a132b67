package model

import "time"

// BanDateLayout is the layout of the human-readable issuance date
const BanDateLayout = "2006-01-02 15:04:05"

// Ban is a ban record for one player. A zero Until means permanent.
type Ban struct {
	PlayerID PlayerID
	Name     string // display name at ban time, may be empty
	Reason   string
	Operator string // issuer's display name at ban time
	IssuedAt time.Time
	Until    time.Time
}

// IsPermanent reports whether the ban never expires
func (b *Ban) IsPermanent() bool {
	return b.Until.IsZero()
}

// ExpiredAt reports whether the ban is logically expired at now.
// Comparison happens on epoch milliseconds, the persisted resolution.
func (b *Ban) ExpiredAt(now time.Time) bool {
	if b.IsPermanent() {
		return false
	}
	return now.UnixMilli() > b.Until.UnixMilli()
}

// RemainingMillis returns the milliseconds left on a temporary ban, never
// negative
func (b *Ban) RemainingMillis(now time.Time) int64 {
	if b.IsPermanent() {
		return 0
	}
	return max(b.Until.UnixMilli()-now.UnixMilli(), 0)
}

// BanStatus is the outcome of a login-time ban check
type BanStatus int

const (
	NotBanned BanStatus = iota
	ActiveBan
	ExpiredAndCleared
)

func (s BanStatus) String() string {
	switch s {
	case NotBanned:
		return "not_banned"
	case ActiveBan:
		return "active_ban"
	case ExpiredAndCleared:
		return "expired_and_cleared"
	default:
		return "unknown"
	}
}

// LoginDecision is returned to the host for a login attempt
type LoginDecision struct {
	Allowed bool
	Message string // kick message when not allowed
}
