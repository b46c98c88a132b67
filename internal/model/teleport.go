package model

import "time"

// TeleportRequestTimeout is how long a teleport request stays acceptable
const TeleportRequestTimeout = 120 * time.Second

// TeleportRequest is a pending request from Requester to be moved to a target
type TeleportRequest struct {
	Requester PlayerID
	CreatedAt time.Time
}

// ValidAt reports whether the request can still be accepted at now.
// A request exactly TeleportRequestTimeout old is still valid.
func (r TeleportRequest) ValidAt(now time.Time) bool {
	return now.Sub(r.CreatedAt) <= TeleportRequestTimeout
}
