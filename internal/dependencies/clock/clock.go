package clock

import "time"

// Clock supplies the current time so expiry logic can be tested without
// depending on the wall clock
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Millis returns the clock's current time as epoch milliseconds,
// the resolution used for every persisted timestamp
func Millis(c Clock) int64 {
	return c.Now().UnixMilli()
}
