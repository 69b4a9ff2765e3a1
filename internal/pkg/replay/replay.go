// Package replay decides whether an already-verified one-time code is a
// repeat of the last accepted one.
package replay

import "time"

// Guard suppresses reuse of the most recently accepted code.
//
// The check is stateless: callers pass the stored last-accepted code and
// timestamp, and persist the new pair themselves after a successful
// operation. Only codes that already passed verification should be checked.
type Guard struct {
	interval time.Duration
}

// NewGuard constructs a Guard. A non-positive interval defaults to 30s, the
// TOTP step, so a code cannot be accepted twice inside its own step.
func NewGuard(interval time.Duration) *Guard {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Guard{interval: interval}
}

// Allow reports whether code may be accepted at time now.
//
// It is denied only when it equals the last accepted code AND that code was
// accepted less than the guard interval ago. A different code, no prior
// acceptance, or an old enough prior acceptance all pass.
func (g *Guard) Allow(lastCode string, lastAt time.Time, code string, now time.Time) bool {
	if lastCode == "" || lastAt.IsZero() {
		return true
	}
	if code != lastCode {
		return true
	}
	return now.Sub(lastAt) >= g.interval
}

// Interval returns the guard interval.
func (g *Guard) Interval() time.Duration {
	return g.interval
}
