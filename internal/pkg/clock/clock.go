package clock

import "time"

// Clocker abstracts time so callers can replace real time in tests.
type Clocker interface {
	Now() time.Time
}

// TimeClocker is the production clock implementation backed by time.Now.
type TimeClocker struct{}

// New returns a TimeClocker that reads the current system time.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current system time.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}

// Fixed is a clock stuck at a single instant. Tests that assert throttle
// windows or code-reuse intervals move At forward manually.
type Fixed struct {
	At time.Time
}

// Now returns the fixed instant.
func (f *Fixed) Now() time.Time {
	return f.At
}
