// Package clock provides a tiny time abstraction.
//
// Throttling and one-time-code checks are all time arithmetic, so business
// code depends on the Clocker interface instead of calling time.Now()
// directly and tests swap in a deterministic clock.
package clock
