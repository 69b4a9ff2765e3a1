// Package otp wraps time-based one-time password generation and verification.
//
// Secrets are 20 random bytes encoded as 32 base32 characters, verified with
// SHA-1, six digits, a 30 second step and one step of clock drift either way.
package otp
