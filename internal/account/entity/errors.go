package entity

import "errors"

var (
	// ErrRateLimited means the sliding-window budget for the operation is spent.
	ErrRateLimited = errors.New("account: rate limited")

	// ErrDuplicateUsername means the username is already enrolled.
	ErrDuplicateUsername = errors.New("account: username already enrolled")
	// ErrDuplicateEmail means the email is already enrolled.
	ErrDuplicateEmail = errors.New("account: email already enrolled")
	// ErrUnknownIdentity means no matching system user exists on the host.
	ErrUnknownIdentity = errors.New("account: unknown system identity")

	// ErrNotFound means the account does not exist.
	ErrNotFound = errors.New("account: not found")
	// ErrDisabled means the account is administratively disabled.
	ErrDisabled = errors.New("account: disabled")
	// ErrInvalidCode means the TOTP code failed verification.
	ErrInvalidCode = errors.New("account: invalid code")
	// ErrReplayedCode means the code was already accepted within the replay window.
	ErrReplayedCode = errors.New("account: replayed code")
	// ErrWeakCredential means the new credential does not meet the length floor.
	ErrWeakCredential = errors.New("account: weak credential")
	// ErrRotationFailed means the system-level credential rotation failed.
	ErrRotationFailed = errors.New("account: rotation failed")
	// ErrConcurrentModification means another rotation won the replay-state CAS.
	ErrConcurrentModification = errors.New("account: concurrent modification")
)
