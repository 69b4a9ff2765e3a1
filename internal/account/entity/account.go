package entity

import "time"

// Account is an enrolled identity whose credential rotation is gated by TOTP.
type Account struct {
	ID       string
	Username string
	Email    string

	// TOTPSecret is the AES-GCM encrypted base32 seed; it is never held in
	// plaintext outside a single verification.
	TOTPSecret []byte

	Active bool

	// LastCodeUsed and LastCodeAt track the most recently accepted code for
	// replay suppression. Zero values mean no code has been accepted yet.
	LastCodeUsed string
	LastCodeAt   time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReplayState is the CAS update applied after a successful rotation. The
// update only lands when the stored values still equal the Prev fields.
type ReplayState struct {
	Username string

	PrevCodeUsed string
	PrevCodeAt   time.Time

	CodeUsed string
	CodeAt   time.Time
}
