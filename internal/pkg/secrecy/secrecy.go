// Package secrecy encrypts TOTP seeds at rest.
//
// Ciphertexts are AES-256-GCM with the owning account and purpose bound in as
// additional authenticated data, so a ciphertext copied between rows fails to
// decrypt.
package secrecy

// Encryptor defines the interface for encrypting/decrypting secrets.
type Encryptor interface {
	// Encrypt returns ciphertext for the given plaintext and scope.
	Encrypt(plaintext []byte, scope Scope) (ciphertext []byte, err error)
	// Decrypt returns plaintext for the given ciphertext and scope.
	Decrypt(ciphertext []byte, scope Scope) (plaintext []byte, err error)
}

// KeyProvider provides raw AES keys. For AES-256-GCM, keys must be 32 bytes.
type KeyProvider interface {
	// Key returns the raw AES key to use for this scope.
	Key(scope Scope) ([]byte, error)
}

// Purpose identifies what a ciphertext protects.
type Purpose string

// PurposeTOTPSeed scopes encryption to TOTP seeds.
const PurposeTOTPSeed Purpose = "totp_seed"

// Scope binds encryption to a specific owner. It is used as AAD
// (Additional Authenticated Data) in AES-GCM.
type Scope struct {
	// Username is the owning account's username.
	Username string
	// Purpose is the encryption purpose.
	Purpose Purpose
}
