package secrecy

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEncryptor() *AESGCMEncryptor {
	return NewAESGCMEncryptor(StaticKeyProvider{KeyBytes: bytes.Repeat([]byte{0x42}, 32)})
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	enc := testEncryptor()
	scope := Scope{Username: "alice", Purpose: PurposeTOTPSeed}
	plaintext := []byte("JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP")

	ciphertext, err := enc.Encrypt(plaintext, scope)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	got, err := enc.Decrypt(ciphertext, scope)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestDecryptWrongScope(t *testing.T) {
	enc := testEncryptor()
	ciphertext, err := enc.Encrypt([]byte("seed"), Scope{Username: "alice", Purpose: PurposeTOTPSeed})
	require.NoError(t, err)

	_, err = enc.Decrypt(ciphertext, Scope{Username: "mallory", Purpose: PurposeTOTPSeed})
	assert.ErrorIs(t, err, ErrDecryptFailed)

	_, err = enc.Decrypt(ciphertext, Scope{Username: "alice", Purpose: Purpose("other")})
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestDecryptTampered(t *testing.T) {
	enc := testEncryptor()
	scope := Scope{Username: "alice", Purpose: PurposeTOTPSeed}

	ciphertext, err := enc.Encrypt([]byte("seed"), scope)
	require.NoError(t, err)

	ciphertext[len(ciphertext)-1] ^= 0x01
	_, err = enc.Decrypt(ciphertext, scope)
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestEncryptValidation(t *testing.T) {
	scope := Scope{Username: "alice", Purpose: PurposeTOTPSeed}

	_, err := testEncryptor().Encrypt(nil, scope)
	assert.ErrorIs(t, err, ErrPlaintextEmpty)

	var nilEnc *AESGCMEncryptor
	_, err = nilEnc.Encrypt([]byte("seed"), scope)
	assert.ErrorIs(t, err, ErrEncryptorNotConfigured)

	short := NewAESGCMEncryptor(StaticKeyProvider{KeyBytes: []byte("too-short")})
	_, err = short.Encrypt([]byte("seed"), scope)
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestDecryptMalformedCiphertext(t *testing.T) {
	enc := testEncryptor()
	scope := Scope{Username: "alice", Purpose: PurposeTOTPSeed}

	_, err := enc.Decrypt([]byte{0x00, 0x01}, scope)
	assert.ErrorIs(t, err, ErrCiphertextTooShort)

	ciphertext, err := enc.Encrypt([]byte("seed"), scope)
	require.NoError(t, err)

	ciphertext[0] = 0xFF // bogus version
	_, err = enc.Decrypt(ciphertext, scope)
	assert.ErrorIs(t, err, ErrUnsupportedCiphertextVersion)
}
