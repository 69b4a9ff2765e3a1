package otp

import (
	"strings"
	"testing"
	"time"

	libOTP "github.com/pquerna/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	totp := NewTOTP("OTPGate", 30, 1, libOTP.DigitsSix)

	secret, uri, err := totp.Generate("alice")
	require.NoError(t, err)

	// 20-byte secret encodes to 32 base32 chars without padding.
	assert.Len(t, secret, 32)
	assert.True(t, strings.HasPrefix(uri, "otpauth://totp/"))
	assert.Contains(t, uri, "issuer=OTPGate")
	assert.Contains(t, uri, "secret="+secret)
}

func TestProvisioningURI(t *testing.T) {
	totp := NewTOTP("OTPGate", 30, 1, libOTP.DigitsSix)
	secret := "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP"

	uri := totp.ProvisioningURI("alice", secret)

	assert.True(t, strings.HasPrefix(uri, "otpauth://totp/OTPGate:alice?"))
	assert.Contains(t, uri, "secret="+secret)
	assert.Contains(t, uri, "issuer=OTPGate")
	assert.Contains(t, uri, "period=30")
	assert.Contains(t, uri, "algorithm=SHA1")
	assert.Contains(t, uri, "digits=6")
}

func TestValidateWithinSkew(t *testing.T) {
	totp := NewTOTP("OTPGate", 30, 1, libOTP.DigitsSix)
	secret := "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP"
	now := time.Date(2026, 8, 25, 10, 0, 15, 0, time.UTC)

	code, err := totp.GenerateCode(secret, now)
	require.NoError(t, err)

	assert.True(t, totp.Validate(code, secret, now))
	assert.True(t, totp.Validate(code, secret, now.Add(30*time.Second)), "previous step inside skew")
	assert.True(t, totp.Validate(code, secret, now.Add(-30*time.Second)), "next step inside skew")
	assert.False(t, totp.Validate(code, secret, now.Add(90*time.Second)), "outside skew")
	assert.False(t, totp.Validate("000000", secret, now))
	assert.False(t, totp.Validate("not-a-code", secret, now))
}

func TestNewTOTPDefaults(t *testing.T) {
	totp := NewTOTP("OTPGate", 0, 0, libOTP.Digits(99))

	assert.Equal(t, uint(30), totp.period)
	assert.Equal(t, uint(1), totp.skew)
	assert.Equal(t, libOTP.DigitsSix, totp.digits)
}
