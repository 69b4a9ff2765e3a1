package qr

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNG(t *testing.T) {
	enc := NewPNGEncoder(128)

	data, err := enc.PNG("otpauth://totp/OTPGate:alice?secret=JBSWY3DPEHPK3PXP")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())
}

func TestPNGDefaultSize(t *testing.T) {
	enc := NewPNGEncoder(0)

	data, err := enc.PNG("payload")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestToBase64(t *testing.T) {
	got := ToBase64([]byte{0x89, 'P', 'N', 'G'})

	decoded, err := base64.StdEncoding.DecodeString(got)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, decoded)
}
