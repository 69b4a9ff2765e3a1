// Package qr renders otpauth provisioning URIs as QR code images.
package qr

import (
	"bytes"
	"encoding/base64"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// Encoder renders payloads as PNG QR codes.
type Encoder interface {
	// PNG returns the payload encoded as a square PNG image.
	PNG(payload string) ([]byte, error)
}

// PNGEncoder renders QR codes at a fixed pixel size.
type PNGEncoder struct {
	size int
}

// NewPNGEncoder constructs a PNGEncoder. A non-positive size defaults to 256.
func NewPNGEncoder(size int) *PNGEncoder {
	if size <= 0 {
		size = 256
	}
	return &PNGEncoder{size: size}
}

// PNG encodes payload as a QR code with medium error correction.
func (e *PNGEncoder) PNG(payload string) ([]byte, error) {
	code, err := qr.Encode(payload, qr.M, qr.Auto)
	if err != nil {
		return nil, err
	}

	code, err = barcode.Scale(code, e.size, e.size)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToBase64 returns the standard base64 encoding of an image, the form embedded
// in JSON responses and data URIs.
func ToBase64(img []byte) string {
	return base64.StdEncoding.EncodeToString(img)
}
