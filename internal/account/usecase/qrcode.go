package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/otpgate/otpgate/internal/pkg/goerror"
	"github.com/otpgate/otpgate/internal/pkg/qr"
)

type QRCodeInput struct {
	Username string `validate:"required,linuxuser"`
}

type QRCodeOutput struct {
	Username        string
	ProvisioningURI string
	QRCodeBase64    string
}

// QRCode re-issues the provisioning QR for an existing active account.
func (s *Usecase) QRCode(ctx context.Context, in QRCodeInput) (*QRCodeOutput, error) {
	ctx, span := s.startSpan(ctx, "QRCode")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.throttle(ctx, "qr:"+in.Username); err != nil {
		return nil, err
	}

	acc, err := s.loadActiveAccount(ctx, in.Username)
	if err != nil {
		return nil, err
	}

	secret, err := s.decryptSecret(ctx, acc)
	if err != nil {
		return nil, err
	}

	uri := s.totp.ProvisioningURI(acc.Username, secret)

	png, err := s.qr.PNG(uri)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render provisioning qr code", "username", acc.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &QRCodeOutput{
		Username:        acc.Username,
		ProvisioningURI: uri,
		QRCodeBase64:    qr.ToBase64(png),
	}, nil
}
