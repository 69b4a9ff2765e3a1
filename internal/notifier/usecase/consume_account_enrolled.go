package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/otpgate/otpgate/internal/pkg/mail"
	"github.com/sethvargo/go-retry"
)

const (
	qrContentID      = "enrollment-qr"
	sendMaxRetries   = 3
	sendRetryBackoff = 500 * time.Millisecond
)

const enrollmentEmailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif;">
  <h2>Welcome to {{.app_name}}, {{.username}}</h2>
  <p>Your account has been enrolled for one-time-password protected password changes.</p>
  <p>Scan this QR code with your authenticator app:</p>
  <p><img src="cid:{{.qr_cid}}" alt="Provisioning QR code" width="256" height="256"></p>
  <p>If the image does not load, add this key manually:</p>
  <p><code>{{.provisioning_uri}}</code></p>
  <p style="color: #888; font-size: 12px;">&copy; {{.year}} {{.app_name}}</p>
</body>
</html>`

type ConsumeAccountEnrolledInput struct {
	AccountID       string `validate:"required"`
	Username        string `validate:"required,linuxuser"`
	Email           string `validate:"required,email"`
	ProvisioningURI string `validate:"required,startswith=otpauth://"`
}

// ConsumeAccountEnrolled sends the enrollment email with the provisioning QR
// embedded inline. Malformed payloads are dropped; delivery failures are
// retried before the message is handed back to the broker.
func (s *Usecase) ConsumeAccountEnrolled(ctx context.Context, in ConsumeAccountEnrolledInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeAccountEnrolled")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	png, err := s.qr.PNG(in.ProvisioningURI)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render provisioning qr code", "username", in.Username, "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["username"] = in.Username
	data["provisioning_uri"] = in.ProvisioningURI
	data["qr_cid"] = qrContentID

	body, err := s.renderTemplate("account_enrolled", enrollmentEmailTemplate, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render enrollment email", "username", in.Username, "error", err)
		return nil
	}

	msg := mail.Message{
		To:       []string{in.Email},
		Subject:  "Your authenticator enrollment",
		HTMLBody: body,
		Inlines: []mail.Inline{{
			ContentID:   qrContentID,
			ContentType: "image/png",
			Data:        png,
		}},
	}

	backoff := retry.WithMaxRetries(sendMaxRetries, retry.NewExponential(sendRetryBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.repoMail.Send(ctx, msg); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to send enrollment email", "username", in.Username, "error", err)
		return err
	}

	return nil
}
