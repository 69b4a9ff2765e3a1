package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/otpgate/otpgate/internal/pkg/clock"
	"github.com/otpgate/otpgate/internal/pkg/config"
	"github.com/otpgate/otpgate/internal/pkg/instrument"
	"github.com/otpgate/otpgate/internal/pkg/mail"
	"github.com/otpgate/otpgate/internal/pkg/qr"
	"github.com/otpgate/otpgate/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMail struct {
	send func(ctx context.Context, msg mail.Message) error
	sent []mail.Message
}

func (f *fakeMail) Send(ctx context.Context, msg mail.Message) error {
	f.sent = append(f.sent, msg)
	if f.send != nil {
		return f.send(ctx, msg)
	}
	return nil
}

func newTestNotifier(t *testing.T, m *fakeMail) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  name: OTPGate\n"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cfg.Close() })

	return NewNotifier(Dependency{
		RepoMail:   m,
		QR:         qr.NewPNGEncoder(128),
		Config:     cfg,
		Clock:      &clock.Fixed{At: time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)},
		Validator:  v,
		Instrument: instrument.NewNoop(),
	})
}

func validInput() ConsumeAccountEnrolledInput {
	return ConsumeAccountEnrolledInput{
		AccountID:       "0198f2c3-0000-7000-8000-000000000001",
		Username:        "alice",
		Email:           "alice@example.com",
		ProvisioningURI: "otpauth://totp/OTPGate:alice?secret=JBSWY3DPEHPK3PXP",
	}
}

func TestConsumeAccountEnrolled(t *testing.T) {
	m := &fakeMail{}
	uc := newTestNotifier(t, m)

	err := uc.ConsumeAccountEnrolled(context.Background(), validInput())
	require.NoError(t, err)

	require.Len(t, m.sent, 1)
	msg := m.sent[0]
	assert.Equal(t, []string{"alice@example.com"}, msg.To)
	assert.Equal(t, "Your authenticator enrollment", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "Welcome to OTPGate, alice")
	assert.Contains(t, msg.HTMLBody, "cid:enrollment-qr")
	assert.Contains(t, msg.HTMLBody, "otpauth://totp/OTPGate:alice")
	assert.Contains(t, msg.HTMLBody, "2026")

	require.Len(t, msg.Inlines, 1)
	assert.Equal(t, "enrollment-qr", msg.Inlines[0].ContentID)
	assert.Equal(t, "image/png", msg.Inlines[0].ContentType)
	assert.NotEmpty(t, msg.Inlines[0].Data)
}

func TestConsumeAccountEnrolledDropsInvalidPayload(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConsumeAccountEnrolledInput)
	}{
		{name: "missing email", mutate: func(in *ConsumeAccountEnrolledInput) { in.Email = "" }},
		{name: "bad username", mutate: func(in *ConsumeAccountEnrolledInput) { in.Username = "Not A User" }},
		{name: "non otpauth uri", mutate: func(in *ConsumeAccountEnrolledInput) { in.ProvisioningURI = "https://evil.example" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMail{}
			uc := newTestNotifier(t, m)

			in := validInput()
			tt.mutate(&in)

			// A poisoned payload is dropped, not retried.
			assert.NoError(t, uc.ConsumeAccountEnrolled(context.Background(), in))
			assert.Empty(t, m.sent)
		})
	}
}

func TestConsumeAccountEnrolledRetriesDelivery(t *testing.T) {
	m := &fakeMail{}
	m.send = func(context.Context, mail.Message) error {
		if len(m.sent) == 1 {
			return errors.New("smtp: temporary failure")
		}
		return nil
	}
	uc := newTestNotifier(t, m)

	err := uc.ConsumeAccountEnrolled(context.Background(), validInput())
	require.NoError(t, err)
	assert.Len(t, m.sent, 2)
}
