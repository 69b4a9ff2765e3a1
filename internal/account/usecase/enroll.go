package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/otpgate/otpgate/internal/account/entity"
	"github.com/otpgate/otpgate/internal/pkg/goerror"
	"github.com/otpgate/otpgate/internal/pkg/qr"
	"github.com/otpgate/otpgate/internal/pkg/secrecy"
)

type EnrollInput struct {
	Username string `validate:"required,linuxuser"`
	Email    string `validate:"required,email"`
}

type EnrollOutput struct {
	AccountID       string
	Username        string
	Secret          string
	ProvisioningURI string
	QRCodeBase64    string
}

func (s *Usecase) Enroll(ctx context.Context, in EnrollInput) (*EnrollOutput, error) {
	ctx, span := s.startSpan(ctx, "Enroll")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.throttle(ctx, "register:"+in.Email); err != nil {
		return nil, err
	}

	if err := s.ensureNotEnrolled(ctx, in); err != nil {
		return nil, err
	}

	exists, err := s.system.Exists(ctx, in.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check system identity", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !exists {
		slog.WarnContext(ctx, "no matching system identity", "username", in.Username)
		return nil, goerror.NewBusinessFrom(entity.ErrUnknownIdentity, "No matching system user", goerror.CodeInvalidInput)
	}

	secret, uri, err := s.totp.Generate(in.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate totp secret", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	encrypted, err := s.encryptor.Encrypt([]byte(secret), secrecy.Scope{
		Username: in.Username,
		Purpose:  secrecy.PurposeTOTPSeed,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encrypt totp secret", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	acc := entity.Account{
		ID:         s.uuid.Generate(),
		Username:   in.Username,
		Email:      in.Email,
		TOTPSecret: encrypted,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repoDB.CreateAccount(ctx, acc); err != nil {
		if mapped := s.mapDuplicate(err); mapped != nil {
			return nil, mapped
		}
		slog.ErrorContext(ctx, "failed to repo create account", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishAccountEnrolled(ctx, AccountEnrolledEvent{
		AccountID:       acc.ID,
		Username:        acc.Username,
		Email:           acc.Email,
		ProvisioningURI: uri,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish account enrolled", "username", acc.Username, "error", err)
	}

	png, err := s.qr.PNG(uri)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render provisioning qr code", "username", acc.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &EnrollOutput{
		AccountID:       acc.ID,
		Username:        acc.Username,
		Secret:          secret,
		ProvisioningURI: uri,
		QRCodeBase64:    qr.ToBase64(png),
	}, nil
}

func (s *Usecase) ensureNotEnrolled(ctx context.Context, in EnrollInput) error {
	if _, err := s.repoDB.GetAccountByUsername(ctx, in.Username); err == nil {
		return goerror.NewBusinessFrom(entity.ErrDuplicateUsername, "Username already enrolled", goerror.CodeConflict)
	} else if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by username", "username", in.Username, "error", err)
		return goerror.NewServer(err)
	}

	if _, err := s.repoDB.GetAccountByEmail(ctx, in.Email); err == nil {
		return goerror.NewBusinessFrom(entity.ErrDuplicateEmail, "Email already enrolled", goerror.CodeConflict)
	} else if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

// mapDuplicate handles the insert losing a race that the pre-checks missed.
func (s *Usecase) mapDuplicate(err error) error {
	if errors.Is(err, entity.ErrDuplicateUsername) {
		return goerror.NewBusinessFrom(entity.ErrDuplicateUsername, "Username already enrolled", goerror.CodeConflict)
	}
	if errors.Is(err, entity.ErrDuplicateEmail) {
		return goerror.NewBusinessFrom(entity.ErrDuplicateEmail, "Email already enrolled", goerror.CodeConflict)
	}
	return nil
}
