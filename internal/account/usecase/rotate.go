package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/otpgate/otpgate/internal/account/entity"
	"github.com/otpgate/otpgate/internal/pkg/goerror"
)

const minCredentialLength = 8

type RotateInput struct {
	Username      string `validate:"required,linuxuser"`
	Code          string `validate:"required,len=6,numeric"`
	NewCredential string `validate:"required"`
}

// Rotate changes the system credential of an account after a successful TOTP
// check. Steps run in a fixed order; a failed step never reaches the next
// one, and a failed system rotation leaves the replay state untouched.
func (s *Usecase) Rotate(ctx context.Context, in RotateInput) error {
	ctx, span := s.startSpan(ctx, "Rotate")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.throttle(ctx, "rotate:"+in.Username); err != nil {
		return err
	}

	acc, err := s.loadActiveAccount(ctx, in.Username)
	if err != nil {
		return err
	}

	secret, err := s.decryptSecret(ctx, acc)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	if !s.totp.Validate(in.Code, secret, now) {
		slog.WarnContext(ctx, "totp code rejected", "username", in.Username)
		return goerror.NewBusinessFrom(entity.ErrInvalidCode, "Invalid verification code", goerror.CodeForbidden)
	}

	if !s.replay.Allow(acc.LastCodeUsed, acc.LastCodeAt, in.Code, now) {
		slog.WarnContext(ctx, "totp code replayed", "username", in.Username)
		return goerror.NewBusinessFrom(entity.ErrReplayedCode, "Verification code already used", goerror.CodeForbidden)
	}

	if len(in.NewCredential) < minCredentialLength {
		return goerror.NewBusinessFrom(entity.ErrWeakCredential, "New password is too short", goerror.CodeInvalidInput)
	}

	if err := s.system.Rotate(ctx, in.Username, in.NewCredential); err != nil {
		slog.ErrorContext(ctx, "failed to rotate system credential", "username", in.Username, "error", err)
		return goerror.NewBusinessFrom(entity.ErrRotationFailed, "Password change failed", goerror.CodeInternal)
	}

	ok, err := s.repoDB.UpdateReplayState(ctx, entity.ReplayState{
		Username:     in.Username,
		PrevCodeUsed: acc.LastCodeUsed,
		PrevCodeAt:   acc.LastCodeAt,
		CodeUsed:     in.Code,
		CodeAt:       now,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to update replay state", "username", in.Username, "error", err)
		return goerror.NewServer(err)
	}
	if !ok {
		slog.WarnContext(ctx, "replay state changed concurrently", "username", in.Username)
		return goerror.NewBusinessFrom(entity.ErrConcurrentModification, "Concurrent password change detected", goerror.CodeConflict)
	}

	return nil
}
