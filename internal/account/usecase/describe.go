package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/otpgate/otpgate/internal/account/entity"
	"github.com/otpgate/otpgate/internal/pkg/goerror"
)

type DescribeInput struct {
	Username string `validate:"required,linuxuser"`
	ClientIP string `validate:"required"`
}

type DescribeOutput struct {
	Account ListedAccount
}

// Describe returns a single enrolled account with secrets and replay state
// redacted. Disabled accounts are included; the Active flag tells them apart.
func (s *Usecase) Describe(ctx context.Context, in DescribeInput) (*DescribeOutput, error) {
	ctx, span := s.startSpan(ctx, "Describe")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.throttle(ctx, "list:"+in.ClientIP); err != nil {
		return nil, err
	}

	acc, err := s.repoDB.GetAccountByUsername(ctx, in.Username)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account not found", "username", in.Username)
		return nil, goerror.NewBusinessFrom(entity.ErrNotFound, "Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DescribeOutput{Account: redactAccount(*acc)}, nil
}
