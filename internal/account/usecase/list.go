package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/otpgate/otpgate/internal/account/entity"
	"github.com/otpgate/otpgate/internal/pkg/goerror"
	"github.com/samber/lo"
)

type ListInput struct {
	ClientIP string `validate:"required"`
}

type ListedAccount struct {
	ID        string
	Username  string
	Email     string
	Active    bool
	CreatedAt time.Time
}

type ListOutput struct {
	Accounts []ListedAccount
}

// List returns all enrolled accounts with secrets and replay state redacted.
func (s *Usecase) List(ctx context.Context, in ListInput) (*ListOutput, error) {
	ctx, span := s.startSpan(ctx, "List")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.throttle(ctx, "list:"+in.ClientIP); err != nil {
		return nil, err
	}

	accounts, err := s.repoDB.GetAccountList(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account list", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListOutput{
		Accounts: lo.Map(accounts, func(acc entity.Account, _ int) ListedAccount {
			return redactAccount(acc)
		}),
	}, nil
}

// redactAccount strips the encrypted secret and replay columns from a view.
func redactAccount(acc entity.Account) ListedAccount {
	return ListedAccount{
		ID:        acc.ID,
		Username:  acc.Username,
		Email:     acc.Email,
		Active:    acc.Active,
		CreatedAt: acc.CreatedAt,
	}
}
