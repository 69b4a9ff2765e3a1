package db

import (
	"context"

	"github.com/otpgate/otpgate/internal/account/entity"
)

const createAccountSQL = `
INSERT INTO accounts (id, username, email, totp_secret, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

func (s *DB) CreateAccount(ctx context.Context, acc entity.Account) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createAccountSQL,
		acc.ID,
		acc.Username,
		acc.Email,
		acc.TOTPSecret,
		acc.Active,
		acc.CreatedAt,
		acc.UpdatedAt,
	)
	err = s.mapError(err)
	return err
}
