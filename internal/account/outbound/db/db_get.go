package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/otpgate/otpgate/internal/account/entity"
)

const getAccountByUsernameSQL = `
SELECT id, username, email, totp_secret, active, last_code_used, last_code_at, created_at, updated_at
FROM accounts
WHERE username = $1`

func (s *DB) GetAccountByUsername(ctx context.Context, username string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByUsername")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, getAccountByUsernameSQL, username)
	acc, err := scanAccount(row)
	if err != nil {
		return nil, s.mapError(err)
	}
	return acc, nil
}

const getAccountByEmailSQL = `
SELECT id, username, email, totp_secret, active, last_code_used, last_code_at, created_at, updated_at
FROM accounts
WHERE email = $1`

func (s *DB) GetAccountByEmail(ctx context.Context, email string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByEmail")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, getAccountByEmailSQL, email)
	acc, err := scanAccount(row)
	if err != nil {
		return nil, s.mapError(err)
	}
	return acc, nil
}

const getAccountListSQL = `
SELECT id, username, email, totp_secret, active, last_code_used, last_code_at, created_at, updated_at
FROM accounts
ORDER BY created_at ASC`

func (s *DB) GetAccountList(ctx context.Context) (_ []entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountList")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, getAccountListSQL)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var accounts []entity.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, s.mapError(err)
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return accounts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*entity.Account, error) {
	var acc entity.Account
	var lastCodeUsed pgtype.Text
	var lastCodeAt pgtype.Timestamptz

	err := row.Scan(
		&acc.ID,
		&acc.Username,
		&acc.Email,
		&acc.TOTPSecret,
		&acc.Active,
		&lastCodeUsed,
		&lastCodeAt,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastCodeUsed.Valid {
		acc.LastCodeUsed = lastCodeUsed.String
	}
	if lastCodeAt.Valid {
		acc.LastCodeAt = lastCodeAt.Time
	}

	return &acc, nil
}
