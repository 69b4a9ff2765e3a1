package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/otpgate/otpgate/internal/account/entity"
	"github.com/otpgate/otpgate/internal/pkg/goerror"
	"github.com/otpgate/otpgate/internal/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRedactsSensitiveFields(t *testing.T) {
	f := newFixture(t, nil)
	acc := f.account(t, "alice")
	acc.LastCodeUsed = "123456"
	acc.LastCodeAt = f.clock.At
	f.db.list = func(context.Context) ([]entity.Account, error) {
		return []entity.Account{*acc}, nil
	}

	out, err := f.uc.List(context.Background(), ListInput{ClientIP: "127.0.0.1"})
	require.NoError(t, err)

	require.Len(t, out.Accounts, 1)
	got := out.Accounts[0]
	assert.Equal(t, acc.ID, got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.True(t, got.Active)
	assert.Equal(t, acc.CreatedAt, got.CreatedAt)
}

func TestListEmpty(t *testing.T) {
	f := newFixture(t, nil)

	out, err := f.uc.List(context.Background(), ListInput{ClientIP: "127.0.0.1"})
	require.NoError(t, err)
	assert.Empty(t, out.Accounts)
	assert.NotNil(t, out.Accounts)
}

func TestListThrottledPerClient(t *testing.T) {
	f := newFixture(t, ratelimit.NewMemory(ratelimit.Policy{MaxAttempts: 1, Window: time.Hour}))

	_, err := f.uc.List(context.Background(), ListInput{ClientIP: "10.0.0.1"})
	require.NoError(t, err)

	_, err = f.uc.List(context.Background(), ListInput{ClientIP: "10.0.0.1"})
	assert.ErrorIs(t, err, entity.ErrRateLimited)

	// Another client keeps its own budget.
	_, err = f.uc.List(context.Background(), ListInput{ClientIP: "10.0.0.2"})
	assert.NoError(t, err)
}

func TestListRepoError(t *testing.T) {
	f := newFixture(t, nil)
	f.db.list = func(context.Context) ([]entity.Account, error) {
		return nil, errors.New("connection reset")
	}

	_, err := f.uc.List(context.Background(), ListInput{ClientIP: "127.0.0.1"})
	assertErrorCode(t, err, goerror.CodeInternal)
}

func TestHealth(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.uc.Health(context.Background()))

	f.db.ping = func(context.Context) error { return errors.New("down") }
	assertErrorCode(t, f.uc.Health(context.Background()), goerror.CodeInternal)
}
