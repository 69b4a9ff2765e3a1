package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/otpgate/otpgate/internal/account/entity"
	"github.com/otpgate/otpgate/internal/pkg/goerror"
	"github.com/otpgate/otpgate/internal/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeSuccess(t *testing.T) {
	f := rotateFixture(t, nil)

	out, err := f.uc.Describe(context.Background(), DescribeInput{Username: "alice", ClientIP: "127.0.0.1"})
	require.NoError(t, err)

	assert.Equal(t, "alice", out.Account.Username)
	assert.Equal(t, "alice@example.com", out.Account.Email)
	assert.True(t, out.Account.Active)
}

func TestDescribeIncludesDisabledAccount(t *testing.T) {
	f := newFixture(t, nil)
	acc := f.account(t, "alice")
	acc.Active = false
	f.db.getByUsername = func(context.Context, string) (*entity.Account, error) { return acc, nil }

	out, err := f.uc.Describe(context.Background(), DescribeInput{Username: "alice", ClientIP: "127.0.0.1"})
	require.NoError(t, err)
	assert.False(t, out.Account.Active)
}

func TestDescribeNotFound(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.uc.Describe(context.Background(), DescribeInput{Username: "ghost", ClientIP: "127.0.0.1"})
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assertErrorCode(t, err, goerror.CodeNotFound)
}

func TestDescribeSharesListBudget(t *testing.T) {
	f := rotateFixture(t, ratelimit.NewMemory(ratelimit.Policy{MaxAttempts: 1, Window: time.Hour}))

	_, err := f.uc.List(context.Background(), ListInput{ClientIP: "10.0.0.1"})
	require.NoError(t, err)

	_, err = f.uc.Describe(context.Background(), DescribeInput{Username: "alice", ClientIP: "10.0.0.1"})
	assert.ErrorIs(t, err, entity.ErrRateLimited)
}
