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

func TestQRCodeSuccess(t *testing.T) {
	f := rotateFixture(t, nil)

	out, err := f.uc.QRCode(context.Background(), QRCodeInput{Username: "alice"})
	require.NoError(t, err)

	assert.Equal(t, "alice", out.Username)
	assert.Equal(t, f.totp.ProvisioningURI("alice", testSecret), out.ProvisioningURI)
	assert.NotEmpty(t, out.QRCodeBase64)
}

func TestQRCodeAccountNotFound(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.uc.QRCode(context.Background(), QRCodeInput{Username: "ghost"})
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assertErrorCode(t, err, goerror.CodeNotFound)
}

func TestQRCodeDisabledAccount(t *testing.T) {
	f := newFixture(t, nil)
	acc := f.account(t, "alice")
	acc.Active = false
	f.db.getByUsername = func(context.Context, string) (*entity.Account, error) { return acc, nil }

	_, err := f.uc.QRCode(context.Background(), QRCodeInput{Username: "alice"})
	assert.ErrorIs(t, err, entity.ErrDisabled)
	assertErrorCode(t, err, goerror.CodeForbidden)
}

func TestQRCodeThrottled(t *testing.T) {
	f := rotateFixture(t, ratelimit.NewMemory(ratelimit.Policy{MaxAttempts: 1, Window: time.Hour}))

	_, err := f.uc.QRCode(context.Background(), QRCodeInput{Username: "alice"})
	require.NoError(t, err)

	_, err = f.uc.QRCode(context.Background(), QRCodeInput{Username: "alice"})
	assert.ErrorIs(t, err, entity.ErrRateLimited)
	assertErrorCode(t, err, goerror.CodeTooManyRequest)
}
