package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/otpgate/otpgate/internal/account/entity"
	"github.com/otpgate/otpgate/internal/pkg/goerror"
	"github.com/otpgate/otpgate/internal/pkg/ratelimit"
	"github.com/otpgate/otpgate/internal/pkg/secrecy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollSuccess(t *testing.T) {
	f := newFixture(t, nil)

	out, err := f.uc.Enroll(context.Background(), EnrollInput{
		Username: "alice",
		Email:    " Alice@Example.com ",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.AccountID)
	assert.Equal(t, "alice", out.Username)
	assert.Len(t, out.Secret, 32)
	assert.True(t, strings.HasPrefix(out.ProvisioningURI, "otpauth://totp/"))
	assert.NotEmpty(t, out.QRCodeBase64)

	require.Len(t, f.db.created, 1)
	stored := f.db.created[0]
	assert.Equal(t, "alice", stored.Username)
	assert.Equal(t, "alice@example.com", stored.Email, "email must be normalized")
	assert.True(t, stored.Active)
	assert.NotEqual(t, []byte(out.Secret), stored.TOTPSecret, "secret must be stored encrypted")

	plain, err := f.enc.Decrypt(stored.TOTPSecret, secrecy.Scope{Username: "alice", Purpose: secrecy.PurposeTOTPSeed})
	require.NoError(t, err)
	assert.Equal(t, out.Secret, string(plain))

	require.Len(t, f.msg.published, 1)
	assert.Equal(t, stored.ID, f.msg.published[0].AccountID)
	assert.Equal(t, out.ProvisioningURI, f.msg.published[0].ProvisioningURI)
}

func TestEnrollValidation(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		name string
		in   EnrollInput
	}{
		{name: "empty input", in: EnrollInput{}},
		{name: "bad username", in: EnrollInput{Username: "Not A User!", Email: "alice@example.com"}},
		{name: "bad email", in: EnrollInput{Username: "alice", Email: "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Enroll(context.Background(), tt.in)
			assertErrorCode(t, err, goerror.CodeInvalidInput)
		})
	}

	assert.Empty(t, f.db.created)
}

func TestEnrollThrottled(t *testing.T) {
	f := newFixture(t, ratelimit.NewMemory(ratelimit.Policy{MaxAttempts: 1, Window: time.Hour}))
	in := EnrollInput{Username: "alice", Email: "alice@example.com"}

	_, err := f.uc.Enroll(context.Background(), in)
	require.NoError(t, err)

	_, err = f.uc.Enroll(context.Background(), in)
	assert.ErrorIs(t, err, entity.ErrRateLimited)
	assertErrorCode(t, err, goerror.CodeTooManyRequest)
}

func TestEnrollDuplicate(t *testing.T) {
	f := newFixture(t, nil)
	existing := f.account(t, "alice")

	f.db.getByUsername = func(_ context.Context, username string) (*entity.Account, error) {
		if username == "alice" {
			return existing, nil
		}
		return nil, goerror.ErrNotFound
	}
	f.db.getByEmail = func(_ context.Context, email string) (*entity.Account, error) {
		if email == "alice@example.com" {
			return existing, nil
		}
		return nil, goerror.ErrNotFound
	}

	_, err := f.uc.Enroll(context.Background(), EnrollInput{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, entity.ErrDuplicateUsername)
	assertErrorCode(t, err, goerror.CodeConflict)

	_, err = f.uc.Enroll(context.Background(), EnrollInput{Username: "bob", Email: "alice@example.com"})
	assert.ErrorIs(t, err, entity.ErrDuplicateEmail)
	assertErrorCode(t, err, goerror.CodeConflict)

	assert.Empty(t, f.db.created)
}

func TestEnrollUnknownIdentity(t *testing.T) {
	f := newFixture(t, nil)
	f.sys.exists = func(context.Context, string) (bool, error) { return false, nil }

	_, err := f.uc.Enroll(context.Background(), EnrollInput{Username: "ghost", Email: "ghost@example.com"})
	assert.ErrorIs(t, err, entity.ErrUnknownIdentity)
	assertErrorCode(t, err, goerror.CodeInvalidInput)
	assert.Empty(t, f.db.created)
}

func TestEnrollInsertLosesRace(t *testing.T) {
	// Pre-checks pass but the insert hits the unique constraint.
	f := newFixture(t, nil)
	f.db.create = func(context.Context, entity.Account) error {
		return entity.ErrDuplicateUsername
	}

	_, err := f.uc.Enroll(context.Background(), EnrollInput{Username: "alice", Email: "alice@example.com"})
	assert.ErrorIs(t, err, entity.ErrDuplicateUsername)
	assertErrorCode(t, err, goerror.CodeConflict)
	assert.Empty(t, f.msg.published)
}

func TestEnrollPublishFailureDoesNotFailEnrollment(t *testing.T) {
	f := newFixture(t, nil)
	f.msg.publish = func(context.Context, AccountEnrolledEvent) error {
		return errors.New("broker unavailable")
	}

	out, err := f.uc.Enroll(context.Background(), EnrollInput{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Secret)
	assert.Len(t, f.db.created, 1)
}
