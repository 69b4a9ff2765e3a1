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

func rotateFixture(t *testing.T, limiter ratelimit.Limiter) *fixture {
	t.Helper()

	f := newFixture(t, limiter)
	acc := f.account(t, "alice")
	f.db.getByUsername = func(_ context.Context, username string) (*entity.Account, error) {
		if username == acc.Username {
			cp := *acc
			return &cp, nil
		}
		return nil, goerror.ErrNotFound
	}
	return f
}

func TestRotateSuccess(t *testing.T) {
	f := rotateFixture(t, nil)
	code := f.code(t)

	err := f.uc.Rotate(context.Background(), RotateInput{
		Username:      "alice",
		Code:          code,
		NewCredential: "correct horse battery staple",
	})
	require.NoError(t, err)

	assert.Equal(t, "correct horse battery staple", f.sys.rotated["alice"])

	require.Len(t, f.db.replayStates, 1)
	st := f.db.replayStates[0]
	assert.Equal(t, "alice", st.Username)
	assert.Equal(t, code, st.CodeUsed)
	assert.Equal(t, f.clock.At, st.CodeAt)
	assert.Empty(t, st.PrevCodeUsed, "first rotation has no prior code")
}

func TestRotateValidation(t *testing.T) {
	f := rotateFixture(t, nil)

	tests := []struct {
		name string
		in   RotateInput
	}{
		{name: "empty input", in: RotateInput{}},
		{name: "code too short", in: RotateInput{Username: "alice", Code: "123", NewCredential: "long enough pw"}},
		{name: "code not numeric", in: RotateInput{Username: "alice", Code: "12a456", NewCredential: "long enough pw"}},
		{name: "bad username", in: RotateInput{Username: "Not A User!", Code: "123456", NewCredential: "long enough pw"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.uc.Rotate(context.Background(), tt.in)
			assertErrorCode(t, err, goerror.CodeInvalidInput)
		})
	}

	assert.Empty(t, f.sys.rotated)
}

func TestRotateThrottled(t *testing.T) {
	f := rotateFixture(t, ratelimit.NewMemory(ratelimit.Policy{MaxAttempts: 1, Window: time.Hour}))

	// A failed verification still consumes the attempt.
	err := f.uc.Rotate(context.Background(), RotateInput{Username: "alice", Code: f.invalidCode(t), NewCredential: "long enough pw"})
	assert.ErrorIs(t, err, entity.ErrInvalidCode)

	err = f.uc.Rotate(context.Background(), RotateInput{Username: "alice", Code: f.code(t), NewCredential: "long enough pw"})
	assert.ErrorIs(t, err, entity.ErrRateLimited)
	assertErrorCode(t, err, goerror.CodeTooManyRequest)
}

func TestRotateAccountNotFound(t *testing.T) {
	f := rotateFixture(t, nil)

	err := f.uc.Rotate(context.Background(), RotateInput{Username: "ghost", Code: "123456", NewCredential: "long enough pw"})
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assertErrorCode(t, err, goerror.CodeNotFound)
}

func TestRotateDisabledAccount(t *testing.T) {
	f := newFixture(t, nil)
	acc := f.account(t, "alice")
	acc.Active = false
	f.db.getByUsername = func(context.Context, string) (*entity.Account, error) { return acc, nil }

	err := f.uc.Rotate(context.Background(), RotateInput{Username: "alice", Code: "123456", NewCredential: "long enough pw"})
	assert.ErrorIs(t, err, entity.ErrDisabled)
	assertErrorCode(t, err, goerror.CodeForbidden)
}

func TestRotateInvalidCode(t *testing.T) {
	f := rotateFixture(t, nil)

	err := f.uc.Rotate(context.Background(), RotateInput{Username: "alice", Code: f.invalidCode(t), NewCredential: "long enough pw"})
	assert.ErrorIs(t, err, entity.ErrInvalidCode)
	assertErrorCode(t, err, goerror.CodeForbidden)
	assert.Empty(t, f.sys.rotated)
	assert.Empty(t, f.db.replayStates)
}

func TestRotateReplayedCode(t *testing.T) {
	f := newFixture(t, nil)
	code := f.code(t)

	acc := f.account(t, "alice")
	acc.LastCodeUsed = code
	acc.LastCodeAt = f.clock.At.Add(-10 * time.Second)
	f.db.getByUsername = func(context.Context, string) (*entity.Account, error) { return acc, nil }

	err := f.uc.Rotate(context.Background(), RotateInput{Username: "alice", Code: code, NewCredential: "long enough pw"})
	assert.ErrorIs(t, err, entity.ErrReplayedCode)
	assertErrorCode(t, err, goerror.CodeForbidden)
	assert.Empty(t, f.sys.rotated)
}

func TestRotateReplayIntervalElapsed(t *testing.T) {
	// The same code after the guard interval is only rejected if the TOTP
	// window also moved on; here the guard alone must not block it.
	f := newFixture(t, nil)
	code := f.code(t)

	acc := f.account(t, "alice")
	acc.LastCodeUsed = code
	acc.LastCodeAt = f.clock.At.Add(-31 * time.Second)
	f.db.getByUsername = func(context.Context, string) (*entity.Account, error) { return acc, nil }

	err := f.uc.Rotate(context.Background(), RotateInput{Username: "alice", Code: code, NewCredential: "long enough pw"})
	require.NoError(t, err)
}

func TestRotateWeakCredential(t *testing.T) {
	// A valid code must not excuse a short password, and the failure must not
	// consume the code.
	f := rotateFixture(t, nil)

	err := f.uc.Rotate(context.Background(), RotateInput{Username: "alice", Code: f.code(t), NewCredential: "short"})
	assert.ErrorIs(t, err, entity.ErrWeakCredential)
	assertErrorCode(t, err, goerror.CodeInvalidInput)
	assert.Empty(t, f.sys.rotated)
	assert.Empty(t, f.db.replayStates)
}

func TestRotateSystemFailureLeavesReplayStateUntouched(t *testing.T) {
	f := rotateFixture(t, nil)
	f.sys.rotate = func(context.Context, string, string) error {
		return errors.New("chpasswd: permission denied")
	}

	err := f.uc.Rotate(context.Background(), RotateInput{Username: "alice", Code: f.code(t), NewCredential: "long enough pw"})
	assert.ErrorIs(t, err, entity.ErrRotationFailed)
	assertErrorCode(t, err, goerror.CodeInternal)
	assert.Empty(t, f.db.replayStates, "a failed rotation must not burn the code")
}

func TestRotateConcurrentModification(t *testing.T) {
	f := rotateFixture(t, nil)
	f.db.updateReplay = func(context.Context, entity.ReplayState) (bool, error) { return false, nil }

	err := f.uc.Rotate(context.Background(), RotateInput{Username: "alice", Code: f.code(t), NewCredential: "long enough pw"})
	assert.ErrorIs(t, err, entity.ErrConcurrentModification)
	assertErrorCode(t, err, goerror.CodeConflict)
}
