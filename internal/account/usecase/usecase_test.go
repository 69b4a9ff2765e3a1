package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/otpgate/otpgate/internal/account/entity"
	"github.com/otpgate/otpgate/internal/pkg/clock"
	"github.com/otpgate/otpgate/internal/pkg/goerror"
	"github.com/otpgate/otpgate/internal/pkg/instrument"
	"github.com/otpgate/otpgate/internal/pkg/otp"
	"github.com/otpgate/otpgate/internal/pkg/qr"
	"github.com/otpgate/otpgate/internal/pkg/ratelimit"
	"github.com/otpgate/otpgate/internal/pkg/replay"
	"github.com/otpgate/otpgate/internal/pkg/secrecy"
	"github.com/otpgate/otpgate/internal/pkg/sysuser"
	"github.com/otpgate/otpgate/internal/pkg/uid"
	"github.com/otpgate/otpgate/internal/pkg/validator"
	libOTP "github.com/pquerna/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP"

type fakeRepoDB struct {
	getByUsername func(ctx context.Context, username string) (*entity.Account, error)
	getByEmail    func(ctx context.Context, email string) (*entity.Account, error)
	list          func(ctx context.Context) ([]entity.Account, error)
	create        func(ctx context.Context, acc entity.Account) error
	updateReplay  func(ctx context.Context, st entity.ReplayState) (bool, error)
	ping          func(ctx context.Context) error

	created      []entity.Account
	replayStates []entity.ReplayState
}

func (f *fakeRepoDB) GetAccountByUsername(ctx context.Context, username string) (*entity.Account, error) {
	if f.getByUsername != nil {
		return f.getByUsername(ctx, username)
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepoDB) GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if f.getByEmail != nil {
		return f.getByEmail(ctx, email)
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepoDB) GetAccountList(ctx context.Context) ([]entity.Account, error) {
	if f.list != nil {
		return f.list(ctx)
	}
	return nil, nil
}

func (f *fakeRepoDB) CreateAccount(ctx context.Context, acc entity.Account) error {
	f.created = append(f.created, acc)
	if f.create != nil {
		return f.create(ctx, acc)
	}
	return nil
}

func (f *fakeRepoDB) UpdateReplayState(ctx context.Context, st entity.ReplayState) (bool, error) {
	f.replayStates = append(f.replayStates, st)
	if f.updateReplay != nil {
		return f.updateReplay(ctx, st)
	}
	return true, nil
}

func (f *fakeRepoDB) Ping(ctx context.Context) error {
	if f.ping != nil {
		return f.ping(ctx)
	}
	return nil
}

type fakeMessaging struct {
	publish   func(ctx context.Context, msg AccountEnrolledEvent) error
	published []AccountEnrolledEvent
}

func (f *fakeMessaging) PublishAccountEnrolled(ctx context.Context, msg AccountEnrolledEvent) error {
	f.published = append(f.published, msg)
	if f.publish != nil {
		return f.publish(ctx, msg)
	}
	return nil
}

type fakeSystem struct {
	exists  func(ctx context.Context, username string) (bool, error)
	rotate  func(ctx context.Context, username, credential string) error
	rotated map[string]string
}

func (f *fakeSystem) Exists(ctx context.Context, username string) (bool, error) {
	if f.exists != nil {
		return f.exists(ctx, username)
	}
	return true, nil
}

func (f *fakeSystem) Rotate(ctx context.Context, username, credential string) error {
	if f.rotate != nil {
		return f.rotate(ctx, username, credential)
	}
	if f.rotated == nil {
		f.rotated = map[string]string{}
	}
	f.rotated[username] = credential
	return nil
}

type fixture struct {
	uc    *Usecase
	db    *fakeRepoDB
	msg   *fakeMessaging
	sys   *fakeSystem
	clock *clock.Fixed
	totp  otp.OTP
	enc   secrecy.Encryptor
}

func newFixture(t *testing.T, limiter ratelimit.Limiter) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	if limiter == nil {
		limiter = ratelimit.NewMemory(ratelimit.Policy{MaxAttempts: 5, Window: time.Hour})
	}

	f := &fixture{
		db:    &fakeRepoDB{},
		msg:   &fakeMessaging{},
		sys:   &fakeSystem{},
		clock: &clock.Fixed{At: time.Date(2026, 8, 25, 10, 0, 15, 0, time.UTC)},
		totp:  otp.NewTOTP("OTPGate", 30, 1, libOTP.DigitsSix),
		enc:   secrecy.NewAESGCMEncryptor(secrecy.StaticKeyProvider{KeyBytes: make([]byte, 32)}),
	}

	f.uc = New(Dependency{
		RepoDB:        f.db,
		RepoMessaging: f.msg,
		Validator:     v,
		Limiter:       limiter,
		Replay:        replay.NewGuard(30 * time.Second),
		Totp:          f.totp,
		Encryptor:     f.enc,
		System:        f.sys,
		QR:            qr.NewPNGEncoder(128),
		UUID:          uid.NewUUID(),
		Clock:         f.clock,
		Instrument:    instrument.NewNoop(),
	})

	return f
}

// account returns an active enrolled account whose secret decrypts to testSecret.
func (f *fixture) account(t *testing.T, username string) *entity.Account {
	t.Helper()

	encrypted, err := f.enc.Encrypt([]byte(testSecret), secrecy.Scope{
		Username: username,
		Purpose:  secrecy.PurposeTOTPSeed,
	})
	require.NoError(t, err)

	return &entity.Account{
		ID:         "0198f2c3-0000-7000-8000-000000000001",
		Username:   username,
		Email:      username + "@example.com",
		TOTPSecret: encrypted,
		Active:     true,
		CreatedAt:  f.clock.At.Add(-24 * time.Hour),
		UpdatedAt:  f.clock.At.Add(-24 * time.Hour),
	}
}

func (f *fixture) code(t *testing.T) string {
	t.Helper()

	code, err := f.totp.GenerateCode(testSecret, f.clock.At)
	require.NoError(t, err)
	return code
}

// invalidCode returns a well-formed code that is not valid in any step the
// skew accepts at the fixture's clock.
func (f *fixture) invalidCode(t *testing.T) string {
	t.Helper()

	valid := map[string]bool{}
	for _, d := range []time.Duration{-30 * time.Second, 0, 30 * time.Second} {
		code, err := f.totp.GenerateCode(testSecret, f.clock.At.Add(d))
		require.NoError(t, err)
		valid[code] = true
	}

	for _, code := range []string{"000000", "000001", "000002", "000003"} {
		if !valid[code] {
			return code
		}
	}

	t.Fatal("no invalid code candidate available")
	return ""
}

func assertErrorCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, code, ge.Code())
}

var _ sysuser.System = (*fakeSystem)(nil)
