package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/otpgate/otpgate/internal/account/entity"
	"github.com/otpgate/otpgate/internal/pkg/clock"
	"github.com/otpgate/otpgate/internal/pkg/config"
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
	"go.opentelemetry.io/otel/trace"
)

type AccountEnrolledEvent struct {
	AccountID       string
	Username        string
	Email           string
	ProvisioningURI string
}

type repoMessaging interface {
	PublishAccountEnrolled(ctx context.Context, msg AccountEnrolledEvent) error
}

type repoDB interface {
	GetAccountByUsername(ctx context.Context, username string) (*entity.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetAccountList(ctx context.Context) ([]entity.Account, error)

	CreateAccount(ctx context.Context, acc entity.Account) error
	UpdateReplayState(ctx context.Context, st entity.ReplayState) (bool, error)

	Ping(ctx context.Context) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	limiter       ratelimit.Limiter
	replay        *replay.Guard
	totp          otp.OTP
	encryptor     secrecy.Encryptor
	system        sysuser.System
	qr            qr.Encoder
	uuid          uid.StringID
	clock         clock.Clocker
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Limiter       ratelimit.Limiter
	Replay        *replay.Guard
	Totp          otp.OTP
	Encryptor     secrecy.Encryptor
	System        sysuser.System
	QR            qr.Encoder
	UUID          uid.StringID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		limiter:       dep.Limiter,
		replay:        dep.Replay,
		totp:          dep.Totp,
		encryptor:     dep.Encryptor,
		system:        dep.System,
		qr:            dep.QR,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.usecase").Start(ctx, name)
}

// throttle consumes one attempt from the sliding-window budget of key.
// A denial is not recorded by the limiter, matching the window semantics.
func (s *Usecase) throttle(ctx context.Context, key string) error {
	ok, err := s.limiter.Allow(ctx, key, s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to check rate limit", "key", key, "error", err)
		return goerror.NewServer(err)
	}
	if !ok {
		slog.WarnContext(ctx, "rate limit exceeded", "key", key)
		return goerror.NewBusinessFrom(entity.ErrRateLimited, "Too many attempts, try again later", goerror.CodeTooManyRequest)
	}
	return nil
}

// loadActiveAccount fetches an account and rejects missing or disabled ones.
func (s *Usecase) loadActiveAccount(ctx context.Context, username string) (*entity.Account, error) {
	acc, err := s.repoDB.GetAccountByUsername(ctx, username)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account not found", "username", username)
		return nil, goerror.NewBusinessFrom(entity.ErrNotFound, "Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account", "username", username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !acc.Active {
		slog.WarnContext(ctx, "account is disabled", "username", username)
		return nil, goerror.NewBusinessFrom(entity.ErrDisabled, "Account is disabled", goerror.CodeForbidden)
	}

	return acc, nil
}

// decryptSecret recovers the plaintext base32 seed for an account.
func (s *Usecase) decryptSecret(ctx context.Context, acc *entity.Account) (string, error) {
	plain, err := s.encryptor.Decrypt(acc.TOTPSecret, secrecy.Scope{
		Username: acc.Username,
		Purpose:  secrecy.PurposeTOTPSeed,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to decrypt totp secret", "username", acc.Username, "error", err)
		return "", goerror.NewServer(err)
	}
	return string(plain), nil
}
