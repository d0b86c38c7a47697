package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/shandysiswandi/passcode/internal/auth/entity"
	"github.com/shandysiswandi/passcode/internal/pkg/authn"
	"github.com/shandysiswandi/passcode/internal/pkg/clock"
	"github.com/shandysiswandi/passcode/internal/pkg/config"
	"github.com/shandysiswandi/passcode/internal/pkg/goerror"
	"github.com/shandysiswandi/passcode/internal/pkg/hash"
	"github.com/shandysiswandi/passcode/internal/pkg/instrument"
	"github.com/shandysiswandi/passcode/internal/pkg/otp"
	"github.com/shandysiswandi/passcode/internal/pkg/validator"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const defaultPasscodeTTL = 10 * time.Minute

// PasscodeNotification is what a notifier needs to deliver a passcode.
type PasscodeNotification struct {
	Email     string
	Code      string
	ExpiresIn time.Duration
}

// Notifier delivers a passcode to its owner.
type Notifier interface {
	NotifyPasscode(ctx context.Context, msg PasscodeNotification) error
}

type repoDB interface {
	GetSessionUserByToken(ctx context.Context, tokenHash string, now time.Time) (*entity.SessionUser, error)
	DeleteSessionByToken(ctx context.Context, tokenHash string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
	ListUsers(ctx context.Context, limit, offset int32) ([]entity.User, int64, error)
}

type issuer interface {
	Issue(ctx context.Context, in IssueInput) (*IssueOutput, error)
}

type Usecase struct {
	repoDB    repoDB
	notifier  Notifier
	otpStore  otp.Store
	otpGen    otp.Generator
	issuer    issuer
	validator validator.Validator
	cfg       config.Config
	hmac      hash.Hash
	clock     clock.Clocker
	ins       instrument.Instrumentation
	enforcer  *casbin.Enforcer
	metrics   passcodeMetrics
}

type Dependency struct {
	RepoDB     repoDB
	Notifier   Notifier
	OTPStore   otp.Store
	OTPGen     otp.Generator
	Issuer     issuer
	Validator  validator.Validator
	Config     config.Config
	HMAC       hash.Hash
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
	Enforcer   *casbin.Enforcer
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		notifier:  dep.Notifier,
		otpStore:  dep.OTPStore,
		otpGen:    dep.OTPGen,
		issuer:    dep.Issuer,
		validator: dep.Validator,
		cfg:       dep.Config,
		hmac:      dep.HMAC,
		clock:     dep.Clock,
		ins:       dep.Instrument,
		enforcer:  dep.Enforcer,
		metrics:   newPasscodeMetrics(dep.Instrument.Meter("auth.usecase")),
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

func (s *Usecase) passcodeTTL() time.Duration {
	if ttl := s.cfg.GetMinute("modules.auth.passcode_ttl_minutes"); ttl > 0 {
		return ttl
	}
	return defaultPasscodeTTL
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*authn.Principal, error) {
	p := authn.GetPrincipal(ctx)
	if p == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(p.Role, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "user_id", p.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return p, nil
}

type passcodeMetrics struct {
	sent     metric.Int64Counter
	verified metric.Int64Counter
	rejected metric.Int64Counter
}

func newPasscodeMetrics(meter metric.Meter) passcodeMetrics {
	var m passcodeMetrics
	var err error

	m.sent, err = meter.Int64Counter("auth.passcode.sent", metric.WithDescription("Number of passcodes delivered"))
	if err != nil {
		slog.Error("failed to create passcode sent counter", "error", err)
	}

	m.verified, err = meter.Int64Counter("auth.passcode.verified", metric.WithDescription("Number of passcodes redeemed"))
	if err != nil {
		slog.Error("failed to create passcode verified counter", "error", err)
	}

	m.rejected, err = meter.Int64Counter("auth.passcode.rejected", metric.WithDescription("Number of wrong or expired passcodes"))
	if err != nil {
		slog.Error("failed to create passcode rejected counter", "error", err)
	}

	return m
}

func add(ctx context.Context, c metric.Int64Counter) {
	if c != nil {
		c.Add(ctx, 1)
	}
}
