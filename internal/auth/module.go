package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/passcode/internal/auth/inbound"
	"github.com/shandysiswandi/passcode/internal/auth/outbound/db"
	"github.com/shandysiswandi/passcode/internal/auth/outbound/email"
	"github.com/shandysiswandi/passcode/internal/auth/outbound/mq"
	"github.com/shandysiswandi/passcode/internal/auth/usecase"
	"github.com/shandysiswandi/passcode/internal/pkg/clock"
	"github.com/shandysiswandi/passcode/internal/pkg/config"
	"github.com/shandysiswandi/passcode/internal/pkg/goroutine"
	"github.com/shandysiswandi/passcode/internal/pkg/hash"
	"github.com/shandysiswandi/passcode/internal/pkg/instrument"
	"github.com/shandysiswandi/passcode/internal/pkg/mail"
	"github.com/shandysiswandi/passcode/internal/pkg/messaging"
	"github.com/shandysiswandi/passcode/internal/pkg/otp"
	"github.com/shandysiswandi/passcode/internal/pkg/router"
	"github.com/shandysiswandi/passcode/internal/pkg/uid"
	"github.com/shandysiswandi/passcode/internal/pkg/validator"
)

const (
	NotifierMail  = "mail"
	NotifierQueue = "queue"
)

var errNotifierUnavailable = errors.New("auth: notifier transport is not configured")

type Dependency struct {
	Ctx        context.Context            `validate:"required"`
	DBConn     *pgxpool.Pool              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Enforcer   *casbin.Enforcer           `validate:"required"`
	Router     *router.Router             `validate:"required"`
	OTPStore   otp.Store                  `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	OID        uid.StringID               `validate:"required"`
	HMAC       hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`

	// Mail is used by the mail notifier, Messaging by the queue notifier.
	Mail      mail.Mail
	Messaging messaging.Publisher
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	notifier, err := newNotifier(dep)
	if err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)

	issuer := usecase.NewSessionIssuer(usecase.SessionIssuerDependency{
		Users:      dbAuth,
		Sessions:   dbAuth,
		UID:        dep.UID,
		OID:        dep.OID,
		HMAC:       dep.HMAC,
		Clock:      dep.Clock,
		Config:     dep.Config,
		Instrument: dep.Instrument,
	})

	uc := usecase.New(usecase.Dependency{
		RepoDB:     dbAuth,
		Notifier:   notifier,
		OTPStore:   dep.OTPStore,
		OTPGen:     otp.NewNumericGenerator(),
		Issuer:     issuer,
		Validator:  dep.Validator,
		Config:     dep.Config,
		HMAC:       dep.HMAC,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
		Enforcer:   dep.Enforcer,
	})

	dep.Router.UseSessionVerifier(uc)
	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Config)

	startBackground(dep, uc)

	return nil
}

func newNotifier(dep Dependency) (usecase.Notifier, error) {
	switch driver := dep.Config.GetString("modules.auth.notifier"); driver {
	case NotifierQueue:
		if dep.Messaging == nil {
			return nil, fmt.Errorf("%w: %s", errNotifierUnavailable, driver)
		}
		return mq.NewMessaging(dep.Messaging, dep.UUID, dep.Clock, dep.Instrument), nil
	case NotifierMail, "":
		if dep.Mail == nil {
			return nil, fmt.Errorf("%w: %s", errNotifierUnavailable, NotifierMail)
		}
		return email.NewEmail(dep.Mail, dep.Instrument), nil
	default:
		return nil, fmt.Errorf("auth: unknown notifier %q", driver)
	}
}

func startBackground(dep Dependency, uc *usecase.Usecase) {
	if store, ok := dep.OTPStore.(*otp.MemoryStore); ok {
		interval := dep.Config.GetSecond("modules.auth.sweep_interval_seconds")
		if interval <= 0 {
			interval = otp.DefaultSweepInterval
		}
		if !dep.Goroutine.Go(dep.Ctx, func(ctx context.Context) error {
			return store.Run(ctx, interval)
		}) {
			slog.Warn("failed to start passcode sweeper")
		}
	}

	if !dep.Goroutine.Go(dep.Ctx, uc.RunSessionJanitor) {
		slog.Warn("failed to start session janitor")
	}
}
