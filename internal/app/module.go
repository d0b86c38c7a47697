package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/passcode/internal/auth"
	"github.com/shandysiswandi/passcode/internal/notification"
)

func (a *App) initModules() {
	if err := auth.New(auth.Dependency{
		Ctx:        a.ctx,
		DBConn:     a.dbConn,
		Goroutine:  a.goroutine,
		Enforcer:   a.casbin,
		Router:     a.router,
		OTPStore:   a.otpStore,
		Config:     a.config,
		Instrument: a.ins,
		UID:        a.uid,
		UUID:       a.uuid,
		OID:        a.oid,
		HMAC:       a.hmac,
		Clock:      a.clock,
		Validator:  a.validator,
		Mail:       a.mail,
		Messaging:  a.messaging,
	}); err != nil {
		slog.Error("failed to init module auth", "error", err)
		os.Exit(1)
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:         a.ctx,
			Messaging:   a.messaging,
			Idempotency: a.idemp,
			Mail:        a.mail,
			Config:      a.config,
			Instrument:  a.ins,
			UUID:        a.uuid,
			Goroutine:   a.goroutine,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
