package email

import (
	"context"

	"github.com/shandysiswandi/passcode/internal/auth/usecase"
	"github.com/shandysiswandi/passcode/internal/pkg/instrument"
	"github.com/shandysiswandi/passcode/internal/pkg/mail"
	"github.com/shandysiswandi/passcode/internal/shared/template"
	"go.opentelemetry.io/otel/codes"
)

// Email delivers passcodes synchronously, so a delivery failure reaches the
// caller of SendPasscode.
type Email struct {
	client mail.Mail
	ins    instrument.Instrumentation
}

func NewEmail(client mail.Mail, ins instrument.Instrumentation) *Email {
	return &Email{client: client, ins: ins}
}

func (e *Email) NotifyPasscode(ctx context.Context, msg usecase.PasscodeNotification) error {
	ctx, span := e.ins.Tracer("auth.outbound.email").Start(ctx, "NotifyPasscode")
	defer span.End()

	m, err := template.PasscodeMessage(template.PasscodeData{
		Email:            msg.Email,
		Code:             msg.Code,
		ExpiresInMinutes: int(msg.ExpiresIn.Minutes()),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := e.client.Send(ctx, m); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
