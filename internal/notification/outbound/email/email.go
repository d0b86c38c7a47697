package email

import (
	"context"

	"github.com/shandysiswandi/passcode/internal/pkg/instrument"
	"github.com/shandysiswandi/passcode/internal/pkg/mail"
	"github.com/shandysiswandi/passcode/internal/shared/template"
	"go.opentelemetry.io/otel/codes"
)

type Email struct {
	client mail.Mail
	ins    instrument.Instrumentation
}

func New(client mail.Mail, ins instrument.Instrumentation) *Email {
	return &Email{client: client, ins: ins}
}

func (e *Email) SendPasscode(ctx context.Context, data template.PasscodeData) (err error) {
	ctx, span := e.ins.Tracer("notification.outbound.email").Start(ctx, "SendPasscode")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	msg, err := template.PasscodeMessage(data)
	if err != nil {
		return err
	}

	return e.client.Send(ctx, msg)
}
