package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/passcode/internal/auth/usecase"
	"github.com/shandysiswandi/passcode/internal/pkg/clock"
	"github.com/shandysiswandi/passcode/internal/pkg/instrument"
	"github.com/shandysiswandi/passcode/internal/pkg/messaging"
	"github.com/shandysiswandi/passcode/internal/pkg/uid"
	"github.com/shandysiswandi/passcode/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

// Messaging hands passcodes to the notification module through the broker.
// A publish failure reaches the caller of SendPasscode.
type Messaging struct {
	client messaging.Publisher
	uuid   uid.StringID
	clock  clock.Clocker
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, uuid uid.StringID, clk clock.Clocker, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, uuid: uuid, clock: clk, ins: ins}
}

func (m *Messaging) NotifyPasscode(ctx context.Context, msg usecase.PasscodeNotification) error {
	ctx, span := m.ins.Tracer("auth.outbound.mq").Start(ctx, "NotifyPasscode")
	defer span.End()

	body, err := json.Marshal(event.PasscodeRequestedMessage{
		EventID:          m.uuid.Generate(),
		Email:            msg.Email,
		Code:             msg.Code,
		ExpiresInMinutes: int(msg.ExpiresIn.Minutes()),
		RequestedAt:      m.clock.Now(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.PasscodeRequestedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
