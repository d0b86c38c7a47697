package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/passcode/internal/notification/usecase"
	"github.com/shandysiswandi/passcode/internal/pkg/instrument"
	"github.com/shandysiswandi/passcode/internal/pkg/messaging"
	"github.com/shandysiswandi/passcode/internal/pkg/uid"
	"github.com/shandysiswandi/passcode/internal/shared/event"
)

const keyOfCorrelationID = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	if cID := messaging.HeaderValue(headers, keyOfCorrelationID); cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}

	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) PasscodeRequestedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "PasscodeRequestedNotification")
	defer span.End()

	var payload event.PasscodeRequestedMessage
	if err := json.Unmarshal(msg.Body(), &payload); err != nil {
		// a redelivery would fail the same way
		slog.ErrorContext(ctx, "failed to parse passcode requested message", "subject", msg.Subject(), "error", err)
		return nil
	}

	slog.InfoContext(ctx, "consume: passcode requested notification", "event_id", payload.EventID, "email", payload.Email)

	return h.uc.ConsumePasscodeRequested(ctx, usecase.ConsumePasscodeRequestedInput{
		EventID:          payload.EventID,
		Email:            payload.Email,
		Code:             payload.Code,
		ExpiresInMinutes: payload.ExpiresInMinutes,
	})
}
