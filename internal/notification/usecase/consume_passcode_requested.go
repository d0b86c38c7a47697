package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/passcode/internal/pkg/idempotency"
	"github.com/shandysiswandi/passcode/internal/shared/template"
)

const idempotencyKeyPasscode = "notification:passcode:"

type ConsumePasscodeRequestedInput struct {
	EventID          string `validate:"required"`
	Email            string `validate:"required,email"`
	Code             string `validate:"required,passcode"`
	ExpiresInMinutes int    `validate:"gt=0"`
}

// ConsumePasscodeRequested mails the passcode at most once per event id.
// Malformed events are dropped. A mail failure releases the event id and is
// returned, so a JetStream redelivery sends the mail again.
func (s *Usecase) ConsumePasscodeRequested(ctx context.Context, in ConsumePasscodeRequestedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumePasscodeRequested")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid passcode requested event", "event_id", in.EventID, "error", err)
		return nil
	}

	err := s.idemp.Exec(ctx, idempotencyKeyPasscode+in.EventID, func(ctx context.Context) error {
		return s.repoMail.SendPasscode(ctx, template.PasscodeData{
			Email:            in.Email,
			Code:             in.Code,
			ExpiresInMinutes: in.ExpiresInMinutes,
		})
	}, idempotency.WithReleaseOnFailure())

	switch {
	case errors.Is(err, idempotency.ErrAlreadyCompleted),
		errors.Is(err, idempotency.ErrAlreadyInProgress),
		errors.Is(err, idempotency.ErrAlreadyFailed):
		slog.WarnContext(ctx, "passcode email already handled", "event_id", in.EventID, "error", err)
		return nil
	case err != nil:
		slog.ErrorContext(ctx, "failed to send passcode email", "event_id", in.EventID, "email", in.Email, "error", err)
		return err
	}

	slog.InfoContext(ctx, "passcode email sent", "event_id", in.EventID, "email", in.Email)

	return nil
}
