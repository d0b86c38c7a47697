package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/passcode/internal/pkg/goerror"
	"github.com/shandysiswandi/passcode/internal/pkg/otp"
)

type SendPasscodeInput struct {
	Email string `validate:"required,email,max=254"`
}

func (s *Usecase) SendPasscode(ctx context.Context, in SendPasscodeInput) error {
	ctx, span := s.startSpan(ctx, "SendPasscode")
	defer span.End()

	in.Email = otp.NormalizeIdentity(in.Email)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	code, err := s.otpGen.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate passcode", "error", err)
		return goerror.NewServer(err)
	}

	stored, err := s.otpStore.PutIfNotLive(ctx, in.Email, code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to store passcode", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}
	if !stored {
		slog.WarnContext(ctx, "passcode already pending", "email", in.Email)
		return goerror.NewBusiness("A passcode was already sent, please wait before requesting a new one", goerror.CodeTooManyRequest)
	}

	// the stored code stays live on delivery failure; the caller may retry
	// after it expires
	if err := s.notifier.NotifyPasscode(ctx, PasscodeNotification{
		Email:     in.Email,
		Code:      code,
		ExpiresIn: s.passcodeTTL(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to notify passcode", "email", in.Email, "error", err)
		return goerror.NewDependency(err, "Failed to send passcode email", goerror.CodeUnavailable)
	}

	add(ctx, s.metrics.sent)

	return nil
}
