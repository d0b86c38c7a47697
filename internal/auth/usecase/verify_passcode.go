package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/passcode/internal/pkg/goerror"
	"github.com/shandysiswandi/passcode/internal/pkg/otp"
)

type VerifyPasscodeInput struct {
	Email     string `validate:"required,email,max=254"`
	Code      string `validate:"required,passcode"`
	IPAddress string
	UserAgent string
}

type VerifyPasscodeOutput struct {
	SessionToken string
	ExpiresAt    time.Time
	UserID       int64
	Email        string
}

func (s *Usecase) VerifyPasscode(ctx context.Context, in VerifyPasscodeInput) (*VerifyPasscodeOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyPasscode")
	defer span.End()

	in.Email = otp.NormalizeIdentity(in.Email)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	ok, err := s.otpStore.Consume(ctx, in.Email, in.Code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to consume passcode", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !ok {
		add(ctx, s.metrics.rejected)
		slog.WarnContext(ctx, "passcode rejected", "email", in.Email)
		return nil, goerror.NewBusiness("Invalid or expired passcode", goerror.CodeUnauthorized)
	}

	add(ctx, s.metrics.verified)

	out, err := s.issuer.Issue(ctx, IssueInput{
		Email:     in.Email,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	return &VerifyPasscodeOutput{
		SessionToken: out.Token,
		ExpiresAt:    out.ExpiresAt,
		UserID:       out.UserID,
		Email:        out.Email,
	}, nil
}
