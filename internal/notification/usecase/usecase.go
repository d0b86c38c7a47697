package usecase

import (
	"context"

	"github.com/shandysiswandi/passcode/internal/pkg/idempotency"
	"github.com/shandysiswandi/passcode/internal/pkg/instrument"
	"github.com/shandysiswandi/passcode/internal/pkg/validator"
	"github.com/shandysiswandi/passcode/internal/shared/template"
	"go.opentelemetry.io/otel/trace"
)

type repoMail interface {
	SendPasscode(ctx context.Context, data template.PasscodeData) error
}

type Usecase struct {
	repoMail  repoMail
	idemp     idempotency.Idempotency
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoMail    repoMail
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoMail:  dep.RepoMail,
		idemp:     dep.Idempotency,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}
