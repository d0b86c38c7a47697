package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/passcode/internal/pkg/clock"
	"github.com/shandysiswandi/passcode/internal/pkg/goerror"
	"github.com/shandysiswandi/passcode/internal/pkg/hash"
	"github.com/shandysiswandi/passcode/internal/pkg/instrument"
	"github.com/shandysiswandi/passcode/internal/pkg/otp"
	"github.com/shandysiswandi/passcode/internal/shared/authz"
	"github.com/stretchr/testify/require"
)

// newTestUsecase fills every nil dependency with a working default.
func newTestUsecase(t *testing.T, dep Dependency) *Usecase {
	t.Helper()

	if dep.Clock == nil {
		dep.Clock = clock.NewFake(t0)
	}
	if dep.Config == nil {
		dep.Config = newTestConfig(t, "modules:\n  auth:\n    passcode_ttl_minutes: 10\n")
	}
	if dep.Validator == nil {
		dep.Validator = newTestValidator(t)
	}
	if dep.HMAC == nil {
		dep.HMAC = hash.NewHMACSHA256("test-secret")
	}
	if dep.Instrument == nil {
		dep.Instrument = instrument.NewNoop()
	}
	if dep.OTPStore == nil {
		dep.OTPStore = otp.NewMemoryStore(10*time.Minute, dep.Clock)
	}
	if dep.OTPGen == nil {
		dep.OTPGen = otp.NewNumericGenerator()
	}
	if dep.Enforcer == nil {
		e, err := authz.NewEnforcer()
		require.NoError(t, err)
		dep.Enforcer = e
	}

	return New(dep)
}

func requireStatus(t *testing.T, err error, status int, msg string) {
	t.Helper()

	var gerr *goerror.Error
	require.True(t, errors.As(err, &gerr), "want *goerror.Error, got %v", err)
	require.Equal(t, status, gerr.StatusCode())
	if msg != "" {
		require.Equal(t, msg, gerr.Msg())
	}
}

func statusOf(err error) int {
	var gerr *goerror.Error
	if errors.As(err, &gerr) {
		return gerr.StatusCode()
	}
	return 0
}
