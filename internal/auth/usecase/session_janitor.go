package usecase

import (
	"context"
	"log/slog"
	"time"
)

const defaultSessionCleanupInterval = time.Hour

// CleanupExpiredSessions deletes session rows whose expiry has passed.
func (s *Usecase) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	ctx, span := s.startSpan(ctx, "CleanupExpiredSessions")
	defer span.End()

	n, err := s.repoDB.DeleteExpiredSessions(ctx, s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete expired sessions", "error", err)
		return 0, err
	}

	if n > 0 {
		slog.InfoContext(ctx, "expired sessions removed", "count", n)
	}

	return n, nil
}

// RunSessionJanitor calls CleanupExpiredSessions on every tick until ctx is
// done. Failures are logged and retried on the next tick.
func (s *Usecase) RunSessionJanitor(ctx context.Context) error {
	interval := s.cfg.GetMinute("modules.auth.session_cleanup_interval_minutes")
	if interval <= 0 {
		interval = defaultSessionCleanupInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			_, _ = s.CleanupExpiredSessions(ctx)
		}
	}
}
