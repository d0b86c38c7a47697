package app

import (
	"log/slog"

	"github.com/shandysiswandi/passcode/internal/app/migrations"
)

func (a *App) migrate(dsn string) error {
	slog.InfoContext(a.ctx, "applying database migrations")

	if err := migrations.Run(dsn, migrations.Up); err != nil {
		return err
	}

	slog.InfoContext(a.ctx, "database migrations applied")
	return nil
}
