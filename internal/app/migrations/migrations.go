// Package migrations embeds the database schema and applies it with
// golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var FS embed.FS

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Run applies every migration in direction against the postgres dsn. An
// already migrated database is not an error.
func Run(dsn string, direction Direction) error {
	if dsn == "" {
		return errors.New("migrations: dsn is required")
	}
	if direction != Up && direction != Down {
		return fmt.Errorf("migrations: unknown direction %q", direction)
	}

	src, err := iofs.New(FS, ".")
	if err != nil {
		return fmt.Errorf("migrations: source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if direction == Up {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrations: %s: %w", direction, err)
	}

	return nil
}
