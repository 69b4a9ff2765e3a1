package app

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/otpgate/otpgate/migrations"
)

func (a *App) initMigration() {
	if !a.config.GetBool("database.migrate") {
		return
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}

	// The migrate pgx/v5 driver registers itself under the pgx5 scheme.
	url := a.config.GetString("database.url")
	if strings.HasPrefix(url, "postgres://") {
		url = "pgx5://" + strings.TrimPrefix(url, "postgres://")
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		slog.Error("failed to init migration", "error", err)
		os.Exit(1)
	}
	defer func() {
		if serr, derr := m.Close(); serr != nil || derr != nil {
			slog.Warn("failed to close migration", "source_error", serr, "database_error", derr)
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		slog.Error("failed to run migration", "error", err)
		os.Exit(1)
	}

	slog.Info("database schema is up to date")
}
