package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"retail-records/internal/db"
)

//go:embed sql/sqlite/*.sql sql/postgres/*.sql
var migrationsFS embed.FS

// Apply runs all migrations up using the embedded migration files for the
// handle's dialect. Applying to an already current store is a no-op.
func Apply(ctx context.Context, h *db.Handle) error {
	srcDriver, err := iofs.New(migrationsFS, "sql/"+h.Dialect().String())
	if err != nil {
		return fmt.Errorf("init iofs: %w", err)
	}

	// The migrate driver closes the db it is given, so it gets its own.
	sqlDB, err := sql.Open(h.Driver(), h.DSN())
	if err != nil {
		return fmt.Errorf("open sql db: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sql db: %w", err)
	}

	var dbDriver database.Driver
	switch h.Dialect() {
	case db.DialectPostgres:
		dbDriver, err = postgres.WithInstance(sqlDB, &postgres.Config{})
	default:
		dbDriver, err = sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	}
	if err != nil {
		return fmt.Errorf("init db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, h.Dialect().String(), dbDriver)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("migrate up: %w (hint: every migration version needs both .up.sql and .down.sql)", err)
		}
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
