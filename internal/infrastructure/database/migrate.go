package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

// Migrate applies all pending schema migrations from the configured
// folder. Called once at startup, before the pool serves traffic.
func (db *PostgresDB) Migrate() error {
	// The migrate pgx/v5 driver expects a pgx5:// URL scheme.
	dsn := strings.Replace(db.Config.DSN(), "postgresql://", "pgx5://", 1)

	m, err := migrate.New("file://"+db.Config.MigrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("no new migrations to apply")
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Info().Msg("database migrations applied")
	return nil
}
