package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// versionTable records the applied schema version.
const versionTable = "schema_version"

//go:embed migrations/*.sql
var migrationFiles embed.FS

func loadMigrator(ctx context.Context, conn *pgx.Conn) (*tern.Migrator, error) {
	m, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return nil, fmt.Errorf("creating migrator: %w", err)
	}

	files, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("opening embedded migrations: %w", err)
	}
	if err := m.LoadMigrations(files); err != nil {
		return nil, fmt.Errorf("loading migrations: %w", err)
	}
	return m, nil
}

// Migrate brings the schema to the latest embedded version. It opens its
// own connection so it can run before the pool exists.
func Migrate(ctx context.Context, logger *zerolog.Logger, dsn string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := loadMigrator(ctx, conn)
	if err != nil {
		return err
	}

	current, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	latest := int32(len(m.Migrations))

	if current == latest {
		logger.Info().Int32("version", current).Msg("database schema up to date")
		return nil
	}

	m.OnStart = func(sequence int32, name, _, _ string) {
		logger.Info().Int32("sequence", sequence).Str("migration", name).Msg("applying migration")
	}
	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	logger.Info().Int32("from", current).Int32("to", latest).Msg("database schema migrated")
	return nil
}
