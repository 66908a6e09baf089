package sqldb

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/phrazzld/task-api/internal/platform/logger"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Migration commands accepted by Migrate.
const (
	MigrateUp      = "up"
	MigrateDown    = "down"
	MigrateStatus  = "status"
	MigrateVersion = "version"
)

// NewMigrator builds a goose provider over the embedded migrations for db's dialect.
func NewMigrator(db *DB) (*goose.Provider, error) {
	sub, err := fs.Sub(migrationsFS, "migrations/"+db.Dialect.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s migrations: %w", db.Dialect.Name, err)
	}

	provider, err := goose.NewProvider(db.Dialect.goose, db.DB, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// Migrate runs a migration command against db and logs the outcome.
func Migrate(ctx context.Context, db *DB, command string) error {
	log := logger.FromContext(ctx).With(
		slog.String("component", "migrations"),
		slog.String("dialect", db.Dialect.Name),
	)

	provider, err := NewMigrator(db)
	if err != nil {
		return err
	}

	switch command {
	case MigrateUp:
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("migration up failed: %w", err)
		}
		for _, r := range results {
			log.Info("applied migration",
				slog.String("source", r.Source.Path),
				slog.Duration("duration", r.Duration))
		}
		if len(results) == 0 {
			log.Debug("schema up to date")
		}
	case MigrateDown:
		r, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("migration down failed: %w", err)
		}
		log.Info("rolled back migration", slog.String("source", r.Source.Path))
	case MigrateStatus:
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("migration status failed: %w", err)
		}
		for _, s := range statuses {
			log.Info("migration status",
				slog.String("source", s.Source.Path),
				slog.String("state", string(s.State)),
				slog.Time("applied_at", s.AppliedAt))
		}
	case MigrateVersion:
		version, err := provider.GetDBVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		log.Info("schema version", slog.Int64("version", version))
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}

	return nil
}
