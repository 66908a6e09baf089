package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/platform/sqldb"
)

var migrationCommands = map[string]bool{
	sqldb.MigrateUp:      true,
	sqldb.MigrateDown:    true,
	sqldb.MigrateStatus:  true,
	sqldb.MigrateVersion: true,
}

// handleMigrations runs one migration command against db.
func handleMigrations(ctx context.Context, db *sqldb.DB, migrateCmd string) error {
	if !migrationCommands[migrateCmd] {
		return fmt.Errorf("unknown migration command %q (want up, down, status or version)", migrateCmd)
	}

	slog.Info("Executing migrations", "command", migrateCmd, "dialect", db.Dialect.String())
	if err := sqldb.Migrate(ctx, db, migrateCmd); err != nil {
		return fmt.Errorf("migration %s failed: %w", migrateCmd, err)
	}
	return nil
}
