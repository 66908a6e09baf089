package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/sqldb"
)

// setupAppDatabase opens the configured database, honouring the test
// database switch. The URL scheme picks the driver.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sqldb.DB, error) {
	db, err := sqldb.Open(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	logger.Info("Database connection established",
		"dialect", db.Dialect.String(),
		"test_database", cfg.Database.UseTest)
	return db, nil
}
