// Package main implements the entry point for the task API server,
// which manages user accounts and their to-do tasks.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/task-api/internal/platform/sqldb"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status, version) and exit")
	envFile := flag.String("env-file", ".env", "optional dotenv file to load before reading the environment")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *envFile, *migrateCmd); err != nil {
		log.Fatalf("task-api: %v", err)
	}
}

// run wires the application from configuration and either executes a
// migration command or serves HTTP until ctx is cancelled.
func run(ctx context.Context, envFile, migrateCmd string) error {
	cfg, err := loadAppConfig(envFile)
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() { _ = db.Close() }()
		return handleMigrations(ctx, db, migrateCmd)
	}

	if err := handleMigrations(ctx, db, sqldb.MigrateUp); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	app, err := newApplication(ctx, cfg, logger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
