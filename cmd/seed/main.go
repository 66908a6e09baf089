// Package main fills the configured database with random tasks for local
// development and manual testing.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/platform/sqldb"
	"github.com/phrazzld/task-api/internal/service"
)

const (
	maxDescriptionChars     = 100
	noDescriptionPercentage = 20
)

func main() {
	count := flag.Int("n", 100, "number of tasks to create")
	seed := flag.Uint64("seed", 0, "random seed; 0 picks one at random")
	envFile := flag.String("env-file", ".env", "optional dotenv file to load before reading the environment")
	flag.Parse()

	if err := run(context.Background(), *envFile, *count, *seed); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func run(ctx context.Context, envFile string, count int, seed uint64) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := sqldb.Open(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := sqldb.Migrate(ctx, db, sqldb.MigrateUp); err != nil {
		return err
	}

	tasks := service.NewTaskService(sqldb.NewTaskStore(db, db.Dialect), db, nil, cfg.Tasks.PageSize, l)
	created, err := seedTasks(ctx, tasks, gofakeit.New(seed), count)
	if err != nil {
		return err
	}

	l.Info("random tasks generated", slog.Int("count", created), slog.String("dialect", db.Dialect.String()))
	return nil
}

// seedTasks creates count random tasks and returns how many were stored.
func seedTasks(ctx context.Context, tasks service.TaskService, fk *gofakeit.Faker, count int) (int, error) {
	for i := 0; i < count; i++ {
		if _, err := tasks.Create(ctx, randomTask(fk)); err != nil {
			return i, fmt.Errorf("failed to create task %d: %w", i+1, err)
		}
	}
	return count, nil
}

func randomTask(fk *gofakeit.Faker) service.CreateTaskInput {
	in := service.CreateTaskInput{
		Title: fk.Sentence(3),
		State: string(domain.AllowedStates[fk.IntRange(0, len(domain.AllowedStates)-1)]),
	}
	if fk.IntRange(1, 100) > noDescriptionPercentage {
		desc := fk.Paragraph(1, 3, 8, " ")
		if r := []rune(desc); len(r) > maxDescriptionChars {
			desc = string(r[:maxDescriptionChars])
		}
		in.Description = &desc
	}
	return in
}
