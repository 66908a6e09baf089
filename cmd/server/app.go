package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/phrazzld/task-api/internal/cache"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/sqldb"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/phrazzld/task-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sqldb.DB

	userStore store.UserStore
	taskStore store.TaskStore
	listCache cache.Cache

	tokens   auth.TokenCodec
	accounts service.AccountService
	tasks    service.TaskService

	// authLimiter is nil when rate limiting is disabled.
	authLimiter *middleware.RateLimiter
}

// newApplication creates a new application instance with all dependencies initialized.
// The database must already be open and migrated.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sqldb.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	key, generated, err := auth.NewSigningKey(cfg.Auth.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare signing key: %w", err)
	}
	if generated {
		logger.Warn("AUTH_JWT_SECRET not set; using an ephemeral signing key, tokens will not survive a restart")
	}

	app.tokens, err = auth.NewTokenCodec(key, cfg.Auth.TokenLifetime())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	logger.Info("Token authentication initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	app.listCache, err = cache.New(ctx, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize list cache: %w", err)
	}
	logger.Info("List cache initialized",
		"backend", cache.Kind(app.listCache),
		"ttl_seconds", cfg.Cache.TTLSeconds)

	app.userStore = sqldb.NewUserStore(db, db.Dialect)
	app.taskStore = sqldb.NewTaskStore(db, db.Dialect)

	app.accounts = service.NewAccountService(app.userStore, hasher, app.tokens, logger)
	app.tasks = service.NewTaskService(app.taskStore, db, app.listCache, cfg.Tasks.PageSize, logger)

	if cfg.Auth.RateLimitPerMinute > 0 {
		app.authLimiter = middleware.NewRateLimiter(cfg.Auth.RateLimitPerMinute)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.authLimiter != nil {
		app.authLimiter.Stop()
	}

	if app.listCache != nil {
		if err := app.listCache.Close(); err != nil {
			app.logger.Error("Error closing list cache", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
