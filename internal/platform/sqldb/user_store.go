package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

const (
	insertUserQuery = `
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (username) DO NOTHING
		RETURNING id`

	selectUserColumns = `SELECT id, username, password_hash, created_at FROM users`
)

// UserStore implements store.UserStore over database/sql.
type UserStore struct {
	db      store.DBTX
	dialect Dialect
}

// NewUserStore creates a UserStore. The db may be a pool or a transaction.
func NewUserStore(db store.DBTX, dialect Dialect) *UserStore {
	return &UserStore{db: db, dialect: dialect}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{db: tx, dialect: s.dialect}
}

// Create implements store.UserStore.Create.
// The insert and the uniqueness check are one statement; a conflicting
// username yields no returned row.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContext(ctx)

	if user.HashedPassword == "" {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrEmptyHashedPassword)
	}
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	var id int64
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind(insertUserQuery),
		user.Username,
		user.HashedPassword,
		dbTime(user.CreatedAt),
	).Scan(&id)

	if errors.Is(err, sql.ErrNoRows) || IsUniqueViolation(err) {
		log.Debug("username already taken", slog.String("username", user.Username))
		return store.ErrUsernameExists
	}
	if err != nil {
		log.Error("failed to insert user", slog.String("error", redact.Error(err)))
		return store.NewStoreError("user", "create", "insert failed", MapError(err))
	}

	user.ID = id
	log.Debug("user created", slog.Int64("user_id", id))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getOne(ctx, selectUserColumns+` WHERE id = ?`, id)
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getOne(ctx, selectUserColumns+` WHERE username = ?`, username)
}

func (s *UserStore) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind(query), arg).Scan(
		&u.ID,
		&u.Username,
		&u.HashedPassword,
		scanTime(&u.CreatedAt),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Error("failed to query user", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("user", "get", "query failed", MapError(err))
	}
	return &u, nil
}
