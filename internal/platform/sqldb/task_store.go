package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

const (
	taskColumns = `id, titulo, descricao, estado, data_criacao, data_atualizacao`

	insertTaskQuery = `
		INSERT INTO tasks (titulo, descricao, estado, data_criacao, data_atualizacao)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`

	updateTaskQuery = `
		UPDATE tasks
		SET titulo = ?, descricao = ?, estado = ?, data_atualizacao = ?
		WHERE id = ?`

	deleteTaskQuery = `DELETE FROM tasks WHERE id = ?`
)

// TaskStore implements store.TaskStore over database/sql.
type TaskStore struct {
	db      store.DBTX
	dialect Dialect
}

// NewTaskStore creates a TaskStore. The db may be a pool or a transaction.
func NewTaskStore(db store.DBTX, dialect Dialect) *TaskStore {
	return &TaskStore{db: db, dialect: dialect}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{db: tx, dialect: s.dialect}
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	var id int64
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind(insertTaskQuery),
		task.Title,
		nullString(task.Description),
		string(task.State),
		dbTime(task.CreatedAt),
		dbTime(task.UpdatedAt),
	).Scan(&id)
	if err != nil {
		return s.fail(ctx, "create", "insert failed", err)
	}

	task.ID = id
	logger.FromContext(ctx).Debug("task created", slog.Int64("task_id", id))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	task, err := scanTask(s.db.QueryRowContext(ctx, s.dialect.Rebind(query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrTaskNotFound
	}
	if err != nil {
		return nil, s.fail(ctx, "get", "query failed", err)
	}
	return task, nil
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	var (
		b    strings.Builder
		args []any
	)
	b.WriteString(`SELECT ` + taskColumns + ` FROM tasks`)
	if filter.State != "" {
		b.WriteString(` WHERE estado = ?`)
		args = append(args, string(filter.State))
	}
	b.WriteString(` ORDER BY id`)
	if filter.Limit > 0 {
		b.WriteString(` LIMIT ? OFFSET ?`)
		args = append(args, filter.Limit, max(filter.Offset, 0))
	}

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(b.String()), args...)
	if err != nil {
		return nil, s.fail(ctx, "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0, filter.Limit)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, s.fail(ctx, "list", "scan failed", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(ctx, "list", "iteration failed", err)
	}
	return tasks, nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(updateTaskQuery),
		task.Title,
		nullString(task.Description),
		string(task.State),
		dbTime(task.UpdatedAt),
		task.ID,
	)
	if err != nil {
		return s.fail(ctx, "update", "exec failed", err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(deleteTaskQuery), id)
	if err != nil {
		return s.fail(ctx, "delete", "exec failed", err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

func (s *TaskStore) fail(ctx context.Context, op, msg string, err error) error {
	logger.FromContext(ctx).Error("task store failure",
		slog.String("operation", op),
		slog.String("error", redact.Error(err)))
	return store.NewStoreError("task", op, msg, MapError(err))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t     domain.Task
		desc  sql.NullString
		state string
	)
	if err := row.Scan(&t.ID, &t.Title, &desc, &state, scanTime(&t.CreatedAt), scanTime(&t.UpdatedAt)); err != nil {
		return nil, err
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	t.State = domain.TaskState(state)
	return &t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
