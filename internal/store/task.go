package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskFilter selects a window of tasks ordered by ID.
type TaskFilter struct {
	// State restricts results to one state when non-empty.
	State  domain.TaskState
	Offset int
	Limit  int
}

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// Create inserts the task and sets task.ID.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List returns the tasks matching filter, ordered by ascending ID.
	// An empty slice is returned when nothing matches.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Update writes every mutable field of task.
	// Returns ErrTaskNotFound if no row was updated.
	Update(ctx context.Context, task *domain.Task) error

	// Delete returns ErrTaskNotFound if no row was deleted.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a TaskStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
