package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/phrazzld/task-api/internal/cache"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// DefaultPageSize is used when a non-positive page size is configured.
const DefaultPageSize = 10

// CreateTaskInput carries the fields of a new task.
type CreateTaskInput struct {
	Title       string
	Description *string
	State       string
}

// TaskService provides task CRUD and paginated listing.
type TaskService interface {
	// Get returns store.ErrTaskNotFound if the task does not exist.
	Get(ctx context.Context, id int64) (*domain.Task, error)

	// List returns one page of tasks ordered by ID. Pages start at 1; smaller
	// values are treated as 1. stateFilter is a filter key or empty for all
	// states; unknown keys return domain.ErrInvalidStateFilter. Pages past any
	// representable offset are empty.
	List(ctx context.Context, page int, stateFilter string) ([]*domain.Task, error)

	// Create validates and stores a new task.
	Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error)

	// Update applies patch to the task in a single transaction.
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// Delete returns store.ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error
}

type taskService struct {
	tasks    store.TaskStore
	db       store.TxBeginner
	cache    cache.Cache
	pageSize int
	logger   *slog.Logger
	timeFunc func() time.Time

	// cacheMu orders page stores against invalidations; generation counts
	// invalidations so a page read before a write is never stored after it.
	cacheMu    sync.Mutex
	generation uint64
}

// NewTaskService creates a TaskService. A nil cache disables list caching.
func NewTaskService(
	tasks store.TaskStore,
	db store.TxBeginner,
	listCache cache.Cache,
	pageSize int,
	logger *slog.Logger,
) TaskService {
	if listCache == nil {
		listCache = cache.Noop{}
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &taskService{
		tasks:    tasks,
		db:       db,
		cache:    listCache,
		pageSize: pageSize,
		logger:   logger.With("component", "task_service"),
		timeFunc: time.Now,
	}
}

// Get implements TaskService.Get
func (s *taskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Error("failed to retrieve task", slog.Int64("task_id", id), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}
	return task, nil
}

// List implements TaskService.List
func (s *taskService) List(ctx context.Context, page int, stateFilter string) ([]*domain.Task, error) {
	var state domain.TaskState
	if stateFilter != "" {
		st, err := domain.ParseStateFilter(stateFilter)
		if err != nil {
			return nil, err
		}
		state = st
	}
	if page < 1 {
		page = 1
	}
	// No offset this large can hold rows.
	if page-1 > math.MaxInt/s.pageSize {
		return []*domain.Task{}, nil
	}

	key := listCacheKey(state, s.pageSize, page)
	if tasks, ok := s.cachedPage(ctx, key); ok {
		return tasks, nil
	}

	gen := s.currentGeneration()
	tasks, err := s.tasks.List(ctx, store.TaskFilter{
		State:  state,
		Offset: (page - 1) * s.pageSize,
		Limit:  s.pageSize,
	})
	if err != nil {
		s.logger.Error("failed to list tasks", slog.Int("page", page), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	s.storePage(ctx, key, gen, tasks)
	return tasks, nil
}

// Create implements TaskService.Create
func (s *taskService) Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error) {
	task, err := domain.NewTask(in.Title, in.Description, in.State, s.timeFunc())
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.invalidate(ctx)
	s.logger.Debug("task created", slog.Int64("task_id", task.ID))
	return task, nil
}

// Update implements TaskService.Update
func (s *taskService) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	// Reject bad input before touching the database.
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		task, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := patch.Apply(task, s.timeFunc()); err != nil {
			return err
		}
		if err := txTasks.Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) && !errors.Is(err, domain.ErrValidation) {
			s.logger.Error("failed to update task", slog.Int64("task_id", id), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.invalidate(ctx)
	return updated, nil
}

// Delete implements TaskService.Delete
func (s *taskService) Delete(ctx context.Context, id int64) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Error("failed to delete task", slog.Int64("task_id", id), slog.String("error", err.Error()))
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.invalidate(ctx)
	return nil
}

func listCacheKey(state domain.TaskState, pageSize, page int) string {
	filter := string(state)
	if filter == "" {
		filter = "all"
	}
	return fmt.Sprintf("tasks:list:%s:%d:%d", filter, pageSize, page)
}

// cachedPage returns a cached page. Cache failures degrade to a miss.
func (s *taskService) cachedPage(ctx context.Context, key string) ([]*domain.Task, bool) {
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("list cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var tasks []*domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		s.logger.Warn("discarding corrupt list cache entry", slog.String("key", key))
		return nil, false
	}
	return tasks, true
}

func (s *taskService) currentGeneration() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.generation
}

// storePage caches tasks unless a write invalidated the cache after gen was read.
func (s *taskService) storePage(ctx context.Context, key string, gen uint64, tasks []*domain.Task) {
	data, err := json.Marshal(tasks)
	if err != nil {
		return
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.generation != gen {
		s.logger.Debug("skipping stale list page", slog.String("key", key))
		return
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		s.logger.Warn("list cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (s *taskService) invalidate(ctx context.Context) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.generation++
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn("list cache invalidation failed", slog.String("error", err.Error()))
	}
}
