package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/service/auth"
)

// MockAccountService implements service.AccountService for handler tests
type MockAccountService struct {
	CreateAccountFn func(ctx context.Context, username, password string) (*domain.User, error)
	LoginFn         func(ctx context.Context, username, password string) (auth.Token, error)
}

var _ service.AccountService = (*MockAccountService)(nil)

// CreateAccount implements the AccountService interface
func (m *MockAccountService) CreateAccount(ctx context.Context, username, password string) (*domain.User, error) {
	if m.CreateAccountFn != nil {
		return m.CreateAccountFn(ctx, username, password)
	}
	return &domain.User{ID: 1, Username: username, CreatedAt: time.Now().UTC()}, nil
}

// Login implements the AccountService interface
func (m *MockAccountService) Login(ctx context.Context, username, password string) (auth.Token, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, username, password)
	}
	return auth.Token{Value: "mock-token-" + username, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// MockTaskService implements service.TaskService for handler tests
type MockTaskService struct {
	GetFn    func(ctx context.Context, id int64) (*domain.Task, error)
	ListFn   func(ctx context.Context, page int, stateFilter string) ([]*domain.Task, error)
	CreateFn func(ctx context.Context, in service.CreateTaskInput) (*domain.Task, error)
	UpdateFn func(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	DeleteFn func(ctx context.Context, id int64) error
}

var _ service.TaskService = (*MockTaskService)(nil)

// Get implements the TaskService interface
func (m *MockTaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, nil
}

// List implements the TaskService interface
func (m *MockTaskService) List(ctx context.Context, page int, stateFilter string) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page, stateFilter)
	}
	return nil, nil
}

// Create implements the TaskService interface
func (m *MockTaskService) Create(ctx context.Context, in service.CreateTaskInput) (*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, in)
	}
	return nil, nil
}

// Update implements the TaskService interface
func (m *MockTaskService) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return nil, nil
}

// Delete implements the TaskService interface
func (m *MockTaskService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
