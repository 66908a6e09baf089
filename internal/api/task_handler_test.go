package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/mocks"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

func sampleTask(id int64) *domain.Task {
	desc := "comprar pão"
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Task{
		ID:          id,
		Title:       "Mercado",
		Description: &desc,
		State:       domain.StatePending,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

func TestTaskHandler_GetTask(t *testing.T) {
	t.Parallel()

	tasks := &mocks.MockTaskService{
		GetFn: func(_ context.Context, id int64) (*domain.Task, error) {
			if id == 1 {
				return sampleTask(1), nil
			}
			return nil, fmt.Errorf("failed to retrieve task: %w", store.ErrTaskNotFound)
		},
	}
	router := newTestRouter(&mocks.MockAccountService{}, tasks)

	t.Run("found", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/tasks/1", "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"id": 1,
			"titulo": "Mercado",
			"descricao": "comprar pão",
			"estado": "pendente",
			"data_criacao": "2026-03-01T10:00:00Z",
			"data_atualizacao": "2026-03-01T10:00:00Z"
		}`, rec.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/tasks/99", "", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"detail":"Tarefa não encontrada."}`, rec.Body.String())
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/tasks/abc", "", "")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.JSONEq(t, `{"detail":{"id":"Tipo inválido"}}`, rec.Body.String())
	})
}

func TestTaskHandler_ListTasks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		listErr    error
		result     []*domain.Task
		wantStatus int
		wantBody   string
		wantPage   int
		wantFilter string
	}{
		{
			name:       "empty page renders empty array",
			path:       "/api/tasks/list/3",
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
			wantPage:   3,
		},
		{
			name:       "filter is passed through",
			path:       "/api/tasks/list/1?estado=Andamento&other=ignored",
			result:     []*domain.Task{sampleTask(4)},
			wantStatus: http.StatusOK,
			wantPage:   1,
			wantFilter: "Andamento",
		},
		{
			name:       "bad filter",
			path:       "/api/tasks/list/1?estado=feito",
			listErr:    fmt.Errorf("%w: %q", domain.ErrInvalidStateFilter, "feito"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"detail":"Possiveis filtros de estado: ('pendente', 'andamento', 'concluido')"}`,
			wantPage:   1,
			wantFilter: "feito",
		},
		{
			name:       "non-numeric page",
			path:       "/api/tasks/list/first",
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"detail":{"page":"Tipo inválido"}}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotPage int
			var gotFilter string
			tasks := &mocks.MockTaskService{
				ListFn: func(_ context.Context, page int, filter string) ([]*domain.Task, error) {
					gotPage, gotFilter = page, filter
					return tc.result, tc.listErr
				},
			}
			router := newTestRouter(&mocks.MockAccountService{}, tasks)

			rec := doRequest(t, router, http.MethodGet, tc.path, "", "")

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantBody != "" {
				assert.JSONEq(t, tc.wantBody, rec.Body.String())
			}
			assert.Equal(t, tc.wantPage, gotPage)
			assert.Equal(t, tc.wantFilter, gotFilter)
			if tc.result != nil {
				var got []domain.Task
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Len(t, got, len(tc.result))
			}
		})
	}
}

func TestTaskHandler_CreateTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
		wantInput  *service.CreateTaskInput
	}{
		{
			name:       "created without description",
			body:       `{"titulo":"Mercado","estado":"pendente"}`,
			wantStatus: http.StatusOK,
			wantInput:  &service.CreateTaskInput{Title: "Mercado", State: "pendente"},
		},
		{
			name:       "missing fields",
			body:       `{"descricao":"x"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"detail":{"titulo":"Campo obrigatório","estado":"Campo obrigatório"}}`,
		},
		{
			name:       "invalid state gets structured detail",
			body:       `{"titulo":"Mercado","estado":"feito"}`,
			wantStatus: http.StatusBadRequest,
			wantBody: `{"detail":{
				"titulo":"Campo obrigatório",
				"descricao":"Campo opcional",
				"estado":"Somente 3 valores possiveis: ('pendente', 'em andamento', 'concluída')"
			}}`,
			wantInput: &service.CreateTaskInput{Title: "Mercado", State: "feito"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotInput *service.CreateTaskInput
			tasks := &mocks.MockTaskService{
				CreateFn: func(_ context.Context, in service.CreateTaskInput) (*domain.Task, error) {
					gotInput = &in
					return domain.NewTask(in.Title, in.Description, in.State, time.Now())
				},
			}
			router := newTestRouter(&mocks.MockAccountService{}, tasks)

			rec := doRequest(t, router, http.MethodPost, "/api/tasks", jsonType, tc.body)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantBody != "" {
				assert.JSONEq(t, tc.wantBody, rec.Body.String())
			}
			assert.Equal(t, tc.wantInput, gotInput)
		})
	}
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		body       string
		updateErr  error
		wantStatus int
		wantBody   string
		checkPatch func(t *testing.T, p domain.TaskPatch)
	}{
		{
			name:       "only state present",
			path:       "/api/tasks/1",
			body:       `{"estado":"concluída"}`,
			wantStatus: http.StatusOK,
			checkPatch: func(t *testing.T, p domain.TaskPatch) {
				require.NotNil(t, p.State)
				assert.Equal(t, "concluída", *p.State)
				assert.Nil(t, p.Title)
				assert.False(t, p.SetDescription)
			},
		},
		{
			name:       "explicit null clears description",
			path:       "/api/tasks/1",
			body:       `{"descricao":null}`,
			wantStatus: http.StatusOK,
			checkPatch: func(t *testing.T, p domain.TaskPatch) {
				assert.True(t, p.SetDescription)
				assert.Nil(t, p.Description)
			},
		},
		{
			name:       "invalid state",
			path:       "/api/tasks/1",
			body:       `{"estado":"feito"}`,
			updateErr:  domain.NewValidationError("estado", domain.MsgInvalidState, domain.ErrInvalidState),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"detail":{"estado":"Somente 3 valores possiveis: ('pendente', 'em andamento', 'concluída')"}}`,
		},
		{
			name:       "missing task",
			path:       "/api/tasks/42",
			body:       `{"titulo":"x"}`,
			updateErr:  fmt.Errorf("failed to update task: %w", store.ErrTaskNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"detail":"Tarefa não encontrada."}`,
		},
		{
			name:       "wrong description type",
			path:       "/api/tasks/1",
			body:       `{"descricao":5}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tasks := &mocks.MockTaskService{
				UpdateFn: func(_ context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
					if tc.checkPatch != nil {
						tc.checkPatch(t, patch)
					}
					if tc.updateErr != nil {
						return nil, tc.updateErr
					}
					task := sampleTask(id)
					require.NoError(t, patch.Apply(task, time.Now()))
					return task, nil
				},
			}
			router := newTestRouter(&mocks.MockAccountService{}, tasks)

			rec := doRequest(t, router, http.MethodPatch, tc.path, jsonType, tc.body)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantBody != "" {
				assert.JSONEq(t, tc.wantBody, rec.Body.String())
			}
		})
	}
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	t.Parallel()

	tasks := &mocks.MockTaskService{
		DeleteFn: func(_ context.Context, id int64) error {
			if id == 1 {
				return nil
			}
			return fmt.Errorf("failed to delete task: %w", store.ErrTaskNotFound)
		},
	}
	router := newTestRouter(&mocks.MockAccountService{}, tasks)

	rec := doRequest(t, router, http.MethodDelete, "/api/tasks/1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodDelete, "/api/tasks/2", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Tarefa não encontrada."}`, rec.Body.String())
}

func TestTaskHandler_UnexpectedErrorIsHidden(t *testing.T) {
	t.Parallel()

	tasks := &mocks.MockTaskService{
		GetFn: func(context.Context, int64) (*domain.Task, error) {
			return nil, errors.New(`pq: relation "tasks" does not exist`)
		},
	}
	router := newTestRouter(&mocks.MockAccountService{}, tasks)

	rec := doRequest(t, router, http.MethodGet, "/api/tasks/1", "", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"Erro interno."}`, rec.Body.String())
}
