package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/task-api/internal/mocks"
)

// newTestRouter mounts the handlers the way the server does, without auth.
func newTestRouter(accounts *mocks.MockAccountService, tasks *mocks.MockTaskService) http.Handler {
	r := chi.NewRouter()

	ah := NewAuthHandler(accounts)
	r.Post("/api/user/create", ah.CreateUser)
	r.Post("/api/auth/token", ah.Token)

	th := NewTaskHandler(tasks)
	r.Get("/api/tasks/list/{page}", th.ListTasks)
	r.Get("/api/tasks/{id}", th.GetTask)
	r.Post("/api/tasks", th.CreateTask)
	r.Patch("/api/tasks/{id}", th.UpdateTask)
	r.Delete("/api/tasks/{id}", th.DeleteTask)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
