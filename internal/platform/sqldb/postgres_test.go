package sqldb

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

func newPostgresMock(t *testing.T) (*UserStore, *TaskStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewUserStore(db, Postgres), NewTaskStore(db, Postgres), mock
}

func TestPostgresUserStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserted", func(t *testing.T) {
		users, _, mock := newPostgresMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`VALUES ($1, $2, $3)`) + `\s+ON CONFLICT \(username\) DO NOTHING\s+RETURNING id`).
			WithArgs("ana", "$2a$04$hash-for-ana", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

		user := newHashedUser(t, "ana")
		require.NoError(t, users.Create(ctx, user))
		assert.Equal(t, int64(42), user.ID)
	})

	t.Run("conflict returns no row", func(t *testing.T) {
		users, _, mock := newPostgresMock(t)
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		err := users.Create(ctx, newHashedUser(t, "ana"))
		assert.ErrorIs(t, err, store.ErrUsernameExists)
	})

	t.Run("unique violation", func(t *testing.T) {
		users, _, mock := newPostgresMock(t)
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_username_key"})

		err := users.Create(ctx, newHashedUser(t, "ana"))
		assert.ErrorIs(t, err, store.ErrUsernameExists)
	})

	t.Run("driver failure", func(t *testing.T) {
		users, _, mock := newPostgresMock(t)
		mock.ExpectQuery(`INSERT INTO users`).WillReturnError(assert.AnError)

		err := users.Create(ctx, newHashedUser(t, "ana"))
		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "create", storeErr.Operation)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestPostgresUserStore_GetByUsername(t *testing.T) {
	users, _, mock := newPostgresMock(t)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE username = $1`)).
		WithArgs("ana").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(int64(7), "ana", "digest", created))

	u, err := users.GetByUsername(context.Background(), "ana")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "digest", u.HashedPassword)
	assert.Equal(t, created, u.CreatedAt)
}

func TestPostgresTaskStore_List(t *testing.T) {
	_, tasks, mock := newPostgresMock(t)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM tasks WHERE estado = $1 ORDER BY id LIMIT $2 OFFSET $3`)).
		WithArgs("pendente", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "titulo", "descricao", "estado", "data_criacao", "data_atualizacao"}).
			AddRow(int64(11), "a", nil, "pendente", now, now).
			AddRow(int64(12), "b", "desc", "pendente", now, now))

	got, err := tasks.List(context.Background(), store.TaskFilter{State: domain.StatePending, Limit: 10, Offset: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Nil(t, got[0].Description)
	assert.Equal(t, "desc", *got[1].Description)
}

func TestPostgresTaskStore_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	_, tasks, mock := newPostgresMock(t)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(`SET titulo = $1, descricao = $2, estado = $3, data_atualizacao = $4`) + `\s+` + regexp.QuoteMeta(`WHERE id = $5`)).
		WithArgs("a", nil, "concluída", sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tasks WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := tasks.Update(ctx, &domain.Task{ID: 3, Title: "a", State: domain.StateDone, UpdatedAt: now})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	assert.NoError(t, tasks.Delete(ctx, 3))
}
