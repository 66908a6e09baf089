package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/task-api/internal/cache"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/sqldb"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/phrazzld/task-api/internal/testdb"
)

func TestTaskService_WithDatabase(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)

	listCache := cache.NewMemory(time.Minute)
	t.Cleanup(func() { _ = listCache.Close() })

	svc := service.NewTaskService(sqldb.NewTaskStore(db, db.Dialect), db, listCache, 2, quietLogger())
	created := seed(t, svc, "pendente", "em andamento", "pendente")

	page, err := svc.List(ctx, 1, "pendente")
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 1, listCache.Len())

	// Only the fields present in the patch change.
	updated, err := svc.Update(ctx, created[0].ID, domain.TaskPatch{State: strPtr("concluída")})
	require.NoError(t, err)
	assert.Equal(t, domain.StateDone, updated.State)
	assert.Equal(t, created[0].Title, updated.Title)
	assert.Equal(t, 0, listCache.Len(), "writes invalidate cached pages")

	page, err = svc.List(ctx, 1, "pendente")
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, created[2].ID, page[0].ID)

	_, err = svc.Update(ctx, 999, domain.TaskPatch{Title: strPtr("x")})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	require.NoError(t, svc.Delete(ctx, created[1].ID))
	_, err = svc.Get(ctx, created[1].ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestAccountService_WithDatabase(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)

	codec := auth.NewTestTokenCodec(t)
	users := sqldb.NewUserStore(db, db.Dialect)
	svc := service.NewAccountService(users, auth.NewBcryptHasher(4), codec, quietLogger())

	user, err := svc.CreateAccount(ctx, "ana", "s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", user.HashedPassword)

	stored, err := users.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.HashedPassword)

	// Concurrent sign-ups for one username leave exactly one account.
	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateAccount(ctx, "bia", "pw")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, store.ErrUsernameExists), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	token, err := svc.Login(ctx, "ana", "s3cret")
	require.NoError(t, err)
	claims, err := codec.Verify(ctx, token.Value)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, err = svc.Login(ctx, "ana", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}
