package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

func newHashedUser(t *testing.T, username string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(username, "plaintext-password", time.Now())
	require.NoError(t, err)
	require.NoError(t, u.SetHashedPassword("$2a$04$hash-for-"+username))
	return u
}

func TestUserStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s := NewUserStore(db, db.Dialect)

	user := newHashedUser(t, "ana")
	require.NoError(t, s.Create(ctx, user))
	assert.NotZero(t, user.ID)

	byName, err := s.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, "$2a$04$hash-for-ana", byName.HashedPassword)
	assert.NotEqual(t, "plaintext-password", byName.HashedPassword)
	assert.Empty(t, byName.Password)
	assert.WithinDuration(t, user.CreatedAt, byName.CreatedAt, time.Second)

	byID, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", byID.Username)

	_, err = s.GetByUsername(ctx, "ANA")
	assert.ErrorIs(t, err, store.ErrUserNotFound, "usernames are case-sensitive")

	_, err = s.GetByID(ctx, 999)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStore_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s := NewUserStore(db, db.Dialect)

	first := newHashedUser(t, "ana")
	require.NoError(t, s.Create(ctx, first))

	second := newHashedUser(t, "ana")
	err := s.Create(ctx, second)
	assert.ErrorIs(t, err, store.ErrUsernameExists)
	assert.Zero(t, second.ID)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = ?`, "ana").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUserStore_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s := NewUserStore(db, db.Dialect)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	users := make([]*domain.User, workers)
	for i := range users {
		users[i] = newHashedUser(t, "race")
	}

	for _, u := range users {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Create(ctx, u)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case assert.ErrorIs(t, err, store.ErrUsernameExists):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, conflicts)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUserStore_CreateRejectsUnhashed(t *testing.T) {
	db := openTestDB(t)
	s := NewUserStore(db, db.Dialect)

	user, err := domain.NewUser("bob", "secret", time.Now())
	require.NoError(t, err)

	err = s.Create(context.Background(), user)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestUserStore_WithTx(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s := NewUserStore(db, db.Dialect)

	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.WithTx(tx).Create(ctx, newHashedUser(t, "rolled-back")); err != nil {
			return err
		}
		return fmt.Errorf("abort")
	})
	require.Error(t, err)

	_, err = s.GetByUsername(ctx, "rolled-back")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
