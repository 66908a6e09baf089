package testdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/task-api/internal/platform/sqldb"
)

// EnvURL names the variable that selects an external test database.
const EnvURL = "TASKAPI_TEST_DB_URL"

// TestTimeout bounds database setup in tests.
const TestTimeout = 10 * time.Second

// URL returns the database URL tests should use: EnvURL when set, otherwise
// a fresh SQLite file in t's temp directory.
func URL(t *testing.T) string {
	t.Helper()
	if u := os.Getenv(EnvURL); u != "" {
		return u
	}
	return "sqlite:///" + filepath.Join(t.TempDir(), "test.db")
}

// IsExternal reports whether tests run against a database named by EnvURL.
func IsExternal() bool {
	return os.Getenv(EnvURL) != ""
}

// Open connects to URL(t), applies all migrations and closes the pool when
// the test ends. External databases are emptied first so tests start clean.
func Open(t *testing.T) *sqldb.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := sqldb.Open(ctx, URL(t))
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqldb.Migrate(ctx, db, sqldb.MigrateUp), "failed to migrate test database")
	if IsExternal() {
		Truncate(t, db)
	}
	return db
}

// Truncate deletes every task and user.
func Truncate(t *testing.T, db *sqldb.DB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	for _, table := range []string{"tasks", "users"} {
		_, err := db.ExecContext(ctx, "DELETE FROM "+table)
		require.NoError(t, err, "failed to empty %s", table)
	}
}
