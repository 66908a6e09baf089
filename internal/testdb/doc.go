// Package testdb opens migrated databases for tests. By default every test
// gets its own SQLite file under t.TempDir(); setting TASKAPI_TEST_DB_URL
// points the same tests at a shared server database instead.
package testdb
