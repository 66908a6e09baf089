// Package sqldb provides database/sql implementations of the storage
// interfaces defined in internal/store. One code path serves both PostgreSQL
// (through the pgx stdlib driver) and SQLite (through the pure-Go modernc
// driver); a Dialect chosen from the database URL scheme covers the
// differences in placeholders, error codes and migrations.
package sqldb
