// Package db is the bun-backed data access layer of quipucords.
//
// Open selects the driver and bun dialect for "sqlite" (modernc.org/sqlite),
// "postgres" (pgx) or "mysql", applies the embedded migrations for that
// engine and returns a *Store.
//
// Testing notes
//   - Use a shared-cache in-memory SQLite DSN named after the test
//     (see testhelpers_test.go) to get real migrations with isolation.
//   - Store methods return ErrNotFound / ErrDuplicate for missing rows and
//     unique-constraint violations regardless of engine.
package db
