package db

import (
	"database/sql"
	"errors"
	"strings"
)

var (
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
)

// MapDBError maps driver errors to ErrDuplicate / ErrNotFound. Matching is
// string based so no driver package is needed here.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	le := strings.ToLower(err.Error())
	// MySQL 1062, Postgres 23505, SQLite "UNIQUE constraint failed"
	if strings.Contains(le, "duplicate") || strings.Contains(le, "unique") || strings.Contains(le, "23505") || strings.Contains(le, "1062") {
		return ErrDuplicate
	}
	return err
}
