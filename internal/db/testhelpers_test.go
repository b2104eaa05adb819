package db

import (
	"context"
	"net/url"
	"testing"
)

// newTestStore opens an isolated in-memory SQLite store named after the test.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := "file:" + url.PathEscape(t.Name()) + "?mode=memory&cache=shared"
	s, err := Open(context.Background(), TypeSQLite, dsn)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}
