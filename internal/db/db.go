// Copyright (c) 2026 Red Hat, Inc.
// quipucords - inventory and discovery of remote hosts
// This software is licensed under the GNU General Public License, version 3 (GPLv3).

package db // import "github.com/quipucords/quipucords/internal/db"

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var (
	//go:embed migrations
	embeddedMigrations embed.FS
	// sqlOpenFunc allows tests to override database opening behavior.
	sqlOpenFunc = sql.Open
)

// Supported database types.
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypeMySQL    = "mysql"
)

// Store is the bun-backed persistence layer for credentials, sources and
// deployment reports.
type Store struct {
	bun    *bun.DB
	dbType string
}

// Bun exposes the underlying *bun.DB.
func (s *Store) Bun() *bun.DB { return s.bun }

// Type returns the database type the store was opened with.
func (s *Store) Type() string { return s.dbType }

// Close releases the connection pool.
func (s *Store) Close() error { return s.bun.Close() }

func driverName(dbType string) (string, error) {
	switch dbType {
	case TypeSQLite:
		return "sqlite", nil
	case TypePostgres:
		// the pgx stdlib driver registers itself as "pgx"
		return "pgx", nil
	case TypeMySQL:
		return "mysql", nil
	default:
		return "", fmt.Errorf("unsupported database type: '%s'", dbType)
	}
}

// Open connects to the database, applies pending migrations and returns a
// ready Store.
func Open(ctx context.Context, dbType, dsn string) (*Store, error) {
	driver, err := driverName(dbType)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	sqlDB, err := sqlOpenFunc(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	configurePool(sqlDB, dbType, dsn)
	dbLogf("db: opened %s driver in %s", driver, time.Since(start))

	bunDB := createBunDB(sqlDB, dbType)
	if err := bunDB.PingContext(ctx); err != nil {
		_ = bunDB.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	migStart := time.Now()
	if err := RunMigrations(ctx, bunDB, dbType); err != nil {
		_ = bunDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	dbLogf("db: migrations for %s completed in %s", dbType, time.Since(migStart))

	return &Store{bun: bunDB, dbType: dbType}, nil
}

// configurePool applies pool defaults, overridable through
// QUIPUCORDS_DB_MAX_OPEN_CONNS, QUIPUCORDS_DB_MAX_IDLE_CONNS and
// QUIPUCORDS_DB_CONN_MAX_LIFETIME_SECONDS.
func configurePool(sqlDB *sql.DB, dbType, dsn string) {
	const (
		defaultMaxOpenConns    = 25
		defaultMaxIdleConns    = 25
		defaultConnMaxLifetime = 5 * time.Minute
	)

	maxOpen := envInt("QUIPUCORDS_DB_MAX_OPEN_CONNS", defaultMaxOpenConns)
	maxIdle := envInt("QUIPUCORDS_DB_MAX_IDLE_CONNS", defaultMaxIdleConns)
	lifetime := defaultConnMaxLifetime
	if n := envInt("QUIPUCORDS_DB_CONN_MAX_LIFETIME_SECONDS", -1); n >= 0 {
		lifetime = time.Duration(n) * time.Second
	}

	// Every connection to an in-memory SQLite database sees its own schema
	// unless they share one connection.
	if dbType == TypeSQLite && isMemoryDSN(dsn) {
		maxOpen, maxIdle = 1, 1
		lifetime = 0
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory") || strings.HasPrefix(dsn, "file::memory:")
}

// createBunDB wraps sqlDB with the bun dialect matching dbType.
func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	switch dbType {
	case TypePostgres:
		return bun.NewDB(sqlDB, pgdialect.New())
	case TypeMySQL:
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}

// RunMigrations applies the embedded migrations/<dbType>/*.up.sql files in
// lexical order, each in its own transaction, recording applied versions in
// schema_migrations.
func RunMigrations(ctx context.Context, bdb *bun.DB, dbType string) error {
	migrationsPath := path.Join("migrations", dbType)

	entries, err := fs.ReadDir(embeddedMigrations, migrationsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("no migrations embedded for database type %q", dbType)
		}
		return fmt.Errorf("failed to read embedded migrations (%s): %w", migrationsPath, err)
	}

	var ups []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			ups = append(ups, e.Name())
		}
	}
	sort.Strings(ups)

	if err := ensureSchemaMigrationsTable(ctx, bdb, dbType); err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	for _, fname := range ups {
		version := strings.TrimSuffix(fname, ".up.sql")

		var applied int
		err := QueryRawInto(ctx, bdb, &applied, "SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version)
		if err != nil {
			return fmt.Errorf("failed to check migration version %s: %w", version, err)
		}
		if applied > 0 {
			continue
		}

		data, err := embeddedMigrations.ReadFile(path.Join(migrationsPath, fname))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", fname, err)
		}

		err = bdb.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, stmt := range splitStatements(string(data)) {
				if _, err := ExecRaw(ctx, tx, stmt); err != nil {
					return fmt.Errorf("failed to execute migration %s: %w", version, err)
				}
			}
			_, err := ExecRaw(ctx, tx, "INSERT INTO schema_migrations(version, applied_at) VALUES(?, ?)", version, time.Now().UTC())
			if err != nil {
				return fmt.Errorf("failed to record migration %s: %w", version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		dbLogf("db: applied migration %s", version)
	}
	return nil
}

func ensureSchemaMigrationsTable(ctx context.Context, bdb *bun.DB, dbType string) error {
	// MySQL cannot index TEXT without a prefix length.
	ddl := `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMP)`
	if dbType == TypeMySQL {
		ddl = `CREATE TABLE IF NOT EXISTS schema_migrations (version VARCHAR(191) PRIMARY KEY, applied_at TIMESTAMP NULL)`
	}
	_, err := ExecRaw(ctx, bdb, ddl)
	return err
}

// splitStatements splits a migration file on semicolons. Migrations must
// not contain semicolons inside string literals.
func splitStatements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
