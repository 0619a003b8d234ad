package persist

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database backing the offline backend.
type DB struct {
	SQL *sql.DB
	log *zap.Logger
}

// Open opens (creating if needed) the database at path and applies pending
// migrations. The special path ":memory:" keeps everything in memory.
func Open(ctx context.Context, path string, log *zap.Logger) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is required")
	}

	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	} else {
		dsn = "file::memory:?_pragma=foreign_keys(1)"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer keeps an in-memory database from splitting per connection.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	db := &DB{SQL: sqlDB, log: log}
	if err := RunMigrations(ctx, db); err != nil {
		sqlDB.Close()
		return nil, err
	}
	log.Debug("offline database ready", zap.String("path", path))
	return db, nil
}

func (db *DB) Close() error {
	return db.SQL.Close()
}
