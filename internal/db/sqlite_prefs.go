package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLitePrefs stores preferences in a single key-value table.
type SQLitePrefs struct {
	db     *sql.DB
	logger *zap.Logger
}

// OpenSQLite opens the database file at path, creating its directory, and applies pragmas.
func OpenSQLite(path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.ToSlash(path))
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	for _, stmt := range []string{"PRAGMA journal_mode = WAL", "PRAGMA synchronous = NORMAL"} {
		if _, err := conn.Exec(stmt); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return conn, nil
}

func NewSQLitePrefs(ctx context.Context, path, migrationsDir string, logger *zap.Logger) (*SQLitePrefs, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	applied, err := RunMigrations(ctx, conn, migrationsDir)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if len(applied) > 0 {
		logger.Info("Applied preference migrations", zap.Strings("migrations", applied))
	}
	return &SQLitePrefs{db: conn, logger: logger}, nil
}

func (s *SQLitePrefs) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLitePrefs) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`, key, value)
	if err != nil {
		return fmt.Errorf("put preference %s: %w", key, err)
	}
	return nil
}

func (s *SQLitePrefs) Close() error {
	return s.db.Close()
}
