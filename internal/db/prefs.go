package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Preferences is implemented by every backend.
type Preferences interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

var (
	_ Preferences = (*SQLitePrefs)(nil)
	_ Preferences = (*BadgerPrefs)(nil)
	_ Preferences = (*MemoryPrefs)(nil)
)

// OpenPreferences selects a backend by name: "sqlite", "badger" or "memory".
func OpenPreferences(ctx context.Context, backend, path, migrationsDir string, logger *zap.Logger) (Preferences, error) {
	switch backend {
	case "", "sqlite":
		return NewSQLitePrefs(ctx, path, migrationsDir, logger)
	case "badger":
		return NewBadgerPrefs(path, logger)
	case "memory":
		return NewMemoryPrefs(), nil
	default:
		return nil, fmt.Errorf("unknown preferences backend %q", backend)
	}
}
