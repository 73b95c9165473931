// Package storage selects the goal and percentage store for cmd/api.
package storage

import (
	"context"
	"fmt"

	"fundraiser-display/internal/config"
	"fundraiser-display/internal/goals"
	"fundraiser-display/internal/percentage"
	"fundraiser-display/internal/storage/memory"
	"fundraiser-display/internal/storage/postgres"
	"fundraiser-display/internal/storage/sqlite"
)

// Store is implemented by every backend.
type Store interface {
	goals.Store
	percentage.Store
	Close() error
}

var (
	_ Store = (*memory.Store)(nil)
	_ Store = (*sqlite.Store)(nil)
	_ Store = (*postgres.Store)(nil)
)

// Open returns the store named by cfg.StorageDriver.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		return postgres.Open(ctx, cfg.ConnString())
	case config.DriverSQLite:
		return sqlite.Open(ctx, cfg.SQLitePath)
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
