package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundraiser-display/internal/config"
	"fundraiser-display/internal/storage/memory"
	"fundraiser-display/internal/storage/sqlite"
)

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, &config.Config{StorageDriver: config.DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, s)
	require.NoError(t, s.Close())

	s, err = Open(ctx, &config.Config{
		StorageDriver: config.DriverSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "open.db"),
	})
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Store{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, &config.Config{StorageDriver: "cassandra"})
	assert.ErrorContains(t, err, "unknown storage driver")
}
