package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/arcadecab/cabcheck/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStore_NoneBackend(t *testing.T) {
	store, err := NewCacheStore("test_table", schema.NoneBackend, "")
	require.NoError(t, err)

	// Get always misses
	_, _, _, err = store.Get("test_key")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	// Set is a no-op
	assert.NoError(t, store.Set("test_key", []byte("test_value"), 1, 123456789))
	_, _, _, err = store.Get("test_key")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestCacheStore_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(modelineTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, _, _, err = store.Get("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	now := time.Now().Unix()
	require.NoError(t, store.Set("k1", []byte(`{"success":true}`), 1, now-60))
	require.NoError(t, store.Set("k2", []byte(`{"success":false}`), 1, now))

	value, version, ts, err := store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"success":true}`), value)
	assert.Equal(t, 1, version)
	assert.Equal(t, now-60, ts)

	// Set replaces an existing key
	require.NoError(t, store.Set("k1", []byte("v2"), 2, now))
	value, version, _, err = store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), value)
	assert.Equal(t, 2, version)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, now, status.LastEntryTime.Unix())
	assert.Equal(t, now, status.OldestEntryTime.Unix())
	assert.Positive(t, status.TableSizeBytes)
}

func TestCacheStore_EmptyStatus(t *testing.T) {
	store, err := NewCacheStore(modelineTable, schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 0, status.TotalEntries)
	assert.True(t, status.LastEntryTime.IsZero())
}

func TestNewCacheStore_Errors(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		backend   schema.DatabaseBackend
		errMsg    string
	}{
		{"empty table name", "", schema.SQLiteBackend, "table name cannot be empty"},
		{"injected table name", "cache; DROP TABLE users", schema.SQLiteBackend, "invalid table name"},
		{"unknown backend", "cache", schema.DatabaseBackend("redis"), "unsupported backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCacheStore(tt.tableName, tt.backend, filepath.Join(t.TempDir(), "cache.db"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGetUpsertQuery(t *testing.T) {
	tests := []struct {
		backend  schema.DatabaseBackend
		contains string
	}{
		{schema.SQLiteBackend, "INSERT OR REPLACE INTO \"modeline_cache\""},
		{schema.MySQLBackend, "ON DUPLICATE KEY UPDATE"},
		{schema.PostgreSQLBackend, "ON CONFLICT (cache_key) DO UPDATE"},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			store := &CacheStoreImpl{tableName: modelineTable, backend: tt.backend}
			assert.Contains(t, store.getUpsertQuery(), tt.contains)
		})
	}
}
