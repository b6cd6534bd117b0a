package iocache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arcadecab/cabcheck/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteHistoryExport(t *testing.T) {
	resetManager(t)
	dir := t.TempDir()
	require.NoError(t, InitStores("", "", schema.SQLiteBackend, filepath.Join(dir, "history.db")))

	store := Manager.GetHistoryStore()
	start := time.Now()
	runID, err := store.BeginRun(start, map[string]any{"games": 2})
	require.NoError(t, err)
	require.NoError(t, store.RecordGameResult(runID, gameResult(runID, "sf2", "sf2", start)))
	require.NoError(t, store.RecordGameResult(runID, gameResult(runID, "nosuchgame", "", start)))
	require.NoError(t, store.EndRun(runID, start.Add(time.Second), 2))

	out := filepath.Join(dir, "export")
	require.NoError(t, ExecuteHistoryExport(out))

	for _, suffix := range []string{".runs.parquet", ".game_results.parquet"} {
		info, err := os.Stat(out + suffix)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestExecuteHistoryExport_Errors(t *testing.T) {
	t.Run("missing output file", func(t *testing.T) {
		err := ExecuteHistoryExport("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--output-file is required")
	})

	t.Run("history disabled", func(t *testing.T) {
		resetManager(t)
		err := ExecuteHistoryExport(filepath.Join(t.TempDir(), "export"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not enabled")
	})

	t.Run("empty history", func(t *testing.T) {
		resetManager(t)
		require.NoError(t, InitStores("", "", schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db")))
		err := ExecuteHistoryExport(filepath.Join(t.TempDir(), "export"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no check history found")
	})

	t.Run("status failure", func(t *testing.T) {
		resetManager(t)
		mockStore := &MockHistoryStore{}
		mockStore.On("GetStatus").Return(schema.HistoryStatus{}, errors.New("boom"))
		mockStore.On("Close").Return(nil)
		Manager.history = mockStore

		err := ExecuteHistoryExport(filepath.Join(t.TempDir(), "export"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get history status")
	})
}
