package iocache

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/arcadecab/cabcheck/schema"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistoryStore(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	store, err := NewHistoryStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*HistoryStoreImpl)
}

func gameResult(runID int64, input, name string, checkTime time.Time) schema.GameResultRecord {
	rec := schema.GameResultRecord{
		RunID:           runID,
		GameNameInput:   input,
		CheckTime:       checkTime,
		EmulationStatus: "GOOD",
		VideoStatus:     "NATIVE",
		ControlsStatus:  "OK",
		OverallStatus:   "OK",
		KnownStatus:     "OK",
	}
	if name != "" {
		rec.GameName = &name
	}
	return rec
}

func TestHistoryStore_NoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), map[string]any{"games": 1})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	assert.NoError(t, store.RecordGameResult(1, gameResult(1, "sf2", "sf2", time.Now())))
	assert.NoError(t, store.EndRun(1, time.Now(), 1))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	assert.NoError(t, store.Close())
}

func TestHistoryStore_SQLite(t *testing.T) {
	store := newTestHistoryStore(t)

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	params := map[string]any{"games": 2, "sort": "status"}
	runID, err := store.BeginRun(start, params)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	// The same input twice keeps both rows
	require.NoError(t, store.RecordGameResult(runID, gameResult(runID, "SF2", "sf2", start)))
	require.NoError(t, store.RecordGameResult(runID, gameResult(runID, "SF2", "sf2", start)))
	require.NoError(t, store.RecordGameResult(runID, gameResult(runID, "nosuchgame", "", start)))

	require.NoError(t, store.EndRun(runID, start.Add(1500*time.Millisecond), 3))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	_, err = uuid.Parse(run.RunUUID)
	assert.NoError(t, err)
	assert.True(t, start.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	assert.True(t, start.Add(1500*time.Millisecond).Equal(*run.EndTime))
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(1500), *run.RunDurationMs)
	assert.Equal(t, int32(3), run.TotalGames)
	require.NotNil(t, run.ConfigParams)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(*run.ConfigParams), &decoded))
	assert.Equal(t, "status", decoded["sort"])

	results, err := store.GetAllGameResults()
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "SF2", results[0].GameNameInput)
	require.NotNil(t, results[0].GameName)
	assert.Equal(t, "sf2", *results[0].GameName)
	assert.Nil(t, results[2].GameName)
	assert.Equal(t, "NATIVE", results[2].VideoStatus)
	assert.True(t, start.Equal(results[2].CheckTime))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.True(t, start.Equal(status.LastRunTime))
	assert.True(t, start.Equal(status.OldestRunTime))
	assert.Equal(t, 3, status.TotalGameResults)
	assert.Equal(t, map[string]int64{runsTable: 1, gameResultsTable: 3}, status.TableSizes)
}

func TestHistoryStore_MultipleRuns(t *testing.T) {
	store := newTestHistoryStore(t)

	first := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(24 * time.Hour)

	id1, err := store.BeginRun(first, nil)
	require.NoError(t, err)
	id2, err := store.BeginRun(second, nil)
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	// An unfinished run keeps a null end time
	require.NoError(t, store.EndRun(id1, first.Add(time.Second), 0))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.NotNil(t, runs[0].EndTime)
	assert.Nil(t, runs[1].EndTime)
	assert.Nil(t, runs[1].RunDurationMs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, id2, status.LastRunID)
	assert.True(t, second.Equal(status.LastRunTime))
	assert.True(t, first.Equal(status.OldestRunTime))
	assert.Equal(t, 0, status.TotalGameResults)
}

func TestHistoryStore_EndRunUnknownRun(t *testing.T) {
	store := newTestHistoryStore(t)

	err := store.EndRun(999, time.Now(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get start_time for run 999")
}

func TestHistoryCreateQueries(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		runs    string
		results string
	}{
		{schema.SQLiteBackend, "AUTOINCREMENT", "result_id INTEGER PRIMARY KEY"},
		{schema.MySQLBackend, "AUTO_INCREMENT", "DATETIME(6)"},
		{schema.PostgreSQLBackend, "BIGSERIAL", "TIMESTAMPTZ"},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			assert.Contains(t, getCreateRunsQuery(tt.backend), tt.runs)
			assert.Contains(t, getCreateGameResultsQuery(tt.backend), tt.results)
		})
	}
}
