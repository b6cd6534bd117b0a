package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/schema"
	"github.com/google/uuid"
)

// Table names for check history.
const (
	runsTable        = "cabcheck_runs"
	gameResultsTable = "cabcheck_game_results"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("check history: %w", err)
	}

	// Create the table schemas
	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the check history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{gameResultsTable, getCreateGameResultsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for cabcheck_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_uuid CHAR(36) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_games INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				run_uuid TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_games INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_uuid TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_games INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateGameResultsQuery returns the CREATE TABLE query for cabcheck_game_results.
// The same name may be requested twice in one run, so rows carry their own ID.
func getCreateGameResultsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(gameResultsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				result_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_id BIGINT NOT NULL,
				game_name_input VARCHAR(255) NOT NULL,
				game_name VARCHAR(255),
				check_time DATETIME(6) NOT NULL,
				emulation_status VARCHAR(32) NOT NULL,
				video_status VARCHAR(32) NOT NULL,
				controls_status VARCHAR(32) NOT NULL,
				overall_status VARCHAR(32) NOT NULL,
				known_status VARCHAR(32) NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				result_id BIGSERIAL PRIMARY KEY,
				run_id BIGINT NOT NULL,
				game_name_input TEXT NOT NULL,
				game_name TEXT,
				check_time TIMESTAMPTZ NOT NULL,
				emulation_status TEXT NOT NULL,
				video_status TEXT NOT NULL,
				controls_status TEXT NOT NULL,
				overall_status TEXT NOT NULL,
				known_status TEXT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				result_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_id INTEGER NOT NULL,
				game_name_input TEXT NOT NULL,
				game_name TEXT,
				check_time TEXT NOT NULL,
				emulation_status TEXT NOT NULL,
				video_status TEXT NOT NULL,
				controls_status TEXT NOT NULL,
				overall_status TEXT NOT NULL,
				known_status TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new check run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	params := strings.Join(placeholders(hs.backend, 3), ", ")
	args := []any{uuid.NewString(), formatTime(startTime, hs.backend), string(configJSON)}

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, start_time, config_params) VALUES (%s) RETURNING run_id`, quotedTableName, params)
		err = hs.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, start_time, config_params) VALUES (%s)`, quotedTableName, params)
		var result sql.Result
		result, err = hs.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert check run: %w", err)
	}
	return runID, nil
}

// EndRun updates the check run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalGames int) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	// First, get the start_time to calculate duration
	quotedTableName := quoteTableName(runsTable, hs.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholders(hs.backend, 1)[0])

	var raw any
	if err := hs.db.QueryRow(query, runID).Scan(&raw); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	startTime, err := parseTime(raw)
	if err != nil {
		return fmt.Errorf("failed to parse start_time: %w", err)
	}

	p := placeholders(hs.backend, 4)
	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_games = %s WHERE run_id = %s`,
		quotedTableName, p[0], p[1], p[2], p[3])
	durationMs := endTime.Sub(startTime).Milliseconds()
	if _, err := hs.db.Exec(updateQuery, formatTime(endTime, hs.backend), durationMs, totalGames, runID); err != nil {
		return fmt.Errorf("failed to update check run: %w", err)
	}
	return nil
}

// RecordGameResult stores the verdict for one requested game name.
func (hs *HistoryStoreImpl) RecordGameResult(runID int64, record schema.GameResultRecord) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, game_name_input, game_name, check_time, emulation_status,
		                video_status, controls_status, overall_status, known_status)
		VALUES (%s)
	`, quoteTableName(gameResultsTable, hs.backend), strings.Join(placeholders(hs.backend, 9), ", "))

	_, err := hs.db.Exec(query,
		runID, record.GameNameInput, record.GameName, formatTime(record.CheckTime, hs.backend),
		record.EmulationStatus, record.VideoStatus, record.ControlsStatus, record.OverallStatus, record.KnownStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to insert game result: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	quotedRuns := quoteTableName(runsTable, hs.backend)

	// Get total runs
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		var lastRaw any
		row := hs.db.QueryRow(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quotedRuns))
		if err := row.Scan(&status.LastRunID, &lastRaw); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		lastRunTime, err := parseTime(lastRaw)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunTime = lastRunTime

		// Get oldest run time
		var oldestRaw any
		row = hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quotedRuns))
		if err := row.Scan(&oldestRaw); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		oldestRunTime, err := parseTime(oldestRaw)
		if err != nil {
			return status, fmt.Errorf("failed to parse oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime
	}

	// Get table sizes
	for _, table := range []string{runsTable, gameResultsTable} {
		var count int64
		if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalGameResults = int(status.TableSizes[gameResultsTable])

	return status, nil
}

// GetAllRuns retrieves all check runs from the store.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.CheckRunRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT run_id, run_uuid, start_time, end_time, run_duration_ms, total_games, config_params FROM %s ORDER BY run_id",
		quoteTableName(runsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query check runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.CheckRunRecord
	for rows.Next() {
		var record schema.CheckRunRecord
		var startRaw, endRaw any
		if err := rows.Scan(&record.RunID, &record.RunUUID, &startRaw, &endRaw, &record.RunDurationMs, &record.TotalGames, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan check run: %w", err)
		}
		if record.StartTime, err = parseTime(startRaw); err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if record.EndTime, err = parseNullTime(endRaw); err != nil {
			return nil, fmt.Errorf("failed to parse end_time: %w", err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating check runs: %w", err)
	}
	return results, nil
}

// GetAllGameResults retrieves all per-game verdicts from the store.
func (hs *HistoryStoreImpl) GetAllGameResults() ([]schema.GameResultRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, game_name_input, game_name, check_time, emulation_status,
    video_status, controls_status, overall_status, known_status
    FROM %s ORDER BY run_id, result_id`, quoteTableName(gameResultsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query game results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.GameResultRecord
	for rows.Next() {
		var record schema.GameResultRecord
		var checkRaw any
		if err := rows.Scan(&record.RunID, &record.GameNameInput, &record.GameName, &checkRaw, &record.EmulationStatus,
			&record.VideoStatus, &record.ControlsStatus, &record.OverallStatus, &record.KnownStatus); err != nil {
			return nil, fmt.Errorf("failed to scan game result: %w", err)
		}
		if record.CheckTime, err = parseTime(checkRaw); err != nil {
			return nil, fmt.Errorf("failed to parse check_time: %w", err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating game results: %w", err)
	}
	return results, nil
}
