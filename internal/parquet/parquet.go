// Package parquet provides data structures and functions for exporting cabcheck
// verdicts to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/arcadecab/cabcheck/schema"
	"github.com/parquet-go/parquet-go"
)

// CheckRun represents a single check run with metadata.
// This struct maps to the cabcheck_runs database table.
type CheckRun struct {
	// RunID is the unique identifier for this check run
	RunID int64 `parquet:"run_id,snappy"`

	// RunUUID is the globally unique identifier of the run
	RunUUID string `parquet:"run_uuid,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalGames is the number of game names checked in this run
	TotalGames int32 `parquet:"total_games,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// GameResult is the verdict for one requested game name.
// This struct maps to the cabcheck_game_results database table.
type GameResult struct {
	// RunID references the parent check run, 0 for results written outside a run
	RunID int64 `parquet:"run_id,snappy"`

	// GameNameInput is the name as requested
	GameNameInput string `parquet:"game_name_input,snappy"`

	// GameName is the resolved short name (nullable when the game is unknown)
	GameName *string `parquet:"game_name,optional,snappy"`

	// CheckTime is when the game was checked
	CheckTime time.Time `parquet:"check_time,snappy"`

	EmulationStatus string `parquet:"emulation_status,snappy"`
	VideoStatus     string `parquet:"video_status,snappy"`
	ControlsStatus  string `parquet:"controls_status,snappy"`
	OverallStatus   string `parquet:"overall_status,snappy"`
	KnownStatus     string `parquet:"known_status,snappy"`
}

// writeParquet writes rows to a new Parquet file. The schema is derived from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

// WriteCheckRunsParquet writes a slice of CheckRun structs to a Parquet file.
func WriteCheckRunsParquet(data []CheckRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteGameResultsParquet writes a slice of GameResult structs to a Parquet file.
func WriteGameResultsParquet(data []GameResult, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertCheckRunRecords converts schema.CheckRunRecord to CheckRun for Parquet export.
func ConvertCheckRunRecords(records []schema.CheckRunRecord) []CheckRun {
	result := make([]CheckRun, len(records))
	for i, record := range records {
		result[i] = CheckRun{
			RunID:         record.RunID,
			RunUUID:       record.RunUUID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalGames:    record.TotalGames,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertGameResultRecords converts schema.GameResultRecord to GameResult for Parquet export.
func ConvertGameResultRecords(records []schema.GameResultRecord) []GameResult {
	result := make([]GameResult, len(records))
	for i, record := range records {
		result[i] = GameResult{
			RunID:           record.RunID,
			GameNameInput:   record.GameNameInput,
			GameName:        record.GameName,
			CheckTime:       record.CheckTime,
			EmulationStatus: record.EmulationStatus,
			VideoStatus:     record.VideoStatus,
			ControlsStatus:  record.ControlsStatus,
			OverallStatus:   record.OverallStatus,
			KnownStatus:     record.KnownStatus,
		}
	}
	return result
}

// ConvertGameCompatibilities flattens check results that were not recorded in a run.
func ConvertGameCompatibilities(results []schema.GameCompatibility, checkTime time.Time) []GameResult {
	records := make([]schema.GameResultRecord, len(results))
	for i, r := range results {
		records[i] = schema.NewGameResultRecord(0, checkTime, r)
	}
	return ConvertGameResultRecords(records)
}
