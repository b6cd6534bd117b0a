package iocache

import (
	"errors"
	"fmt"

	"github.com/arcadecab/cabcheck/internal/parquet"
)

// ExecuteHistoryExport exports the check history to Parquet files.
// It writes <outputFile>.runs.parquet and <outputFile>.game_results.parquet.
func ExecuteHistoryExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("check history is not enabled")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no check history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total check runs: %d\n", status.TotalRuns)
	fmt.Printf("Total game results: %d\n", status.TotalGameResults)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve check runs: %w", err)
	}
	results, err := store.GetAllGameResults()
	if err != nil {
		return fmt.Errorf("failed to retrieve game results: %w", err)
	}

	parquetRuns := parquet.ConvertCheckRunRecords(runs)
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteCheckRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write check runs: %w", err)
	}
	fmt.Printf("Exported %d check runs to: %s\n", len(parquetRuns), runsFile)

	parquetResults := parquet.ConvertGameResultRecords(results)
	resultsFile := outputFile + ".game_results.parquet"
	if err := parquet.WriteGameResultsParquet(parquetResults, resultsFile); err != nil {
		return fmt.Errorf("failed to write game results: %w", err)
	}
	fmt.Printf("Exported %d game results to: %s\n", len(parquetResults), resultsFile)

	fmt.Println("\nExport complete! The Parquet files can be read with DuckDB, Pandas (via pyarrow) or Apache Spark.")
	return nil
}
