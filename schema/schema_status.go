package schema

import "time"

// CacheStatus represents the status of the modeline cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus represents the status of the check history store.
type HistoryStatus struct {
	Backend          string           `json:"backend"`
	Connected        bool             `json:"connected"`
	TotalRuns        int              `json:"total_runs"`
	LastRunID        int64            `json:"last_run_id"`
	LastRunTime      time.Time        `json:"last_run_time"`
	OldestRunTime    time.Time        `json:"oldest_run_time"`
	TotalGameResults int              `json:"total_game_results"`
	TableSizes       map[string]int64 `json:"table_sizes"`
}

// CheckRunRecord represents a row from the cabcheck_runs table.
type CheckRunRecord struct {
	RunID         int64
	RunUUID       string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalGames    int32
	ConfigParams  *string
}

// GameResultRecord represents a row from the cabcheck_game_results table.
type GameResultRecord struct {
	RunID           int64
	GameNameInput   string
	GameName        *string
	CheckTime       time.Time
	EmulationStatus string
	VideoStatus     string
	ControlsStatus  string
	OverallStatus   string
	KnownStatus     string
}

// NewGameResultRecord flattens a compatibility verdict into a history row.
func NewGameResultRecord(runID int64, checkTime time.Time, c GameCompatibility) GameResultRecord {
	rec := GameResultRecord{
		RunID:           runID,
		GameNameInput:   c.GameNameInput,
		CheckTime:       checkTime,
		EmulationStatus: c.EmuComp.Status.String(),
		VideoStatus:     c.BestVideoStatus.String(),
		ControlsStatus:  c.BestControlsStatus.String(),
		OverallStatus:   c.OverallStatus.String(),
		KnownStatus:     c.KnownOverallStatus.String(),
	}
	if c.Game != nil {
		name := c.Game.Name
		rec.GameName = &name
	}
	return rec
}
