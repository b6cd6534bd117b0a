// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/arcadecab/cabcheck/schema"
)

// GameDatabase is the read-only game catalog the compatibility engine resolves names against.
type GameDatabase interface {
	// GetGameByName returns the game whose short name matches exactly.
	GetGameByName(name string) (*schema.Game, bool)

	// Names returns every game short name in catalog order.
	Names() []string
}

// ModelineCalculator fits the video modes of many games onto one monitor in a single call.
// This allows the engine to be tested without the external calculator binary.
type ModelineCalculator interface {
	// CalcModelineBulk returns one calculation per game name. Games the calculator has
	// nothing to say about may be missing from the map.
	CalcModelineBulk(ctx context.Context, cfg schema.ModelineConfig, games []*schema.Game) (map[string]schema.ModelineCalculation, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetModelineStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking check runs and their per-game verdicts.
type HistoryStore interface {
	// BeginRun creates a new check run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the check run with completion data
	EndRun(runID int64, endTime time.Time, totalGames int) error

	// RecordGameResult stores the verdict for one requested game name
	RecordGameResult(runID int64, record schema.GameResultRecord) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded check run
	GetAllRuns() ([]schema.CheckRunRecord, error)

	// GetAllGameResults returns every recorded game verdict
	GetAllGameResults() ([]schema.GameResultRecord, error)

	// Close closes the underlying connection
	Close() error
}
