// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteGames prints check results using the configured output format.
func (ow *OutWriter) WriteGames(results []schema.GameCompatibility, cfg *contract.Config, duration time.Duration) error {
	return WriteGameResults(results, cfg, duration)
}

// WriteControls prints the controls allocation of one game using the configured output format.
func (ow *OutWriter) WriteControls(result schema.GameCompatibility, cfg *contract.Config) error {
	return WriteControlsExplain(result, cfg)
}

// WriteHardware prints the configured monitors and panels using the configured output format.
func (ow *OutWriter) WriteHardware(cfg *contract.Config) error {
	return WriteHardware(cfg)
}
