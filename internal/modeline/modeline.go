// Package modeline provides the modeline calculators the compatibility engine rates video with.
package modeline

import (
	"context"
	"strings"

	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/schema"
)

// New picks the calculator described by the config: an external command, a precomputed
// table, or Unavailable when neither is set. With a modeline store the calculator is
// wrapped in a cache.
func New(cfg *contract.Config, mgr contract.CacheManager) (contract.ModelineCalculator, error) {
	var calc contract.ModelineCalculator
	switch {
	case cfg.CalculatorCmd != "":
		fields := strings.Fields(cfg.CalculatorCmd)
		calc = NewExecCalculator(fields[0], fields[1:], cfg.CalculatorTimeout)
	case cfg.ModelineTablePath != "":
		table, err := LoadTable(cfg.ModelineTablePath)
		if err != nil {
			return nil, err
		}
		// A table is already a lookup, caching it buys nothing
		return table, nil
	default:
		return Unavailable{}, nil
	}

	if mgr != nil {
		if store := mgr.GetModelineStore(); store != nil {
			calc = NewCachedCalculator(calc, store, cfg.CalculatorCmd)
		}
	}
	return calc, nil
}

// Unavailable answers every game with a failed calculation, so video rates UNKNOWN.
type Unavailable struct{}

var _ contract.ModelineCalculator = Unavailable{} // Compile-time check

// CalcModelineBulk implements the ModelineCalculator interface.
func (Unavailable) CalcModelineBulk(_ context.Context, _ schema.ModelineConfig, games []*schema.Game) (map[string]schema.ModelineCalculation, error) {
	return failAll(games, "no modeline calculator configured"), nil
}

// failAll answers every game with the same failure.
func failAll(games []*schema.Game, reason string) map[string]schema.ModelineCalculation {
	out := make(map[string]schema.ModelineCalculation, len(games))
	for _, g := range games {
		out[g.Name] = schema.ModelineCalculation{Success: false, Error: reason}
	}
	return out
}
