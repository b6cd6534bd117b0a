// Package core has core logic for compatibility checks, control allocation and status gating.
package core

import (
	"context"
	"log/slog"

	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/schema"
)

// Engine rates games against a cabinet: its monitors, its control panels and the
// emulator itself. An Engine holds no mutable state and is safe for concurrent use
// as long as its collaborators are.
type Engine struct {
	db         contract.GameDatabase
	calculator contract.ModelineCalculator
}

// NewEngine creates an engine backed by the given game catalog and modeline calculator.
func NewEngine(db contract.GameDatabase, calculator contract.ModelineCalculator) *Engine {
	return &Engine{db: db, calculator: calculator}
}

// ResolveGame looks up a game name, trimmed and lowercased, in the overrides first
// and then in the catalog. It returns nil when neither knows the game.
func (e *Engine) ResolveGame(name string, overrides map[string]*schema.Game) *schema.Game {
	key := contract.NormalizeGameName(name)
	if g, ok := overrides[key]; ok && g != nil {
		return g
	}
	if e.db == nil {
		return nil
	}
	if g, ok := e.db.GetGameByName(key); ok {
		return g
	}
	return nil
}

// CheckGameBulk rates every requested name and returns one record per input, in input
// order. Names resolving to the same game share the work: the calculator is called once
// per monitor for the distinct games only. Any calculator failure fails the whole call.
func (e *Engine) CheckGameBulk(
	ctx context.Context,
	names []string,
	overrides map[string]*schema.Game,
	monitors []schema.MonitorConfiguration,
	panels []schema.CPConfiguration,
) ([]schema.GameCompatibility, error) {
	resolved := make([]*schema.Game, len(names))
	slot := make([]int, len(names)) // input index -> distinct game index
	var distinct []*schema.Game
	seen := make(map[*schema.Game]int)
	for i, name := range names {
		g := e.ResolveGame(name, overrides)
		resolved[i] = g
		j, ok := seen[g]
		if !ok {
			j = len(distinct)
			seen[g] = j
			distinct = append(distinct, g)
		}
		slot[i] = j
	}
	slog.Debug("resolved game names", "inputs", len(names), "distinct", len(distinct))

	// videoByMonitor[m][j] is the video verdict of distinct game j on monitor m
	videoByMonitor := make([][]schema.VideoCompatibility, len(monitors))
	for m := range monitors {
		comps, err := e.CheckVideoBulk(ctx, distinct, &monitors[m])
		if err != nil {
			return nil, err
		}
		videoByMonitor[m] = comps
	}

	type verdict struct {
		emu      schema.EmulationCompatibility
		controls []schema.ControlsCompatibility
	}
	verdicts := make([]verdict, len(distinct))
	for j, g := range distinct {
		v := verdict{emu: CheckEmulation(g), controls: make([]schema.ControlsCompatibility, len(panels))}
		for p := range panels {
			v.controls[p] = CheckControls(g, &panels[p])
		}
		verdicts[j] = v
	}

	out := make([]schema.GameCompatibility, len(names))
	for i, name := range names {
		j := slot[i]
		videoComps := make([]schema.VideoCompatibility, len(monitors))
		for m := range monitors {
			videoComps[m] = videoByMonitor[m][j]
		}
		out[i] = summarize(name, resolved[i], videoComps, verdicts[j].emu, verdicts[j].controls)
	}
	return out, nil
}

// CheckGame rates a single game name.
func (e *Engine) CheckGame(
	ctx context.Context,
	name string,
	overrides map[string]*schema.Game,
	monitors []schema.MonitorConfiguration,
	panels []schema.CPConfiguration,
) (schema.GameCompatibility, error) {
	results, err := e.CheckGameBulk(ctx, []string{name}, overrides, monitors, panels)
	if err != nil {
		return schema.GameCompatibility{}, err
	}
	return results[0], nil
}

// summarize combines the per-dimension verdicts. The best monitor and the best panel
// count; the overall status is the worst dimension, and the known status ignores
// dimensions that could not be rated.
func summarize(
	name string,
	game *schema.Game,
	videoComps []schema.VideoCompatibility,
	emu schema.EmulationCompatibility,
	controls []schema.ControlsCompatibility,
) schema.GameCompatibility {
	bestVideo := schema.VideoUnknown
	for i, v := range videoComps {
		if i == 0 || v.Status > bestVideo {
			bestVideo = v.Status
		}
	}
	bestControls := schema.ControlsUnknown
	for i, c := range controls {
		if i == 0 || c.Status > bestControls {
			bestControls = c.Status
		}
	}

	statuses := []schema.OverallStatus{
		emu.Status.ToOverall(),
		bestControls.ToOverall(),
		bestVideo.ToOverall(),
	}
	var known []schema.OverallStatus
	for _, s := range statuses {
		if schema.IsKnown(s) {
			known = append(known, s)
		}
	}

	return schema.GameCompatibility{
		GameNameInput:      name,
		Game:               game,
		VideoComps:         videoComps,
		EmuComp:            emu,
		ControlsComps:      controls,
		BestVideoStatus:    bestVideo,
		BestControlsStatus: bestControls,
		OverallStatus:      schema.MinStatus(statuses[0], statuses[1:]...),
		KnownOverallStatus: schema.MinStatusOr(known, schema.OverallUnknown),
	}
}
