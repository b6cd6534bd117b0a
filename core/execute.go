package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arcadecab/cabcheck/core/algo"
	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/internal/gamedb"
	"github.com/arcadecab/cabcheck/internal/modeline"
	"github.com/arcadecab/cabcheck/internal/outwriter"
	"github.com/arcadecab/cabcheck/schema"
)

// ErrNoGames is returned when a check has nothing to rate.
var ErrNoGames = errors.New("no game names given (pass names or use --all)")

// Session is an engine loaded from the configured game database and calculator,
// together with the game overrides that take precedence over the database.
type Session struct {
	Engine    *Engine
	DB        contract.GameDatabase
	Overrides map[string]*schema.Game
}

// LoadSession reads the game database and overrides and builds the modeline calculator.
func LoadSession(cfg *contract.Config, mgr contract.CacheManager) (*Session, error) {
	defs := cfg.ControlDefs
	if defs == nil {
		var err error
		if defs, err = gamedb.LoadControlDefs(cfg.ControlDefsPath); err != nil {
			return nil, err
		}
	}

	db, err := gamedb.Load(cfg.GamesDBPath, defs)
	if err != nil {
		return nil, fmt.Errorf("failed to load game database: %w", err)
	}

	var overrides map[string]*schema.Game
	if cfg.OverridesPath != "" {
		if overrides, err = gamedb.LoadOverrides(cfg.OverridesPath, defs); err != nil {
			return nil, fmt.Errorf("failed to load game overrides: %w", err)
		}
	}

	calc, err := modeline.New(cfg, mgr)
	if err != nil {
		return nil, err
	}

	return &Session{Engine: NewEngine(db, calc), DB: db, Overrides: overrides}, nil
}

// GetCheckResults rates the configured games against every monitor and panel and
// returns them in the configured order.
func GetCheckResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.GameCompatibility, error) {
	session, err := LoadSession(cfg, mgr)
	if err != nil {
		return nil, err
	}

	names := cfg.GameNames
	if cfg.AllGames {
		names = session.DB.Names()
	}
	if len(names) == 0 {
		return nil, ErrNoGames
	}

	results, err := session.Engine.CheckGameBulk(ctx, names, session.Overrides, cfg.Monitors, cfg.Panels)
	if err != nil {
		return nil, err
	}
	return algo.RankGames(results, cfg.Sort), nil
}

// ExecuteCheck runs the check command. It records the run in the history store when
// one is configured, prints the results and then applies the minimum status gate.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()

	results, err := GetCheckResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	recordRun(cfg, mgr, start, results)

	if err := outwriter.NewOutWriter().WriteGames(results, cfg, time.Since(start)); err != nil {
		return err
	}

	if !cfg.GateEnabled {
		return nil
	}
	report := EvaluateThreshold(results, cfg.MinStatus)
	printThresholdReport(report, cfg.UseColors)
	if !report.Passed {
		return fmt.Errorf("%w: %d of %d games below %s", ErrThresholdFailed, len(report.Violations), len(results), report.MinStatus)
	}
	return nil
}

// recordRun stores the run and every verdict. History failures never fail the check.
func recordRun(cfg *contract.Config, mgr contract.CacheManager, start time.Time, results []schema.GameCompatibility) {
	if mgr == nil {
		return
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return
	}

	runID, err := store.BeginRun(start, map[string]any{
		"games":      len(results),
		"all":        cfg.AllGames,
		"sort":       string(cfg.Sort),
		"monitors":   len(cfg.Monitors),
		"panels":     len(cfg.Panels),
		"calculator": cfg.CalculatorCmd,
		"min_status": cfg.MinStatus.String(),
	})
	if err != nil {
		contract.LogWarn("Failed to record check run", err)
		return
	}

	checkTime := time.Now()
	for _, r := range results {
		if err := store.RecordGameResult(runID, schema.NewGameResultRecord(runID, checkTime, r)); err != nil {
			contract.LogWarn(fmt.Sprintf("Failed to record result for %s", r.GameNameInput), err)
		}
	}

	if err := store.EndRun(runID, time.Now(), len(results)); err != nil {
		contract.LogWarn("Failed to finish check run", err)
	}
}

// GetControlsResult rates one game on the configured panels, or only on the panel
// named by cfg.PanelFilter. Monitors are not consulted.
func GetControlsResult(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.GameCompatibility, error) {
	if len(cfg.GameNames) != 1 {
		return schema.GameCompatibility{}, fmt.Errorf("expected exactly one game name (received %d)", len(cfg.GameNames))
	}

	panels := cfg.Panels
	if cfg.PanelFilter != "" {
		p, ok := cfg.FindPanel(cfg.PanelFilter)
		if !ok {
			return schema.GameCompatibility{}, fmt.Errorf("no panel with ID or name %q", cfg.PanelFilter)
		}
		panels = []schema.CPConfiguration{*p}
	}
	if len(panels) == 0 {
		return schema.GameCompatibility{}, errors.New("no control panels configured")
	}

	session, err := LoadSession(cfg, mgr)
	if err != nil {
		return schema.GameCompatibility{}, err
	}
	return session.Engine.CheckGame(ctx, cfg.GameNames[0], session.Overrides, nil, panels)
}

// ExecuteControls runs the controls command and prints how one game maps onto the panels.
func ExecuteControls(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, err := GetControlsResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if err := outwriter.NewOutWriter().WriteControls(result, cfg); err != nil {
		return err
	}
	if result.Game == nil {
		return fmt.Errorf("game %q not found", result.GameNameInput)
	}
	return nil
}

// ExecutePanels runs the panels command and prints the configured hardware.
func ExecutePanels(_ context.Context, cfg *contract.Config) error {
	return outwriter.NewOutWriter().WriteHardware(cfg)
}
