package core

import (
	"log/slog"

	"github.com/arcadecab/cabcheck/core/algo"
	"github.com/arcadecab/cabcheck/schema"
)

// AllocateControlConfiguration matches every control set of a game control configuration
// onto the control sets of a panel. Each round, every remaining game set is scored
// against every panel set using the controls still free at the start of the round. The
// best picks are granted first, and a pick is dropped for the round when any control or
// cluster it needs was granted before it. A panel without control sets behaves as one
// empty set so the game sets still get rated.
func AllocateControlConfiguration(panel *schema.CPConfiguration, gameConfig *schema.GameControlConfiguration) schema.ControlConfigurationCompatibility {
	pool := NewPool(panel)

	cpSets := make([]*schema.CPControlSet, len(panel.ControlSets))
	for i := range panel.ControlSets {
		cpSets[i] = &panel.ControlSets[i]
	}
	if len(cpSets) == 0 {
		cpSets = append(cpSets, &schema.CPControlSet{})
	}

	remaining := make([]*schema.GameControlSet, len(gameConfig.ControlSets))
	for i := range gameConfig.ControlSets {
		remaining[i] = &gameConfig.ControlSets[i]
	}

	var rounds []schema.GameControlSetOptimizationRound
	for len(remaining) > 0 {
		round := pool.Clone()

		opts := make([]schema.GameControlSetOptimization, 0, len(remaining))
		for _, gs := range remaining {
			all := make([]schema.ControlSetCompatibility, 0, len(cpSets))
			for _, cs := range cpSets {
				all = append(all, AllocateControlSet(cs, round, gs))
			}
			algo.SortByScoreDesc(all, func(c schema.ControlSetCompatibility) schema.Score { return c.Score })
			opts = append(opts, schema.GameControlSetOptimization{GameControlSet: gs, Best: all[0], All: all})
		}
		algo.SortByScoreDesc(opts, func(o schema.GameControlSetOptimization) schema.Score { return o.Best.Score })

		var allocated []schema.GameControlSetOptimization
		for _, opt := range opts {
			if !stillFree(pool, opt.Best) {
				continue
			}
			for _, c := range opt.Best.ControlComps {
				pool.TakeControl(c.CPControl)
			}
			pool.TakeCluster(opt.Best.ButtonsComp.CPButtonCluster)
			allocated = append(allocated, opt)
			remaining = removeValue(remaining, opt.GameControlSet)
		}

		slog.Debug("control set allocation round",
			"panel", panel.ID, "round", len(rounds)+1, "allocated", len(allocated), "remaining", len(remaining))

		rounds = append(rounds, schema.GameControlSetOptimizationRound{
			AvailableControls:       round.Controls(),
			AvailableButtonClusters: round.Clusters(),
			Allocated:               allocated,
			All:                     opts,
		})
	}

	var setComps, required, optional []schema.ControlSetCompatibility
	for _, r := range rounds {
		for _, opt := range r.Allocated {
			setComps = append(setComps, opt.Best)
			if opt.GameControlSet.IsRequired {
				required = append(required, opt.Best)
			} else {
				optional = append(optional, opt.Best)
			}
		}
	}

	requiredStatuses := make([]schema.ControlsStatus, len(required))
	for i, s := range required {
		requiredStatuses[i] = s.Status
	}
	status := schema.MinStatusOr(requiredStatuses, schema.ControlsUnknown)

	return schema.ControlConfigurationCompatibility{
		GameControlConfig: gameConfig,
		ControlSetComps:   setComps,
		Status:            status,
		Score:             controlConfigScore(status, required, optional),
		Rounds:            rounds,
	}
}

// stillFree reports whether every panel control and the cluster a set pick relies on
// are still free.
func stillFree(pool *Pool, comp schema.ControlSetCompatibility) bool {
	for _, c := range comp.ControlComps {
		if c.CPControl != nil && !pool.HasControl(c.CPControl) {
			return false
		}
	}
	cluster := comp.ButtonsComp.CPButtonCluster
	return cluster == nil || pool.HasCluster(cluster)
}
