package core

import (
	"slices"

	"github.com/arcadecab/cabcheck/core/algo"
	"github.com/arcadecab/cabcheck/schema"
)

// AllocateControlSet matches the controls of a game control set onto the members of a
// panel control set that are still free in avail. It runs greedy rounds: every remaining
// game control picks its best panel control, then picks are granted best first as long
// as the panel control was not granted earlier in the round. avail is only read.
func AllocateControlSet(cpSet *schema.CPControlSet, avail *Pool, gameSet *schema.GameControlSet) schema.ControlSetCompatibility {
	members, cluster := avail.setMembers(cpSet)

	// Only free members on the same screen side as the game set take part
	setAvail := make([]*schema.CPControl, 0, len(members))
	for _, c := range members {
		if avail.HasControl(c) && c.IsOnOppositeScreenSide == gameSet.IsOnOppositeScreenSide {
			setAvail = append(setAvail, c)
		}
	}
	if cluster != nil && (!avail.HasCluster(cluster) || cluster.IsOnOppositeScreenSide != gameSet.IsOnOppositeScreenSide) {
		cluster = nil
	}

	remaining := make([]*schema.GameControl, len(gameSet.Controls))
	for i := range gameSet.Controls {
		remaining[i] = &gameSet.Controls[i]
	}

	var rounds []schema.GameControlOptimizationRound
	for len(remaining) > 0 {
		roundAvail := slices.Clone(setAvail)

		opts := make([]schema.GameControlOptimization, 0, len(remaining))
		for _, gc := range remaining {
			opts = append(opts, bestControlFor(gc, roundAvail))
		}
		algo.SortByScoreDesc(opts, func(o schema.GameControlOptimization) schema.Score { return o.Best.Score })

		var allocated []schema.GameControlOptimization
		for _, opt := range opts {
			if c := opt.Best.CPControl; c != nil {
				i := slices.Index(setAvail, c)
				if i < 0 {
					continue
				}
				setAvail = slices.Delete(setAvail, i, i+1)
			}
			allocated = append(allocated, opt)
			remaining = removeValue(remaining, opt.GameControl)
		}

		rounds = append(rounds, schema.GameControlOptimizationRound{
			AvailableControls: roundAvail,
			Allocated:         allocated,
			All:               opts,
		})
	}

	var controlComps []schema.ControlCompatibility
	for _, r := range rounds {
		for _, opt := range r.Allocated {
			controlComps = append(controlComps, opt.Best)
		}
	}

	buttons := ResolveButtons(cluster, gameSet.ControlPanelButtons)

	status := buttons.Status
	for _, c := range controlComps {
		status = schema.MinStatus(status, c.Status)
	}

	return schema.ControlSetCompatibility{
		GameControlSet: gameSet,
		CPControlSet:   cpSet,
		ControlComps:   controlComps,
		ButtonsComp:    buttons,
		Status:         status,
		Score:          controlSetScore(status, controlComps, buttons),
		Rounds:         rounds,
	}
}

// bestControlFor scores every candidate for a game control. When even the best
// candidate is the wrong kind of control the game control goes without one.
func bestControlFor(gc *schema.GameControl, candidates []*schema.CPControl) schema.GameControlOptimization {
	all := make([]schema.ControlCompatibility, 0, len(candidates))
	for _, c := range candidates {
		all = append(all, ResolveControl(gc, c))
	}
	algo.SortByScoreDesc(all, func(c schema.ControlCompatibility) schema.Score { return c.Score })

	var best schema.ControlCompatibility
	if len(all) == 0 || all[0].ControlStatus <= schema.ControlsUnsupported {
		best = ResolveControl(gc, nil)
	} else {
		best = all[0]
	}
	return schema.GameControlOptimization{GameControl: gc, Best: best, All: all}
}

// removeValue deletes the first occurrence of v.
func removeValue[T comparable](s []T, v T) []T {
	if i := slices.Index(s, v); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}
