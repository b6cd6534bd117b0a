package core

import (
	"slices"

	"github.com/arcadecab/cabcheck/schema"
)

// CheckControls rates a panel against every control configuration of a game. The
// configurations are ordered by status with UNKNOWN counted as UNSUPPORTED, then
// upright cabinets first, then by score. The best configuration decides the status.
// A game without control information rates UNKNOWN.
func CheckControls(game *schema.Game, panel *schema.CPConfiguration) schema.ControlsCompatibility {
	comp := schema.ControlsCompatibility{
		Game:     game,
		CPConfig: panel,
		Status:   schema.ControlsUnknown,
	}
	if game == nil || game.ControlInfo == nil || panel == nil {
		return comp
	}

	configs := game.ControlInfo.ControlConfigs
	comp.All = make([]schema.ControlConfigurationCompatibility, 0, len(configs))
	for i := range configs {
		comp.All = append(comp.All, AllocateControlConfiguration(panel, &configs[i]))
	}

	slices.SortStableFunc(comp.All, compareConfigComps)

	if len(comp.All) > 0 {
		comp.Best = &comp.All[0]
		comp.Status = comp.Best.Status
	}
	return comp
}

// compareConfigComps orders configuration results best first.
func compareConfigComps(a, b schema.ControlConfigurationCompatibility) int {
	if c := schema.CompareStatus(floorUnknown(b.Status), floorUnknown(a.Status)); c != 0 {
		return c
	}
	aUpright := a.GameControlConfig.TargetCabinetType == schema.UprightCabinet
	bUpright := b.GameControlConfig.TargetCabinetType == schema.UprightCabinet
	switch {
	case aUpright && !bUpright:
		return -1
	case bUpright && !aUpright:
		return 1
	}
	return schema.CompareScores(b.Score, a.Score)
}

// floorUnknown ranks UNKNOWN like UNSUPPORTED.
func floorUnknown(s schema.ControlsStatus) schema.ControlsStatus {
	return max(s, schema.ControlsUnsupported)
}

// CheckEmulation maps the driver status of a game to an emulation status.
func CheckEmulation(game *schema.Game) schema.EmulationCompatibility {
	comp := schema.EmulationCompatibility{Game: game, Status: schema.EmulationUnknown}
	if game == nil || game.Machine == nil || game.Machine.Driver == nil {
		return comp
	}
	switch game.Machine.Driver.Status {
	case schema.DriverGood:
		comp.Status = schema.EmulationGood
	case schema.DriverImperfect:
		comp.Status = schema.EmulationImperfect
	case schema.DriverPreliminary:
		comp.Status = schema.EmulationPreliminary
	}
	return comp
}
