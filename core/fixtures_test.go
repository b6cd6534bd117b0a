package core

import "github.com/arcadecab/cabcheck/schema"

func buttons(n int) []schema.GameButton {
	out := make([]schema.GameButton, n)
	for i := range out {
		out[i] = schema.GameButton{Name: string(rune('A' + i))}
	}
	return out
}

func joystick(id string, t schema.ControlType, numButtons int) schema.CPControl {
	return schema.CPControl{ID: id, Name: id, Type: t, NumButtons: numButtons}
}

// twoPlayerPanel has two 8-way sticks with a six button cluster each.
func twoPlayerPanel() *schema.CPConfiguration {
	return &schema.CPConfiguration{
		ID:   "panel-2p",
		Name: "Two player",
		Controls: []schema.CPControl{
			joystick("p1-stick", schema.Joy8Way, 0),
			joystick("p2-stick", schema.Joy8Way, 0),
		},
		ButtonClusters: []schema.CPButtonCluster{
			{ID: "p1-buttons", Name: "P1 buttons", NumButtons: 6},
			{ID: "p2-buttons", Name: "P2 buttons", NumButtons: 6},
		},
		ControlSets: []schema.CPControlSet{
			{ControlIDs: []string{"p1-stick"}, ButtonClusterID: "p1-buttons"},
			{ControlIDs: []string{"p2-stick"}, ButtonClusterID: "p2-buttons"},
		},
	}
}

func joyControl(t schema.ControlType, fallbacks ...schema.ControlFallback) schema.GameControl {
	return schema.GameControl{Type: t, Fallbacks: fallbacks}
}

func playerSet(required bool, numButtons int, controls ...schema.GameControl) schema.GameControlSet {
	return schema.GameControlSet{
		IsRequired:          required,
		Controls:            controls,
		ControlPanelButtons: buttons(numButtons),
	}
}

func gameWith(name string, driver schema.DriverStatus, configs ...schema.GameControlConfiguration) *schema.Game {
	g := &schema.Game{
		Name:        name,
		Description: name,
		Machine:     &schema.Machine{Name: name},
		ControlInfo: &schema.ControlInfo{ControlConfigs: configs},
	}
	if driver != "" {
		g.Machine.Driver = &schema.MachineDriver{Status: driver}
	}
	return g
}

func fightingGame(name string) *schema.Game {
	return gameWith(name, schema.DriverGood, schema.GameControlConfiguration{
		Name:              "default",
		TargetCabinetType: schema.UprightCabinet,
		ControlSets: []schema.GameControlSet{
			playerSet(true, 6, joyControl(schema.Joy8Way)),
			playerSet(true, 6, joyControl(schema.Joy8Way)),
		},
	})
}
