package outwriter

import (
	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/schema"
)

var (
	testMonitor = schema.MonitorConfiguration{
		ID:   "crt",
		Name: "15kHz CRT",
		ModelineConfig: schema.ModelineConfig{
			Preset:      "arcade_15",
			Orientation: schema.Horizontal,
		},
	}
	testPanel = schema.CPConfiguration{
		ID:   "panel-1p",
		Name: "One player",
		Controls: []schema.CPControl{
			{ID: "p1-stick", Name: "P1 stick", Type: "joy-8way"},
		},
		ButtonClusters: []schema.CPButtonCluster{
			{ID: "p1-buttons", Name: "P1 buttons", NumButtons: 6},
		},
		ControlSets: []schema.CPControlSet{
			{ControlIDs: []string{"p1-stick"}, ButtonClusterID: "p1-buttons"},
		},
	}
)

func testConfig() *contract.Config {
	return &contract.Config{
		Output:       schema.TextOut,
		Width:        120,
		CacheBackend: schema.NoneBackend,
		Monitors:     []schema.MonitorConfiguration{testMonitor},
		Panels:       []schema.CPConfiguration{testPanel},
	}
}

// testResults returns one found game and one unknown name.
func testResults() []schema.GameCompatibility {
	game := &schema.Game{
		Name:        "sf2",
		Description: "Street Fighter II: The World Warrior",
		ControlInfo: &schema.ControlInfo{
			ControlConfigs: []schema.GameControlConfiguration{
				{
					Name:              "default",
					TargetCabinetType: schema.UprightCabinet,
					ControlSets: []schema.GameControlSet{
						{
							SupportedPlayerNums: []int{1},
							IsRequired:          true,
							Controls:            []schema.GameControl{{Type: "joy-8way"}},
							ControlPanelButtons: make([]schema.GameButton, 6),
						},
					},
				},
			},
		},
	}
	gameConfig := &game.ControlInfo.ControlConfigs[0]
	gameSet := &gameConfig.ControlSets[0]
	configComp := schema.ControlConfigurationCompatibility{
		GameControlConfig: gameConfig,
		ControlSetComps: []schema.ControlSetCompatibility{
			{
				GameControlSet: gameSet,
				CPControlSet:   &testPanel.ControlSets[0],
				ControlComps: []schema.ControlCompatibility{
					{
						GameControl:   &gameSet.Controls[0],
						CPControl:     &testPanel.Controls[0],
						ControlStatus: schema.ControlsNative,
						ButtonsStatus: schema.ControlsNative,
						Status:        schema.ControlsNative,
					},
				},
				ButtonsComp: schema.ButtonsCompatibility{
					GameButtons:     gameSet.ControlPanelButtons,
					CPButtonCluster: &testPanel.ButtonClusters[0],
					Status:          schema.ControlsNative,
				},
				Status: schema.ControlsNative,
			},
		},
		Status: schema.ControlsNative,
		Rounds: []schema.GameControlSetOptimizationRound{{}},
	}
	controls := schema.ControlsCompatibility{
		Game:     game,
		CPConfig: &testPanel,
		All:      []schema.ControlConfigurationCompatibility{configComp},
		Status:   schema.ControlsNative,
	}
	controls.Best = &controls.All[0]

	found := schema.GameCompatibility{
		GameNameInput: "SF2",
		Game:          game,
		VideoComps: []schema.VideoCompatibility{
			{
				Game:          game,
				MonitorConfig: &testMonitor,
				ModelineCalc: &schema.ModelineCalculation{
					Success: true,
					Result:  &schema.ModelineResult{InRange: true, XScale: 1, YScale: 1, Modeline: "384x224@59.64"},
				},
				Status: schema.VideoNative,
			},
		},
		EmuComp:            schema.EmulationCompatibility{Game: game, Status: schema.EmulationGood},
		ControlsComps:      []schema.ControlsCompatibility{controls},
		BestVideoStatus:    schema.VideoNative,
		BestControlsStatus: schema.ControlsNative,
		OverallStatus:      schema.OverallNative,
		KnownOverallStatus: schema.OverallNative,
	}
	missing := schema.GameCompatibility{
		GameNameInput:      "nosuchgame",
		VideoComps:         []schema.VideoCompatibility{{MonitorConfig: &testMonitor, Status: schema.VideoUnknown}},
		EmuComp:            schema.EmulationCompatibility{Status: schema.EmulationUnknown},
		ControlsComps:      []schema.ControlsCompatibility{{CPConfig: &testPanel, Status: schema.ControlsUnknown}},
		BestVideoStatus:    schema.VideoUnknown,
		BestControlsStatus: schema.ControlsUnknown,
		OverallStatus:      schema.OverallUnknown,
		KnownOverallStatus: schema.OverallUnknown,
	}
	return []schema.GameCompatibility{found, missing}
}
