package schema

// ButtonsCompatibility rates a button cluster against the buttons a game control set needs.
type ButtonsCompatibility struct {
	GameButtons     []GameButton     `json:"game_buttons,omitempty"`
	CPButtonCluster *CPButtonCluster `json:"cp_button_cluster,omitempty"`
	Status          ControlsStatus   `json:"status"`
	Score           Score            `json:"score"`
}

// ControlCompatibility rates one panel control, or no control at all, against a game control.
type ControlCompatibility struct {
	GameControl   *GameControl   `json:"game_control"`
	CPControl     *CPControl     `json:"cp_control,omitempty"`
	ControlStatus ControlsStatus `json:"control_status"`
	ButtonsStatus ControlsStatus `json:"buttons_status"`
	Status        ControlsStatus `json:"status"`
	Score         Score          `json:"score"`
}

// GameControlOptimization is the best panel control found for a game control in one round,
// along with every option that was scored.
type GameControlOptimization struct {
	GameControl *GameControl           `json:"game_control"`
	Best        ControlCompatibility   `json:"best"`
	All         []ControlCompatibility `json:"all,omitempty"`
}

// GameControlOptimizationRound is the audit trail of one control allocation round.
type GameControlOptimizationRound struct {
	AvailableControls []*CPControl              `json:"available_controls"`
	Allocated         []GameControlOptimization `json:"allocated"`
	All               []GameControlOptimization `json:"all"`
}

// ControlSetCompatibility rates a panel control set against a game control set.
type ControlSetCompatibility struct {
	GameControlSet *GameControlSet                `json:"game_control_set"`
	CPControlSet   *CPControlSet                  `json:"cp_control_set"`
	ControlComps   []ControlCompatibility         `json:"control_comps"`
	ButtonsComp    ButtonsCompatibility           `json:"buttons_comp"`
	Status         ControlsStatus                 `json:"status"`
	Score          Score                          `json:"score"`
	Rounds         []GameControlOptimizationRound `json:"rounds,omitempty"`
}

// GameControlSetOptimization is the best panel control set found for a game control set
// in one round, along with every option that was scored.
type GameControlSetOptimization struct {
	GameControlSet *GameControlSet           `json:"game_control_set"`
	Best           ControlSetCompatibility   `json:"best"`
	All            []ControlSetCompatibility `json:"all,omitempty"`
}

// GameControlSetOptimizationRound is the audit trail of one control set allocation round.
type GameControlSetOptimizationRound struct {
	AvailableControls       []*CPControl                 `json:"available_controls"`
	AvailableButtonClusters []*CPButtonCluster           `json:"available_button_clusters"`
	Allocated               []GameControlSetOptimization `json:"allocated"`
	All                     []GameControlSetOptimization `json:"all"`
}

// ControlConfigurationCompatibility rates a whole panel against one game control configuration.
type ControlConfigurationCompatibility struct {
	GameControlConfig *GameControlConfiguration         `json:"game_control_config"`
	ControlSetComps   []ControlSetCompatibility         `json:"control_set_comps"`
	Status            ControlsStatus                    `json:"status"`
	Score             Score                             `json:"score"`
	Rounds            []GameControlSetOptimizationRound `json:"rounds,omitempty"`
}

// ControlsCompatibility rates a panel against every control configuration of a game.
// All is ordered best first and Best points at its first element.
type ControlsCompatibility struct {
	Game     *Game                               `json:"-"`
	CPConfig *CPConfiguration                    `json:"-"`
	Best     *ControlConfigurationCompatibility  `json:"best,omitempty"`
	All      []ControlConfigurationCompatibility `json:"all"`
	Status   ControlsStatus                      `json:"status"`
}

// VideoCompatibility rates a monitor against a game.
type VideoCompatibility struct {
	Game          *Game                 `json:"-"`
	MonitorConfig *MonitorConfiguration `json:"-"`
	ModelineCalc  *ModelineCalculation  `json:"modeline_calc,omitempty"`
	Status        VideoStatus           `json:"status"`
}

// EmulationCompatibility rates how well the emulator runs a game.
type EmulationCompatibility struct {
	Game   *Game           `json:"-"`
	Status EmulationStatus `json:"status"`
}

// GameCompatibility is the verdict for one requested game name.
type GameCompatibility struct {
	GameNameInput      string                  `json:"game_name_input"`
	Game               *Game                   `json:"game,omitempty"`
	VideoComps         []VideoCompatibility    `json:"video_comps"`
	EmuComp            EmulationCompatibility  `json:"emu_comp"`
	ControlsComps      []ControlsCompatibility `json:"controls_comps"`
	BestVideoStatus    VideoStatus             `json:"best_video_status"`
	BestControlsStatus ControlsStatus          `json:"best_controls_status"`
	OverallStatus      OverallStatus           `json:"overall_status"`
	KnownOverallStatus OverallStatus           `json:"known_overall_status"`
}
