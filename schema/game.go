package schema

// DriverStatus is the emulator's own rating of a machine driver.
type DriverStatus string

// Driver statuses as reported by the emulator.
const (
	DriverGood        DriverStatus = "good"
	DriverImperfect   DriverStatus = "imperfect"
	DriverPreliminary DriverStatus = "preliminary"
)

// ValidDriverStatuses lists the recognized driver statuses.
var ValidDriverStatuses = map[DriverStatus]struct{}{
	DriverGood:        {},
	DriverImperfect:   {},
	DriverPreliminary: {},
}

// MachineDisplay is one screen of a machine.
type MachineDisplay struct {
	Tag     string  `json:"tag,omitempty"`
	Type    string  `json:"type"` // raster, vector, lcd
	Rotate  int     `json:"rotate"`
	FlipX   bool    `json:"flipx,omitempty"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Refresh float64 `json:"refresh"`
}

// MachineDriver holds the driver ratings of a machine.
type MachineDriver struct {
	Status    DriverStatus `json:"status"`
	Emulation DriverStatus `json:"emulation,omitempty"`
	Color     DriverStatus `json:"color,omitempty"`
	Sound     DriverStatus `json:"sound,omitempty"`
	Graphic   DriverStatus `json:"graphic,omitempty"`
	SaveState string       `json:"savestate,omitempty"`
}

// Machine is the emulator's description of a game's hardware.
type Machine struct {
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	Year         string           `json:"year,omitempty"`
	Manufacturer string           `json:"manufacturer,omitempty"`
	CloneOf      string           `json:"cloneof,omitempty"`
	Displays     []MachineDisplay `json:"displays,omitempty"`
	Driver       *MachineDriver   `json:"driver,omitempty"`
}

// GameButton is a button a game expects the player to have.
type GameButton struct {
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
}

// GameControl is a control a game expects, with the control types it tolerates instead.
type GameControl struct {
	Type       ControlType       `json:"type"`
	Descriptor string            `json:"descriptor,omitempty"`
	Buttons    []GameButton      `json:"buttons,omitempty"`
	Fallbacks  []ControlFallback `json:"fallbacks,omitempty"`
}

// Fallback returns the first fallback targeting the given control type.
func (c *GameControl) Fallback(t ControlType) (ControlFallback, bool) {
	return ControlDef{Fallbacks: c.Fallbacks}.Fallback(t)
}

// GameControlSet is the group of controls one player uses.
type GameControlSet struct {
	SupportedPlayerNums    []int         `json:"supported_player_nums,omitempty"`
	IsRequired             bool          `json:"is_required"`
	IsOnOppositeScreenSide bool          `json:"is_on_opposite_screen_side"`
	Controls               []GameControl `json:"controls"`
	ControlPanelButtons    []GameButton  `json:"control_panel_buttons,omitempty"`
}

// GameControlConfiguration is one way a game can be played, for one cabinet type.
type GameControlConfiguration struct {
	Name              string           `json:"name,omitempty"`
	TargetCabinetType CabinetType      `json:"target_cabinet_type"`
	ControlSets       []GameControlSet `json:"control_sets"`
	MenuButtons       []GameButton     `json:"menu_buttons,omitempty"`
}

// ControlInfo lists the control configurations of a game.
type ControlInfo struct {
	ControlConfigs []GameControlConfiguration `json:"control_configs"`
}

// Game is an entry of the game database.
type Game struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Machine     *Machine     `json:"machine,omitempty"`
	ControlInfo *ControlInfo `json:"control_info,omitempty"`
}

// Title returns the description when present, otherwise the short name.
func (g *Game) Title() string {
	if g == nil {
		return ""
	}
	if g.Description != "" {
		return g.Description
	}
	return g.Name
}
