package schema

import (
	"fmt"
	"strings"
)

// Orientation is the physical rotation of a monitor.
type Orientation string

// Monitor orientations.
const (
	Horizontal   Orientation = "horizontal"
	Vertical     Orientation = "vertical"
	ThreeQuarter Orientation = "3/4"
)

// CustomPreset is the monitor preset that requires explicit ranges.
const CustomPreset = "custom"

// ParseOrientation parses an orientation name. Unknown values are an error.
func ParseOrientation(s string) (Orientation, error) {
	switch o := Orientation(strings.ToLower(strings.TrimSpace(s))); o {
	case Horizontal, Vertical, ThreeQuarter:
		return o, nil
	case "":
		return Horizontal, nil
	default:
		return "", fmt.Errorf("invalid orientation: %q (want horizontal, vertical or 3/4)", s)
	}
}

// ModelineConfig carries the parameters handed to the modeline calculator.
type ModelineConfig struct {
	Preset          string      `json:"preset"`
	Orientation     Orientation `json:"orientation"`
	Ranges          []string    `json:"ranges,omitempty"` // only for the custom preset
	AllowInterlaced bool        `json:"allow_interlaced"`
	AllowDoublescan bool        `json:"allow_doublescan"`
}

// Key returns a stable textual identity of the config, used in cache keys.
func (c ModelineConfig) Key() string {
	return fmt.Sprintf("%s|%s|%s|%t|%t",
		c.Preset, c.Orientation, strings.Join(c.Ranges, ";"), c.AllowInterlaced, c.AllowDoublescan)
}

// MonitorConfiguration is a monitor of the user's cabinet.
type MonitorConfiguration struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	ModelineConfig ModelineConfig `json:"modeline_config"`
}

// Label returns the display name of the monitor, falling back to its ID.
func (m *MonitorConfiguration) Label() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// ModelineResult is the outcome of fitting a game's video mode onto a monitor.
type ModelineResult struct {
	InRange    bool    `json:"in_range" yaml:"in-range"`
	Interlace  bool    `json:"interlace" yaml:"interlace"`
	Doublescan bool    `json:"doublescan,omitempty" yaml:"doublescan"`
	ResStretch bool    `json:"res_stretch" yaml:"res-stretch"`
	VFreqOff   bool    `json:"vfreq_off" yaml:"vfreq-off"`
	XScale     float64 `json:"x_scale" yaml:"x-scale"`
	YScale     float64 `json:"y_scale" yaml:"y-scale"`
	XDiff      float64 `json:"x_diff" yaml:"x-diff"`
	YDiff      float64 `json:"y_diff" yaml:"y-diff"`
	VDiff      float64 `json:"v_diff" yaml:"v-diff"`
	Modeline   string  `json:"modeline,omitempty" yaml:"modeline"`
}

// ModelineCalculation wraps a calculator answer for one game.
type ModelineCalculation struct {
	Success bool            `json:"success" yaml:"success"`
	Error   string          `json:"error,omitempty" yaml:"error"`
	Result  *ModelineResult `json:"result,omitempty" yaml:"result"`
}
