package gamedb

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arcadecab/cabcheck/schema"
)

// rawDatabase is the on-disk layout of a game database or overrides file.
type rawDatabase struct {
	Games []rawGame `yaml:"games"`
}

type rawGame struct {
	Name           string             `yaml:"name"`
	Description    string             `yaml:"description"`
	Machine        *rawMachine        `yaml:"machine"`
	ControlConfigs []rawControlConfig `yaml:"control-configs"`
}

type rawMachine struct {
	Description  string       `yaml:"description"`
	Year         string       `yaml:"year"`
	Manufacturer string       `yaml:"manufacturer"`
	CloneOf      string       `yaml:"cloneof"`
	Displays     []rawDisplay `yaml:"displays"`
	Driver       *rawDriver   `yaml:"driver"`
}

type rawDisplay struct {
	Tag     string  `yaml:"tag"`
	Type    string  `yaml:"type"`
	Rotate  int     `yaml:"rotate"`
	FlipX   bool    `yaml:"flipx"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Refresh float64 `yaml:"refresh"`
}

type rawDriver struct {
	Status    string `yaml:"status"`
	Emulation string `yaml:"emulation"`
	Color     string `yaml:"color"`
	Sound     string `yaml:"sound"`
	Graphic   string `yaml:"graphic"`
	SaveState string `yaml:"savestate"`
}

type rawControlConfig struct {
	Name          string          `yaml:"name"`
	TargetCabinet string          `yaml:"target-cabinet"`
	MenuButtons   []rawButton     `yaml:"menu-buttons"`
	ControlSets   []rawControlSet `yaml:"control-sets"`
}

type rawControlSet struct {
	Players            []int        `yaml:"players"`
	Required           *bool        `yaml:"required"` // nil means required
	OppositeScreenSide bool         `yaml:"opposite-screen-side"`
	Controls           []rawControl `yaml:"controls"`
	PanelButtons       []rawButton  `yaml:"panel-buttons"`
}

type rawControl struct {
	Type       string        `yaml:"type"`
	Descriptor string        `yaml:"descriptor"`
	Buttons    []rawButton   `yaml:"buttons"`
	Fallbacks  []rawFallback `yaml:"fallbacks"` // nil means the control type defaults
}

type rawFallback struct {
	Type  string `yaml:"type"`
	Level string `yaml:"level"`
}

// rawButton accepts either a bare name or a mapping with name and label.
type rawButton struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *rawButton) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		b.Name = node.Value
		return nil
	}
	type plain rawButton
	return node.Decode((*plain)(b))
}

// rawControlDefs is the on-disk layout of a control definitions file.
type rawControlDefs struct {
	ControlDefs []rawControlDef `yaml:"control-defs"`
}

type rawControlDef struct {
	Type        string        `yaml:"type"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Buttons     int           `yaml:"buttons"`
	Fallbacks   []rawFallback `yaml:"fallbacks"`
}

// readYAML loads a YAML file into out.
func readYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file not found: %s", path)
		}
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func convertButtons(raw []rawButton) []schema.GameButton {
	if len(raw) == 0 {
		return nil
	}
	out := make([]schema.GameButton, 0, len(raw))
	for _, b := range raw {
		out = append(out, schema.GameButton{Name: b.Name, Label: b.Label})
	}
	return out
}

// normalizeControlType trims and lowercases a control type as written in a file.
func normalizeControlType(t string) schema.ControlType {
	return schema.ControlType(strings.ToLower(strings.TrimSpace(t)))
}

// convertFallbacks normalizes fallback types the same way as control types. Types that
// known rejects are kept but logged, since they can never match a panel control.
func convertFallbacks(raw []rawFallback, known func(schema.ControlType) bool) []schema.ControlFallback {
	out := make([]schema.ControlFallback, 0, len(raw))
	for _, fb := range raw {
		t := normalizeControlType(fb.Type)
		if known != nil && !known(t) {
			slog.Warn("unknown fallback control type, it will never match", "type", fb.Type)
		}
		level := schema.FallbackLevel(strings.ToLower(strings.TrimSpace(fb.Level)))
		if _, ok := schema.ValidFallbackLevels[level]; !ok {
			slog.Warn("unrecognized fallback level, it will rate as UNKNOWN", "type", fb.Type, "level", fb.Level)
		}
		out = append(out, schema.ControlFallback{ControlType: t, Level: level})
	}
	return out
}

// convertGame turns a raw entry into a game, resolving control types against defs.
func convertGame(rg rawGame, defs *schema.ControlDefRegistry) (*schema.Game, error) {
	name := strings.TrimSpace(rg.Name)
	if name == "" {
		return nil, fmt.Errorf("game entry without a name")
	}
	game := &schema.Game{Name: name, Description: rg.Description}

	if rg.Machine != nil {
		m, err := convertMachine(name, rg.Machine)
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", name, err)
		}
		game.Machine = m
	}

	if rg.ControlConfigs != nil {
		info := &schema.ControlInfo{}
		for i, rc := range rg.ControlConfigs {
			cc, err := convertControlConfig(rc, defs)
			if err != nil {
				return nil, fmt.Errorf("game %s control config %d: %w", name, i, err)
			}
			info.ControlConfigs = append(info.ControlConfigs, cc)
		}
		game.ControlInfo = info
	}
	return game, nil
}

func convertMachine(name string, rm *rawMachine) (*schema.Machine, error) {
	m := &schema.Machine{
		Name:         name,
		Description:  rm.Description,
		Year:         rm.Year,
		Manufacturer: rm.Manufacturer,
		CloneOf:      rm.CloneOf,
	}
	for _, d := range rm.Displays {
		m.Displays = append(m.Displays, schema.MachineDisplay(d))
	}
	if rm.Driver != nil {
		status := schema.DriverStatus(strings.ToLower(rm.Driver.Status))
		if _, ok := schema.ValidDriverStatuses[status]; !ok && status != "" {
			return nil, fmt.Errorf("invalid driver status %q", rm.Driver.Status)
		}
		m.Driver = &schema.MachineDriver{
			Status:    status,
			Emulation: schema.DriverStatus(strings.ToLower(rm.Driver.Emulation)),
			Color:     schema.DriverStatus(strings.ToLower(rm.Driver.Color)),
			Sound:     schema.DriverStatus(strings.ToLower(rm.Driver.Sound)),
			Graphic:   schema.DriverStatus(strings.ToLower(rm.Driver.Graphic)),
			SaveState: rm.Driver.SaveState,
		}
	}
	return m, nil
}

func convertControlConfig(rc rawControlConfig, defs *schema.ControlDefRegistry) (schema.GameControlConfiguration, error) {
	cabinet := schema.CabinetType(strings.ToLower(strings.TrimSpace(rc.TargetCabinet)))
	if cabinet == "" {
		cabinet = schema.UprightCabinet
	}
	if _, ok := schema.ValidCabinetTypes[cabinet]; !ok {
		return schema.GameControlConfiguration{}, fmt.Errorf("invalid target cabinet %q", rc.TargetCabinet)
	}

	cc := schema.GameControlConfiguration{
		Name:              rc.Name,
		TargetCabinetType: cabinet,
		MenuButtons:       convertButtons(rc.MenuButtons),
	}
	for i, rs := range rc.ControlSets {
		set := schema.GameControlSet{
			SupportedPlayerNums:    rs.Players,
			IsRequired:             rs.Required == nil || *rs.Required,
			IsOnOppositeScreenSide: rs.OppositeScreenSide,
			ControlPanelButtons:    convertButtons(rs.PanelButtons),
		}
		for _, rctl := range rs.Controls {
			ctl, err := convertControl(rctl, defs)
			if err != nil {
				return schema.GameControlConfiguration{}, fmt.Errorf("control set %d: %w", i, err)
			}
			set.Controls = append(set.Controls, ctl)
		}
		cc.ControlSets = append(cc.ControlSets, set)
	}
	return cc, nil
}

func convertControl(rc rawControl, defs *schema.ControlDefRegistry) (schema.GameControl, error) {
	t := normalizeControlType(rc.Type)
	def, ok := defs.Get(t)
	if !ok {
		return schema.GameControl{}, fmt.Errorf("unknown control type %q", rc.Type)
	}
	ctl := schema.GameControl{
		Type:       t,
		Descriptor: rc.Descriptor,
		Buttons:    convertButtons(rc.Buttons),
		Fallbacks:  def.Fallbacks,
	}
	if rc.Fallbacks != nil {
		ctl.Fallbacks = convertFallbacks(rc.Fallbacks, defs.Has)
	}
	return ctl, nil
}
