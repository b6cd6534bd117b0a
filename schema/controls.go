package schema

import (
	"fmt"
	"slices"
)

type (
	// ControlType identifies a kind of physical or emulated control, like "joy-8way".
	ControlType string

	// FallbackLevel grades how well a substitute control type plays.
	FallbackLevel string

	// CabinetType is the cabinet style a control configuration was designed for.
	CabinetType string
)

// Fallback levels from best to worst.
const (
	FallbackGood FallbackLevel = "good"
	FallbackOK   FallbackLevel = "ok"
	FallbackBad  FallbackLevel = "bad"
)

// Cabinet types.
const (
	UprightCabinet  CabinetType = "upright"
	CocktailCabinet CabinetType = "cocktail"
)

// Control types known to the default registry.
const (
	Joy2WayHorizontal       ControlType = "joy-2way-horizontal"
	Joy2WayVertical         ControlType = "joy-2way-vertical"
	Joy2WayVerticalTrigger  ControlType = "joy-2way-vertical-trigger"
	Joy4Way                 ControlType = "joy-4way"
	Joy4WayTrigger          ControlType = "joy-4way-trigger"
	Joy8Way                 ControlType = "joy-8way"
	Joy8WayTrigger          ControlType = "joy-8way-trigger"
	Joy8WayTopfire          ControlType = "joy-8way-topfire"
	Joy8WayRotaryOptical    ControlType = "joy-8way-rotary-optical"
	Joy8WayRotaryMechanical ControlType = "joy-8way-rotary-mechanical"
	JoyAnalog               ControlType = "joy-analog"
	JoyAnalogFlightstick    ControlType = "joy-analog-flightstick"
	JoyAnalogYoke           ControlType = "joy-analog-yoke"
	Throttle                ControlType = "throttle"
	Trackball               ControlType = "trackball"
	Spinner                 ControlType = "spinner"
	Dial                    ControlType = "dial"
	Paddle                  ControlType = "paddle"
	Pedal                   ControlType = "pedal"
	SteeringWheel360        ControlType = "steeringwheel-360"
	SteeringWheel270        ControlType = "steeringwheel-270"
	ShifterHighLow          ControlType = "shifter-highlow"
	ShifterUpDown           ControlType = "shifter-updown"
	Shifter4Gear            ControlType = "shifter-4gear"
	Lightgun                ControlType = "lightgun"
	LightgunAnalog          ControlType = "lightgun-analog"
)

// ValidFallbackLevels lists the recognized fallback levels.
var ValidFallbackLevels = map[FallbackLevel]struct{}{
	FallbackGood: {},
	FallbackOK:   {},
	FallbackBad:  {},
}

// ValidCabinetTypes lists the recognized cabinet types.
var ValidCabinetTypes = map[CabinetType]struct{}{
	UprightCabinet:  {},
	CocktailCabinet: {},
}

// ControlFallback says a game control can be played on another control type at some level.
type ControlFallback struct {
	ControlType ControlType   `json:"control_type"`
	Level       FallbackLevel `json:"level"`
}

// ControlDef describes one control type.
type ControlDef struct {
	Type           ControlType       `json:"type"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	DefaultButtons int               `json:"default_buttons"`
	Fallbacks      []ControlFallback `json:"fallbacks,omitempty"`
}

// Fallback returns the first fallback targeting the given control type.
func (d ControlDef) Fallback(t ControlType) (ControlFallback, bool) {
	for _, fb := range d.Fallbacks {
		if fb.ControlType == t {
			return fb, true
		}
	}
	return ControlFallback{}, false
}

// ControlDefRegistry is a read-only set of control definitions keyed by type.
type ControlDefRegistry struct {
	defs  map[ControlType]ControlDef
	order []ControlType
}

// NewControlDefRegistry indexes the given definitions. Duplicate types are an error.
func NewControlDefRegistry(defs []ControlDef) (*ControlDefRegistry, error) {
	r := &ControlDefRegistry{defs: make(map[ControlType]ControlDef, len(defs))}
	for _, d := range defs {
		if d.Type == "" {
			return nil, fmt.Errorf("control definition %q has no type", d.Name)
		}
		if _, dup := r.defs[d.Type]; dup {
			return nil, fmt.Errorf("duplicate control definition: %s", d.Type)
		}
		r.defs[d.Type] = d
		r.order = append(r.order, d.Type)
	}
	return r, nil
}

// Get returns the definition for a control type.
func (r *ControlDefRegistry) Get(t ControlType) (ControlDef, bool) {
	if r == nil {
		return ControlDef{}, false
	}
	d, ok := r.defs[t]
	return d, ok
}

// Has reports whether the control type is defined.
func (r *ControlDefRegistry) Has(t ControlType) bool {
	_, ok := r.Get(t)
	return ok
}

// All returns every definition in load order.
func (r *ControlDefRegistry) All() []ControlDef {
	if r == nil {
		return nil
	}
	out := make([]ControlDef, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.defs[t])
	}
	return out
}

// Types returns every defined control type sorted by name.
func (r *ControlDefRegistry) Types() []ControlType {
	if r == nil {
		return nil
	}
	out := slices.Clone(r.order)
	slices.Sort(out)
	return out
}
