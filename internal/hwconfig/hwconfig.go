// Package hwconfig turns the monitors and control panels of the config file into
// validated hardware descriptions.
package hwconfig

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/schema"
)

// DefaultPreset is used for monitors that do not name one.
const DefaultPreset = "arcade_15"

// BuildPanels validates raw panels and resolves their control types against defs.
// Missing IDs are generated and missing button counts come from the control type.
func BuildPanels(raw []contract.PanelRawInput, defs *schema.ControlDefRegistry) ([]schema.CPConfiguration, error) {
	out := make([]schema.CPConfiguration, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, rp := range raw {
		panel, err := buildPanel(rp, defs)
		if err != nil {
			return nil, fmt.Errorf("panel %d: %w", i, err)
		}
		if _, dup := seen[panel.ID]; dup {
			return nil, fmt.Errorf("panel %d: duplicate panel ID %q", i, panel.ID)
		}
		seen[panel.ID] = struct{}{}
		out = append(out, panel)
	}
	if len(out) == 0 {
		slog.Debug("no control panels configured")
	}
	return out, nil
}

func buildPanel(rp contract.PanelRawInput, defs *schema.ControlDefRegistry) (schema.CPConfiguration, error) {
	panel := schema.CPConfiguration{ID: idOrNew(rp.ID), Name: rp.Name}

	controlIDs := make(map[string]struct{}, len(rp.Controls))
	for _, rc := range rp.Controls {
		t := schema.ControlType(strings.ToLower(strings.TrimSpace(rc.Type)))
		def, ok := defs.Get(t)
		if !ok {
			return panel, fmt.Errorf("control %q: unknown control type %q", rc.ID, rc.Type)
		}
		buttons := def.DefaultButtons
		if rc.Buttons != nil {
			if *rc.Buttons < 0 {
				return panel, fmt.Errorf("control %q: negative button count %d", rc.ID, *rc.Buttons)
			}
			buttons = *rc.Buttons
		}
		ctl := schema.CPControl{
			ID:                     idOrNew(rc.ID),
			Name:                   rc.Name,
			Type:                   t,
			NumButtons:             buttons,
			IsOnOppositeScreenSide: rc.OppositeScreenSide,
		}
		if ctl.Name == "" {
			ctl.Name = def.Name
		}
		if _, dup := controlIDs[ctl.ID]; dup {
			return panel, fmt.Errorf("duplicate control ID %q", ctl.ID)
		}
		controlIDs[ctl.ID] = struct{}{}
		panel.Controls = append(panel.Controls, ctl)
	}

	clusterIDs := make(map[string]struct{}, len(rp.ButtonClusters))
	for _, rb := range rp.ButtonClusters {
		if rb.Buttons < 0 {
			return panel, fmt.Errorf("button cluster %q: negative button count %d", rb.ID, rb.Buttons)
		}
		cluster := schema.CPButtonCluster{
			ID:                     idOrNew(rb.ID),
			Name:                   rb.Name,
			NumButtons:             rb.Buttons,
			IsOnOppositeScreenSide: rb.OppositeScreenSide,
		}
		if _, dup := clusterIDs[cluster.ID]; dup {
			return panel, fmt.Errorf("duplicate button cluster ID %q", cluster.ID)
		}
		clusterIDs[cluster.ID] = struct{}{}
		panel.ButtonClusters = append(panel.ButtonClusters, cluster)
	}

	for i, rs := range rp.ControlSets {
		set := schema.CPControlSet{ButtonClusterID: rs.ButtonCluster}
		members := make(map[string]struct{}, len(rs.Controls))
		for _, id := range rs.Controls {
			if _, ok := controlIDs[id]; !ok {
				return panel, fmt.Errorf("control set %d: unknown control %q", i, id)
			}
			if _, dup := members[id]; dup {
				return panel, fmt.Errorf("control set %d: control %q listed twice", i, id)
			}
			members[id] = struct{}{}
			set.ControlIDs = append(set.ControlIDs, id)
		}
		if rs.ButtonCluster != "" {
			if _, ok := clusterIDs[rs.ButtonCluster]; !ok {
				return panel, fmt.Errorf("control set %d: unknown button cluster %q", i, rs.ButtonCluster)
			}
		}
		panel.ControlSets = append(panel.ControlSets, set)
	}
	return panel, nil
}

// BuildMonitors validates raw monitors into modeline calculator configurations.
func BuildMonitors(raw []contract.MonitorRawInput) ([]schema.MonitorConfiguration, error) {
	out := make([]schema.MonitorConfiguration, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, rm := range raw {
		orientation, err := schema.ParseOrientation(rm.Orientation)
		if err != nil {
			return nil, fmt.Errorf("monitor %d: %w", i, err)
		}
		preset := strings.ToLower(strings.TrimSpace(rm.Preset))
		if preset == "" {
			preset = DefaultPreset
		}
		switch {
		case preset == schema.CustomPreset && len(rm.Ranges) == 0:
			return nil, fmt.Errorf("monitor %d: the custom preset requires ranges", i)
		case preset != schema.CustomPreset && len(rm.Ranges) > 0:
			return nil, fmt.Errorf("monitor %d: ranges are only allowed with the custom preset", i)
		}

		m := schema.MonitorConfiguration{
			ID:   idOrNew(rm.ID),
			Name: rm.Name,
			ModelineConfig: schema.ModelineConfig{
				Preset:          preset,
				Orientation:     orientation,
				Ranges:          rm.Ranges,
				AllowInterlaced: rm.Interlace,
				AllowDoublescan: rm.Doublescan,
			},
		}
		if _, dup := seen[m.ID]; dup {
			return nil, fmt.Errorf("monitor %d: duplicate monitor ID %q", i, m.ID)
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out, nil
}

// Build fills cfg.Monitors and cfg.Panels from the raw input.
func Build(cfg *contract.Config, input *contract.ConfigRawInput) error {
	monitors, err := BuildMonitors(input.Monitors)
	if err != nil {
		return err
	}
	panels, err := BuildPanels(input.Panels, cfg.ControlDefs)
	if err != nil {
		return err
	}
	cfg.Monitors = monitors
	cfg.Panels = panels
	return nil
}

func idOrNew(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.NewString()
}
