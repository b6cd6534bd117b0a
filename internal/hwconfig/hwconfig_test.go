package hwconfig

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/schema"
)

func testDefs(t *testing.T) *schema.ControlDefRegistry {
	t.Helper()
	defs, err := schema.NewControlDefRegistry([]schema.ControlDef{
		{Type: schema.Joy8Way, Name: "8-Way Joystick"},
		{Type: schema.Joy8WayTrigger, Name: "8-Way Joystick with Trigger", DefaultButtons: 1},
		{Type: schema.Trackball, Name: "Trackball"},
	})
	require.NoError(t, err)
	return defs
}

func intPtr(v int) *int { return &v }

func TestBuildPanels(t *testing.T) {
	raw := []contract.PanelRawInput{{
		ID:   "main",
		Name: "Two Player Panel",
		Controls: []contract.PanelControlRaw{
			{ID: "p1-stick", Type: "joy-8way-trigger"},
			{ID: "p2-stick", Type: "JOY-8WAY", Buttons: intPtr(2), OppositeScreenSide: true},
			{Type: "trackball"},
		},
		ButtonClusters: []contract.PanelButtonClusterRaw{
			{ID: "p1-buttons", Buttons: 6},
		},
		ControlSets: []contract.PanelControlSetRaw{
			{Controls: []string{"p1-stick"}, ButtonCluster: "p1-buttons"},
			{Controls: []string{"p2-stick"}},
		},
	}}

	panels, err := BuildPanels(raw, testDefs(t))
	require.NoError(t, err)
	require.Len(t, panels, 1)
	p := panels[0]

	assert.Equal(t, "main", p.ID)
	require.Len(t, p.Controls, 3)
	assert.Equal(t, 1, p.Controls[0].NumButtons, "default from control type")
	assert.Equal(t, "8-Way Joystick with Trigger", p.Controls[0].Name)
	assert.Equal(t, 2, p.Controls[1].NumButtons, "explicit count wins")
	assert.Equal(t, schema.Joy8Way, p.Controls[1].Type)
	assert.True(t, p.Controls[1].IsOnOppositeScreenSide)

	_, err = uuid.Parse(p.Controls[2].ID)
	assert.NoError(t, err, "missing IDs are generated")

	require.Len(t, p.ControlSets, 2)
	assert.Equal(t, "p1-buttons", p.ControlSets[0].ButtonClusterID)
	assert.Equal(t, []string{"p2-stick"}, p.ControlSets[1].ControlIDs)
}

func TestBuildPanelsErrors(t *testing.T) {
	defs := testDefs(t)
	tests := []struct {
		name string
		raw  contract.PanelRawInput
	}{
		{"unknown control type", contract.PanelRawInput{
			Controls: []contract.PanelControlRaw{{ID: "x", Type: "joy-9way"}},
		}},
		{"negative buttons", contract.PanelRawInput{
			Controls: []contract.PanelControlRaw{{ID: "x", Type: "joy-8way", Buttons: intPtr(-1)}},
		}},
		{"duplicate control", contract.PanelRawInput{
			Controls: []contract.PanelControlRaw{{ID: "x", Type: "joy-8way"}, {ID: "x", Type: "trackball"}},
		}},
		{"duplicate cluster", contract.PanelRawInput{
			ButtonClusters: []contract.PanelButtonClusterRaw{{ID: "b"}, {ID: "b"}},
		}},
		{"unknown control reference", contract.PanelRawInput{
			ControlSets: []contract.PanelControlSetRaw{{Controls: []string{"ghost"}}},
		}},
		{"unknown cluster reference", contract.PanelRawInput{
			ControlSets: []contract.PanelControlSetRaw{{ButtonCluster: "ghost"}},
		}},
		{"control listed twice in a set", contract.PanelRawInput{
			Controls:    []contract.PanelControlRaw{{ID: "stick", Type: "joy-8way"}},
			ControlSets: []contract.PanelControlSetRaw{{Controls: []string{"stick", "stick"}}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildPanels([]contract.PanelRawInput{tt.raw}, defs)
			assert.Error(t, err)
		})
	}

	_, err := BuildPanels([]contract.PanelRawInput{{ID: "same"}, {ID: "same"}}, defs)
	assert.Error(t, err)
}

func TestBuildMonitors(t *testing.T) {
	monitors, err := BuildMonitors([]contract.MonitorRawInput{
		{ID: "crt", Name: "Wells Gardner", Preset: "ms929", Orientation: "vertical", Interlace: true},
		{ID: "pc", Preset: "custom", Ranges: []string{"31400-31600, 50-65, 0.940, 3.770, 1.890, 0.349, 0.064, 1.017, 0, 0, 480, 768"}},
		{},
	})
	require.NoError(t, err)
	require.Len(t, monitors, 3)

	assert.Equal(t, schema.Vertical, monitors[0].ModelineConfig.Orientation)
	assert.True(t, monitors[0].ModelineConfig.AllowInterlaced)
	assert.Equal(t, "Wells Gardner", monitors[0].Label())
	assert.Equal(t, schema.CustomPreset, monitors[1].ModelineConfig.Preset)
	assert.Equal(t, DefaultPreset, monitors[2].ModelineConfig.Preset)
	assert.Equal(t, schema.Horizontal, monitors[2].ModelineConfig.Orientation)
}

func TestBuildMonitorsErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  []contract.MonitorRawInput
	}{
		{"unknown orientation", []contract.MonitorRawInput{{Orientation: "diagonal"}}},
		{"custom without ranges", []contract.MonitorRawInput{{Preset: "custom"}}},
		{"ranges without custom", []contract.MonitorRawInput{{Preset: "arcade_15", Ranges: []string{"x"}}}},
		{"duplicate id", []contract.MonitorRawInput{{ID: "m"}, {ID: "m"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildMonitors(tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestBuild(t *testing.T) {
	cfg := &contract.Config{ControlDefs: testDefs(t)}
	input := &contract.ConfigRawInput{
		Monitors: []contract.MonitorRawInput{{ID: "crt"}},
		Panels:   []contract.PanelRawInput{{ID: "panel", Controls: []contract.PanelControlRaw{{ID: "s", Type: "joy-8way"}}}},
	}
	require.NoError(t, Build(cfg, input))
	assert.Len(t, cfg.Monitors, 1)
	assert.Len(t, cfg.Panels, 1)

	input.Panels[0].Controls[0].Type = "bogus"
	assert.Error(t, Build(cfg, input))
}

func TestBuildPanelsSharedControl(t *testing.T) {
	// One control may belong to several sets, just not twice to the same one
	raw := contract.PanelRawInput{
		ID:       "shared",
		Controls: []contract.PanelControlRaw{{ID: "stick", Type: "joy-8way"}, {ID: "dial", Type: "dial"}},
		ControlSets: []contract.PanelControlSetRaw{
			{Controls: []string{"stick"}},
			{Controls: []string{"stick", "dial"}},
		},
	}
	panels, err := BuildPanels([]contract.PanelRawInput{raw}, testDefs(t))
	require.NoError(t, err)
	require.Len(t, panels[0].ControlSets, 2)
	assert.Equal(t, []string{"stick", "dial"}, panels[0].ControlSets[1].ControlIDs)
}
