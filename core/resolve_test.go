package core

import (
	"testing"

	"github.com/arcadecab/cabcheck/schema"
	"github.com/stretchr/testify/assert"
)

func TestResolveControl(t *testing.T) {
	stick := joystick("stick", schema.Joy8Way, 2)

	tests := []struct {
		name          string
		gameControl   schema.GameControl
		cpControl     *schema.CPControl
		controlStatus schema.ControlsStatus
		buttonsStatus schema.ControlsStatus
		status        schema.ControlsStatus
	}{
		{
			name:          "exact type with enough buttons",
			gameControl:   schema.GameControl{Type: schema.Joy8Way, Buttons: buttons(2)},
			cpControl:     &stick,
			controlStatus: schema.ControlsNative,
			buttonsStatus: schema.ControlsNative,
			status:        schema.ControlsNative,
		},
		{
			name:          "exact type with too few buttons",
			gameControl:   schema.GameControl{Type: schema.Joy8Way, Buttons: buttons(3)},
			cpControl:     &stick,
			controlStatus: schema.ControlsNative,
			buttonsStatus: schema.ControlsUnsupported,
			status:        schema.ControlsUnsupported,
		},
		{
			name:          "good fallback",
			gameControl:   joyControl(schema.Joy4Way, schema.ControlFallback{ControlType: schema.Joy8Way, Level: schema.FallbackGood}),
			cpControl:     &stick,
			controlStatus: schema.ControlsGood,
			buttonsStatus: schema.ControlsNative,
			status:        schema.ControlsGood,
		},
		{
			name:          "ok fallback",
			gameControl:   joyControl(schema.Joy4Way, schema.ControlFallback{ControlType: schema.Joy8Way, Level: schema.FallbackOK}),
			cpControl:     &stick,
			controlStatus: schema.ControlsOK,
			buttonsStatus: schema.ControlsNative,
			status:        schema.ControlsOK,
		},
		{
			name:          "bad fallback",
			gameControl:   joyControl(schema.Trackball, schema.ControlFallback{ControlType: schema.Joy8Way, Level: schema.FallbackBad}),
			cpControl:     &stick,
			controlStatus: schema.ControlsBad,
			buttonsStatus: schema.ControlsNative,
			status:        schema.ControlsBad,
		},
		{
			name:          "unrecognized fallback level",
			gameControl:   joyControl(schema.Joy4Way, schema.ControlFallback{ControlType: schema.Joy8Way, Level: "great"}),
			cpControl:     &stick,
			controlStatus: schema.ControlsUnknown,
			buttonsStatus: schema.ControlsNative,
			status:        schema.ControlsUnknown,
		},
		{
			name:          "no fallback",
			gameControl:   joyControl(schema.Trackball),
			cpControl:     &stick,
			controlStatus: schema.ControlsUnsupported,
			buttonsStatus: schema.ControlsNative,
			status:        schema.ControlsUnsupported,
		},
		{
			name:          "no panel control",
			gameControl:   joyControl(schema.Joy8Way),
			cpControl:     nil,
			controlStatus: schema.ControlsUnsupported,
			buttonsStatus: schema.ControlsUnsupported,
			status:        schema.ControlsUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := ResolveControl(&tt.gameControl, tt.cpControl)
			assert.Equal(t, tt.controlStatus, comp.ControlStatus)
			assert.Equal(t, tt.buttonsStatus, comp.ButtonsStatus)
			assert.Equal(t, tt.status, comp.Status)
			assert.Same(t, tt.cpControl, comp.CPControl)
			assert.Equal(t, controlScore(tt.status, tt.controlStatus, tt.buttonsStatus), comp.Score)
		})
	}
}

func TestResolveControl_ScoreOrdersByStatusFirst(t *testing.T) {
	stick := joystick("stick", schema.Joy8Way, 0)
	native := ResolveControl(&schema.GameControl{Type: schema.Joy8Way}, &stick)
	fallback := ResolveControl(&schema.GameControl{
		Type:      schema.Joy4Way,
		Fallbacks: []schema.ControlFallback{{ControlType: schema.Joy8Way, Level: schema.FallbackGood}},
	}, &stick)
	none := ResolveControl(&schema.GameControl{Type: schema.Joy8Way}, nil)

	assert.Positive(t, schema.CompareScores(native.Score, fallback.Score))
	assert.Positive(t, schema.CompareScores(fallback.Score, none.Score))
}

func TestResolveButtons(t *testing.T) {
	cluster := &schema.CPButtonCluster{ID: "p1", NumButtons: 4}

	tests := []struct {
		name        string
		cluster     *schema.CPButtonCluster
		gameButtons []schema.GameButton
		status      schema.ControlsStatus
		used        *schema.CPButtonCluster
	}{
		{name: "no buttons needed", cluster: cluster, gameButtons: nil, status: schema.ControlsNative, used: nil},
		{name: "no buttons needed without cluster", cluster: nil, gameButtons: nil, status: schema.ControlsNative, used: nil},
		{name: "no cluster", cluster: nil, gameButtons: buttons(2), status: schema.ControlsUnsupported, used: nil},
		{name: "enough buttons", cluster: cluster, gameButtons: buttons(4), status: schema.ControlsNative, used: cluster},
		{name: "too few buttons still uses the cluster", cluster: cluster, gameButtons: buttons(6), status: schema.ControlsUnsupported, used: cluster},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := ResolveButtons(tt.cluster, tt.gameButtons)
			assert.Equal(t, tt.status, comp.Status)
			assert.Same(t, tt.used, comp.CPButtonCluster)
			assert.Equal(t, buttonsScore(tt.status), comp.Score)
		})
	}
}
