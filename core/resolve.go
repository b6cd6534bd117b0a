package core

import "github.com/arcadecab/cabcheck/schema"

// ResolveControl rates a panel control against a game control. A nil panel control
// means the game control goes without one and rates UNSUPPORTED on both counts.
func ResolveControl(gameControl *schema.GameControl, cpControl *schema.CPControl) schema.ControlCompatibility {
	controlStatus := schema.ControlsUnsupported
	buttonsStatus := schema.ControlsUnsupported
	if cpControl != nil {
		controlStatus = controlTypeStatus(gameControl, cpControl)
		buttonsStatus = controlButtonsStatus(gameControl, cpControl)
	}
	status := schema.MinStatus(controlStatus, buttonsStatus)
	return schema.ControlCompatibility{
		GameControl:   gameControl,
		CPControl:     cpControl,
		ControlStatus: controlStatus,
		ButtonsStatus: buttonsStatus,
		Status:        status,
		Score:         controlScore(status, controlStatus, buttonsStatus),
	}
}

// controlTypeStatus is NATIVE for an exact type match, otherwise the level of the
// first fallback naming the panel control type.
func controlTypeStatus(gameControl *schema.GameControl, cpControl *schema.CPControl) schema.ControlsStatus {
	if gameControl.Type == cpControl.Type {
		return schema.ControlsNative
	}
	fb, ok := gameControl.Fallback(cpControl.Type)
	if !ok {
		return schema.ControlsUnsupported
	}
	switch fb.Level {
	case schema.FallbackGood:
		return schema.ControlsGood
	case schema.FallbackOK:
		return schema.ControlsOK
	case schema.FallbackBad:
		return schema.ControlsBad
	default:
		return schema.ControlsUnknown
	}
}

func controlButtonsStatus(gameControl *schema.GameControl, cpControl *schema.CPControl) schema.ControlsStatus {
	if cpControl.NumButtons >= len(gameControl.Buttons) {
		return schema.ControlsNative
	}
	return schema.ControlsUnsupported
}

// ResolveButtons rates a button cluster against the buttons a game control set needs.
// Sets needing no buttons never hold on to a cluster. A cluster too small for the
// game is still recorded as used.
func ResolveButtons(cluster *schema.CPButtonCluster, gameButtons []schema.GameButton) schema.ButtonsCompatibility {
	var (
		used   *schema.CPButtonCluster
		status schema.ControlsStatus
	)
	switch {
	case len(gameButtons) == 0:
		status = schema.ControlsNative
	case cluster == nil:
		status = schema.ControlsUnsupported
	default:
		used = cluster
		status = schema.ControlsUnsupported
		if cluster.NumButtons >= len(gameButtons) {
			status = schema.ControlsNative
		}
	}
	return schema.ButtonsCompatibility{
		GameButtons:     gameButtons,
		CPButtonCluster: used,
		Status:          status,
		Score:           buttonsScore(status),
	}
}
