package core

import (
	"testing"

	"github.com/arcadecab/cabcheck/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleSetConfig(name string, cabinet schema.CabinetType, controls ...schema.GameControl) schema.GameControlConfiguration {
	return schema.GameControlConfiguration{
		Name:              name,
		TargetCabinetType: cabinet,
		ControlSets:       []schema.GameControlSet{playerSet(true, 2, controls...)},
	}
}

func TestCheckControls_StatusBeatsCabinetType(t *testing.T) {
	panel := twoPlayerPanel()
	game := gameWith("mixed", schema.DriverGood,
		singleSetConfig("upright", schema.UprightCabinet,
			joyControl(schema.Joy4Way, schema.ControlFallback{ControlType: schema.Joy8Way, Level: schema.FallbackOK})),
		singleSetConfig("cocktail", schema.CocktailCabinet,
			joyControl(schema.Joy2WayHorizontal, schema.ControlFallback{ControlType: schema.Joy8Way, Level: schema.FallbackGood})),
	)

	comp := CheckControls(game, panel)

	require.NotNil(t, comp.Best)
	assert.Equal(t, "cocktail", comp.Best.GameControlConfig.Name)
	assert.Equal(t, schema.ControlsGood, comp.Status)
	require.Len(t, comp.All, 2)
	assert.Equal(t, schema.ControlsOK, comp.All[1].Status)
}

func TestCheckControls_UprightBreaksTies(t *testing.T) {
	panel := twoPlayerPanel()
	game := gameWith("tie", schema.DriverGood,
		singleSetConfig("cocktail", schema.CocktailCabinet, joyControl(schema.Joy8Way)),
		singleSetConfig("upright", schema.UprightCabinet, joyControl(schema.Joy8Way)),
	)

	comp := CheckControls(game, panel)

	require.NotNil(t, comp.Best)
	assert.Equal(t, "upright", comp.Best.GameControlConfig.Name)
	assert.Equal(t, schema.ControlsNative, comp.Status)
}

func TestCheckControls_UnknownRanksLikeUnsupported(t *testing.T) {
	panel := twoPlayerPanel()
	game := gameWith("odd", schema.DriverGood,
		schema.GameControlConfiguration{
			Name:              "optional only",
			TargetCabinetType: schema.UprightCabinet,
			ControlSets:       []schema.GameControlSet{playerSet(false, 0, joyControl(schema.Joy8Way))},
		},
		singleSetConfig("trackball", schema.CocktailCabinet, joyControl(schema.Trackball)),
	)

	comp := CheckControls(game, panel)

	require.NotNil(t, comp.Best)
	assert.Equal(t, "optional only", comp.Best.GameControlConfig.Name)
	assert.Equal(t, schema.ControlsUnknown, comp.Status)
}

func TestCheckControls_ScoreBreaksTies(t *testing.T) {
	panel := twoPlayerPanel()
	richer := singleSetConfig("two players", schema.UprightCabinet, joyControl(schema.Joy8Way))
	richer.ControlSets = append(richer.ControlSets, playerSet(false, 2, joyControl(schema.Joy8Way)))
	game := gameWith("coop", schema.DriverGood,
		singleSetConfig("one player", schema.UprightCabinet, joyControl(schema.Joy8Way)),
		richer,
	)

	comp := CheckControls(game, panel)

	require.NotNil(t, comp.Best)
	assert.Equal(t, "two players", comp.Best.GameControlConfig.Name)
}

func TestCheckControls_MissingData(t *testing.T) {
	panel := twoPlayerPanel()

	tests := []struct {
		name  string
		game  *schema.Game
		panel *schema.CPConfiguration
	}{
		{name: "no game", game: nil, panel: panel},
		{name: "no control info", game: &schema.Game{Name: "bare"}, panel: panel},
		{name: "no configurations", game: gameWith("empty", schema.DriverGood), panel: panel},
		{name: "no panel", game: fightingGame("sf2"), panel: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := CheckControls(tt.game, tt.panel)
			assert.Equal(t, schema.ControlsUnknown, comp.Status)
			assert.Nil(t, comp.Best)
		})
	}
}

func TestCheckEmulation(t *testing.T) {
	tests := []struct {
		name string
		game *schema.Game
		want schema.EmulationStatus
	}{
		{name: "good", game: gameWith("a", schema.DriverGood), want: schema.EmulationGood},
		{name: "imperfect", game: gameWith("b", schema.DriverImperfect), want: schema.EmulationImperfect},
		{name: "preliminary", game: gameWith("c", schema.DriverPreliminary), want: schema.EmulationPreliminary},
		{name: "unrecognized driver status", game: gameWith("d", "broken"), want: schema.EmulationUnknown},
		{name: "no driver", game: gameWith("e", ""), want: schema.EmulationUnknown},
		{name: "no machine", game: &schema.Game{Name: "f"}, want: schema.EmulationUnknown},
		{name: "no game", game: nil, want: schema.EmulationUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := CheckEmulation(tt.game)
			assert.Equal(t, tt.want, comp.Status)
			assert.Same(t, tt.game, comp.Game)
		})
	}
}

func TestClassifyVideo(t *testing.T) {
	ok := func(r schema.ModelineResult) *schema.ModelineCalculation {
		return &schema.ModelineCalculation{Success: true, Result: &r}
	}

	tests := []struct {
		name string
		calc *schema.ModelineCalculation
		want schema.VideoStatus
	}{
		{name: "no calculation", calc: nil, want: schema.VideoUnknown},
		{name: "failed calculation", calc: &schema.ModelineCalculation{Success: false, Error: "boom"}, want: schema.VideoUnknown},
		{name: "success without result", calc: &schema.ModelineCalculation{Success: true}, want: schema.VideoUnknown},
		{name: "out of range", calc: ok(schema.ModelineResult{InRange: false, XScale: 1, YScale: 1}), want: schema.VideoUnsupported},
		{name: "interlaced", calc: ok(schema.ModelineResult{InRange: true, Interlace: true, XScale: 1, YScale: 1}), want: schema.VideoBad},
		{name: "stretched", calc: ok(schema.ModelineResult{InRange: true, ResStretch: true, XScale: 1, YScale: 1}), want: schema.VideoBad},
		{name: "refresh off", calc: ok(schema.ModelineResult{InRange: true, VFreqOff: true, XScale: 2, YScale: 1}), want: schema.VideoBad},
		{name: "refresh slightly off", calc: ok(schema.ModelineResult{InRange: true, VDiff: 0.12, XScale: 1, YScale: 1}), want: schema.VideoVFreqSlightlyOff},
		{name: "integer scaled", calc: ok(schema.ModelineResult{InRange: true, XScale: 2, YScale: 1}), want: schema.VideoIntScale},
		{name: "native", calc: ok(schema.ModelineResult{InRange: true, XScale: 1, YScale: 1}), want: schema.VideoNative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyVideo(tt.calc))
		})
	}
}
