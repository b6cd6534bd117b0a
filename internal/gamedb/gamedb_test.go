package gamedb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arcadecab/cabcheck/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtinDefs(t *testing.T) *schema.ControlDefRegistry {
	t.Helper()
	defs, err := LoadControlDefs("")
	require.NoError(t, err)
	return defs
}

func TestLoadControlDefsBuiltin(t *testing.T) {
	defs := builtinDefs(t)

	def, ok := defs.Get(schema.Joy4Way)
	require.True(t, ok)
	fb, ok := def.Fallback(schema.Joy8Way)
	require.True(t, ok)
	assert.Equal(t, schema.FallbackOK, fb.Level)

	flight, ok := defs.Get(schema.JoyAnalogFlightstick)
	require.True(t, ok)
	assert.Equal(t, 3, flight.DefaultButtons)

	// Every fallback target is itself a defined control type
	for _, d := range defs.All() {
		for _, fb := range d.Fallbacks {
			assert.True(t, defs.Has(fb.ControlType), "%s falls back to undefined %s", d.Type, fb.ControlType)
			_, valid := schema.ValidFallbackLevels[fb.Level]
			assert.True(t, valid, "%s has invalid level %s", d.Type, fb.Level)
		}
	}
}

func TestLoadControlDefsCustom(t *testing.T) {
	defs, err := LoadControlDefs(filepath.Join("testdata", "controldefs.yaml"))
	require.NoError(t, err)

	def, ok := defs.Get(schema.Joy4Way)
	require.True(t, ok)
	assert.Equal(t, "4-Way Joystick (strict)", def.Name)
	fb, _ := def.Fallback(schema.Joy8Way)
	assert.Equal(t, schema.FallbackBad, fb.Level)

	assert.True(t, defs.Has("gear-lever"))
	assert.True(t, defs.Has(schema.Trackball), "built-in entries survive")

	_, err = LoadControlDefs(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	db, err := Load(filepath.Join("testdata", "games.yaml"), builtinDefs(t))
	require.NoError(t, err)
	assert.Equal(t, 4, db.Len())
	assert.Equal(t, []string{"sf2", "pacman", "starwars", "cliffhgr"}, db.Names())

	sf2, ok := db.GetGameByName("  SF2 ")
	require.True(t, ok)
	assert.Equal(t, "Street Fighter II: The World Warrior", sf2.Title())
	require.NotNil(t, sf2.Machine)
	assert.Equal(t, schema.DriverGood, sf2.Machine.Driver.Status)
	assert.Equal(t, 224, sf2.Machine.Displays[0].Height)

	require.Len(t, sf2.ControlInfo.ControlConfigs, 1)
	cfg := sf2.ControlInfo.ControlConfigs[0]
	assert.Equal(t, schema.UprightCabinet, cfg.TargetCabinetType)
	assert.Equal(t, []schema.GameButton{{Name: "Start"}, {Name: "Coin"}}, cfg.MenuButtons)
	require.Len(t, cfg.ControlSets, 2)
	assert.True(t, cfg.ControlSets[0].IsRequired)
	assert.False(t, cfg.ControlSets[1].IsRequired)
	assert.Len(t, cfg.ControlSets[0].ControlPanelButtons, 6)

	// Fallbacks default to the control type definition
	stick := cfg.ControlSets[0].Controls[0]
	assert.Equal(t, schema.Joy8Way, stick.Type)
	_, ok = stick.Fallback(schema.Joy8WayTrigger)
	assert.True(t, ok)

	// Explicit fallbacks replace the defaults
	starwars, ok := db.GetGameByName("starwars")
	require.True(t, ok)
	yoke := starwars.ControlInfo.ControlConfigs[0].ControlSets[0].Controls[0]
	assert.Len(t, yoke.Fallbacks, 2)
	assert.Equal(t, "Fire", yoke.Buttons[0].Label)
	_, ok = yoke.Fallback(schema.JoyAnalog)
	assert.False(t, ok)

	pacman, _ := db.GetGameByName("pacman")
	assert.True(t, pacman.ControlInfo.ControlConfigs[1].ControlSets[1].IsOnOppositeScreenSide)

	cliff, _ := db.GetGameByName("cliffhgr")
	assert.Nil(t, cliff.ControlInfo)
	assert.Equal(t, schema.DriverPreliminary, cliff.Machine.Driver.Status)

	_, ok = db.GetGameByName("dkong")
	assert.False(t, ok)
}

func TestLoadErrors(t *testing.T) {
	defs := builtinDefs(t)

	_, err := Load(filepath.Join("testdata", "bad_control.yaml"), defs)
	assert.ErrorContains(t, err, "joy-17way")

	_, err = Load(filepath.Join("testdata", "duplicate.yaml"), defs)
	assert.ErrorContains(t, err, "duplicate")

	_, err = Load(filepath.Join("testdata", "nope.yaml"), defs)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("games: [\n"), 0o644))
	_, err = Load(path, defs)
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	defs := builtinDefs(t)

	none, err := LoadOverrides("", defs)
	require.NoError(t, err)
	assert.Nil(t, none)

	overrides, err := LoadOverrides(filepath.Join("testdata", "overrides.yaml"), defs)
	require.NoError(t, err)
	sf2, ok := overrides["sf2"]
	require.True(t, ok, "keys are normalized")
	assert.Equal(t, schema.DriverImperfect, sf2.Machine.Driver.Status)
	assert.Equal(t, "LP", sf2.ControlInfo.ControlConfigs[0].ControlSets[0].ControlPanelButtons[0].Name)
}

func TestNewDatabase(t *testing.T) {
	db, err := NewDatabase([]*schema.Game{{Name: "dkong"}, {Name: "galaga"}})
	require.NoError(t, err)
	g, ok := db.GetGameByName("DKONG")
	require.True(t, ok)
	assert.Equal(t, "dkong", g.Name)

	_, err = NewDatabase([]*schema.Game{{Name: "dkong"}, {Name: "DKong"}})
	assert.Error(t, err)
}

func TestFallbackTypesNormalized(t *testing.T) {
	dir := t.TempDir()
	defsPath := filepath.Join(dir, "controldefs.yaml")
	require.NoError(t, os.WriteFile(defsPath, []byte(`control-defs:
  - type: " Gear-Lever "
    name: Gear Lever
    fallbacks:
      - {type: " Shifter-HighLow", level: good}
`), 0o644))
	gamesPath := filepath.Join(dir, "games.yaml")
	require.NoError(t, os.WriteFile(gamesPath, []byte(`games:
  - name: outrun
    control-configs:
      - target-cabinet: upright
        control-sets:
          - players: [1]
            controls:
              - type: Steeringwheel-270
                fallbacks:
                  - {type: " Joy-8Way ", level: ok}
                  - {type: Dial, level: bad}
`), 0o644))

	defs, err := LoadControlDefs(defsPath)
	require.NoError(t, err)
	lever, ok := defs.Get("gear-lever")
	require.True(t, ok, "custom types are normalized")
	_, ok = lever.Fallback(schema.ShifterHighLow)
	assert.True(t, ok, "registry fallback types are normalized")

	db, err := Load(gamesPath, defs)
	require.NoError(t, err)
	outrun, ok := db.GetGameByName("outrun")
	require.True(t, ok)
	wheel := outrun.ControlInfo.ControlConfigs[0].ControlSets[0].Controls[0]

	tests := []struct {
		target schema.ControlType
		level  schema.FallbackLevel
	}{
		{schema.Joy8Way, schema.FallbackOK},
		{schema.Dial, schema.FallbackBad},
	}
	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			fb, ok := wheel.Fallback(tt.target)
			require.True(t, ok)
			assert.Equal(t, tt.level, fb.Level)
		})
	}
}
