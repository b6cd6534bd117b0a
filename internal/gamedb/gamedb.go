// Package gamedb loads the game catalog, per-user overrides and control definitions
// from YAML files.
package gamedb

import (
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/schema"
)

//go:embed controldefs.yaml
var defaultControlDefs []byte

// Database is an immutable, in-memory game catalog keyed by normalized short name.
type Database struct {
	games map[string]*schema.Game
	names []string
}

var _ contract.GameDatabase = &Database{}

// NewDatabase indexes the given games. Duplicate names are an error.
func NewDatabase(games []*schema.Game) (*Database, error) {
	db := &Database{games: make(map[string]*schema.Game, len(games))}
	for _, g := range games {
		key := contract.NormalizeGameName(g.Name)
		if _, dup := db.games[key]; dup {
			return nil, fmt.Errorf("duplicate game: %s", g.Name)
		}
		db.games[key] = g
		db.names = append(db.names, g.Name)
	}
	return db, nil
}

// Load reads a game database file. Control types are resolved against defs.
func Load(path string, defs *schema.ControlDefRegistry) (*Database, error) {
	games, err := loadGames(path, defs)
	if err != nil {
		return nil, err
	}
	db, err := NewDatabase(games)
	if err != nil {
		return nil, fmt.Errorf("game database %s: %w", path, err)
	}
	slog.Debug("loaded game database", "path", path, "games", len(games))
	return db, nil
}

// LoadOverrides reads an overrides file into a map keyed by normalized game name.
// An empty path yields no overrides.
func LoadOverrides(path string, defs *schema.ControlDefRegistry) (map[string]*schema.Game, error) {
	if path == "" {
		return nil, nil
	}
	games, err := loadGames(path, defs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*schema.Game, len(games))
	for _, g := range games {
		key := contract.NormalizeGameName(g.Name)
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("overrides %s: duplicate game: %s", path, g.Name)
		}
		out[key] = g
	}
	slog.Debug("loaded game overrides", "path", path, "games", len(out))
	return out, nil
}

func loadGames(path string, defs *schema.ControlDefRegistry) ([]*schema.Game, error) {
	var raw rawDatabase
	if err := readYAML(path, &raw); err != nil {
		return nil, err
	}
	games := make([]*schema.Game, 0, len(raw.Games))
	for i, rg := range raw.Games {
		g, err := convertGame(rg, defs)
		if err != nil {
			return nil, fmt.Errorf("%s: entry %d: %w", path, i, err)
		}
		games = append(games, g)
	}
	return games, nil
}

// GetGameByName returns the game whose short name matches, ignoring case and spaces.
func (db *Database) GetGameByName(name string) (*schema.Game, bool) {
	g, ok := db.games[contract.NormalizeGameName(name)]
	return g, ok
}

// Names returns every game short name in file order.
func (db *Database) Names() []string {
	return db.names
}

// Len returns the number of games.
func (db *Database) Len() int {
	return len(db.names)
}

// LoadControlDefs returns the built-in control definitions, with entries of the
// file at path replacing or extending them when path is not empty.
func LoadControlDefs(path string) (*schema.ControlDefRegistry, error) {
	var builtin rawControlDefs
	if err := yaml.Unmarshal(defaultControlDefs, &builtin); err != nil {
		return nil, fmt.Errorf("parse built-in control definitions: %w", err)
	}
	defs := builtin.ControlDefs

	if path != "" {
		var custom rawControlDefs
		if err := readYAML(path, &custom); err != nil {
			return nil, err
		}
		defs = mergeControlDefs(defs, custom.ControlDefs)
	}

	types := make(map[schema.ControlType]struct{}, len(defs))
	for _, d := range defs {
		types[normalizeControlType(d.Type)] = struct{}{}
	}
	known := func(t schema.ControlType) bool {
		_, ok := types[t]
		return ok
	}

	out := make([]schema.ControlDef, 0, len(defs))
	for _, d := range defs {
		out = append(out, schema.ControlDef{
			Type:           normalizeControlType(d.Type),
			Name:           d.Name,
			Description:    d.Description,
			DefaultButtons: d.Buttons,
			Fallbacks:      convertFallbacks(d.Fallbacks, known),
		})
	}
	return schema.NewControlDefRegistry(out)
}

// mergeControlDefs replaces base entries by type and appends unseen ones.
func mergeControlDefs(base, custom []rawControlDef) []rawControlDef {
	out := append([]rawControlDef(nil), base...)
	index := make(map[schema.ControlType]int, len(out))
	for i, d := range out {
		index[normalizeControlType(d.Type)] = i
	}
	for _, d := range custom {
		t := normalizeControlType(d.Type)
		if i, ok := index[t]; ok {
			out[i] = d
			continue
		}
		index[t] = len(out)
		out = append(out, d)
	}
	return out
}
