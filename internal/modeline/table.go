package modeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/schema"
	"gopkg.in/yaml.v3"
)

// Table answers from calculations computed ahead of time, one table per preset and
// orientation.
type Table struct {
	tables map[string]map[string]schema.ModelineCalculation
}

var _ contract.ModelineCalculator = &Table{} // Compile-time check

type rawTable struct {
	Preset      string                                `yaml:"preset"`
	Orientation string                                `yaml:"orientation"`
	Results     map[string]schema.ModelineCalculation `yaml:"results"`
}

type rawTableFile struct {
	Tables []rawTable `yaml:"tables"`
}

func tableKey(preset string, o schema.Orientation) string {
	return strings.ToLower(strings.TrimSpace(preset)) + "|" + string(o)
}

// LoadTable reads a YAML file of precomputed calculations. Game names are normalized
// the same way as check inputs.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read modeline table %s: %w", path, err)
	}
	var raw rawTableFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse modeline table %s: %w", path, err)
	}

	t := &Table{tables: make(map[string]map[string]schema.ModelineCalculation, len(raw.Tables))}
	for i, rt := range raw.Tables {
		if strings.TrimSpace(rt.Preset) == "" {
			return nil, fmt.Errorf("modeline table %s: entry %d has no preset", path, i)
		}
		o, err := schema.ParseOrientation(rt.Orientation)
		if err != nil {
			return nil, fmt.Errorf("modeline table %s: entry %d: %w", path, i, err)
		}
		key := tableKey(rt.Preset, o)
		if _, dup := t.tables[key]; dup {
			return nil, fmt.Errorf("modeline table %s: duplicate table for %s", path, key)
		}
		results := make(map[string]schema.ModelineCalculation, len(rt.Results))
		for name, calc := range rt.Results {
			results[contract.NormalizeGameName(name)] = calc
		}
		t.tables[key] = results
	}
	return t, nil
}

// CalcModelineBulk implements the ModelineCalculator interface. Games missing from the
// matching table get a failed calculation.
func (t *Table) CalcModelineBulk(_ context.Context, cfg schema.ModelineConfig, games []*schema.Game) (map[string]schema.ModelineCalculation, error) {
	results, ok := t.tables[tableKey(cfg.Preset, cfg.Orientation)]
	if !ok {
		return failAll(games, fmt.Sprintf("no precomputed modelines for preset %s (%s)", cfg.Preset, cfg.Orientation)), nil
	}
	out := make(map[string]schema.ModelineCalculation, len(games))
	for _, g := range games {
		if calc, ok := results[contract.NormalizeGameName(g.Name)]; ok {
			out[g.Name] = calc
			continue
		}
		out[g.Name] = schema.ModelineCalculation{Success: false, Error: "no precomputed modeline"}
	}
	return out, nil
}
