package core

import (
	"context"
	"fmt"

	"github.com/arcadecab/cabcheck/schema"
)

// ClassifyVideo turns a modeline calculation into a video status. Failed or missing
// calculations rate UNKNOWN.
func ClassifyVideo(calc *schema.ModelineCalculation) schema.VideoStatus {
	if calc == nil || !calc.Success || calc.Result == nil {
		return schema.VideoUnknown
	}
	r := calc.Result
	switch {
	case !r.InRange:
		return schema.VideoUnsupported
	case r.Interlace || r.ResStretch || r.VFreqOff:
		return schema.VideoBad
	case r.VDiff != 0:
		return schema.VideoVFreqSlightlyOff
	case r.XScale != 1 || r.YScale != 1:
		return schema.VideoIntScale
	default:
		return schema.VideoNative
	}
}

// CheckVideoBulk rates one monitor against many games with a single calculator call.
// Nil games are skipped by the calculator and rate UNKNOWN. The result is aligned with games.
func (e *Engine) CheckVideoBulk(ctx context.Context, games []*schema.Game, monitor *schema.MonitorConfiguration) ([]schema.VideoCompatibility, error) {
	known := make([]*schema.Game, 0, len(games))
	for _, g := range games {
		if g != nil {
			known = append(known, g)
		}
	}

	var calcs map[string]schema.ModelineCalculation
	if len(known) > 0 {
		var err error
		calcs, err = e.calculator.CalcModelineBulk(ctx, monitor.ModelineConfig, known)
		if err != nil {
			return nil, fmt.Errorf("modeline calculation for monitor %s: %w", monitor.Label(), err)
		}
	}

	out := make([]schema.VideoCompatibility, len(games))
	for i, g := range games {
		comp := schema.VideoCompatibility{Game: g, MonitorConfig: monitor}
		if g != nil {
			if calc, ok := calcs[g.Name]; ok {
				comp.ModelineCalc = &calc
			}
		}
		comp.Status = ClassifyVideo(comp.ModelineCalc)
		out[i] = comp
	}
	return out, nil
}

// CheckVideo rates one monitor against one game.
func (e *Engine) CheckVideo(ctx context.Context, game *schema.Game, monitor *schema.MonitorConfiguration) (schema.VideoCompatibility, error) {
	comps, err := e.CheckVideoBulk(ctx, []*schema.Game{game}, monitor)
	if err != nil {
		return schema.VideoCompatibility{}, err
	}
	return comps[0], nil
}
