package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/schema"

	"github.com/olekukonko/tablewriter"
)

// HardwareInventory is the JSON shape of the configured cabinet.
type HardwareInventory struct {
	Monitors []schema.MonitorConfiguration `json:"monitors"`
	Panels   []schema.CPConfiguration      `json:"panels"`
}

// WriteHardware prints the configured monitors and control panels.
func WriteHardware(cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, HardwareInventory{Monitors: cfg.Monitors, Panels: cfg.Panels})
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeHardwareText(w, cfg)
	}, "Wrote inventory")
}

func writeHardwareText(w io.Writer, cfg *contract.Config) error {
	monitors := tablewriter.NewWriter(w)
	monitors.Header([]string{"Monitor", "Preset", "Orientation", "Interlace", "Doublescan", "Ranges"})
	var data [][]string
	for _, m := range cfg.Monitors {
		mc := m.ModelineConfig
		data = append(data, []string{
			m.Label(),
			mc.Preset,
			string(mc.Orientation),
			strconv.FormatBool(mc.AllowInterlaced),
			strconv.FormatBool(mc.AllowDoublescan),
			strings.Join(mc.Ranges, "; "),
		})
	}
	if err := monitors.Bulk(data); err != nil {
		return err
	}
	if err := monitors.Render(); err != nil {
		return err
	}

	for i := range cfg.Panels {
		p := &cfg.Panels[i]
		if _, err := fmt.Fprintf(w, "\nPanel %s (%s): %d controls, %d button clusters, %d control sets\n",
			p.Label(), p.ID, len(p.Controls), len(p.ButtonClusters), len(p.ControlSets)); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Set", "ID", "Name", "Type", "Buttons", "Side"})
		var rows [][]string
		for j, set := range p.ControlSets {
			label := fmt.Sprintf("#%d", j+1)
			for _, id := range set.ControlIDs {
				if c := p.Control(id); c != nil {
					rows = append(rows, []string{label, c.ID, c.Name, string(c.Type), strconv.Itoa(c.NumButtons), sideLabel(c.IsOnOppositeScreenSide)})
				}
			}
			if bc := p.ButtonCluster(set.ButtonClusterID); bc != nil {
				rows = append(rows, []string{label, bc.ID, bc.Name, "buttons", strconv.Itoa(bc.NumButtons), sideLabel(bc.IsOnOppositeScreenSide)})
			}
		}
		if err := table.Bulk(rows); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	return nil
}

func sideLabel(opposite bool) string {
	if opposite {
		return "opposite"
	}
	return "near"
}
