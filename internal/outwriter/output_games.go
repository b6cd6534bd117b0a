package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/internal/parquet"
	"github.com/arcadecab/cabcheck/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteGameResults outputs the check results, dispatching based on the output format configured.
func WriteGameResults(results []schema.GameCompatibility, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONGameResults(w, results)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVGameResults(w, results)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		rows := parquet.ConvertGameCompatibilities(results, time.Now())
		if err := parquet.WriteGameResultsParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGameTable(results, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeGameTable generates and writes the human-readable table.
func writeGameTable(results []schema.GameCompatibility, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Game", "Title", "Emulation", "Video", "Controls", "Overall", "Known"}
	if cfg.Detail {
		for i := range cfg.Monitors {
			headers = append(headers, cfg.Monitors[i].Label())
		}
		for i := range cfg.Panels {
			headers = append(headers, cfg.Panels[i].Label())
		}
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	// 2. Populate Rows
	titleWidth := GetMaxTableTitleWidth(cfg)
	var data [][]string
	for i, r := range results {
		row := []string{
			strconv.Itoa(i + 1),
			r.GameNameInput,
			contract.TruncateText(r.Game.Title(), titleWidth),
			statusLabel(r.EmuComp.Status, cfg.UseColors),
			statusLabel(r.BestVideoStatus, cfg.UseColors),
			statusLabel(r.BestControlsStatus, cfg.UseColors),
			overallLabel(r.OverallStatus, cfg.UseColors),
			overallLabel(r.KnownOverallStatus, cfg.UseColors),
		}
		if cfg.Detail {
			for _, v := range r.VideoComps {
				row = append(row, statusLabel(v.Status, cfg.UseColors))
			}
			for _, c := range r.ControlsComps {
				row = append(row, statusLabel(c.Status, cfg.UseColors))
			}
		}
		data = append(data, row)
	}

	// 3. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	unknown := 0
	for _, r := range results {
		if r.Game == nil {
			unknown++
		}
	}
	if _, err := fmt.Fprintf(writer, "Showing %d games (%d not found in the game database)\n", len(results), unknown); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Checked against %d monitors and %d panels in %v. Cache backend: %s\n",
		len(cfg.Monitors), len(cfg.Panels), duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVGameResults writes the check results in CSV format.
func writeCSVGameResults(w io.Writer, results []schema.GameCompatibility) error {
	header := []string{
		"rank",
		"game_input",
		"game_name",
		"title",
		"emulation",
		"video",
		"controls",
		"overall",
		"known",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range results {
			name := ""
			if r.Game != nil {
				name = r.Game.Name
			}
			rec := []string{
				strconv.Itoa(i + 1),
				r.GameNameInput,
				name,
				r.Game.Title(),
				r.EmuComp.Status.String(),
				r.BestVideoStatus.String(),
				r.BestControlsStatus.String(),
				contract.GetPlainLabel(r.OverallStatus),
				contract.GetPlainLabel(r.KnownOverallStatus),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// JSONMonitorVerdict is the video verdict on one monitor.
type JSONMonitorVerdict struct {
	Monitor  string             `json:"monitor"`
	Status   schema.VideoStatus `json:"status"`
	Modeline string             `json:"modeline,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// JSONPanelVerdict is the controls verdict on one panel.
type JSONPanelVerdict struct {
	Panel         string                `json:"panel"`
	Status        schema.ControlsStatus `json:"status"`
	Configuration string                `json:"configuration,omitempty"`
	Score         string                `json:"score,omitempty"`
}

// JSONGameResult is the flattened verdict for one requested game.
type JSONGameResult struct {
	Rank      int                    `json:"rank"`
	Input     string                 `json:"input"`
	Name      string                 `json:"name,omitempty"`
	Title     string                 `json:"title,omitempty"`
	Emulation schema.EmulationStatus `json:"emulation"`
	Video     schema.VideoStatus     `json:"video"`
	Controls  schema.ControlsStatus  `json:"controls"`
	Overall   schema.OverallStatus   `json:"overall"`
	Known     schema.OverallStatus   `json:"known"`
	Monitors  []JSONMonitorVerdict   `json:"monitors"`
	Panels    []JSONPanelVerdict     `json:"panels"`
}

// NewJSONGameResults flattens check results for JSON output.
func NewJSONGameResults(results []schema.GameCompatibility) []JSONGameResult {
	out := make([]JSONGameResult, len(results))
	for i, r := range results {
		jr := JSONGameResult{
			Rank:      i + 1,
			Input:     r.GameNameInput,
			Title:     r.Game.Title(),
			Emulation: r.EmuComp.Status,
			Video:     r.BestVideoStatus,
			Controls:  r.BestControlsStatus,
			Overall:   r.OverallStatus,
			Known:     r.KnownOverallStatus,
			Monitors:  make([]JSONMonitorVerdict, 0, len(r.VideoComps)),
			Panels:    make([]JSONPanelVerdict, 0, len(r.ControlsComps)),
		}
		if r.Game != nil {
			jr.Name = r.Game.Name
		}
		for _, v := range r.VideoComps {
			mv := JSONMonitorVerdict{Status: v.Status}
			if v.MonitorConfig != nil {
				mv.Monitor = v.MonitorConfig.Label()
			}
			if v.ModelineCalc != nil {
				mv.Error = v.ModelineCalc.Error
				if v.ModelineCalc.Result != nil {
					mv.Modeline = v.ModelineCalc.Result.Modeline
				}
			}
			jr.Monitors = append(jr.Monitors, mv)
		}
		for _, c := range r.ControlsComps {
			pv := JSONPanelVerdict{Status: c.Status}
			if c.CPConfig != nil {
				pv.Panel = c.CPConfig.Label()
			}
			if c.Best != nil {
				pv.Configuration = c.Best.GameControlConfig.Name
				pv.Score = c.Best.Score.String()
			}
			jr.Panels = append(jr.Panels, pv)
		}
		out[i] = jr
	}
	return out
}

// writeJSONGameResults writes the check results in JSON format.
func writeJSONGameResults(w io.Writer, results []schema.GameCompatibility) error {
	return writeJSON(w, NewJSONGameResults(results))
}
