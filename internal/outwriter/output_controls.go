package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// JSONPanelExplain is the full controls audit trail on one panel.
type JSONPanelExplain struct {
	Panel  string                                     `json:"panel"`
	Status schema.ControlsStatus                      `json:"status"`
	Best   *schema.ControlConfigurationCompatibility  `json:"best,omitempty"`
	All    []schema.ControlConfigurationCompatibility `json:"all"`
}

// NewJSONPanelExplains labels every controls verdict with its panel.
func NewJSONPanelExplains(comps []schema.ControlsCompatibility) []JSONPanelExplain {
	out := make([]JSONPanelExplain, len(comps))
	for i, c := range comps {
		e := JSONPanelExplain{Status: c.Status, Best: c.Best, All: c.All}
		if c.CPConfig != nil {
			e.Panel = c.CPConfig.Label()
		}
		out[i] = e
	}
	return out
}

// WriteControlsExplain prints how the controls of one game were allocated on every panel.
// Detail mode adds the configurations that lost and every optimization round.
func WriteControlsExplain(result schema.GameCompatibility, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, NewJSONPanelExplains(result.ControlsComps))
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeControlsText(w, result, cfg)
	}, "Wrote explain")
}

func writeControlsText(w io.Writer, result schema.GameCompatibility, cfg *contract.Config) error {
	if result.Game == nil {
		_, err := fmt.Fprintf(w, "Game %q not found in the game database\n", result.GameNameInput)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s (%s)\n", result.Game.Title(), result.Game.Name); err != nil {
		return err
	}

	for _, comp := range result.ControlsComps {
		label := ""
		if comp.CPConfig != nil {
			label = comp.CPConfig.Label()
		}
		if _, err := fmt.Fprintf(w, "\nPanel %s: %s\n", label, statusLabel(comp.Status, cfg.UseColors)); err != nil {
			return err
		}
		if len(comp.All) == 0 {
			if _, err := fmt.Fprintln(w, "  no control configurations known for this game"); err != nil {
				return err
			}
			continue
		}

		configs := comp.All
		if !cfg.Detail {
			configs = configs[:1]
		}
		for i := range configs {
			if err := writeConfigTable(w, &configs[i], i == 0, cfg); err != nil {
				return err
			}
			if cfg.Detail {
				if err := writeConfigRounds(w, &configs[i]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func writeConfigTable(w io.Writer, cc *schema.ControlConfigurationCompatibility, best bool, cfg *contract.Config) error {
	name := cc.GameControlConfig.Name
	if name == "" {
		name = "default"
	}
	marker := ""
	if best {
		marker = " [best]"
	}
	if _, err := fmt.Fprintf(w, "Configuration %q (%s)%s: %s score=%s\n",
		name, cc.GameControlConfig.TargetCabinetType, marker, statusLabel(cc.Status, cfg.UseColors), cc.Score); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Set", "Game control", "Panel control", "Control", "Buttons", "Status"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for i, sc := range cc.ControlSetComps {
		set := setLabel(i, sc.GameControlSet)
		for _, c := range sc.ControlComps {
			data = append(data, []string{
				set,
				gameControlLabel(c.GameControl),
				cpControlLabel(c.CPControl),
				statusLabel(c.ControlStatus, cfg.UseColors),
				statusLabel(c.ButtonsStatus, cfg.UseColors),
				statusLabel(c.Status, cfg.UseColors),
			})
		}
		data = append(data, []string{
			set,
			fmt.Sprintf("%d panel buttons", len(sc.ButtonsComp.GameButtons)),
			clusterLabel(sc.ButtonsComp.CPButtonCluster),
			"",
			statusLabel(sc.ButtonsComp.Status, cfg.UseColors),
			statusLabel(sc.Status, cfg.UseColors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeConfigRounds(w io.Writer, cc *schema.ControlConfigurationCompatibility) error {
	for i, r := range cc.Rounds {
		if _, err := fmt.Fprintf(w, "  round %d: %d controls and %d clusters free, %d of %d sets allocated\n",
			i+1, len(r.AvailableControls), len(r.AvailableButtonClusters), len(r.Allocated), len(r.All)); err != nil {
			return err
		}
		for _, opt := range r.All {
			if _, err := fmt.Fprintf(w, "    %s best=%s\n", playersLabel(opt.GameControlSet), opt.Best.Score); err != nil {
				return err
			}
		}
	}
	return nil
}

func setLabel(i int, s *schema.GameControlSet) string {
	kind := "optional"
	if s.IsRequired {
		kind = "required"
	}
	return fmt.Sprintf("#%d %s %s", i+1, playersLabel(s), kind)
}

func playersLabel(s *schema.GameControlSet) string {
	if len(s.SupportedPlayerNums) == 0 {
		return "P?"
	}
	nums := make([]string, len(s.SupportedPlayerNums))
	for i, n := range s.SupportedPlayerNums {
		nums[i] = strconv.Itoa(n)
	}
	return "P" + strings.Join(nums, "/")
}

func gameControlLabel(c *schema.GameControl) string {
	label := string(c.Type)
	if c.Descriptor != "" {
		label += " (" + c.Descriptor + ")"
	}
	if n := len(c.Buttons); n > 0 {
		label += fmt.Sprintf(" +%d", n)
	}
	return label
}

func cpControlLabel(c *schema.CPControl) string {
	if c == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", c.Name, c.Type)
}

func clusterLabel(c *schema.CPButtonCluster) string {
	if c == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%d)", c.Name, c.NumButtons)
}
