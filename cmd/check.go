package cmd

import (
	"github.com/arcadecab/cabcheck/core"
	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd rates games against the configured cabinet.
var checkCmd = &cobra.Command{
	Use:   "check [game...]",
	Short: "Rate games against your monitors and control panels",
	Long: `Rate each game on three dimensions and combine them into one verdict.

- Emulation: the driver status of the game in the database
- Video: how the modeline calculator maps the game onto each monitor
- Controls: how the game controls are allocated onto each control panel

The best monitor and the best panel count. The overall status is the worst of the
three dimensions; the known status ignores dimensions that could not be rated.

With --min-status the command fails when any game rates below the threshold,
which makes it usable as a gate for curated game lists.

Examples:
  # Check two games
  cabcheck check sf2 pacman

  # Check the whole database, best games first, as CSV
  cabcheck check --all --output csv --output-file games.csv

  # Fail when a game on the list is not at least OK
  cabcheck check --min-status OK sf2 mslug galaga`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Check failed", err)
		}
	},
}

// controlsCmd explains the control allocation of one game.
var controlsCmd = &cobra.Command{
	Use:   "controls <game>",
	Short: "Explain how one game's controls map onto your panels",
	Long: `Show the control configuration chosen for a game on every control panel,
with the panel control and button cluster picked for each game control.

--detail adds the configurations that lost and every optimization round.

Examples:
  # Explain sf2 on every panel
  cabcheck controls sf2

  # Full audit trail on one panel
  cabcheck controls sf2 --panel "Two player" --detail`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteControls(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Controls check failed", err)
		}
	},
}

// panelsCmd prints the configured hardware.
var panelsCmd = &cobra.Command{
	Use:   "panels",
	Short: "List the configured monitors and control panels",
	Long: `Print the monitors and control panels built from the config file, with
generated IDs and default button counts filled in.

Examples:
  cabcheck panels
  cabcheck panels --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePanels(rootCtx, cfg); err != nil {
			contract.LogFatal("Failed to list hardware", err)
		}
	},
}
