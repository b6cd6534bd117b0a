// Package cmd defines the command-line interface for cabcheck.
package cmd

import (
	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(controlsCmd)
	rootCmd.AddCommand(panelsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("detail", false, "Print every monitor, panel and allocation round")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("games-db", contract.DefaultGamesDBFile, "Path to the YAML game database")
	rootCmd.PersistentFlags().String("overrides", "", "Path to a YAML file of games that take precedence over the database")
	rootCmd.PersistentFlags().String("control-defs", "", "Path to a YAML control-definition registry (defaults to the built-in one)")
	rootCmd.PersistentFlags().String("calculator-cmd", "", "External modeline calculator command (reads JSON on stdin)")
	rootCmd.PersistentFlags().String("calculator-timeout", contract.DefaultCalculatorTimeout.String(), "Timeout for one calculator call")
	rootCmd.PersistentFlags().String("modeline-table", "", "Path to a precomputed YAML modeline table (instead of a calculator)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Modeline cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname?parseTime=true)")
	rootCmd.PersistentFlags().String("history-backend", "", "Check history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for check history (a SQLite file must differ from the cache file)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Log flags map onto the nested log section of the config file
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	if err := viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		contract.LogFatal("Error binding log level flag", err)
	}
	if err := viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format")); err != nil {
		contract.LogFatal("Error binding log format flag", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().Bool("all", false, "Check every game in the database")
	checkCmd.Flags().String("sort", string(schema.SortByStatus), "Result order: status or input")
	checkCmd.Flags().String("min-status", "", "Fail when any game rates below this status (e.g. OK or GOOD)")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of controlsCmd to Viper
	controlsCmd.Flags().String("panel", "", "Restrict the explanation to one panel ID or name")
	if err := viper.BindPFlags(controlsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding controls flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
