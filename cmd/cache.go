package cmd

import (
	"fmt"

	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/internal/iocache"
	"github.com/arcadecab/cabcheck/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// No history tracking for cache commands
	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on modeline cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of the full
// sharedSetup used by check commands. This avoids loading the game database and
// building the hardware for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the modeline calculation cache",
	Long: `Manage the cache of modeline calculations that speeds up repeated checks.

cabcheck caches each calculator result per monitor setting and game, so repeated runs
only send games the calculator has not seen to the external command. Entries expire
after 7 days.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached modeline calculations",
	Long: `Delete all cached modeline calculations from the configured backend.

Use this after upgrading the calculator or changing its settings.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  cabcheck cache clear
  CABCHECK_CACHE_BACKEND=mysql CABCHECK_CACHE_DB_CONNECT="..." cabcheck cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Release the SQLite file before removing it
		iocache.CloseStores()
		dbPath := cfg.CacheDBConnect
		if dbPath == "" {
			dbPath = contract.GetCacheDBFilePath()
		}
		if err := iocache.ClearCache(cfg.CacheBackend, dbPath, cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show the backend, connection state, number of entries, newest and oldest entry
and table size of the modeline cache.`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetModelineStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}
