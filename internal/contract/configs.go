package contract

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/arcadecab/cabcheck/schema"
)

// Default values for configuration.
const (
	DefaultGamesDBFile       = "games.yaml"
	DefaultCalculatorTimeout = 60 * time.Second
	MaxGameNames             = 10000
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// PanelControlRaw is a physical control as written in the config file.
type PanelControlRaw struct {
	ID                 string `mapstructure:"id"`
	Name               string `mapstructure:"name"`
	Type               string `mapstructure:"type"`
	Buttons            *int   `mapstructure:"buttons"` // nil means the control type default
	OppositeScreenSide bool   `mapstructure:"opposite-screen-side"`
}

// PanelButtonClusterRaw is a button cluster as written in the config file.
type PanelButtonClusterRaw struct {
	ID                 string `mapstructure:"id"`
	Name               string `mapstructure:"name"`
	Buttons            int    `mapstructure:"buttons"`
	OppositeScreenSide bool   `mapstructure:"opposite-screen-side"`
}

// PanelControlSetRaw groups controls and a cluster by ID.
type PanelControlSetRaw struct {
	Controls      []string `mapstructure:"controls"`
	ButtonCluster string   `mapstructure:"button-cluster"`
}

// PanelRawInput is one control panel from the config file.
type PanelRawInput struct {
	ID             string                  `mapstructure:"id"`
	Name           string                  `mapstructure:"name"`
	Controls       []PanelControlRaw       `mapstructure:"controls"`
	ButtonClusters []PanelButtonClusterRaw `mapstructure:"button-clusters"`
	ControlSets    []PanelControlSetRaw    `mapstructure:"control-sets"`
}

// MonitorRawInput is one monitor from the config file.
type MonitorRawInput struct {
	ID          string   `mapstructure:"id"`
	Name        string   `mapstructure:"name"`
	Preset      string   `mapstructure:"preset"`
	Orientation string   `mapstructure:"orientation"`
	Ranges      []string `mapstructure:"ranges"`
	Interlace   bool     `mapstructure:"interlace"`
	Doublescan  bool     `mapstructure:"doublescan"`
}

// ThresholdsRawInput holds the gating thresholds from the YAML config file.
type ThresholdsRawInput struct {
	MinStatus string `mapstructure:"min-status"`
}

// Config holds the runtime configuration for a check.
// This struct remains the "final, validated" config.
type Config struct {
	GameNames  []string
	AllGames   bool
	Output     schema.OutputMode
	OutputFile string
	Sort       schema.SortOrder
	Detail     bool
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	GamesDBPath     string
	OverridesPath   string
	ControlDefsPath string

	CalculatorCmd     string
	CalculatorTimeout time.Duration
	ModelineTablePath string

	PanelFilter string // Restricts controls explain output to one panel ID or name

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	// GateEnabled turns on the minimum status check of the check command
	GateEnabled bool
	MinStatus   schema.OverallStatus

	// Hardware and control definitions are built after validation
	ControlDefs *schema.ControlDefRegistry
	Monitors    []schema.MonitorConfiguration
	Panels      []schema.CPConfiguration
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	GameNameArgs []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Color             string `mapstructure:"color"`
	Width             int    `mapstructure:"width"`
	GamesDB           string `mapstructure:"games-db"`
	Overrides         string `mapstructure:"overrides"`
	ControlDefs       string `mapstructure:"control-defs"`
	CalculatorCmd     string `mapstructure:"calculator-cmd"`
	CalculatorTimeout string `mapstructure:"calculator-timeout"`
	ModelineTable     string `mapstructure:"modeline-table"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	HistoryBackend    string `mapstructure:"history-backend"`
	HistoryDBConnect  string `mapstructure:"history-db-connect"`

	// --- Fields from checkCmd.Flags() ---
	All       bool   `mapstructure:"all"`
	Sort      string `mapstructure:"sort"`
	Detail    bool   `mapstructure:"detail"`
	MinStatus string `mapstructure:"min-status"`

	// --- Fields from controlsCmd.Flags() ---
	Panel string `mapstructure:"panel"`

	// --- Hardware from config file ---
	Monitors []MonitorRawInput `mapstructure:"monitors"`
	Panels   []PanelRawInput   `mapstructure:"panels"`

	// --- Gating thresholds from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.GameNames = slices.Clone(c.GameNames)
	clone.Monitors = slices.Clone(c.Monitors)
	if c.Panels != nil {
		clone.Panels = make([]schema.CPConfiguration, len(c.Panels))
		for i, p := range c.Panels {
			p.Controls = slices.Clone(p.Controls)
			p.ButtonClusters = slices.Clone(p.ButtonClusters)
			p.ControlSets = slices.Clone(p.ControlSets)
			clone.Panels[i] = p
		}
	}
	return &clone
}

// FindPanel returns the panel matching the given ID or name, case-insensitively.
func (c *Config) FindPanel(ref string) (*schema.CPConfiguration, bool) {
	for i := range c.Panels {
		p := &c.Panels[i]
		if strings.EqualFold(p.ID, ref) || strings.EqualFold(p.Name, ref) {
			return p, true
		}
	}
	return nil, false
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache backend: %w", err)
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("history backend: %w", err)
	}

	// SQLite stores must not share a file since both create their own tables
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		historyDBPath := cfg.HistoryDBConnect
		if historyDBPath == "" {
			historyDBPath = GetHistoryDBFilePath()
		}
		if cacheDBPath == historyDBPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-hardware fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.AllGames = input.All
	cfg.GamesDBPath = input.GamesDB
	cfg.OverridesPath = input.Overrides
	cfg.ControlDefsPath = input.ControlDefs
	cfg.CalculatorCmd = strings.TrimSpace(input.CalculatorCmd)
	cfg.ModelineTablePath = input.ModelineTable
	cfg.PanelFilter = strings.TrimSpace(input.Panel)

	if cfg.GamesDBPath == "" {
		cfg.GamesDBPath = DefaultGamesDBFile
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Game names ---
	cfg.GameNames = cfg.GameNames[:0]
	for _, name := range input.GameNameArgs {
		if name = strings.TrimSpace(name); name != "" {
			cfg.GameNames = append(cfg.GameNames, name)
		}
	}
	if len(cfg.GameNames) > MaxGameNames {
		return fmt.Errorf("cannot check more than %d games at once (received %d)", MaxGameNames, len(cfg.GameNames))
	}

	// --- 2. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 3. Sort Validation ---
	cfg.Sort = schema.SortOrder(strings.ToLower(input.Sort))
	if cfg.Sort == "" {
		cfg.Sort = schema.SortByStatus
	}
	if _, ok := schema.ValidSortOrders[cfg.Sort]; !ok {
		return fmt.Errorf("invalid sort order '%s'. must be status, input", input.Sort)
	}

	// --- 4. Calculator timeout ---
	cfg.CalculatorTimeout = DefaultCalculatorTimeout
	if input.CalculatorTimeout != "" {
		d, err := time.ParseDuration(input.CalculatorTimeout)
		if err != nil {
			return fmt.Errorf("invalid calculator timeout %q: %w", input.CalculatorTimeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("calculator timeout must be positive (received %s)", d)
		}
		cfg.CalculatorTimeout = d
	}

	if cfg.CalculatorCmd != "" && cfg.ModelineTablePath != "" {
		return fmt.Errorf("--calculator-cmd and --modeline-table are mutually exclusive")
	}
	return nil
}

// processThresholds resolves the minimum status gate. The --min-status flag takes
// precedence over the config file.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	raw := input.Thresholds.MinStatus
	if input.MinStatus != "" {
		raw = input.MinStatus
	}
	if raw == "" {
		cfg.GateEnabled = false
		return nil
	}
	status, err := schema.ParseOverallStatus(raw)
	if err != nil {
		return fmt.Errorf("invalid min status: %w", err)
	}
	if !schema.IsKnown(status) {
		return fmt.Errorf("min status must be a known status (received %s)", status)
	}
	cfg.GateEnabled = true
	cfg.MinStatus = status
	return nil
}
