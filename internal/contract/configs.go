package contract

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/mquintal/graphlens/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
)

// CacheTTL is how long a cached analysis result stays valid. Snapshots
// are immutable, but weights and code change; a short TTL keeps stale
// combinations from lingering.
const CacheTTL = 5 * time.Minute

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ModeWeightsRaw holds the custom weights for a single scoring mode (e.g., 'broker').
// Only fields that might be customized are included. Use float64 pointers for optional fields.
type ModeWeightsRaw struct {
	Degree         *float64 `mapstructure:"degree"`
	Betweenness    *float64 `mapstructure:"betweenness"`
	Closeness      *float64 `mapstructure:"closeness"`
	Clustering     *float64 `mapstructure:"clustering"`
	Eigenvector    *float64 `mapstructure:"eigenvector"`
	InvDegree      *float64 `mapstructure:"inv_degree"`
	InvCloseness   *float64 `mapstructure:"inv_closeness"`
	InvClustering  *float64 `mapstructure:"inv_clustering"`
	InvEigenvector *float64 `mapstructure:"inv_eigenvector"`
}

// WeightsRawInput holds all custom scoring definitions from the YAML config file.
type WeightsRawInput struct {
	Influence *ModeWeightsRaw `mapstructure:"influence"`
	Broker    *ModeWeightsRaw `mapstructure:"broker"`
	Anchor    *ModeWeightsRaw `mapstructure:"anchor"`
	Periphery *ModeWeightsRaw `mapstructure:"periphery"`
}

// ThresholdsRawInput holds check threshold definitions from the YAML config file.
type ThresholdsRawInput struct {
	Influence *float64 `mapstructure:"influence"`
	Broker    *float64 `mapstructure:"broker"`
	Anchor    *float64 `mapstructure:"anchor"`
	Periphery *float64 `mapstructure:"periphery"`
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	SnapshotPath string
	TypeFilter   schema.NodeType // Restrict analysis to one node type ("" = all)
	ResultLimit  int
	Workers      int
	Mode         schema.ScoringMode
	Excludes     []string
	Detail       bool
	Explain      bool
	Precision    int
	Output       schema.OutputMode
	OutputFile   string
	Width        int // Terminal width override (0 = auto-detect)

	CompareMode    bool
	BaseSnapshot   string
	TargetSnapshot string

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	// CustomWeights is a mapping of [ModeName][BreakdownKey] = Weight
	CustomWeights map[schema.ScoringMode]map[schema.BreakdownKey]float64

	// ComputedWeights is the final weights map for each mode, computed from defaults + custom overrides
	ComputedWeights map[schema.ScoringMode]map[schema.BreakdownKey]float64

	// CheckThresholds is a mapping of [ModeName] = Threshold score value
	CheckThresholds map[schema.ScoringMode]float64

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	SnapshotPathStr string

	// SnapshotOptional is set manually by server commands that receive
	// snapshot paths per request instead of at startup, so no tag
	SnapshotOptional bool

	// --- Fields from rootCmd.PersistentFlags() ---
	TypeFilter        string `mapstructure:"type"`
	OutputFile        string `mapstructure:"output-file"`
	Limit             int    `mapstructure:"limit"`
	Workers           int    `mapstructure:"workers"`
	Mode              string `mapstructure:"mode"`
	Exclude           string `mapstructure:"exclude"`
	Precision         int    `mapstructure:"precision"`
	Output            string `mapstructure:"output"`
	Detail            bool   `mapstructure:"detail"`
	Width             int    `mapstructure:"width"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`
	Emoji             string `mapstructure:"emoji"`
	Color             string `mapstructure:"color"`

	// --- Fields from nodesCmd.Flags() ---
	Explain bool `mapstructure:"explain"`

	// --- Fields from compareCmd.Flags() ---
	BaseSnapshot   string `mapstructure:"base-snapshot"`
	TargetSnapshot string `mapstructure:"target-snapshot"`

	// --- Fields from checkCmd.Flags() ---
	ThresholdsStr string `mapstructure:"thresholds-override"`

	// --- Custom weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`

	// --- Check thresholds from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	if c.CustomWeights != nil {
		clone.CustomWeights = make(map[schema.ScoringMode]map[schema.BreakdownKey]float64)
		for mode, modeMap := range c.CustomWeights {
			clone.CustomWeights[mode] = make(map[schema.BreakdownKey]float64)
			maps.Copy(clone.CustomWeights[mode], modeMap)
		}
	}
	if c.ComputedWeights != nil {
		clone.ComputedWeights = make(map[schema.ScoringMode]map[schema.BreakdownKey]float64)
		for mode, modeMap := range c.ComputedWeights {
			clone.ComputedWeights[mode] = make(map[schema.BreakdownKey]float64)
			maps.Copy(clone.ComputedWeights[mode], modeMap)
		}
	}
	if c.CheckThresholds != nil {
		clone.CheckThresholds = make(map[schema.ScoringMode]float64)
		maps.Copy(clone.CheckThresholds, c.CheckThresholds)
	}
	return &clone
}

// CloneWithSnapshot creates a copy of the Config pointed at a different
// snapshot path. Used by comparison to analyze base and target with the
// same settings.
func (c *Config) CloneWithSnapshot(path string) *Config {
	clone := c.Clone()
	clone.SnapshotPath = path
	return clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processCompareMode(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	if err := processCheckThresholds(cfg, input); err != nil {
		return err
	}
	if err := resolveSnapshotPath(cfg, input); err != nil {
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
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
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

// validateBackendConfigs validates cache and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Analysis Backend Validation ---
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
			return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
		}
		cfg.AnalysisDBConnect = input.AnalysisDBConnect
		if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
			return err
		}

		// Validate that cache and analysis use different databases
		if cfg.CacheBackend == cfg.AnalysisBackend && cfg.CacheBackend != schema.NoneBackend {
			// For SQLite, resolve to actual file paths to catch default path conflicts
			if cfg.CacheBackend == schema.SQLiteBackend {
				cacheDBPath := cfg.CacheDBConnect
				if cacheDBPath == "" {
					cacheDBPath = GetCacheDBFilePath()
				}
				analysisDBPath := cfg.AnalysisDBConnect
				if analysisDBPath == "" {
					analysisDBPath = GetAnalysisDBFilePath()
				}
				if cacheDBPath == analysisDBPath {
					return fmt.Errorf("cache and analysis storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
				}
			}
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Mode Validation ---
	cfg.Mode = schema.ScoringMode(strings.ToLower(input.Mode))
	if _, ok := schema.ValidScoringModes[cfg.Mode]; !ok {
		return fmt.Errorf("invalid mode '%s'. must be influence, broker, anchor, periphery", input.Mode)
	}

	// --- 4. Type Filter Validation ---
	if input.TypeFilter != "" {
		cfg.TypeFilter = schema.NodeType(strings.ToLower(input.TypeFilter))
		if _, ok := schema.ValidNodeTypes[cfg.TypeFilter]; !ok {
			return fmt.Errorf("invalid node type '%s'", input.TypeFilter)
		}
	}

	// --- 5. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- 6. Backend Validation ---
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}

	// --- 7. Excludes Processing ---
	if input.Exclude != "" {
		parts := strings.SplitSeq(input.Exclude, ",")
		for p := range parts {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	return nil
}

// processCompareMode handles the comparison snapshot paths.
func processCompareMode(cfg *Config, input *ConfigRawInput) error {
	cfg.BaseSnapshot = strings.TrimSpace(input.BaseSnapshot)
	cfg.TargetSnapshot = strings.TrimSpace(input.TargetSnapshot)

	if cfg.BaseSnapshot == "" && cfg.TargetSnapshot == "" {
		cfg.CompareMode = false
		return nil
	}
	cfg.CompareMode = true

	if cfg.BaseSnapshot == "" {
		return fmt.Errorf("must specify --base-snapshot when running the compare command")
	}
	if cfg.TargetSnapshot == "" {
		return fmt.Errorf("must specify --target-snapshot when running the compare command")
	}

	return nil
}

// ProcessWeightsRawInput converts WeightsRawInput into the final weights map.
// If validateSum is true, it validates that weights for each mode sum to 1.0.
func ProcessWeightsRawInput(weights WeightsRawInput, validateSum bool) (map[schema.ScoringMode]map[schema.BreakdownKey]float64, error) {
	result := make(map[schema.ScoringMode]map[schema.BreakdownKey]float64)

	modeWeights := map[schema.ScoringMode]*ModeWeightsRaw{
		schema.InfluenceMode: weights.Influence,
		schema.BrokerMode:    weights.Broker,
		schema.AnchorMode:    weights.Anchor,
		schema.PeripheryMode: weights.Periphery,
	}

	// Process each mode's raw weights and validate sums if required.
	// Skip modes that are nil (not provided)
	for _, mode := range schema.AllScoringModes {
		rawMode := modeWeights[mode]
		if rawMode == nil {
			continue
		}

		modeMap := make(map[schema.BreakdownKey]float64)
		sum := 0.0

		fields := []struct {
			value *float64
			key   schema.BreakdownKey
		}{
			{rawMode.Degree, schema.BreakdownDegree},
			{rawMode.Betweenness, schema.BreakdownBetweenness},
			{rawMode.Closeness, schema.BreakdownCloseness},
			{rawMode.Clustering, schema.BreakdownClustering},
			{rawMode.Eigenvector, schema.BreakdownEigenvector},
			{rawMode.InvDegree, schema.BreakdownInvDegree},
			{rawMode.InvCloseness, schema.BreakdownInvCloseness},
			{rawMode.InvClustering, schema.BreakdownInvClustering},
			{rawMode.InvEigenvector, schema.BreakdownInvEigenvector},
		}
		for _, f := range fields {
			if f.value != nil {
				modeMap[f.key] = *f.value
				sum += *f.value
			}
		}

		// Only add to result if we have at least one weight
		if len(modeMap) > 0 {
			if validateSum && (sum < 0.999 || sum > 1.001) {
				return nil, fmt.Errorf("custom weights for mode %s must sum to 1.0, got %.3f", mode, sum)
			}
			result[mode] = modeMap
		}
	}

	return result, nil
}

// processCustomWeights converts the raw input into the final cfg.CustomWeights map
// and validates that the provided weights for any mode sum up to 1.0.
// Also computes the final ComputedWeights for each mode.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	weights, err := ProcessWeightsRawInput(input.Weights, true)
	if err != nil {
		return err
	}
	cfg.CustomWeights = weights

	// Compute final weights for each mode
	cfg.ComputedWeights = make(map[schema.ScoringMode]map[schema.BreakdownKey]float64)
	for _, mode := range schema.AllScoringModes {
		// Start with default weights
		defaultWeights := schema.GetDefaultWeights(mode)

		// Override with custom weights if provided
		modeWeights := make(map[schema.BreakdownKey]float64)
		maps.Copy(modeWeights, defaultWeights)

		if cfg.CustomWeights != nil {
			if customModeWeights, ok := cfg.CustomWeights[mode]; ok {
				maps.Copy(modeWeights, customModeWeights)
			}
		}

		cfg.ComputedWeights[mode] = modeWeights
	}

	return nil
}

// processCheckThresholds converts the raw threshold input into the final cfg.CheckThresholds map.
// If no thresholds are provided in the config, it initializes with default values (50.0 for all modes).
// Command-line --thresholds-override flag takes precedence over config file settings.
func processCheckThresholds(cfg *Config, input *ConfigRawInput) error {
	thresholds := make(map[schema.ScoringMode]float64)

	// Set defaults first (50.0 for all modes)
	for _, mode := range schema.AllScoringModes {
		thresholds[mode] = 50.0
	}

	// Override with config file values if provided
	if input.Thresholds.Influence != nil {
		thresholds[schema.InfluenceMode] = *input.Thresholds.Influence
	}
	if input.Thresholds.Broker != nil {
		thresholds[schema.BrokerMode] = *input.Thresholds.Broker
	}
	if input.Thresholds.Anchor != nil {
		thresholds[schema.AnchorMode] = *input.Thresholds.Anchor
	}
	if input.Thresholds.Periphery != nil {
		thresholds[schema.PeripheryMode] = *input.Thresholds.Periphery
	}

	// Override with command-line flag if provided (takes precedence)
	if input.ThresholdsStr != "" {
		parsedThresholds, err := parseCheckThresholdsString(input.ThresholdsStr)
		if err != nil {
			return fmt.Errorf("invalid --thresholds format: %w", err)
		}
		// Merge parsed values
		maps.Copy(thresholds, parsedThresholds)
	}

	// Validate thresholds
	for mode, threshold := range thresholds {
		if threshold < 0.0 || threshold > 100.0 {
			return fmt.Errorf("check threshold for mode %s must be between 0.0 and 100.0 (received %.2f)", mode, threshold)
		}
	}

	cfg.CheckThresholds = thresholds
	return nil
}

// resolveSnapshotPath resolves and validates the snapshot file path.
// Compare mode validates its own snapshot pair instead.
func resolveSnapshotPath(cfg *Config, input *ConfigRawInput) error {
	if cfg.CompareMode {
		for _, path := range []string{cfg.BaseSnapshot, cfg.TargetSnapshot} {
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("snapshot not found: %w", err)
			}
		}
		return nil
	}

	if input.SnapshotPathStr == "" {
		if input.SnapshotOptional {
			return nil
		}
		return fmt.Errorf("a snapshot path is required")
	}
	absPath, err := filepath.Abs(input.SnapshotPathStr)
	if err != nil {
		return err
	}
	absPath = filepath.Clean(absPath)

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("snapshot not found: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("snapshot path %q is a directory, expected a file", absPath)
	}

	cfg.SnapshotPath = absPath
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// parseCheckThresholdsString parses a string like "influence:50,broker:60"
// into a map of ScoringMode to float64.
func parseCheckThresholdsString(s string) (map[schema.ScoringMode]float64, error) {
	thresholds := make(map[schema.ScoringMode]float64)

	if s == "" {
		return thresholds, nil
	}

	parts := strings.SplitSeq(s, ",")
	for part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid threshold format '%s', expected 'mode:value'", part)
		}

		modeStr := strings.TrimSpace(keyValue[0])
		valueStr := strings.TrimSpace(keyValue[1])

		mode := schema.ScoringMode(strings.ToLower(modeStr))
		if _, ok := schema.ValidScoringModes[mode]; !ok {
			return nil, fmt.Errorf("invalid mode '%s', must be influence, broker, anchor, or periphery", modeStr)
		}

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold value '%s' for mode %s: %w", valueStr, mode, err)
		}

		thresholds[mode] = value
	}

	return thresholds, nil
}
