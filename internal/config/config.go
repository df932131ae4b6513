// ABOUTME: Centralized configuration for the wage explorer
// ABOUTME: Loads an optional YAML file, then environment variables, with validation
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harper/wage-explorer/internal/dataset"
	"github.com/harper/wage-explorer/internal/storage/sqlite"
)

// DefaultDatasetFile is the published OEWS file name looked up in the data directory
const DefaultDatasetFile = "all_data_M_2023.parquet"

// Config holds all configuration for the wage explorer
type Config struct {
	// Dataset settings
	DataPath    string
	DataFormat  string
	SQLTable    string
	LoadTimeout time.Duration

	// Snapshot written by the import command
	SnapshotPath string

	// Web dashboard
	ListenAddr string

	// Maximum values returned by MCP list tools
	ListLimit int
}

// Defaults returns the configuration used when nothing is set
func Defaults() *Config {
	return &Config{
		DataPath:     filepath.Join(sqlite.DefaultDataDir(), DefaultDatasetFile),
		DataFormat:   string(dataset.FormatAuto),
		SQLTable:     dataset.DefaultTable,
		LoadTimeout:  30 * time.Second,
		SnapshotPath: sqlite.DefaultDBPath(),
		ListenAddr:   ":8501",
		ListLimit:    100,
	}
}

// Load reads configuration: defaults, then the YAML file named by
// WAGES_CONFIG (if any), then environment variables.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("WAGES_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.DataPath = getEnv("WAGES_DATA", cfg.DataPath)
	cfg.DataFormat = getEnv("WAGES_DATA_FORMAT", cfg.DataFormat)
	cfg.SQLTable = getEnv("WAGES_SQL_TABLE", cfg.SQLTable)
	cfg.LoadTimeout = getEnvDuration("WAGES_LOAD_TIMEOUT", cfg.LoadTimeout)
	cfg.SnapshotPath = getEnv("WAGES_SNAPSHOT_DB", cfg.SnapshotPath)
	cfg.ListenAddr = getEnv("WAGES_LISTEN_ADDR", cfg.ListenAddr)
	cfg.ListLimit = getEnvInt("WAGES_LIST_LIMIT", cfg.ListLimit)

	return cfg, cfg.Validate()
}

// fileConfig mirrors Config with a string timeout so "30s" parses
type fileConfig struct {
	DataPath     string `yaml:"data"`
	DataFormat   string `yaml:"data_format"`
	SQLTable     string `yaml:"sql_table"`
	LoadTimeout  string `yaml:"load_timeout"`
	SnapshotPath string `yaml:"snapshot_db"`
	ListenAddr   string `yaml:"listen_addr"`
	ListLimit    int    `yaml:"list_limit"`
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fc.DataPath != "" {
		c.DataPath = fc.DataPath
	}
	if fc.DataFormat != "" {
		c.DataFormat = fc.DataFormat
	}
	if fc.SQLTable != "" {
		c.SQLTable = fc.SQLTable
	}
	if fc.LoadTimeout != "" {
		d, err := time.ParseDuration(fc.LoadTimeout)
		if err != nil {
			return fmt.Errorf("config file %s: load_timeout: %w", path, err)
		}
		c.LoadTimeout = d
	}
	if fc.SnapshotPath != "" {
		c.SnapshotPath = fc.SnapshotPath
	}
	if fc.ListenAddr != "" {
		c.ListenAddr = fc.ListenAddr
	}
	if fc.ListLimit != 0 {
		c.ListLimit = fc.ListLimit
	}
	return nil
}

func (c *Config) Validate() error {
	if _, err := dataset.ParseFormat(c.DataFormat); err != nil {
		return fmt.Errorf("WAGES_DATA_FORMAT: %w", err)
	}
	if !dataset.ValidTableName(c.SQLTable) {
		return fmt.Errorf("WAGES_SQL_TABLE must be a table identifier, got %q", c.SQLTable)
	}
	if c.LoadTimeout <= 0 {
		return fmt.Errorf("WAGES_LOAD_TIMEOUT must be positive, got %v", c.LoadTimeout)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("WAGES_LISTEN_ADDR must not be empty")
	}
	if c.ListLimit < 1 || c.ListLimit > 10000 {
		return fmt.Errorf("WAGES_LIST_LIMIT must be 1-10000, got %d", c.ListLimit)
	}
	return nil
}

// Source builds the dataset source described by the configuration
func (c *Config) Source() (dataset.Source, error) {
	format, err := dataset.ParseFormat(c.DataFormat)
	if err != nil {
		return nil, err
	}
	return dataset.SourceFor(c.DataPath, format, c.SQLTable)
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
