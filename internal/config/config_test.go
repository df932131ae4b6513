// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies defaults, YAML file overlay, environment overrides and validation
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harper/wage-explorer/internal/dataset"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WAGES_CONFIG", "WAGES_DATA", "WAGES_DATA_FORMAT", "WAGES_SQL_TABLE",
		"WAGES_LOAD_TIMEOUT", "WAGES_SNAPSHOT_DB", "WAGES_LISTEN_ADDR", "WAGES_LIST_LIMIT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DataPath != "/tmp/xdg/wages/all_data_M_2023.parquet" {
		t.Errorf("DataPath = %s, want /tmp/xdg/wages/all_data_M_2023.parquet", cfg.DataPath)
	}
	if cfg.DataFormat != "auto" {
		t.Errorf("DataFormat = %s, want auto", cfg.DataFormat)
	}
	if cfg.SQLTable != "wages" {
		t.Errorf("SQLTable = %s, want wages", cfg.SQLTable)
	}
	if cfg.LoadTimeout != 30*time.Second {
		t.Errorf("LoadTimeout = %v, want 30s", cfg.LoadTimeout)
	}
	if cfg.SnapshotPath != "/tmp/xdg/wages/wages.db" {
		t.Errorf("SnapshotPath = %s, want /tmp/xdg/wages/wages.db", cfg.SnapshotPath)
	}
	if cfg.ListenAddr != ":8501" {
		t.Errorf("ListenAddr = %s, want :8501", cfg.ListenAddr)
	}
	if cfg.ListLimit != 100 {
		t.Errorf("ListLimit = %d, want 100", cfg.ListLimit)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("WAGES_DATA", "postgres://localhost/oews")
	t.Setenv("WAGES_DATA_FORMAT", "postgres")
	t.Setenv("WAGES_SQL_TABLE", "oews.national")
	t.Setenv("WAGES_LOAD_TIMEOUT", "2m")
	t.Setenv("WAGES_SNAPSHOT_DB", "/srv/wages.db")
	t.Setenv("WAGES_LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("WAGES_LIST_LIMIT", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DataPath != "postgres://localhost/oews" {
		t.Errorf("DataPath = %s", cfg.DataPath)
	}
	if cfg.DataFormat != "postgres" {
		t.Errorf("DataFormat = %s, want postgres", cfg.DataFormat)
	}
	if cfg.SQLTable != "oews.national" {
		t.Errorf("SQLTable = %s, want oews.national", cfg.SQLTable)
	}
	if cfg.LoadTimeout != 2*time.Minute {
		t.Errorf("LoadTimeout = %v, want 2m", cfg.LoadTimeout)
	}
	if cfg.SnapshotPath != "/srv/wages.db" {
		t.Errorf("SnapshotPath = %s, want /srv/wages.db", cfg.SnapshotPath)
	}
	if cfg.ListenAddr != "127.0.0.1:9000" {
		t.Errorf("ListenAddr = %s, want 127.0.0.1:9000", cfg.ListenAddr)
	}
	if cfg.ListLimit != 25 {
		t.Errorf("ListLimit = %d, want 25", cfg.ListLimit)
	}
}

func TestLoad_InvalidDurationKeepsDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("WAGES_LOAD_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.LoadTimeout != 30*time.Second {
		t.Errorf("LoadTimeout = %v, want default 30s", cfg.LoadTimeout)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "wages.yaml")
	content := `data: /data/oews.csv
data_format: csv
load_timeout: 45s
listen_addr: ":8080"
list_limit: 10
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WAGES_CONFIG", path)
	t.Setenv("WAGES_LISTEN_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DataPath != "/data/oews.csv" {
		t.Errorf("DataPath = %s, want /data/oews.csv", cfg.DataPath)
	}
	if cfg.DataFormat != "csv" {
		t.Errorf("DataFormat = %s, want csv", cfg.DataFormat)
	}
	if cfg.LoadTimeout != 45*time.Second {
		t.Errorf("LoadTimeout = %v, want 45s", cfg.LoadTimeout)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %s, want environment to override file", cfg.ListenAddr)
	}
	if cfg.ListLimit != 10 {
		t.Errorf("ListLimit = %d, want 10", cfg.ListLimit)
	}
	if cfg.SQLTable != "wages" {
		t.Errorf("SQLTable = %s, want default wages", cfg.SQLTable)
	}
}

func TestLoad_ConfigFileErrors(t *testing.T) {
	clearEnv(t)

	t.Setenv("WAGES_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("Load() should fail when the config file is missing")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("load_timeout: forever\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WAGES_CONFIG", bad)
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "load_timeout") {
		t.Errorf("Load() error = %v, want load_timeout error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"bad format", func(c *Config) { c.DataFormat = "xlsx" }, "WAGES_DATA_FORMAT"},
		{"bad table", func(c *Config) { c.SQLTable = "wages;--" }, "WAGES_SQL_TABLE"},
		{"zero timeout", func(c *Config) { c.LoadTimeout = 0 }, "WAGES_LOAD_TIMEOUT"},
		{"empty addr", func(c *Config) { c.ListenAddr = "" }, "WAGES_LISTEN_ADDR"},
		{"list limit", func(c *Config) { c.ListLimit = 0 }, "WAGES_LIST_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestSource(t *testing.T) {
	cfg := Defaults()
	cfg.DataPath = "/data/oews.csv"

	src, err := cfg.Source()
	if err != nil {
		t.Fatalf("Source() error = %v", err)
	}
	if _, ok := src.(*dataset.CSVSource); !ok {
		t.Errorf("Source() = %T, want *dataset.CSVSource", src)
	}
}
