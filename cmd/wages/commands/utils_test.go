// ABOUTME: Tests for shared CLI helpers
// ABOUTME: Covers output format selection and flag overrides of config

package commands

import (
	"testing"
)

func TestWantJSON(t *testing.T) {
	defer func() { outputFormat = "auto" }()

	tests := []struct {
		format  string
		want    bool
		wantErr bool
	}{
		{"auto", false, false},
		{"table", false, false},
		{"", false, false},
		{"json", true, false},
		{"yaml", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			outputFormat = tt.format
			got, err := wantJSON()
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("wantJSON() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("WAGES_DATA", "/env/data.parquet")
	defer func() { dataPath, dataFormat = "", "" }()

	dataPath = "/flag/data.csv"
	dataFormat = "csv"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.DataPath != "/flag/data.csv" {
		t.Errorf("DataPath = %q, want flag value", cfg.DataPath)
	}
	if cfg.DataFormat != "csv" {
		t.Errorf("DataFormat = %q, want csv", cfg.DataFormat)
	}

	dataFormat = "xlsx"
	if _, err := loadConfig(); err == nil {
		t.Error("loadConfig() should reject an unknown --data-format")
	}
}
