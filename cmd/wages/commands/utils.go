// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Config loading with flag overrides, loader construction and output helpers
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/harper/wage-explorer/internal/config"
	"github.com/harper/wage-explorer/internal/dataset"
)

// loadConfig reads environment configuration and applies the global flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}
	if dataFormat != "" {
		cfg.DataFormat = dataFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLoader builds the dataset loader described by cfg
func newLoader(cfg *config.Config) (*dataset.Loader, error) {
	src, err := cfg.Source()
	if err != nil {
		return nil, err
	}
	return dataset.NewLoader(src,
		dataset.WithLogger(logger),
		dataset.WithTimeout(cfg.LoadTimeout),
	), nil
}

// loadTable loads configuration and the dataset in one step
func loadTable(ctx context.Context) (*config.Config, *dataset.Table, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	loader, err := newLoader(cfg)
	if err != nil {
		return nil, nil, err
	}
	table, err := loader.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	return cfg, table, nil
}

// wantJSON reports whether output should be JSON
func wantJSON() (bool, error) {
	switch outputFormat {
	case "", "auto", "table":
		return false, nil
	case "json":
		return true, nil
	}
	return false, fmt.Errorf("unknown output format %q (want auto, table or json)", outputFormat)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintf(w, "%s\n", data)
	return nil
}
