// ABOUTME: Source abstraction over the dataset's persisted formats
// ABOUTME: Picks parquet, CSV or a SQL database from an explicit format or the location
package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/harper/wage-explorer/internal/models"
)

// Source reads every row of a persisted dataset
type Source interface {
	Load(ctx context.Context) ([]models.WageRecord, error)
	String() string
}

// Format names a persisted dataset format
type Format string

const (
	FormatAuto       Format = "auto"
	FormatParquet    Format = "parquet"
	FormatCSV        Format = "csv"
	FormatSQLite     Format = "sqlite"
	FormatPostgres   Format = "postgres"
	FormatClickHouse Format = "clickhouse"
)

// Formats lists every accepted format
func Formats() []Format {
	return []Format{FormatAuto, FormatParquet, FormatCSV, FormatSQLite, FormatPostgres, FormatClickHouse}
}

// ParseFormat validates a format name; empty means auto
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatAuto, nil
	}
	for _, f := range Formats() {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown dataset format %q", s)
}

// DetectFormat infers the format from a file path or DSN
func DetectFormat(location string) (Format, error) {
	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return FormatPostgres, nil
	case strings.HasPrefix(lower, "clickhouse://"):
		return FormatClickHouse, nil
	case strings.HasPrefix(lower, "sqlite://"):
		return FormatSQLite, nil
	}

	switch filepath.Ext(lower) {
	case ".parquet", ".pq":
		return FormatParquet, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("cannot infer dataset format from %q; set the format explicitly", location)
}

// SourceFor builds the Source for location. table names the SQL table for
// database formats and is ignored for files.
func SourceFor(location string, format Format, table string) (Source, error) {
	if location == "" {
		return nil, unavailable("(unset)", nil, "no dataset location configured")
	}
	if format == "" || format == FormatAuto {
		detected, err := DetectFormat(location)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	switch format {
	case FormatParquet:
		return &ParquetSource{Path: location}, nil
	case FormatCSV:
		return &CSVSource{Path: location}, nil
	case FormatSQLite:
		return &SQLiteSource{Path: strings.TrimPrefix(location, "sqlite://"), Table: table}, nil
	case FormatPostgres:
		return NewSQLSource(DriverPostgres, location, table), nil
	case FormatClickHouse:
		return NewSQLSource(DriverClickHouse, location, table), nil
	}
	return nil, fmt.Errorf("unknown dataset format %q", format)
}
