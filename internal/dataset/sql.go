// ABOUTME: SQL dataset sources for SQLite snapshots, Postgres and ClickHouse
// ABOUTME: Selects the required columns from one table through database/sql
package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx"
	_ "github.com/jackc/pgx/stdlib"

	"github.com/harper/wage-explorer/internal/models"
	"github.com/harper/wage-explorer/internal/retry"
	"github.com/harper/wage-explorer/internal/storage/sqlite"
)

// database/sql driver names
const (
	DriverPostgres   = "pgx"
	DriverClickHouse = "clickhouse"
)

// Connection attempts made before a networked database is reported unavailable
var (
	pingAttempts = 3
	pingBackoff  = 250 * time.Millisecond
)

// DefaultTable is the table read when none is configured
const DefaultTable = sqlite.WagesTable

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// ValidTableName reports whether name can be interpolated into a query as a
// table identifier, optionally schema-qualified.
func ValidTableName(name string) bool {
	return identifierPattern.MatchString(name)
}

// SQLSource reads from a table in a networked database
type SQLSource struct {
	Driver string
	DSN    string
	Table  string
}

// NewSQLSource creates a source for driver and dsn; an empty table means DefaultTable
func NewSQLSource(driver, dsn, table string) *SQLSource {
	if table == "" {
		table = DefaultTable
	}
	return &SQLSource{Driver: driver, DSN: dsn, Table: table}
}

// String describes the source without credentials
func (s *SQLSource) String() string {
	dsn := s.DSN
	if u, err := url.Parse(s.DSN); err == nil {
		dsn = u.Redacted()
	}
	return fmt.Sprintf("%s#%s", dsn, s.Table)
}

// Load reads every row of the table
func (s *SQLSource) Load(ctx context.Context) ([]models.WageRecord, error) {
	db, err := sql.Open(s.Driver, s.DSN)
	if err != nil {
		return nil, unavailable(s.String(), err, "cannot open %s connection", s.Driver)
	}
	defer db.Close()

	err = retry.Do(ctx, pingAttempts, pingBackoff, func(ctx context.Context) error {
		err := db.PingContext(ctx)
		if rejectedConnection(err) {
			return retry.Permanent(err)
		}
		return err
	})
	if err != nil {
		return nil, unavailable(s.String(), err, "cannot reach database after %d attempts", pingAttempts)
	}
	return queryRecords(ctx, db, s.Table, s.String())
}

// Server errors that another attempt cannot fix
var (
	// SQLSTATE class 28 (invalid authorization) and 3D000 (unknown database)
	postgresRejected = []string{"28", "3D000"}
	// AUTHENTICATION_FAILED, UNKNOWN_USER, UNKNOWN_DATABASE, REQUIRED_PASSWORD
	clickhouseRejected = map[int32]bool{516: true, 192: true, 81: true, 194: true}
)

// rejectedConnection reports whether the server refused the connection for
// bad credentials or an unknown database
func rejectedConnection(err error) bool {
	if err == nil {
		return false
	}

	var pgErr pgx.PgError
	if errors.As(err, &pgErr) {
		for _, prefix := range postgresRejected {
			if strings.HasPrefix(pgErr.Code, prefix) {
				return true
			}
		}
		return false
	}

	var chErr *clickhouse.Exception
	if errors.As(err, &chErr) {
		return clickhouseRejected[chErr.Code]
	}
	return false
}

// SQLiteSource reads the wage table from a SQLite file, typically a snapshot
// written by the import command
type SQLiteSource struct {
	Path  string
	Table string
}

func (s *SQLiteSource) String() string {
	return s.Path
}

// Load reads every row of the table. The file is opened read-only.
func (s *SQLiteSource) Load(ctx context.Context) ([]models.WageRecord, error) {
	if _, err := os.Stat(s.Path); err != nil {
		return nil, unavailable(s.Path, err, "cannot open sqlite database")
	}

	db, err := sqlite.OpenReadOnly(s.Path)
	if err != nil {
		return nil, unavailable(s.Path, err, "cannot open sqlite database")
	}
	defer db.Close()

	version, err := db.SchemaVersion()
	if err != nil {
		return nil, unavailable(s.Path, err, "cannot open sqlite database")
	}
	if version > sqlite.SchemaVersion {
		return nil, unavailable(s.Path, nil, "snapshot schema version %d is newer than supported version %d", version, sqlite.SchemaVersion)
	}

	table := s.Table
	if table == "" {
		table = DefaultTable
	}
	return queryRecords(ctx, db.Conn(), table, s.Path)
}

func queryRecords(ctx context.Context, db *sql.DB, table, name string) ([]models.WageRecord, error) {
	if !ValidTableName(table) {
		return nil, unavailable(name, nil, "invalid table name %q", table)
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(requiredColumns, ", "), table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, unavailable(name, err, "schema validation failed for table %s", table)
	}
	defer rows.Close()

	var (
		texts [3]sql.NullString
		nums  [13]any
		dest  = make([]any, 0, len(requiredColumns))
	)
	for i := range texts {
		dest = append(dest, &texts[i])
	}
	for i := range nums {
		dest = append(dest, &nums[i])
	}

	var records []models.WageRecord
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, unavailable(name, err, "row %d", len(records)+1)
		}

		var rec models.WageRecord
		for i, t := range texts {
			if t.Valid {
				*stringField(&rec, i) = t.String
			}
		}
		for i, raw := range nums {
			v, err := numericValue(raw)
			if err != nil {
				col := NumericColumns[i]
				return nil, unavailable(name, fmt.Errorf("column %s: %w", col, err), "row %d", len(records)+1)
			}
			*numericField(&rec, i) = v
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(name, err, "reading table %s", table)
	}

	return records, nil
}

// numericValue converts a scanned column value to a nullable number. Text
// values go through the same suppression markers as CSV cells.
func numericValue(raw any) (*float64, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case float64:
		return finite(v), nil
	case int64:
		return finite(float64(v)), nil
	case string:
		return parseNumber(v)
	case []byte:
		return parseNumber(string(v))
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
		return numericValue(rv.Elem().Interface())
	case reflect.Float32, reflect.Float64:
		return finite(rv.Float()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return finite(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return finite(float64(rv.Uint())), nil
	case reflect.String:
		return parseNumber(rv.String())
	}
	// decimal types print their exact value
	return parseNumber(fmt.Sprint(raw))
}
