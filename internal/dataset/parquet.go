// ABOUTME: Parquet dataset source built on parquet-go
// ABOUTME: Locates required columns by name and accepts numeric or text encodings
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/harper/wage-explorer/internal/models"
)

const parquetBatchSize = 512

// ParquetSource reads a columnar parquet file
type ParquetSource struct {
	Path string
}

func (s *ParquetSource) String() string {
	return s.Path
}

// Load reads every row of the file
func (s *ParquetSource) Load(ctx context.Context) ([]models.WageRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, unavailable(s.Path, err, "cannot open parquet file")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, unavailable(s.Path, err, "cannot stat parquet file")
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, unavailable(s.Path, err, "not a readable parquet file")
	}

	return readParquet(ctx, s.Path, pf)
}

func readParquet(ctx context.Context, name string, pf *parquet.File) ([]models.WageRecord, error) {
	schema := pf.Schema()

	// leaf column index -> position in RequiredColumns
	positions := make(map[int]int)
	var missing []string
	for pos, col := range requiredColumns {
		leaf, ok := schema.Lookup(col)
		if !ok {
			missing = append(missing, col)
			continue
		}
		positions[leaf.ColumnIndex] = pos
	}
	if len(missing) > 0 {
		return nil, unavailable(name, &MissingColumnsError{Columns: missing}, "schema validation failed")
	}

	records := make([]models.WageRecord, 0, pf.NumRows())
	buf := make([]parquet.Row, parquetBatchSize)

	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for {
			if err := ctx.Err(); err != nil {
				_ = rows.Close()
				return nil, unavailable(name, err, "load cancelled")
			}

			n, readErr := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				var rec models.WageRecord
				for _, v := range row {
					pos, ok := positions[v.Column()]
					if !ok {
						continue
					}
					if err := assignParquetValue(&rec, pos, v); err != nil {
						_ = rows.Close()
						return nil, unavailable(name, err, "row %d", len(records)+1)
					}
				}
				records = append(records, rec)
			}

			if errors.Is(readErr, io.EOF) {
				break
			}
			if readErr != nil {
				_ = rows.Close()
				return nil, unavailable(name, readErr, "reading row group")
			}
		}
		if err := rows.Close(); err != nil {
			return nil, unavailable(name, err, "closing row group")
		}
	}

	return records, nil
}

func assignParquetValue(rec *models.WageRecord, pos int, v parquet.Value) error {
	col := requiredColumns[pos]
	if v.IsNull() {
		if pos >= len(StringColumns) {
			setNumber(rec, pos, nil)
		}
		return nil
	}

	switch v.Kind() {
	case parquet.ByteArray, parquet.FixedLenByteArray:
		if err := setField(rec, pos, string(v.ByteArray())); err != nil {
			return fmt.Errorf("column %s: %w", col, err)
		}
	case parquet.Double:
		setNumber(rec, pos, finite(v.Double()))
	case parquet.Float:
		setNumber(rec, pos, finite(float64(v.Float())))
	case parquet.Int32:
		setNumber(rec, pos, finite(float64(v.Int32())))
	case parquet.Int64:
		setNumber(rec, pos, finite(float64(v.Int64())))
	default:
		return fmt.Errorf("column %s: unsupported parquet type %s", col, v.Kind())
	}
	return nil
}
