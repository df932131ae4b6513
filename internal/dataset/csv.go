// ABOUTME: CSV dataset source for exports of the OEWS workbook
// ABOUTME: Reads a header row, then maps BLS suppression markers to null
package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/harper/wage-explorer/internal/models"
)

// CSVSource reads a comma-separated file with a header row
type CSVSource struct {
	Path string
}

func (s *CSVSource) String() string {
	return s.Path
}

// Load reads every row of the file
func (s *CSVSource) Load(ctx context.Context) ([]models.WageRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, unavailable(s.Path, err, "cannot open csv file")
	}
	defer f.Close()

	return readCSV(ctx, s.Path, bufio.NewReader(f))
}

func readCSV(ctx context.Context, name string, r io.Reader) ([]models.WageRecord, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, unavailable(name, err, "cannot read csv header")
	}
	positions, err := columnIndex(header)
	if err != nil {
		return nil, unavailable(name, err, "schema validation failed")
	}

	var records []models.WageRecord
	for line := 2; ; line++ {
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, unavailable(name, err, "load cancelled")
			}
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, unavailable(name, err, "malformed csv")
		}

		var rec models.WageRecord
		for i, raw := range row {
			pos, ok := positions[i]
			if !ok {
				continue
			}
			if err := setField(&rec, pos, raw); err != nil {
				return nil, unavailable(name, fmt.Errorf("column %s: %w", requiredColumns[pos], err), "line %d", line)
			}
		}
		records = append(records, rec)
	}

	return records, nil
}
