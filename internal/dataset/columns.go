// ABOUTME: Column names of the OEWS dataset and their mapping onto WageRecord
// ABOUTME: Every source resolves columns by these names before reading rows
package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/harper/wage-explorer/internal/models"
)

// Column names a dataset column
type Column string

// Categorical columns offered for selection
const (
	ColOccupation Column = "OCC_TITLE"
	ColState      Column = "PRIM_STATE"
	ColArea       Column = "AREA_TITLE"
)

// StringColumns are read as text, in WageRecord field order
var StringColumns = []string{"OCC_TITLE", "PRIM_STATE", "AREA_TITLE"}

// NumericColumns are read as nullable numbers, in WageRecord field order:
// five hourly percentiles, five annual percentiles, then the three metrics.
var NumericColumns = []string{
	"H_PCT10", "H_PCT25", "H_MEDIAN", "H_PCT75", "H_PCT90",
	"A_PCT10", "A_PCT25", "A_MEDIAN", "A_PCT75", "A_PCT90",
	"TOT_EMP", "JOBS_1000", "LOC_QUOTIENT",
}

var requiredColumns = RequiredColumns()

// RequiredColumns is every column a dataset must provide
func RequiredColumns() []string {
	cols := make([]string, 0, len(StringColumns)+len(NumericColumns))
	cols = append(cols, StringColumns...)
	return append(cols, NumericColumns...)
}

// stringField returns the WageRecord field for StringColumns[i]
func stringField(rec *models.WageRecord, i int) *string {
	switch i {
	case 0:
		return &rec.OccupationTitle
	case 1:
		return &rec.StateCode
	default:
		return &rec.AreaTitle
	}
}

// numericField returns the WageRecord field for NumericColumns[i]
func numericField(rec *models.WageRecord, i int) **float64 {
	switch {
	case i < models.PercentileCount:
		return &rec.Hourly[i]
	case i < 2*models.PercentileCount:
		return &rec.Annual[i-models.PercentileCount]
	case i == 10:
		return &rec.TotalEmployment
	case i == 11:
		return &rec.JobsPerThousand
	default:
		return &rec.LocationQuotient
	}
}

// setField stores a raw text value into field position pos of RequiredColumns
func setField(rec *models.WageRecord, pos int, raw string) error {
	if pos < len(StringColumns) {
		*stringField(rec, pos) = raw
		return nil
	}
	v, err := parseNumber(raw)
	if err != nil {
		return err
	}
	*numericField(rec, pos-len(StringColumns)) = v
	return nil
}

// setNumber stores a numeric value into field position pos of RequiredColumns
func setNumber(rec *models.WageRecord, pos int, v *float64) {
	if pos < len(StringColumns) {
		if v != nil {
			*stringField(rec, pos) = strconv.FormatFloat(*v, 'f', -1, 64)
		}
		return
	}
	*numericField(rec, pos-len(StringColumns)) = v
}

// suppressed lists the markers BLS publishes in place of a value
var suppressed = map[string]bool{
	"":    true,
	"*":   true, // wage estimate not available
	"**":  true, // employment estimate not available
	"#":   true, // top-coded wage
	"~":   true, // less than 0.5 percent of establishments
	"N/A": true,
	"NA":  true,
	"NaN": true,
	"nan": true,
}

// parseNumber parses a published value; suppression markers yield nil
func parseNumber(raw string) (*float64, error) {
	s := strings.TrimSpace(raw)
	if suppressed[s] {
		return nil, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return finite(f), nil
}

// finite returns nil for NaN and infinities
func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// columnIndex maps each required column to its position in header, reporting
// any that are missing. Header names are matched case-insensitively.
func columnIndex(header []string) (map[int]int, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := byName[name]; !dup {
			byName[name] = i
		}
	}

	positions := make(map[int]int)
	var missing []string
	for pos, col := range requiredColumns {
		i, ok := byName[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		positions[i] = pos
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return positions, nil
}
