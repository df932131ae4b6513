// ABOUTME: Shared fixtures for dataset tests
// ABOUTME: Writes small CSV, parquet and SQLite datasets into temp directories
package dataset

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"

	"github.com/harper/wage-explorer/internal/models"
	"github.com/harper/wage-explorer/internal/storage/sqlite"
)

const fixtureCSV = `OCC_TITLE,PRIM_STATE,AREA_TITLE,H_PCT10,H_PCT25,H_MEDIAN,H_PCT75,H_PCT90,A_PCT10,A_PCT25,A_MEDIAN,A_PCT75,A_PCT90,TOT_EMP,JOBS_1000,LOC_QUOTIENT,EXTRA
Software Developers,US,U.S.,*,*,55.00,*,*,*,*,114400,*,*,"1,500,000",,,x
Software Developers,CA,California,40.10,50.20,75.30,90.40,#,83400,104420,156620,188030,#,200000,11.5,1.6,x
Registered Nurses,CA,California,35,40,55.5,60,70,72800,83200,115440,124800,145600,**,~,,x
Software Developers,TX,"Austin-Round Rock-San Marcos, TX",30,40,60,70,80,62400,83200,124800,145600,166400,25000,20.1,2.4,x
`

// fixtureRow mirrors the dataset columns for writing parquet fixtures
type fixtureRow struct {
	OccTitle    string   `parquet:"OCC_TITLE"`
	PrimState   string   `parquet:"PRIM_STATE"`
	AreaTitle   string   `parquet:"AREA_TITLE"`
	HPct10      *float64 `parquet:"H_PCT10,optional"`
	HPct25      *float64 `parquet:"H_PCT25,optional"`
	HMedian     *float64 `parquet:"H_MEDIAN,optional"`
	HPct75      *float64 `parquet:"H_PCT75,optional"`
	HPct90      *float64 `parquet:"H_PCT90,optional"`
	APct10      *float64 `parquet:"A_PCT10,optional"`
	APct25      *float64 `parquet:"A_PCT25,optional"`
	AMedian     *float64 `parquet:"A_MEDIAN,optional"`
	APct75      *float64 `parquet:"A_PCT75,optional"`
	APct90      *float64 `parquet:"A_PCT90,optional"`
	TotEmp      *float64 `parquet:"TOT_EMP,optional"`
	Jobs1000    *float64 `parquet:"JOBS_1000,optional"`
	LocQuotient *float64 `parquet:"LOC_QUOTIENT,optional"`
}

// textRow stores wages as strings, the way a spreadsheet export often does
type textRow struct {
	OccTitle    string `parquet:"OCC_TITLE"`
	PrimState   string `parquet:"PRIM_STATE"`
	AreaTitle   string `parquet:"AREA_TITLE"`
	HPct10      string `parquet:"H_PCT10"`
	HPct25      string `parquet:"H_PCT25"`
	HMedian     string `parquet:"H_MEDIAN"`
	HPct75      string `parquet:"H_PCT75"`
	HPct90      string `parquet:"H_PCT90"`
	APct10      string `parquet:"A_PCT10"`
	APct25      string `parquet:"A_PCT25"`
	AMedian     string `parquet:"A_MEDIAN"`
	APct75      string `parquet:"A_PCT75"`
	APct90      string `parquet:"A_PCT90"`
	TotEmp      string `parquet:"TOT_EMP"`
	Jobs1000    string `parquet:"JOBS_1000"`
	LocQuotient string `parquet:"LOC_QUOTIENT"`
}

// partialRow is missing most required columns
type partialRow struct {
	OccTitle  string `parquet:"OCC_TITLE"`
	AreaTitle string `parquet:"AREA_TITLE"`
}

func nationalRecord() models.WageRecord {
	return models.WageRecord{
		OccupationTitle: "Software Developers",
		StateCode:       "US",
		AreaTitle:       models.NationalAreaTitle,
		Hourly:          models.Percentiles{nil, nil, models.Float(55.00), nil, nil},
		Annual:          models.Percentiles{nil, nil, models.Float(114400), nil, nil},
		TotalEmployment: models.Float(1500000),
	}
}

func stateRecord() models.WageRecord {
	return models.WageRecord{
		OccupationTitle:  "Software Developers",
		StateCode:        "CA",
		AreaTitle:        "California",
		Hourly:           models.Percentiles{models.Float(40.10), models.Float(50.20), models.Float(75.30), models.Float(90.40), nil},
		Annual:           models.Percentiles{models.Float(83400), models.Float(104420), models.Float(156620), models.Float(188030), nil},
		TotalEmployment:  models.Float(200000),
		JobsPerThousand:  models.Float(11.5),
		LocationQuotient: models.Float(1.6),
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeParquet[T any](t *testing.T, rows []T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wages.parquet")
	require.NoError(t, parquet.WriteFile(path, rows))
	return path
}

func toFixtureRow(r models.WageRecord) fixtureRow {
	return fixtureRow{
		OccTitle: r.OccupationTitle, PrimState: r.StateCode, AreaTitle: r.AreaTitle,
		HPct10: r.Hourly[0], HPct25: r.Hourly[1], HMedian: r.Hourly[2], HPct75: r.Hourly[3], HPct90: r.Hourly[4],
		APct10: r.Annual[0], APct25: r.Annual[1], AMedian: r.Annual[2], APct75: r.Annual[3], APct90: r.Annual[4],
		TotEmp: r.TotalEmployment, Jobs1000: r.JobsPerThousand, LocQuotient: r.LocationQuotient,
	}
}

func writeSnapshot(t *testing.T, records []models.WageRecord) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wages.db")
	db, err := sqlite.Open(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	require.NoError(t, sqlite.NewWageStore(db).ReplaceRecords(context.Background(), "fixture", records))
	return path
}

// stubSource returns fixed records and counts calls
type stubSource struct {
	records []models.WageRecord
	err     error
	calls   atomic.Int32
}

func (s *stubSource) Load(ctx context.Context) ([]models.WageRecord, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func (s *stubSource) String() string {
	return "stub"
}
