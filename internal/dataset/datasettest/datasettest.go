// ABOUTME: Test helpers that write small OEWS datasets to disk
// ABOUTME: Used by adapter tests that need a real loader over a CSV file
package datasettest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harper/wage-explorer/internal/dataset"
)

// CSV is a small dataset with national, state and metropolitan rows. It
// includes suppressed markers and a duplicated (occupation, state) pair.
const CSV = `OCC_TITLE,PRIM_STATE,AREA_TITLE,H_PCT10,H_PCT25,H_MEDIAN,H_PCT75,H_PCT90,A_PCT10,A_PCT25,A_MEDIAN,A_PCT75,A_PCT90,TOT_EMP,JOBS_1000,LOC_QUOTIENT
Software Developers,US,U.S.,30.00,40.00,55.00,70.00,85.00,62400,83200,114400,145600,176800,1500000,10.5,1.0
Registered Nurses,US,U.S.,*,*,40.00,*,*,*,*,83200,*,*,3200000,21.2,1.0
Software Developers,CA,California,40.10,50.20,75.30,90.40,#,83400,104420,156620,188030,#,200000,11.5,1.6
Registered Nurses,CA,California,35,40,55.5,60,70,72800,83200,115440,124800,145600,**,~,
Software Developers,TX,Texas,32,41,58,71,88,66560,85280,120640,147680,183040,90000,7.1,0.9
Software Developers,TX,Texas,1,1,1,1,1,1,1,1,1,1,1,1,1
Software Developers,TX,"Austin-Round Rock-San Marcos, TX",30,40,60,70,80,62400,83200,124800,145600,166400,25000,20.1,2.4
`

// WriteCSV writes CSV to a temp directory and returns its path
func WriteCSV(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wages.csv")
	if err := os.WriteFile(path, []byte(CSV), 0o644); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}
	return path
}

// Loader returns a loader over a fresh copy of CSV
func Loader(t testing.TB, opts ...dataset.Option) *dataset.Loader {
	t.Helper()
	return dataset.NewLoader(&dataset.CSVSource{Path: WriteCSV(t)}, opts...)
}

// MissingLoader returns a loader whose source does not exist
func MissingLoader(t testing.TB) *dataset.Loader {
	t.Helper()
	return dataset.NewLoader(&dataset.CSVSource{Path: filepath.Join(t.TempDir(), "missing.csv")})
}
