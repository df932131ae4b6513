// ABOUTME: Immutable in-memory wage table built once per load
// ABOUTME: Provides row scans, index filters and cached distinct values
package dataset

import (
	"sort"
	"sync"
	"time"

	"github.com/harper/wage-explorer/internal/models"
)

// Table is a read-only snapshot of the dataset. It is safe for concurrent use.
type Table struct {
	records  []models.WageRecord
	source   string
	loadedAt time.Time
	distinct map[Column]*distinctSet
}

type distinctSet struct {
	once   sync.Once
	values []string
}

// NewTable wraps records in a Table. The caller must not modify records afterwards.
func NewTable(source string, records []models.WageRecord) *Table {
	return &Table{
		records:  records,
		source:   source,
		loadedAt: time.Now(),
		distinct: map[Column]*distinctSet{
			ColOccupation: {},
			ColState:      {},
			ColArea:       {},
		},
	}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.records)
}

// Record returns row i. The returned record must be treated as read-only.
func (t *Table) Record(i int) *models.WageRecord {
	return &t.records[i]
}

// Records returns a copy of every row in storage order
func (t *Table) Records() []models.WageRecord {
	out := make([]models.WageRecord, len(t.records))
	copy(out, t.records)
	return out
}

// Source describes where the table was read from
func (t *Table) Source() string {
	return t.source
}

// LoadedAt is when the table was built
func (t *Table) LoadedAt() time.Time {
	return t.loadedAt
}

// Filter returns the indices of rows matching pred, in storage order
func (t *Table) Filter(pred func(*models.WageRecord) bool) []int {
	var indices []int
	for i := range t.records {
		if pred(&t.records[i]) {
			indices = append(indices, i)
		}
	}
	return indices
}

// DistinctValues returns the sorted, duplicate-free, non-empty values of a
// categorical column. Each call returns a fresh slice with the same contents.
// Columns other than OCC_TITLE, PRIM_STATE and AREA_TITLE yield nil.
func (t *Table) DistinctValues(col Column) []string {
	values := t.values(col)
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// values returns the cached distinct values without copying
func (t *Table) values(col Column) []string {
	set, ok := t.distinct[col]
	if !ok {
		return nil
	}
	set.once.Do(func() {
		set.values = t.collect(col)
	})
	return set.values
}

func (t *Table) collect(col Column) []string {
	seen := make(map[string]struct{})
	for i := range t.records {
		v := columnValue(&t.records[i], col)
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Contains reports whether v is one of the distinct values of col
func (t *Table) Contains(col Column, v string) bool {
	values := t.values(col)
	i := sort.SearchStrings(values, v)
	return i < len(values) && values[i] == v
}

func columnValue(rec *models.WageRecord, col Column) string {
	switch col {
	case ColOccupation:
		return rec.OccupationTitle
	case ColState:
		return rec.StateCode
	case ColArea:
		return rec.AreaTitle
	}
	return ""
}

// duplicateKeys counts rows that repeat a lookup key already seen earlier in
// the table. byArea is keyed on (occupation, area), which National and
// Metropolitan lookups filter on; byState on (occupation, state), which
// State lookups filter on. OEWS metro rows carry their state code, so
// byState overlaps are normal while byArea repeats are not.
func duplicateKeys(records []models.WageRecord) (byArea, byState int) {
	type key struct{ occ, geo string }
	areas := make(map[key]struct{}, len(records))
	states := make(map[key]struct{}, len(records))
	for i := range records {
		rec := &records[i]
		a := key{rec.OccupationTitle, rec.AreaTitle}
		if _, ok := areas[a]; ok {
			byArea++
		} else {
			areas[a] = struct{}{}
		}
		if rec.StateCode == "" {
			continue
		}
		st := key{rec.OccupationTitle, rec.StateCode}
		if _, ok := states[st]; ok {
			byState++
		} else {
			states[st] = struct{}{}
		}
	}
	return byArea, byState
}
