// ABOUTME: Tests for the wage query engine
// ABOUTME: Covers found, not found, geography field selection and duplicates
package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/wage-explorer/internal/dataset"
	"github.com/harper/wage-explorer/internal/models"
)

func nationalOnlyTable() *dataset.Table {
	return dataset.NewTable("test", []models.WageRecord{
		{
			OccupationTitle: "Software Developers",
			AreaTitle:       models.NationalAreaTitle,
			Hourly:          models.Percentiles{nil, nil, models.Float(55.00), nil, nil},
			Annual:          models.Percentiles{nil, nil, models.Float(114400), nil, nil},
			TotalEmployment: models.Float(1500000),
		},
	})
}

func geographyTable() *dataset.Table {
	return dataset.NewTable("test", []models.WageRecord{
		{OccupationTitle: "Actors", StateCode: "US", AreaTitle: "U.S.", Hourly: models.Percentiles{nil, nil, models.Float(23.33), nil, nil}},
		{OccupationTitle: "Actors", StateCode: "CA", AreaTitle: "California", Hourly: models.Percentiles{nil, nil, models.Float(30.00), nil, nil}},
		{OccupationTitle: "Actors", StateCode: "CA", AreaTitle: "Los Angeles-Long Beach-Anaheim, CA", Hourly: models.Percentiles{nil, nil, models.Float(40.00), nil, nil}},
		{OccupationTitle: "Dancers", StateCode: "CA", AreaTitle: "California", Hourly: models.Percentiles{nil, nil, models.Float(20.00), nil, nil}},
	})
}

func TestQuery_NationalScenario(t *testing.T) {
	res, err := Query(nationalOnlyTable(), "Software Developers", models.National, "")
	require.NoError(t, err)
	require.True(t, res.Found)

	assert.Equal(t, "$55.00", res.Hourly(models.Pct50))
	assert.Equal(t, "$114,400", res.Annual(models.Pct50))
	for _, p := range []models.Percentile{models.Pct10, models.Pct25, models.Pct75, models.Pct90} {
		assert.Equal(t, "N/A", res.Hourly(p), "hourly %s", p.Label())
		assert.Equal(t, "N/A", res.Annual(p), "annual %s", p.Label())
	}
	assert.Equal(t, "1,500,000.00", res.Metric(models.MetricTotalEmployment))
	assert.Equal(t, "N/A", res.Metric(models.MetricJobsPerThousand))
	assert.Equal(t, "N/A", res.Metric(models.MetricLocationQuotient))

	assert.Equal(t, models.NationalGeography, res.Selection.Geography)
	assert.Equal(t, "Software Developers in the United States", res.Selection.Title())
	assert.Equal(t, 1, res.Summary.Matches)
}

func TestQuery_NotFound(t *testing.T) {
	res, err := Query(nationalOnlyTable(), "Registered Nurses", models.National, "")
	require.NoError(t, err)

	assert.False(t, res.Found)
	assert.Nil(t, res.Summary)
	assert.Equal(t, "Registered Nurses", res.Selection.Occupation)
}

func TestQuery_NationalIgnoresValue(t *testing.T) {
	table := geographyTable()

	for _, value := range []string{"", "CA", "California", "anything"} {
		res, err := Query(table, "Actors", models.National, value)
		require.NoError(t, err)
		require.True(t, res.Found, "value %q", value)
		assert.Equal(t, "$23.33", res.Hourly(models.Pct50), "value %q", value)
	}
}

func TestQuery_StateMatchesStateCode(t *testing.T) {
	res, err := Query(geographyTable(), "Actors", models.State, "CA")
	require.NoError(t, err)
	require.True(t, res.Found)

	// Both the California row and the LA metro row carry PRIM_STATE=CA;
	// the first in storage order wins and the duplicate is reported.
	assert.Equal(t, "$30.00", res.Hourly(models.Pct50))
	assert.Equal(t, 2, res.Summary.Matches)
	assert.True(t, res.Duplicated())
	assert.Equal(t, "Actors in CA", res.Selection.Title())
}

func TestQuery_MetropolitanMatchesAreaTitle(t *testing.T) {
	res, err := Query(geographyTable(), "Actors", models.Metropolitan, "Los Angeles-Long Beach-Anaheim, CA")
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, "$40.00", res.Hourly(models.Pct50))
	assert.False(t, res.Duplicated())
}

func TestQuery_ExactMatchOnly(t *testing.T) {
	table := geographyTable()

	cases := []struct {
		occupation string
		kind       models.GeographyKind
		value      string
	}{
		{"actors", models.National, ""},
		{"Actors ", models.National, ""},
		{"Actors", models.State, "ca"},
		{"Actors", models.Metropolitan, "Los Angeles"},
		{"Dancers", models.Metropolitan, "Los Angeles-Long Beach-Anaheim, CA"},
	}
	for _, c := range cases {
		res, err := Query(table, c.occupation, c.kind, c.value)
		require.NoError(t, err)
		assert.False(t, res.Found, "%+v", c)
	}
}

func TestQuery_InvalidGeographyKind(t *testing.T) {
	_, err := Query(geographyTable(), "Actors", models.GeographyKind("County"), "Travis")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidGeographyKind)

	var kindErr *InvalidGeographyKindError
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, models.GeographyKind("County"), kindErr.Kind)
}

func TestQuery_EveryCombination(t *testing.T) {
	table := geographyTable()

	for _, occ := range Occupations(table) {
		for _, kind := range models.GeographyKinds() {
			for _, geo := range GeographyOptions(table, kind) {
				res, err := Query(table, occ, kind, geo)
				require.NoError(t, err)

				pred, err := Predicate(occ, kind, geo)
				require.NoError(t, err)
				matches := table.Filter(pred)

				assert.Equal(t, len(matches) > 0, res.Found, "%s / %s / %s", occ, kind, geo)
				if !res.Found {
					continue
				}
				rec := table.Record(matches[0])
				for p := models.Pct10; p <= models.Pct90; p++ {
					assert.Equal(t, rec.Hourly[p] == nil, res.Hourly(p) == models.NotAvailable)
					assert.Equal(t, rec.Annual[p] == nil, res.Annual(p) == models.NotAvailable)
				}
			}
		}
	}
}

func BenchmarkQuery(b *testing.B) {
	records := make([]models.WageRecord, 0, 50000)
	for i := 0; i < 50000; i++ {
		records = append(records, models.WageRecord{
			OccupationTitle: "Occupation",
			StateCode:       "ST",
			AreaTitle:       "Area",
			Hourly:          models.Percentiles{models.Float(float64(i))},
		})
	}
	records = append(records, models.WageRecord{OccupationTitle: "Target", AreaTitle: models.NationalAreaTitle})
	table := dataset.NewTable("bench", records)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Query(table, "Target", models.National, ""); err != nil {
			b.Fatal(err)
		}
	}
}
