// ABOUTME: Wage query engine: filters the table by occupation and geography
// ABOUTME: Returns Found with formatted fields or NotFound; pure over the table
package query

import (
	"errors"
	"fmt"

	"github.com/harper/wage-explorer/internal/dataset"
	"github.com/harper/wage-explorer/internal/models"
)

// ErrInvalidGeographyKind is returned for a kind outside National, State, Metropolitan
var ErrInvalidGeographyKind = errors.New("invalid geography kind")

// InvalidGeographyKindError names the rejected kind
type InvalidGeographyKindError struct {
	Kind models.GeographyKind
}

func (e *InvalidGeographyKindError) Error() string {
	return fmt.Sprintf("invalid geography kind %q", string(e.Kind))
}

func (e *InvalidGeographyKindError) Is(target error) bool {
	return target == ErrInvalidGeographyKind
}

// Predicate builds the two-condition filter for a selection: the occupation
// title and the geography field chosen by kind must both match exactly.
func Predicate(occupation string, kind models.GeographyKind, value string) (func(*models.WageRecord) bool, error) {
	switch kind {
	case models.National:
		return func(r *models.WageRecord) bool {
			return r.OccupationTitle == occupation && r.IsNational()
		}, nil
	case models.State:
		return func(r *models.WageRecord) bool {
			return r.OccupationTitle == occupation && r.StateCode == value
		}, nil
	case models.Metropolitan:
		return func(r *models.WageRecord) bool {
			return r.OccupationTitle == occupation && r.AreaTitle == value
		}, nil
	}
	return nil, &InvalidGeographyKindError{Kind: kind}
}

// Query looks up the wage record for occupation in the given geography.
// For National the value is ignored and the national sentinel row is used.
// No match is a NotFound result, not an error. When several rows match, the
// first in storage order is used and Summary.Matches reports the count.
func Query(t *dataset.Table, occupation string, kind models.GeographyKind, value string) (models.QueryResult, error) {
	pred, err := Predicate(occupation, kind, value)
	if err != nil {
		return models.QueryResult{}, err
	}

	sel := models.Selection{Occupation: occupation, Kind: kind, Geography: value}
	if kind == models.National {
		sel.Geography = models.NationalGeography
	}

	matches := t.Filter(pred)
	if len(matches) == 0 {
		return models.NotFound(sel), nil
	}

	summary := Summarize(t.Record(matches[0]))
	summary.Matches = len(matches)
	return models.Found(sel, summary), nil
}

// Summarize formats a record's percentile and metric fields
func Summarize(rec *models.WageRecord) *models.WageSummary {
	summary := &models.WageSummary{
		Percentiles: make([]models.PercentileRow, 0, models.PercentileCount),
		Matches:     1,
	}
	for p := models.Pct10; p <= models.Pct90; p++ {
		summary.Percentiles = append(summary.Percentiles, models.PercentileRow{
			Percentile: p.Label(),
			Hourly:     FormatHourly(rec.Hourly[p]),
			Annual:     FormatAnnual(rec.Annual[p]),
		})
	}
	summary.Metrics = []models.MetricRow{
		{Metric: models.MetricTotalEmployment, Value: FormatMetric(rec.TotalEmployment)},
		{Metric: models.MetricJobsPerThousand, Value: FormatMetric(rec.JobsPerThousand)},
		{Metric: models.MetricLocationQuotient, Value: FormatMetric(rec.LocationQuotient)},
	}
	return summary
}
