// ABOUTME: QueryResult is the formatted outcome of a wage lookup
// ABOUTME: Either Found with a WageSummary or NotFound, never an error
package models

// NotAvailable is rendered for suppressed or missing values
const NotAvailable = "N/A"

// NoDataMessage is shown when no row matches a selection
const NoDataMessage = "No data available for the selected combination of job and geography."

// PercentileRow is one line of the wage percentile table
type PercentileRow struct {
	Percentile string `json:"percentile"`
	Hourly     string `json:"hourly"`
	Annual     string `json:"annual"`
}

// MetricRow is one line of the additional information table
type MetricRow struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}

// Metric labels in display order
const (
	MetricTotalEmployment  = "Total Employment"
	MetricJobsPerThousand  = "Jobs per 1,000"
	MetricLocationQuotient = "Location Quotient"
)

// WageSummary holds the formatted fields of the matching record
type WageSummary struct {
	Percentiles []PercentileRow `json:"percentiles"`
	Metrics     []MetricRow     `json:"metrics"`

	// Matches counts the rows that satisfied the filter. Values above one
	// mean the dataset broke the one-row-per-selection assumption and the
	// first row in storage order was used.
	Matches int `json:"matches"`
}

// QueryResult is either Found (Summary set) or NotFound (Summary nil)
type QueryResult struct {
	Selection Selection    `json:"selection"`
	Found     bool         `json:"found"`
	Summary   *WageSummary `json:"summary,omitempty"`
}

// NotFound builds the result for a selection with no matching row
func NotFound(sel Selection) QueryResult {
	return QueryResult{Selection: sel}
}

// Found builds the result for a selection with a matching row
func Found(sel Selection, summary *WageSummary) QueryResult {
	return QueryResult{Selection: sel, Found: true, Summary: summary}
}

// Hourly returns the formatted hourly value for p, or N/A when not found
func (r QueryResult) Hourly(p Percentile) string {
	if r.Summary == nil || p < 0 || int(p) >= len(r.Summary.Percentiles) {
		return NotAvailable
	}
	return r.Summary.Percentiles[p].Hourly
}

// Annual returns the formatted annual value for p, or N/A when not found
func (r QueryResult) Annual(p Percentile) string {
	if r.Summary == nil || p < 0 || int(p) >= len(r.Summary.Percentiles) {
		return NotAvailable
	}
	return r.Summary.Percentiles[p].Annual
}

// Metric returns the formatted value of the named metric, or N/A
func (r QueryResult) Metric(name string) string {
	if r.Summary == nil {
		return NotAvailable
	}
	for _, m := range r.Summary.Metrics {
		if m.Metric == name {
			return m.Value
		}
	}
	return NotAvailable
}

// Duplicated reports whether more than one row matched the selection
func (r QueryResult) Duplicated() bool {
	return r.Summary != nil && r.Summary.Matches > 1
}
