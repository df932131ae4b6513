// ABOUTME: WageRecord represents one OEWS row for an occupation and geography
// ABOUTME: Nullable wage and employment values are pointers, nil means suppressed
package models

// Percentile identifies one of the five reported wage percentiles
type Percentile int

const (
	Pct10 Percentile = iota
	Pct25
	Pct50
	Pct75
	Pct90
)

// PercentileCount is the number of reported percentiles
const PercentileCount = 5

// Label returns the display label for the percentile
func (p Percentile) Label() string {
	switch p {
	case Pct10:
		return "10th"
	case Pct25:
		return "25th"
	case Pct50:
		return "50th (Median)"
	case Pct75:
		return "75th"
	case Pct90:
		return "90th"
	}
	return "unknown"
}

// Percentiles holds the 10th, 25th, 50th, 75th and 90th percentile values in order.
// A nil entry means the value was suppressed.
type Percentiles [PercentileCount]*float64

// WageRecord holds wage and employment statistics for one (occupation, geography) pair
type WageRecord struct {
	OccupationTitle  string      `json:"occupation_title"`
	StateCode        string      `json:"state_code,omitempty"`
	AreaTitle        string      `json:"area_title"`
	Hourly           Percentiles `json:"hourly"`
	Annual           Percentiles `json:"annual"`
	TotalEmployment  *float64    `json:"total_employment"`
	JobsPerThousand  *float64    `json:"jobs_per_thousand"`
	LocationQuotient *float64    `json:"location_quotient"`
}

// IsNational reports whether the row is the national aggregate. State and
// metropolitan rows are not distinguishable from the stored columns alone; the
// query decides which field to match.
func (r *WageRecord) IsNational() bool {
	return r.AreaTitle == NationalAreaTitle
}

// Float returns a pointer to a copy of v, for building records in code
func Float(v float64) *float64 {
	return &v
}
