// ABOUTME: Currency and metric formatting for wage lookups
// ABOUTME: Null values always render as N/A, never as zero
package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/harper/wage-explorer/internal/models"
)

// FormatHourly renders an hourly wage as "$12.34", or N/A when suppressed
func FormatHourly(v *float64) string {
	if !present(v) {
		return models.NotAvailable
	}
	return fmt.Sprintf("$%.2f", *v)
}

// FormatAnnual renders an annual wage as "$45,678", or N/A when suppressed
func FormatAnnual(v *float64) string {
	if !present(v) {
		return models.NotAvailable
	}
	return "$" + groupThousands(strconv.FormatFloat(*v, 'f', 0, 64))
}

// FormatMetric renders a metric as "1,500,000.00", or N/A when suppressed
func FormatMetric(v *float64) string {
	if !present(v) {
		return models.NotAvailable
	}
	return groupThousands(strconv.FormatFloat(*v, 'f', 2, 64))
}

func present(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// groupThousands adds separators to the integer part of a decimal string
// that strconv has already rounded.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + s
	}
	out := sign + humanize.Comma(n)
	if hasFrac {
		out += "." + frac
	}
	return out
}
